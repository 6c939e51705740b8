// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
)

// strategy tries to create a reader for a package. It returns nil without
// error if it does not apply to the package.
type strategy struct {
	name string
	fn   func(pkg *Package) (TraversableReader, error)
}

// strategies are tried in order. The first one returning a reader wins.
var strategies = []strategy{
	{"native", nativeReader},
	{"archive", archiveReader},
	{"namespace", namespaceReader},
	{"file", fileReader},
}

// ReaderFor returns the resource reader for the given package.
//
// It returns [ErrNotPackage] if pkg is not a package and [ErrNoReader] if
// no strategy applies.
func ReaderFor(pkg *Package) (TraversableReader, error) {
	if !pkg.IsPackage() {
		name := "<nil>"
		if pkg != nil {
			name = pkg.Name
		}

		return nil, fmt.Errorf("%w: %s", ErrNotPackage, name)
	}

	for _, strategy := range strategies {
		reader, err := strategy.fn(pkg)
		if err != nil {
			return nil, fmt.Errorf("%s reader for %s: %w", strategy.name, pkg.Name, err)
		}

		if reader != nil {
			slog.Debug("Resolved resource reader",
				slog.String("package", pkg.Name),
				slog.String("reader", strategy.name),
			)

			return reader, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoReader, pkg.Name)
}

func nativeReader(pkg *Package) (TraversableReader, error) {
	provider, ok := pkg.Loader.(ReaderProvider)
	if !ok {
		return nil, nil
	}

	// Readers that only implement the narrow contract are ignored.
	reader, _ := provider.ResourceReader(pkg.Name).(TraversableReader)

	return reader, nil
}

func archiveReader(pkg *Package) (TraversableReader, error) {
	loader, ok := pkg.Loader.(ArchiveLoader)
	if !ok {
		return nil, nil
	}

	return NewArchiveReader(loader.Archive(), path.Join(loader.Prefix(), pkg.lastName())), nil
}

func namespaceReader(pkg *Package) (TraversableReader, error) {
	if !pkg.IsNamespace() {
		return nil, nil
	}

	return NewNamespaceReader(pkg.SearchLocations)
}

func fileReader(pkg *Package) (TraversableReader, error) {
	if pkg.Origin == "" {
		return nil, nil
	}

	// Origins that do not exist are not usable, for example if the package
	// lives in some container no other strategy knows about.
	origin, err := traversable.NewPath(pkg.Origin)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !origin.IsFile() && !origin.IsDir() {
		return nil, nil
	}

	return NewFileReader(filepath.Dir(pkg.Origin))
}

// FileReader reads resources from a directory on the local file system.
type FileReader struct {
	root *traversable.Path
}

var _ ResourceReader = (*FileReader)(nil)

// NewFileReader creates a new [FileReader] for the given directory.
func NewFileReader(dir string) (*FileReader, error) {
	root, err := traversable.NewPath(dir)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &FileReader{root: root}, nil
}

// Files returns the package directory.
func (r *FileReader) Files() (traversable.Traversable, error) {
	return r.root, nil
}

// OpenResource opens the named resource for reading.
func (r *FileReader) OpenResource(name string) (io.ReadCloser, error) {
	return openResource(r.root, name)
}

// ResourcePath returns the real path of the named resource. The resource
// does not need to exist.
func (r *FileReader) ResourcePath(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	dir, _ := r.root.RealPath()

	return filepath.Join(dir, name), nil
}

// IsResource reports whether the named resource is a file.
func (r *FileReader) IsResource(name string) (bool, error) {
	return isResource(r.root, name)
}

// Contents returns the names of the entries in the package directory.
func (r *FileReader) Contents() ([]string, error) {
	return contents(r.root)
}

// ArchiveReader reads resources from a directory inside an archive.
type ArchiveReader struct {
	root *traversable.ArchiveNode
}

var _ ResourceReader = (*ArchiveReader)(nil)

// NewArchiveReader creates a new [ArchiveReader] for the directory at the
// given path inside the archive.
func NewArchiveReader(arc archive.Archive, at string) *ArchiveReader {
	return &ArchiveReader{root: traversable.NewArchiveNode(arc, at)}
}

// Files returns the package directory inside the archive.
func (r *ArchiveReader) Files() (traversable.Traversable, error) {
	return r.root, nil
}

// OpenResource opens the named resource for reading.
func (r *ArchiveReader) OpenResource(name string) (io.ReadCloser, error) {
	return openResource(r.root, name)
}

// ResourcePath always fails, as archive members have no real path.
func (r *ArchiveReader) ResourcePath(name string) (string, error) {
	return resourcePath(r.root, name)
}

// IsResource reports whether the named resource exists and is a file.
func (r *ArchiveReader) IsResource(name string) (bool, error) {
	return isResource(r.root, name)
}

// Contents returns the names of the entries in the package directory.
func (r *ArchiveReader) Contents() ([]string, error) {
	return contents(r.root)
}

// NamespaceReader reads resources from all portions of a namespace package.
type NamespaceReader struct {
	root *traversable.Multiplexed
}

var _ ResourceReader = (*NamespaceReader)(nil)

// NewNamespaceReader creates a new [NamespaceReader] for the given search
// locations. Each location is resolved by [ResolveLocation]. Locations that
// cannot be resolved are skipped. If none is left, an error wrapping
// [traversable.ErrNoRoots] is returned.
func NewNamespaceReader(locations []string) (*NamespaceReader, error) {
	roots := make([]traversable.Traversable, 0, len(locations))

	for _, location := range locations {
		root, err := ResolveLocation(location, archive.SharedCache())
		if err != nil {
			slog.Debug("Skip namespace location",
				slog.String("location", location),
				slog.Any("error", err),
			)

			continue
		}

		roots = append(roots, root)
	}

	root, err := traversable.NewMultiplexed(roots...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &NamespaceReader{root: root}, nil
}

// Files returns the merged view of all portions.
func (r *NamespaceReader) Files() (traversable.Traversable, error) {
	return r.root, nil
}

// OpenResource opens the named resource for reading.
func (r *NamespaceReader) OpenResource(name string) (io.ReadCloser, error) {
	return openResource(r.root, name)
}

// ResourcePath returns the real path of the named resource. For missing
// resources the path inside the first portion is returned.
func (r *NamespaceReader) ResourcePath(name string) (string, error) {
	return resourcePath(r.root, name)
}

// IsResource reports whether the named resource is a file.
func (r *NamespaceReader) IsResource(name string) (bool, error) {
	return isResource(r.root, name)
}

// Contents returns the merged names of the entries of all portions.
func (r *NamespaceReader) Contents() ([]string, error) {
	return contents(r.root)
}

func openResource(root traversable.Traversable, name string) (io.ReadCloser, error) {
	node, err := resource(root, name)
	if err != nil {
		return nil, err
	}

	return node.Open() //nolint:wrapcheck
}

func resourcePath(root traversable.Traversable, name string) (string, error) {
	node, err := resource(root, name)
	if err != nil {
		return "", err
	}

	if realPath, ok := realPath(node); ok {
		return realPath, nil
	}

	return "", &traversable.PathError{
		Op:   "resource path",
		Path: node.String(),
		Err:  ErrNotExist,
	}
}

func isResource(root traversable.Traversable, name string) (bool, error) {
	node, err := resource(root, name)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return node.IsFile(), nil
}

func contents(root traversable.Traversable) ([]string, error) {
	var names []string

	for child, err := range root.IterDir() {
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		names = append(names, child.Name())
	}

	return names, nil
}

// resource joins the bare resource name onto root.
func resource(root traversable.Traversable, name string) (traversable.Traversable, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	return root.JoinPath(name) //nolint:wrapcheck
}

func realPath(node traversable.Traversable) (string, bool) {
	pather, ok := node.(RealPather)
	if !ok {
		return "", false
	}

	return pather.RealPath()
}
