// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
)

// DefaultMarker is the name of the file that marks a directory as regular
// package.
const DefaultMarker = "__package__"

var (
	// ErrPackageNotFound is returned if no package with the given name
	// exists in the search roots.
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidName is returned for malformed dotted package names.
	ErrInvalidName = errors.New("invalid package name")
)

// Option configures a [Finder].
type Option func(*Finder)

// WithMarker sets the marker file name. Empty names are ignored.
func WithMarker(name string) Option {
	return func(f *Finder) {
		if name != "" {
			f.marker = name
		}
	}
}

// WithCache sets the cache archives are opened with. The default is
// [archive.SharedCache].
func WithCache(cache *archive.Cache) Option {
	return func(f *Finder) {
		if cache != nil {
			f.cache = cache
		}
	}
}

// Finder finds packages in an ordered list of search roots.
type Finder struct {
	roots  []string
	marker string
	cache  *archive.Cache
}

var _ pkgres.Resolver = (*Finder)(nil)

// New creates a new [Finder] for the given search roots.
func New(roots []string, opts ...Option) *Finder {
	finder := &Finder{
		roots:  slices.Clone(roots),
		marker: DefaultMarker,
		cache:  archive.SharedCache(),
	}

	for _, opt := range opts {
		opt(finder)
	}

	return finder
}

// Roots returns the search roots.
func (f *Finder) Roots() []string {
	return slices.Clone(f.roots)
}

// Marker returns the marker file name.
func (f *Finder) Marker() string {
	return f.marker
}

// Preload opens all archive files that are search roots in parallel.
func (f *Finder) Preload(ctx context.Context) error {
	var archives []string

	for _, root := range f.roots {
		if archive.IsArchive(root) {
			archives = append(archives, root)
		}
	}

	return f.cache.Preload(ctx, archives...) //nolint:wrapcheck
}

// Find returns the package with the given dotted name.
func (f *Finder) Find(name string) (*pkgres.Package, error) {
	parts, err := splitName(name)
	if err != nil {
		return nil, err
	}

	locations := f.roots

	var pkg *pkgres.Package

	for idx, part := range parts {
		pkg, err = f.findIn(locations, strings.Join(parts[:idx+1], "."), part)
		if err != nil {
			return nil, err
		}

		locations = pkg.SearchLocations
	}

	return pkg, nil
}

// Packages returns the sorted names of all top-level packages.
func (f *Finder) Packages() ([]string, error) {
	seen := map[string]struct{}{}

	for _, root := range f.resolve(f.roots) {
		for child, err := range root.dir.IterDir() {
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", root.location, err)
			}

			if child.IsDir() && validPart(child.Name()) {
				seen[child.Name()] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

type location struct {
	location string
	dir      traversable.Traversable
}

// resolve resolves the given locations. Locations that cannot be resolved
// are skipped.
func (f *Finder) resolve(locations []string) []location {
	resolved := make([]location, 0, len(locations))

	for _, loc := range locations {
		dir, err := pkgres.ResolveLocation(loc, f.cache)
		if err != nil {
			slog.Debug("Skip search location",
				slog.String("location", loc),
				slog.Any("error", err),
			)

			continue
		}

		resolved = append(resolved, location{location: loc, dir: dir})
	}

	return resolved
}

func (f *Finder) findIn(locations []string, fullName, part string) (*pkgres.Package, error) {
	var portions []string

	for _, loc := range f.resolve(locations) {
		child, err := loc.dir.JoinPath(part)
		if err != nil || !child.IsDir() {
			continue
		}

		childLocation := filepath.Join(loc.location, part)

		marker, err := child.JoinPath(f.marker)
		if err == nil && marker.IsFile() {
			slog.Debug("Found package",
				slog.String("package", fullName),
				slog.String("location", childLocation),
			)

			return &pkgres.Package{
				Name:            fullName,
				Origin:          filepath.Join(childLocation, f.marker),
				SearchLocations: []string{childLocation},
				Loader:          loaderFor(loc.dir),
			}, nil
		}

		portions = append(portions, childLocation)
	}

	if len(portions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, fullName)
	}

	slog.Debug("Found namespace package",
		slog.String("package", fullName),
		slog.Any("portions", portions),
	)

	return &pkgres.Package{
		Name:            fullName,
		SearchLocations: portions,
	}, nil
}

func loaderFor(dir traversable.Traversable) any {
	node, ok := dir.(*traversable.ArchiveNode)
	if !ok {
		return nil
	}

	return &ArchiveLoader{arc: node.Archive(), prefix: node.At()}
}

func splitName(name string) ([]string, error) {
	parts := strings.Split(name, ".")
	if slices.ContainsFunc(parts, func(part string) bool { return !validPart(part) }) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return parts, nil
}

func validPart(part string) bool {
	return part != "" && !strings.ContainsAny(part, `/\.`)
}
