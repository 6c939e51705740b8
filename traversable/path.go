// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Path is a [Traversable] for a path in a go-billy file system. Paths created
// with [NewPath] refer to the real OS file system and report their location
// via [Path.RealPath].
type Path struct {
	fsys billy.Filesystem
	name string
	real bool
}

var _ Traversable = (*Path)(nil)

// NewPath creates a [Path] for the given OS path. Relative paths are made
// absolute.
func NewPath(name string) (*Path, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Path{
		fsys: osfs.New(string(filepath.Separator)),
		name: abs,
		real: true,
	}, nil
}

// NewFSPath creates a [Path] for the given path in the given file system. The
// path is never reported as real, even if the file system is backed by the
// OS.
func NewFSPath(fsys billy.Filesystem, name string) *Path {
	return &Path{
		fsys: fsys,
		name: fsys.Join(string(filepath.Separator), name),
	}
}

func (p *Path) child(names ...string) *Path {
	return &Path{
		fsys: p.fsys,
		name: p.fsys.Join(append([]string{p.name}, names...)...),
		real: p.real,
	}
}

func (p *Path) placeholder(parts []string) Traversable {
	return p.child(parts...)
}

// RealPath returns the OS path of the node and whether it is one.
func (p *Path) RealPath() (string, bool) {
	return p.name, p.real
}

// String implements [fmt.Stringer].
func (p *Path) String() string {
	return p.name
}

// Name implements [Traversable].
func (p *Path) Name() string {
	return filepath.Base(p.name)
}

func (p *Path) stat(op string) (fs.FileInfo, error) {
	info, err := p.fsys.Stat(p.name)
	if err != nil {
		return nil, newPathError(op, p.name, err)
	}

	return info, nil
}

// IsDir implements [Traversable].
func (p *Path) IsDir() bool {
	info, err := p.stat("stat")
	return err == nil && info.IsDir()
}

// IsFile implements [Traversable].
func (p *Path) IsFile() bool {
	info, err := p.stat("stat")
	return err == nil && info.Mode().IsRegular()
}

// IterDir implements [Traversable].
func (p *Path) IterDir() iter.Seq2[Traversable, error] {
	return func(yield func(Traversable, error) bool) {
		// Some file systems return an empty list for files, so check first.
		info, err := p.stat("readdir")
		if err != nil {
			yield(nil, err)
			return
		}

		if !info.IsDir() {
			yield(nil, newPathError("readdir", p.name, ErrNotDir))
			return
		}

		infos, err := p.fsys.ReadDir(p.name)
		if err != nil {
			yield(nil, newPathError("readdir", p.name, err))
			return
		}

		for _, info := range infos {
			if !yield(p.child(info.Name()), nil) {
				return
			}
		}
	}
}

// Open implements [Traversable].
func (p *Path) Open() (io.ReadCloser, error) {
	info, err := p.stat("open")
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, newPathError("open", p.name, ErrIsDir)
	}

	file, err := p.fsys.Open(p.name)
	if err != nil {
		return nil, newPathError("open", p.name, err)
	}

	return file, nil
}

// JoinPath implements [Traversable]. Each part is looked up directly instead
// of scanning the directory. The result is the same as with [Join], except
// that ".." never matches.
func (p *Path) JoinPath(segments ...string) (Traversable, error) {
	parts := splitSegments(segments)
	current := p

	for idx, part := range parts {
		next := current.child(part)

		_, err := next.fsys.Stat(next.name)
		if part == ".." || err != nil {
			return nil, newTraversalError(current, parts, idx)
		}

		current = next
	}

	return current, nil
}
