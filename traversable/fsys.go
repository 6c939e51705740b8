// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"bytes"
	"cmp"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

const (
	fsDirMode  fs.FileMode = fs.ModeDir | 0o555
	fsFileMode fs.FileMode = 0o444
)

var _ fs.FS = (*traversableFS)(nil)

type traversableFS struct {
	root Traversable
}

// FS returns a read-only [fs.FS] view of the tree rooted at root. Regular
// files are read completely when opened. Modification times are not
// available.
func FS(root Traversable) fs.FS {
	return &traversableFS{root: root}
}

// Open implements [fs.FS].
func (f *traversableFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	node := f.root

	if name != "." {
		var err error

		node, err = f.root.JoinPath(strings.Split(name, "/")...)
		if err != nil {
			return nil, &PathError{Op: "open", Path: name, Err: ErrNotExist}
		}
	}

	file, err := openFSFile(path.Base(name), node)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return file, nil
}

var (
	_ fs.FileInfo = (*fsFileInfo)(nil)
	_ fs.DirEntry = (*fsDirEntry)(nil)
)

type fsDirEntry struct {
	name string
	node Traversable
}

func (e *fsDirEntry) Name() string      { return e.name }
func (e *fsDirEntry) IsDir() bool       { return e.node.IsDir() }
func (e *fsDirEntry) Type() fs.FileMode { return modeOf(e.node).Type() }
func (e *fsDirEntry) String() string    { return fs.FormatDirEntry(e) }

func (e *fsDirEntry) Info() (fs.FileInfo, error) {
	file, err := openFSFile(e.name, e.node)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Stat()
}

type fsFileInfo struct {
	name string
	mode fs.FileMode
	size int64
}

func (i *fsFileInfo) Name() string      { return i.name }
func (i *fsFileInfo) Size() int64       { return i.size }
func (i *fsFileInfo) Mode() fs.FileMode { return i.mode }
func (*fsFileInfo) ModTime() time.Time  { return time.Time{} }
func (i *fsFileInfo) IsDir() bool       { return i.mode.IsDir() }
func (*fsFileInfo) Sys() any            { return nil }
func (i *fsFileInfo) String() string    { return fs.FormatFileInfo(i) }

var (
	_ fs.File        = (*fsFile)(nil)
	_ fs.ReadDirFile = (*fsFile)(nil)
	_ io.ReadSeeker  = (*fsFile)(nil)
	_ io.ReaderAt    = (*fsFile)(nil)
)

type fsFile struct {
	info    fsFileInfo
	reader  *bytes.Reader
	entries []fs.DirEntry
	offset  int
}

func modeOf(node Traversable) fs.FileMode {
	if node.IsDir() {
		return fsDirMode
	}

	return fsFileMode
}

func openFSFile(name string, node Traversable) (*fsFile, error) {
	switch {
	case node.IsDir():
		entries := []fs.DirEntry{}

		for child, err := range node.IterDir() {
			if err != nil {
				return nil, err
			}

			entries = append(entries, &fsDirEntry{name: child.Name(), node: child})
		}

		slices.SortFunc(entries, func(a, b fs.DirEntry) int {
			return cmp.Compare(a.Name(), b.Name())
		})

		return &fsFile{
			info:    fsFileInfo{name: name, mode: fsDirMode},
			entries: entries,
		}, nil
	case node.IsFile():
		data, err := ReadBytes(node)
		if err != nil {
			return nil, err
		}

		return &fsFile{
			info:   fsFileInfo{name: name, mode: fsFileMode, size: int64(len(data))},
			reader: bytes.NewReader(data),
		}, nil
	default:
		return nil, ErrNotExist
	}
}

// Stat implements [fs.File].
func (f *fsFile) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

// Read implements [fs.File].
func (f *fsFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, &PathError{Op: "read", Path: f.info.name, Err: ErrIsDir}
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// Seek implements [io.Seeker].
func (f *fsFile) Seek(offset int64, whence int) (int64, error) {
	if f.reader == nil {
		return 0, &PathError{Op: "seek", Path: f.info.name, Err: ErrIsDir}
	}

	return f.reader.Seek(offset, whence) //nolint:wrapcheck
}

// ReadAt implements [io.ReaderAt].
func (f *fsFile) ReadAt(b []byte, off int64) (int, error) {
	if f.reader == nil {
		return 0, &PathError{Op: "read", Path: f.info.name, Err: ErrIsDir}
	}

	return f.reader.ReadAt(b, off) //nolint:wrapcheck
}

// Close implements [fs.File].
func (*fsFile) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (f *fsFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, &PathError{Op: "readdir", Path: f.info.name, Err: ErrNotDir}
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}
