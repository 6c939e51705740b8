// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

var (
	// ErrEntryNotExist is returned if a member does not exist in the archive.
	ErrEntryNotExist = errors.New("archive entry does not exist")

	// ErrEntryIsDir is returned if a directory member is opened for reading.
	ErrEntryIsDir = errors.New("archive entry is a directory")

	// ErrUnknownFormat is returned if the container format is not supported.
	ErrUnknownFormat = errors.New("unknown archive format")

	// ErrClosed is returned for operations on a closed [Cache].
	ErrClosed = errors.New("closed")
)

// Archive is a read-only container of named members.
type Archive interface {
	// Name returns the file system path of the container.
	Name() string

	// Lookup returns the explicit entry with the given name. Directories that
	// are only implied by member names are not reported.
	Lookup(name string) (Entry, bool)

	// IsDir reports whether name is an explicit or implicit directory. The
	// empty name denotes the root and is always a directory.
	IsDir(name string) bool

	// ReadDir returns the sorted base names of the direct children of the
	// directory name.
	ReadDir(name string) ([]string, error)

	// Open opens the regular member with the given name for reading.
	Open(name string) (io.ReadCloser, error)

	// Close releases the underlying container.
	Close() error
}

// Entry describes an explicit archive member.
type Entry struct {
	Name    string
	Mode    fs.FileMode
	Size    int64
	ModTime time.Time
}

// IsDir reports whether the entry describes a directory.
func (e Entry) IsDir() bool {
	return e.Mode.IsDir()
}

// CleanName normalizes a member name: backslashes become slashes, leading
// and trailing slashes are removed and dot segments are resolved without
// ever leaving the root. The root itself is the empty string.
func CleanName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return strings.Trim(path.Clean("/"+name), "/")
}

func parentName(name string) string {
	dir := path.Dir(name)
	if dir == "." {
		return ""
	}

	return dir
}
