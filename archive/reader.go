// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
)

type openFunc func() (io.ReadCloser, error)

type member struct {
	Entry

	open openFunc
}

// Reader implements [Archive] on top of an index of the container's members.
// It is safe for concurrent use once created, as long as the backing format
// supports concurrent reads of distinct members.
type Reader struct {
	name     string
	format   Format
	closer   io.Closer
	members  map[string]*member
	dirs     map[string]struct{}
	children map[string]map[string]struct{}
}

func newReader(name string, format Format, closer io.Closer) *Reader {
	return &Reader{
		name:     name,
		format:   format,
		closer:   closer,
		members:  make(map[string]*member),
		dirs:     make(map[string]struct{}),
		children: make(map[string]map[string]struct{}),
	}
}

// add adds an explicit member. Later members with the same name replace
// earlier ones.
func (r *Reader) add(entry Entry, open openFunc) {
	entry.Name = CleanName(entry.Name)
	if entry.Name == "" {
		return
	}

	r.members[entry.Name] = &member{Entry: entry, open: open}

	for name := entry.Name; name != ""; name = parentName(name) {
		parent := parentName(name)
		if r.children[parent] == nil {
			r.children[parent] = make(map[string]struct{})
		}

		r.children[parent][path.Base(name)] = struct{}{}

		if parent != "" {
			r.dirs[parent] = struct{}{}
		}
	}
}

// Name implements [Archive].
func (r *Reader) Name() string {
	return r.name
}

// Format returns the container format.
func (r *Reader) Format() Format {
	return r.format
}

// Len returns the number of explicit members.
func (r *Reader) Len() int {
	return len(r.members)
}

// Lookup implements [Archive].
func (r *Reader) Lookup(name string) (Entry, bool) {
	m, exists := r.members[CleanName(name)]
	if !exists {
		return Entry{}, false
	}

	return m.Entry, true
}

// IsDir implements [Archive].
func (r *Reader) IsDir(name string) bool {
	name = CleanName(name)
	if name == "" {
		return true
	}

	if _, implicit := r.dirs[name]; implicit {
		return true
	}

	m, exists := r.members[name]

	return exists && m.IsDir()
}

// ReadDir implements [Archive].
func (r *Reader) ReadDir(name string) ([]string, error) {
	name = CleanName(name)
	if !r.IsDir(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: ErrEntryNotExist}
	}

	return slices.Sorted(maps.Keys(r.children[name])), nil
}

// Open implements [Archive].
func (r *Reader) Open(name string) (io.ReadCloser, error) {
	name = CleanName(name)

	m, exists := r.members[name]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrEntryNotExist}
	}

	if m.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrEntryIsDir}
	}

	rc, err := m.open()
	if err != nil {
		return nil, fmt.Errorf("open %s member %s: %w", r.format, name, err)
	}

	return rc, nil
}

// Close implements [Archive].
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	err := r.closer.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", r.name, err)
	}

	return nil
}
