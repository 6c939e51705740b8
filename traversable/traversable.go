// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"path"
	"strings"
)

// Traversable is a node in a resource tree. An existing node is either a
// directory or a file.
type Traversable interface {
	fmt.Stringer

	// Name returns the base name of the node.
	Name() string

	// IsDir reports whether the node exists and is a directory. It never
	// fails. Any error of the backing storage results in false.
	IsDir() bool

	// IsFile reports whether the node exists and is a regular file. It never
	// fails. Any error of the backing storage results in false.
	IsFile() bool

	// IterDir returns the direct children of a directory node. Each
	// iteration lists the current state of the backing storage. If the node
	// is a file, a single error matching [ErrNotDir] is yielded.
	IterDir() iter.Seq2[Traversable, error]

	// Open opens the file node for reading. Each call returns a new reader
	// that must be closed by the caller.
	Open() (io.ReadCloser, error)

	// JoinPath resolves the given segments relative to the node. Segments
	// may contain multiple parts separated by "/". If no segments are given,
	// the node itself is returned.
	JoinPath(segments ...string) (Traversable, error)
}

// Child returns the direct child with the given name. It is a shortcut for
// [Traversable.JoinPath] with exactly one segment.
func Child(node Traversable, name string) (Traversable, error) {
	return node.JoinPath(name) //nolint:wrapcheck
}

// splitSegments flattens the given segments into their non-empty parts.
func splitSegments(segments []string) []string {
	var parts []string

	for _, segment := range segments {
		for part := range strings.SplitSeq(segment, "/") {
			if part != "" && part != "." {
				parts = append(parts, part)
			}
		}
	}

	return parts
}

// Join resolves segments by scanning the children of each level for a
// matching name. It can be used to implement [Traversable.JoinPath] for
// types that have no direct lookup. If a part can not be found, a
// [TraversalError] is returned.
func Join(node Traversable, segments ...string) (Traversable, error) {
	parts := splitSegments(segments)
	current := node

	for idx, part := range parts {
		next, err := findChild(current, part)
		if err != nil {
			return nil, err
		}

		if next == nil {
			return nil, newTraversalError(current, parts, idx)
		}

		current = next
	}

	return current, nil
}

func findChild(node Traversable, name string) (Traversable, error) {
	for child, err := range node.IterDir() {
		if err != nil {
			if errors.Is(err, ErrNotDir) || errors.Is(err, ErrNotExist) {
				return nil, nil
			}

			return nil, err
		}

		if child.Name() == name {
			return child, nil
		}
	}

	return nil, nil
}

// missing is a placeholder for a node that does not exist in a backing
// storage that does not support addressing not existing nodes itself.
type missing struct {
	parent Traversable
	parts  []string
}

var _ Traversable = (*missing)(nil)

func (m *missing) String() string {
	return path.Join(append([]string{m.parent.String()}, m.parts...)...)
}

func (m *missing) Name() string {
	return m.parts[len(m.parts)-1]
}

func (*missing) IsDir() bool {
	return false
}

func (*missing) IsFile() bool {
	return false
}

func (m *missing) IterDir() iter.Seq2[Traversable, error] {
	return func(yield func(Traversable, error) bool) {
		yield(nil, newPathError("readdir", m.String(), ErrNotExist))
	}
}

func (m *missing) Open() (io.ReadCloser, error) {
	return nil, newPathError("open", m.String(), ErrNotExist)
}

func (m *missing) JoinPath(segments ...string) (Traversable, error) {
	return Join(m, segments...)
}
