// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"errors"
	"io"
	"iter"
	"slices"
	"strings"
)

// placeholderer is implemented by nodes that can address children that do
// not exist.
type placeholderer interface {
	placeholder(parts []string) Traversable
}

// Multiplexed is a [Traversable] that merges several directories into one
// logical directory. It is used for namespace packages whose resources are
// spread over multiple locations.
//
// Children with the same name in multiple roots are merged: if any of them
// is a file, the first file wins. Otherwise the directories are merged into
// a new [Multiplexed].
type Multiplexed struct {
	roots []Traversable
}

var _ Traversable = (*Multiplexed)(nil)

// NewMultiplexed creates a [Multiplexed] for the given roots. At least one
// root is required and all roots must be directories.
func NewMultiplexed(roots ...Traversable) (*Multiplexed, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	for _, root := range roots {
		if !root.IsDir() {
			return nil, newPathError("multiplex", root.String(), ErrNotDir)
		}
	}

	return &Multiplexed{roots: slices.Clone(roots)}, nil
}

// Roots returns the merged roots in order.
func (m *Multiplexed) Roots() []Traversable {
	return slices.Clone(m.roots)
}

// String implements [fmt.Stringer].
func (m *Multiplexed) String() string {
	names := make([]string, len(m.roots))
	for idx, root := range m.roots {
		names[idx] = root.String()
	}

	return "multiplexed(" + strings.Join(names, ", ") + ")"
}

// Name implements [Traversable]. It is the name of the first root.
func (m *Multiplexed) Name() string {
	return m.roots[0].Name()
}

// IsDir implements [Traversable].
func (*Multiplexed) IsDir() bool {
	return true
}

// IsFile implements [Traversable].
func (*Multiplexed) IsFile() bool {
	return false
}

// IterDir implements [Traversable]. Each name is yielded once, in the order
// it is first seen when listing the roots in order.
func (m *Multiplexed) IterDir() iter.Seq2[Traversable, error] {
	return func(yield func(Traversable, error) bool) {
		var names []string

		groups := make(map[string][]Traversable)

		for _, root := range m.roots {
			for child, err := range root.IterDir() {
				if err != nil {
					yield(nil, err)
					return
				}

				name := child.Name()
				if _, seen := groups[name]; !seen {
					names = append(names, name)
				}

				groups[name] = append(groups[name], child)
			}
		}

		for _, name := range names {
			if !yield(follow(groups[name]), nil) {
				return
			}
		}
	}
}

// Open implements [Traversable]. A multiplexed node has no content of its
// own.
func (m *Multiplexed) Open() (io.ReadCloser, error) {
	return nil, newPathError("open", m.String(), ErrIsDir)
}

// JoinPath implements [Traversable]. Other than for other nodes, a missing
// target is not an error. Instead, a placeholder in the first root is
// returned that fails once it is read. As for all nodes, ".." never matches.
func (m *Multiplexed) JoinPath(segments ...string) (Traversable, error) {
	parts := splitSegments(segments)
	if len(parts) == 0 {
		return m, nil
	}

	if idx := slices.Index(parts, ".."); idx >= 0 {
		return nil, newTraversalError(m, parts, idx)
	}

	node, err := m.join(parts)

	var traversalErr *TraversalError
	if errors.As(err, &traversalErr) {
		return m.placeholder(parts), nil
	}

	return node, err
}

func (m *Multiplexed) join(parts []string) (Traversable, error) {
	var matches []Traversable

	for _, root := range m.roots {
		for child, err := range root.IterDir() {
			if err != nil {
				return nil, err
			}

			if child.Name() == parts[0] {
				matches = append(matches, child)
			}
		}
	}

	if len(matches) == 0 {
		return nil, newTraversalError(m, parts, 0)
	}

	return follow(matches).JoinPath(parts[1:]...) //nolint:wrapcheck
}

func (m *Multiplexed) placeholder(parts []string) Traversable {
	if root, ok := m.roots[0].(placeholderer); ok {
		return root.placeholder(parts)
	}

	return &missing{parent: m.roots[0], parts: parts}
}

// follow picks the node for children of the same name: a sole child is
// returned as is, otherwise the first file wins over directories, which are
// merged.
func follow(children []Traversable) Traversable {
	if len(children) == 1 {
		return children[0]
	}

	for _, child := range children {
		if child.IsFile() {
			return child
		}
	}

	merged, err := NewMultiplexed(children...)
	if err != nil {
		return children[0]
	}

	return merged
}
