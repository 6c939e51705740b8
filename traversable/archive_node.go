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
	"path/filepath"

	"github.com/aibor/pkgres/archive"
)

// ArchiveNode is a [Traversable] for a member path inside an archive. The
// root of the archive is denoted by the empty path.
type ArchiveNode struct {
	arc archive.Archive
	at  string
}

var _ Traversable = (*ArchiveNode)(nil)

// NewArchiveNode creates an [ArchiveNode] for the given member path. The path
// is slash separated and relative to the archive root.
func NewArchiveNode(arc archive.Archive, at string) *ArchiveNode {
	return &ArchiveNode{
		arc: arc,
		at:  archive.CleanName(at),
	}
}

func (a *ArchiveNode) child(names ...string) *ArchiveNode {
	return NewArchiveNode(a.arc, path.Join(append([]string{a.at}, names...)...))
}

func (a *ArchiveNode) placeholder(parts []string) Traversable {
	return a.child(parts...)
}

// Archive returns the archive the node belongs to.
func (a *ArchiveNode) Archive() archive.Archive {
	return a.arc
}

// At returns the member path of the node.
func (a *ArchiveNode) At() string {
	return a.at
}

// String implements [fmt.Stringer].
func (a *ArchiveNode) String() string {
	if a.at == "" {
		return a.arc.Name()
	}

	return a.arc.Name() + "/" + a.at
}

// Name implements [Traversable]. The root node is named like the archive
// file.
func (a *ArchiveNode) Name() string {
	if a.at == "" {
		return filepath.Base(a.arc.Name())
	}

	return path.Base(a.at)
}

// IsDir implements [Traversable].
func (a *ArchiveNode) IsDir() bool {
	return a.arc.IsDir(a.at)
}

// IsFile implements [Traversable]. It is only true for members that are
// present in the archive's index and are not directories.
func (a *ArchiveNode) IsFile() bool {
	if a.IsDir() {
		return false
	}

	_, exists := a.arc.Lookup(a.at)

	return exists
}

func (a *ArchiveNode) exists() bool {
	_, exists := a.arc.Lookup(a.at)
	return exists || a.IsDir()
}

// IterDir implements [Traversable].
func (a *ArchiveNode) IterDir() iter.Seq2[Traversable, error] {
	return func(yield func(Traversable, error) bool) {
		if !a.IsDir() {
			err := ErrNotExist
			if a.IsFile() {
				err = ErrNotDir
			}

			yield(nil, newPathError("readdir", a.String(), err))

			return
		}

		names, err := a.arc.ReadDir(a.at)
		if err != nil {
			yield(nil, a.translate("readdir", err))
			return
		}

		for _, name := range names {
			if !yield(a.child(name), nil) {
				return
			}
		}
	}
}

// Open implements [Traversable].
func (a *ArchiveNode) Open() (io.ReadCloser, error) {
	if a.IsDir() {
		return nil, newPathError("open", a.String(), ErrIsDir)
	}

	rc, err := a.arc.Open(a.at)
	if err != nil {
		return nil, a.translate("open", err)
	}

	return rc, nil
}

// translate maps archive lookup errors into errors of this package, so
// callers never need to know about the archive's error types.
func (a *ArchiveNode) translate(op string, err error) error {
	switch {
	case errors.Is(err, archive.ErrEntryNotExist):
		return newPathError(op, a.String(), ErrNotExist)
	case errors.Is(err, archive.ErrEntryIsDir):
		return newPathError(op, a.String(), ErrIsDir)
	default:
		return fmt.Errorf("%s %s: %w", op, a, err)
	}
}

// JoinPath implements [Traversable]. Each part is looked up directly in the
// archive's index. The result is the same as with [Join], except that ".."
// never matches.
func (a *ArchiveNode) JoinPath(segments ...string) (Traversable, error) {
	parts := splitSegments(segments)
	current := a

	for idx, part := range parts {
		next := current.child(part)
		if part == ".." || !current.IsDir() || !next.exists() {
			return nil, newTraversalError(current, parts, idx)
		}

		current = next
	}

	return current, nil
}
