// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotExist is returned if a node does not exist.
	ErrNotExist = fs.ErrNotExist

	// ErrNotDir is returned if a directory operation is called on a file.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir is returned if a file operation is called on a directory.
	ErrIsDir = errors.New("is a directory")

	// ErrNoRoots is returned if a [Multiplexed] is created without roots.
	ErrNoRoots = errors.New("at least one root is required")

	// ErrDecode is returned if text can not be decoded with the requested
	// encoding. A decoded U+FFFD counts as invalid input unless encoding the
	// text again yields the original bytes.
	ErrDecode = errors.New("decode text")

	// ErrUnknownEncoding is returned for unsupported text encodings.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError

// TraversalError is returned by [Traversable.JoinPath] if a segment can not
// be found. It matches [ErrNotExist].
type TraversalError struct {
	// Target is the first segment that could not be found.
	Target string
	// Remaining are the segments after Target that were not resolved.
	Remaining []string
	// Node is the string representation of the node the lookup failed in.
	Node string
}

func (e *TraversalError) Error() string {
	msg := "target not found during traversal: " + e.Target
	if len(e.Remaining) > 0 {
		msg += " (remaining: " + strings.Join(e.Remaining, "/") + ")"
	}

	if e.Node != "" {
		msg += " in " + e.Node
	}

	return msg
}

func (e *TraversalError) Is(other error) bool {
	_, ok := other.(*TraversalError)
	return ok
}

func (e *TraversalError) Unwrap() error {
	return ErrNotExist
}

func newTraversalError(node Traversable, parts []string, idx int) *TraversalError {
	err := &TraversalError{
		Target: parts[idx],
		Node:   node.String(),
	}

	if remaining := parts[idx+1:]; len(remaining) > 0 {
		err.Remaining = slices.Clone(remaining)
	}

	return err
}

// newPathError creates a [PathError]. If err is a [PathError] already, only
// its inner error is kept so paths are not reported twice. Error numbers of
// the backing storage are translated into the errors of this package.
func newPathError(op, path string, err error) *PathError {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	return &PathError{Op: op, Path: path, Err: translateErrno(err)}
}

func translateErrno(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return err
	}

	switch errno { //nolint:exhaustive
	case unix.ENOTDIR:
		return fmt.Errorf("%w: %w", ErrNotDir, err)
	case unix.EISDIR:
		return fmt.Errorf("%w: %w", ErrIsDir, err)
	default:
		return err
	}
}
