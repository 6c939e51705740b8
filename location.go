// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"path"
	"path/filepath"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
)

// ResolveLocation resolves a search location into a directory node.
//
// A location is either a directory on the local file system or a path
// leading through an archive file to a directory inside of it, like
// "/lib/bundle.zip/pkg". Archives are opened through the given cache.
func ResolveLocation(location string, cache *archive.Cache) (traversable.Traversable, error) {
	dir, err := traversable.NewPath(location)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if dir.IsDir() {
		return dir, nil
	}

	if dir.IsFile() && !archive.IsArchive(location) {
		return nil, &traversable.PathError{Op: "resolve", Path: location, Err: traversable.ErrNotDir}
	}

	candidate, _ := dir.RealPath()
	inner := ""

	for {
		if archive.IsArchive(candidate) {
			arc, err := cache.Get(candidate)
			if err != nil {
				return nil, err //nolint:wrapcheck
			}

			node := traversable.NewArchiveNode(arc, inner)
			if !node.IsDir() {
				break
			}

			return node, nil
		}

		parent := filepath.Dir(candidate)
		if parent == candidate {
			break
		}

		inner = path.Join(filepath.Base(candidate), inner)
		candidate = parent
	}

	return nil, &traversable.PathError{Op: "resolve", Path: location, Err: traversable.ErrNotExist}
}
