// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"errors"
	"io/fs"
	"path"
)

// SkipDir can be returned by a [WalkFunc] to skip the directory it was called
// for. If returned for a file, the remaining children of the file's parent are
// skipped.
var SkipDir = fs.SkipDir

// WalkFunc is called by [Walk] for each node. The name is slash separated and
// relative to the walk root, which is named ".". If listing a directory
// fails, the function is called a second time for the directory with the
// error.
type WalkFunc func(name string, node Traversable, err error) error

// Walk walks the tree rooted at root depth-first, calling fn for each node
// including root. Children are visited in the order their parent lists them.
func Walk(root Traversable, fn WalkFunc) error {
	err := walk(".", root, fn)
	if errors.Is(err, SkipDir) {
		return nil
	}

	return err
}

func walk(name string, node Traversable, fn WalkFunc) error {
	if err := fn(name, node, nil); err != nil || !node.IsDir() {
		return err
	}

	for child, err := range node.IterDir() {
		if err != nil {
			return fn(name, node, err)
		}

		walkErr := walk(path.Join(name, child.Name()), child, fn)
		if walkErr != nil {
			if !errors.Is(walkErr, SkipDir) {
				return walkErr
			}

			if !child.IsDir() {
				return nil
			}
		}
	}

	return nil
}
