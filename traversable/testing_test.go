// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable_test

import (
	"path/filepath"
	"testing"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

func testdata(elem ...string) string {
	return filepath.Join(append([]string{"..", "testdata"}, elem...)...)
}

func mustPath(t *testing.T, elem ...string) *traversable.Path {
	t.Helper()

	node, err := traversable.NewPath(testdata(elem...))
	require.NoError(t, err)

	return node
}

func mustArchive(t *testing.T, name string) *archive.Reader {
	t.Helper()

	arc, err := archive.Open(testdata("archives", name))
	require.NoError(t, err)

	t.Cleanup(func() { _ = arc.Close() })

	return arc
}

func memFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fsys := memfs.New()

	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}

	return fsys
}

func childNames(t *testing.T, node traversable.Traversable) []string {
	t.Helper()

	var names []string

	for child, err := range node.IterDir() {
		require.NoError(t, err)

		names = append(names, child.Name())
	}

	return names
}
