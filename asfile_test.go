// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/traversable"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFileRealPath(t *testing.T) {
	node, err := traversable.NewPath(testdata("data01", "utf-8.file"))
	require.NoError(t, err)

	tmp, err := pkgres.AsFile(node)
	require.NoError(t, err)

	expected, _ := node.RealPath()
	assert.Equal(t, expected, tmp.Path())
	assert.False(t, tmp.Temporary())

	require.NoError(t, tmp.Close())
	assert.FileExists(t, expected, "real files must survive")
}

func TestAsFileArchiveFile(t *testing.T) {
	node := traversable.NewArchiveNode(mustArchive(t, "data01.zip"), "data01/utf-8.file")

	tmp, err := pkgres.AsFile(node)
	require.NoError(t, err)
	assert.True(t, tmp.Temporary())
	assert.True(t, strings.HasSuffix(filepath.Base(tmp.Path()), "utf-8.file"))

	data, err := os.ReadFile(tmp.Path())
	require.NoError(t, err)
	assert.Equal(t, "Hello, UTF-8 world!\n", string(data))

	require.NoError(t, tmp.Close())
	assert.NoFileExists(t, tmp.Path())
	require.NoError(t, tmp.Close(), "second close")
}

func TestAsFileNameWithWildcard(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "res/glob*.txt", []byte("star"), 0o644))

	node, err := traversable.NewFSPath(fsys, "res").JoinPath("glob*.txt")
	require.NoError(t, err)

	tmp, err := pkgres.AsFile(node)
	require.NoError(t, err)

	t.Cleanup(func() { _ = tmp.Close() })

	assert.True(t, strings.HasPrefix(filepath.Base(tmp.Path()), "pkgres-"), tmp.Path())
	assert.True(t, strings.HasSuffix(tmp.Path(), "-glob_.txt"), tmp.Path())

	data, err := os.ReadFile(tmp.Path())
	require.NoError(t, err)
	assert.Equal(t, "star", string(data))
}

func TestAsFileRemovedByCaller(t *testing.T) {
	node := traversable.NewArchiveNode(mustArchive(t, "data01.cpio"), "data01/binary.file")

	tmp, err := pkgres.AsFile(node)
	require.NoError(t, err)

	require.NoError(t, os.Remove(tmp.Path()))
	require.NoError(t, tmp.Close())
}

func TestAsFileArchiveDirectory(t *testing.T) {
	node := traversable.NewArchiveNode(mustArchive(t, "data01.7z"), "data01")

	tmp, err := pkgres.AsFile(node)
	require.NoError(t, err)
	assert.Equal(t, "data01", filepath.Base(tmp.Path()))

	data, err := os.ReadFile(filepath.Join(tmp.Path(), "subdirectory", "binary.file"))
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6, 7}, data)

	entries, err := os.ReadDir(tmp.Path())
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	require.NoError(t, tmp.Close())
	assert.NoDirExists(t, filepath.Dir(tmp.Path()))
}

func TestAsFileMultiplexed(t *testing.T) {
	root, err := traversable.NewMultiplexed(
		mustPathNode(t, "ns1", "nspkg"),
		mustPathNode(t, "ns2", "nspkg"),
	)
	require.NoError(t, err)

	tmp, err := pkgres.AsFile(root)
	require.NoError(t, err)

	t.Cleanup(func() { _ = tmp.Close() })

	data, err := os.ReadFile(filepath.Join(tmp.Path(), "shared.file"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	assert.FileExists(t, filepath.Join(tmp.Path(), "subdirectory", "a.file"))
	assert.FileExists(t, filepath.Join(tmp.Path(), "subdirectory", "b.file"))
}

func TestAsFileMissing(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "present", []byte("x"), 0o644))

	before := tempEntries(t)

	_, err := pkgres.AsFile(traversable.NewFSPath(fsys, "absent"))
	require.ErrorIs(t, err, traversable.ErrNotExist)

	assert.Equal(t, before, tempEntries(t), "no leftovers on failure")
}

func TestWithFile(t *testing.T) {
	node := traversable.NewArchiveNode(mustArchive(t, "data01.zip"), "data01/binary.file")
	errTest := errors.New("test")

	var seen string

	err := pkgres.WithFile(node, func(path string) error {
		seen = path

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 2, 3}, data)

		return errTest
	})
	require.ErrorIs(t, err, errTest)
	assert.NoFileExists(t, seen)

	assert.Panics(t, func() {
		_ = pkgres.WithFile(node, func(path string) error {
			seen = path
			panic("boom")
		})
	})
	assert.NoFileExists(t, seen)
}

func mustPathNode(t *testing.T, elem ...string) *traversable.Path {
	t.Helper()

	node, err := traversable.NewPath(testdata(elem...))
	require.NoError(t, err)

	return node
}

func tempEntries(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(os.TempDir())
	require.NoError(t, err)

	var names []string

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "pkgres-") {
			names = append(names, entry.Name())
		}
	}

	return names
}
