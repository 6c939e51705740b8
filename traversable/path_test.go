// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	root := mustPath(t, "data01")

	assert.Equal(t, "data01", root.Name())
	assert.True(t, root.IsDir())
	assert.False(t, root.IsFile())

	realPath, isReal := root.RealPath()
	assert.True(t, isReal)
	assert.True(t, filepath.IsAbs(realPath))

	assert.Equal(t, []string{
		"__package__",
		"binary.file",
		"subdirectory",
		"utf-16.file",
		"utf-8.file",
	}, childNames(t, root))

	file, err := root.JoinPath("utf-8.file")
	require.NoError(t, err)
	assert.True(t, file.IsFile())
	assert.False(t, file.IsDir())

	text, err := traversable.ReadText(file, traversable.WithEncoding("utf-8"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, UTF-8 world!\n", text)

	expected, err := os.ReadFile(testdata("data01", "utf-8.file"))
	require.NoError(t, err)

	data, err := traversable.ReadBytes(file)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestPathJoinPath(t *testing.T) {
	root := mustPath(t, "data01")

	tests := []struct {
		name      string
		segments  []string
		target    string
		remaining []string
	}{
		{
			name:     "single",
			segments: []string{"subdirectory"},
		},
		{
			name:     "slash separated",
			segments: []string{"subdirectory/binary.file"},
		},
		{
			name:     "multiple segments",
			segments: []string{"subdirectory", "binary.file"},
		},
		{
			name:     "mixed with empty parts",
			segments: []string{"/subdirectory//", "./binary.file"},
		},
		{
			name:      "missing top level",
			segments:  []string{"does-not-exist", "more/parts"},
			target:    "does-not-exist",
			remaining: []string{"more", "parts"},
		},
		{
			name:     "missing nested",
			segments: []string{"subdirectory/missing"},
			target:   "missing",
		},
		{
			name:     "below file",
			segments: []string{"utf-8.file", "child"},
			target:   "child",
		},
		{
			name:      "parent",
			segments:  []string{"../data01"},
			target:    "..",
			remaining: []string{"data01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := root.JoinPath(tt.segments...)
			if tt.target == "" {
				require.NoError(t, err)
				assert.True(t, node.IsDir() || node.IsFile())

				return
			}

			var traversalErr *traversable.TraversalError
			require.ErrorAs(t, err, &traversalErr)
			require.ErrorIs(t, err, traversable.ErrNotExist)
			assert.Equal(t, tt.target, traversalErr.Target)
			assert.Equal(t, tt.remaining, traversalErr.Remaining)
		})
	}

	same, err := root.JoinPath()
	require.NoError(t, err)
	assert.Equal(t, root, same)

	child, err := traversable.Child(root, "subdirectory")
	require.NoError(t, err)
	assert.Equal(t, "subdirectory", child.Name())
}

func TestPathErrors(t *testing.T) {
	root := mustPath(t, "data01")

	_, err := root.Open()
	require.ErrorIs(t, err, traversable.ErrIsDir)

	file, err := root.JoinPath("binary.file")
	require.NoError(t, err)

	for _, err := range file.IterDir() {
		require.ErrorIs(t, err, traversable.ErrNotDir)
	}

	missing, err := traversable.NewPath(testdata("data01", "does-not-exist"))
	require.NoError(t, err)
	assert.False(t, missing.IsDir())
	assert.False(t, missing.IsFile())

	_, err = traversable.ReadBytes(missing)
	require.ErrorIs(t, err, traversable.ErrNotExist)

	var pathErr *traversable.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "open", pathErr.Op)

	for _, err := range missing.IterDir() {
		require.ErrorIs(t, err, traversable.ErrNotExist)
	}
}

func TestPathIterDirRestartable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), nil, 0o600))

	root, err := traversable.NewPath(dir)
	require.NoError(t, err)

	seq := root.IterDir()

	list := func() []string {
		var names []string

		for child, err := range seq {
			require.NoError(t, err)

			names = append(names, child.Name())
		}

		return names
	}

	assert.Equal(t, []string{"a"}, list())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), nil, 0o600))
	assert.Equal(t, []string{"a", "b"}, list())
}

func TestFSPath(t *testing.T) {
	fsys := memFS(t, map[string]string{
		"pkg/file.txt":     "content",
		"pkg/sub/deep.txt": "deep",
	})

	root := traversable.NewFSPath(fsys, "pkg")

	realPath, isReal := root.RealPath()
	assert.False(t, isReal)
	assert.Equal(t, "/pkg", realPath)

	assert.Equal(t, "pkg", root.Name())
	assert.True(t, root.IsDir())
	assert.Equal(t, []string{"file.txt", "sub"}, childNames(t, root))

	deep, err := root.JoinPath("sub/deep.txt")
	require.NoError(t, err)

	text, err := traversable.ReadText(deep)
	require.NoError(t, err)
	assert.Equal(t, "deep", text)

	sub, err := root.JoinPath("sub")
	require.NoError(t, err)

	_, err = sub.Open()
	require.ErrorIs(t, err, traversable.ErrIsDir)

	file, err := root.JoinPath("file.txt")
	require.NoError(t, err)

	for _, err := range file.IterDir() {
		require.ErrorIs(t, err, traversable.ErrNotDir)
	}

	_, err = root.JoinPath("nope")
	require.ErrorIs(t, err, traversable.ErrNotExist)
}
