// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveNode(t *testing.T) {
	for _, name := range []string{"data01.zip", "data01.cpio", "data01.7z"} {
		t.Run(name, func(t *testing.T) {
			root := traversable.NewArchiveNode(mustArchive(t, name), "data01/")

			assert.Equal(t, "data01", root.Name())
			assert.Equal(t, "data01", root.At())
			assert.True(t, root.IsDir())
			assert.False(t, root.IsFile())
			assert.Equal(t, []string{
				"__package__",
				"binary.file",
				"subdirectory",
				"utf-16.file",
				"utf-8.file",
			}, childNames(t, root))

			for _, name := range []string{"utf-8.file", "utf-16.file", "subdirectory/binary.file"} {
				node, err := root.JoinPath(name)
				require.NoError(t, err)
				assert.True(t, node.IsFile(), name)

				expected, err := os.ReadFile(testdata("data01", name))
				require.NoError(t, err)

				data, err := traversable.ReadBytes(node)
				require.NoError(t, err)
				assert.Equal(t, expected, data, name)
			}

			text, err := traversable.ReadText(
				traversable.NewArchiveNode(root.Archive(), "data01/utf-16.file"),
				traversable.WithEncoding("utf-16"),
			)
			require.NoError(t, err)
			assert.Equal(t, "Hello, UTF-16 world!\n", text)
		})
	}
}

func TestArchiveNodeNotExisting(t *testing.T) {
	root := traversable.NewArchiveNode(mustArchive(t, "data01.zip"), "data01")

	missing := traversable.NewArchiveNode(root.Archive(), "data01/does-not-exist")
	assert.False(t, missing.IsFile(), "missing member must not be a file")
	assert.False(t, missing.IsDir())

	_, err := missing.Open()
	require.ErrorIs(t, err, traversable.ErrNotExist)
	assert.NotErrorIs(t, err, archive.ErrEntryNotExist)

	for _, err := range missing.IterDir() {
		require.ErrorIs(t, err, traversable.ErrNotExist)
	}

	_, err = root.JoinPath("does-not-exist")

	var traversalErr *traversable.TraversalError
	require.ErrorAs(t, err, &traversalErr)
	assert.Equal(t, "does-not-exist", traversalErr.Target)

	_, err = root.JoinPath("utf-8.file/below")
	require.ErrorAs(t, err, &traversalErr)
	assert.Equal(t, "below", traversalErr.Target)

	_, err = root.JoinPath("..")
	require.ErrorAs(t, err, &traversalErr)
}

func TestArchiveNodeImplicitDirectories(t *testing.T) {
	var buf bytes.Buffer

	writer := archive.NewZipWriter(&buf)
	require.NoError(t, writer.WriteRegular("pkg/sub/file.txt", bytes.NewBufferString("x"), 0))
	require.NoError(t, writer.Close())

	arc, err := archive.NewZipReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "mem.zip")
	require.NoError(t, err)

	root := traversable.NewArchiveNode(arc, "")
	assert.Equal(t, "mem.zip", root.Name())
	assert.Equal(t, "mem.zip", root.String())
	assert.True(t, root.IsDir())

	sub, err := root.JoinPath("pkg", "sub")
	require.NoError(t, err)
	assert.True(t, sub.IsDir())
	assert.False(t, sub.IsFile())
	assert.Equal(t, "mem.zip/pkg/sub", sub.String())
	assert.Equal(t, []string{"file.txt"}, childNames(t, sub))

	_, err = sub.Open()
	require.ErrorIs(t, err, traversable.ErrIsDir)

	file, err := sub.JoinPath("file.txt")
	require.NoError(t, err)

	for _, err := range file.IterDir() {
		require.ErrorIs(t, err, traversable.ErrNotDir)
	}
}
