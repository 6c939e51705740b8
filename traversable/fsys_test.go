// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {
	multiplexed, err := traversable.NewMultiplexed(
		mustPath(t, "ns1", "nspkg"),
		mustPath(t, "ns2", "nspkg"),
	)
	require.NoError(t, err)

	tests := []struct {
		name     string
		root     traversable.Traversable
		expected []string
	}{
		{
			name:     "path",
			root:     mustPath(t, "data01"),
			expected: []string{"utf-8.file", "subdirectory/binary.file"},
		},
		{
			name:     "archive",
			root:     traversable.NewArchiveNode(mustArchive(t, "data01.zip"), "data01"),
			expected: []string{"utf-8.file", "subdirectory/binary.file"},
		},
		{
			name:     "multiplexed",
			root:     multiplexed,
			expected: []string{"one.file", "two.file", "shared.file", "subdirectory/a.file", "subdirectory/b.file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, fstest.TestFS(traversable.FS(tt.root), tt.expected...))
		})
	}
}

func TestFSErrors(t *testing.T) {
	fsys := traversable.FS(mustPath(t, "data01"))

	_, err := fsys.Open("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.Open("../data01")
	require.ErrorIs(t, err, fs.ErrInvalid)

	_, err = fs.ReadDir(fsys, "utf-8.file")
	require.Error(t, err)

	data, err := fs.ReadFile(fsys, "subdirectory/binary.file")
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6, 7}, data)

	shared, err := traversable.NewMultiplexed(mustPath(t, "ns1", "nspkg"), mustPath(t, "ns2", "nspkg"))
	require.NoError(t, err)

	data, err = fs.ReadFile(traversable.FS(shared), "shared.file")
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))
}
