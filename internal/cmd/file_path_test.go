// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"path/filepath"
	"testing"

	"github.com/aibor/pkgres/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAbs(t *testing.T, path string) string {
	t.Helper()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	return abs
}

func TestAbsoluteFilePath(t *testing.T) {
	_, err := cmd.AbsoluteFilePath("")
	require.ErrorIs(t, err, cmd.ErrEmptyFilePath)

	path, err := cmd.AbsoluteFilePath("lib")
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, "lib"), path)
}

func TestFilePathList_Set(t *testing.T) {
	tests := []struct {
		name        string
		list        cmd.FilePathList
		inputs      []string
		expected    cmd.FilePathList
		expectedErr error
	}{
		{
			name: "single",
			inputs: []string{
				"path",
			},
			expected: cmd.FilePathList{
				mustAbs(t, "path"),
			},
		},
		{
			name: "multi",
			inputs: []string{
				"/path",
				"otherpath",
				"third.zip/inner",
			},
			expected: cmd.FilePathList{
				"/path",
				mustAbs(t, "otherpath"),
				mustAbs(t, "third.zip/inner"),
			},
		},
		{
			name: "comma",
			inputs: []string{
				"/path,otherpath,third",
			},
			expected: cmd.FilePathList{
				"/path",
				mustAbs(t, "otherpath"),
				mustAbs(t, "third"),
			},
		},
		{
			name: "reset",
			list: cmd.FilePathList{
				"/path",
				mustAbs(t, "otherpath"),
			},
			inputs: []string{
				"",
				"third",
			},
			expected: cmd.FilePathList{
				mustAbs(t, "third"),
			},
		},
		{
			name: "empty element",
			inputs: []string{
				"/path,",
			},
			expected: cmd.FilePathList{
				"/path",
			},
			expectedErr: cmd.ErrEmptyFilePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error

			for _, input := range tt.inputs {
				err = tt.list.Set(input)
				if err != nil {
					break
				}
			}

			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, tt.list)
		})
	}
}

func TestFilePathList_String(t *testing.T) {
	tests := []struct {
		name     string
		list     cmd.FilePathList
		expected string
	}{
		{
			name: "empty",
		},
		{
			name: "single",
			list: cmd.FilePathList{
				"/path",
			},
			expected: "/path",
		},
		{
			name: "multi",
			list: cmd.FilePathList{
				"/path",
				"/otherpath",
				"/third",
			},
			expected: "/path,/otherpath,/third",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.list.String()
			assert.Equal(t, tt.expected, actual)
		})
	}
}
