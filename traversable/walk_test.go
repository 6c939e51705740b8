// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable_test

import (
	"errors"
	"testing"

	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		name     string
		skip     string
		expected []string
	}{
		{
			name: "all",
			expected: []string{
				".",
				"__package__",
				"binary.file",
				"subdirectory",
				"subdirectory/__package__",
				"subdirectory/binary.file",
				"utf-16.file",
				"utf-8.file",
			},
		},
		{
			name: "skip directory",
			skip: "subdirectory",
			expected: []string{
				".",
				"__package__",
				"binary.file",
				"subdirectory",
				"utf-16.file",
				"utf-8.file",
			},
		},
		{
			name: "skip rest of directory",
			skip: "binary.file",
			expected: []string{
				".",
				"__package__",
				"binary.file",
			},
		},
		{
			name:     "skip root",
			skip:     ".",
			expected: []string{"."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string

			err := traversable.Walk(mustPath(t, "data01"),
				func(name string, _ traversable.Traversable, err error) error {
					require.NoError(t, err)

					names = append(names, name)
					if name == tt.skip {
						return traversable.SkipDir
					}

					return nil
				},
			)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestWalkError(t *testing.T) {
	errStop := errors.New("stop")

	err := traversable.Walk(mustPath(t, "data01"),
		func(name string, _ traversable.Traversable, _ error) error {
			if name == "subdirectory/binary.file" {
				return errStop
			}

			return nil
		},
	)
	require.ErrorIs(t, err, errStop)

	var errs []error

	err = traversable.Walk(mustPath(t, "missing"),
		func(_ string, _ traversable.Traversable, err error) error {
			errs = append(errs, err)
			return err
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []error{nil}, errs)
}
