// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres_test

import (
	"errors"
	"testing"

	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type resolverFunc func(string) (*pkgres.Package, error)

func (f resolverFunc) Find(name string) (*pkgres.Package, error) { return f(name) }

func TestFiles(t *testing.T) {
	tests := []struct {
		name string
		pkg  *pkgres.Package
	}{
		{
			name: "directory",
			pkg:  dirPackage("data01"),
		},
		{
			name: "archive",
			pkg:  zipPackage(t),
		},
		{
			name: "namespace",
			pkg:  namespacePackage(testdata("data01"), testdata("namespacedata01")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := pkgres.Files(tt.pkg)
			require.NoError(t, err)
			assert.True(t, root.IsDir())

			node, err := root.JoinPath("utf-8.file")
			require.NoError(t, err)

			text, err := traversable.ReadText(node)
			require.NoError(t, err)
			assert.Equal(t, "Hello, UTF-8 world!\n", text)

			node, err = root.JoinPath("subdirectory", "binary.file")
			require.NoError(t, err)

			data, err := traversable.ReadBytes(node)
			require.NoError(t, err)
			assert.Equal(t, []byte{4, 5, 6, 7}, data)
		})
	}
}

func TestFilesFor(t *testing.T) {
	errUnknown := errors.New("unknown")

	resolver := resolverFunc(func(name string) (*pkgres.Package, error) {
		if name == "data01" {
			return dirPackage(name), nil
		}

		return nil, errUnknown
	})

	root, err := pkgres.FilesFor(resolver, "data01")
	require.NoError(t, err)
	assert.Equal(t, "data01", root.Name())

	_, err = pkgres.FilesFor(resolver, "other")
	require.ErrorIs(t, err, errUnknown)
}
