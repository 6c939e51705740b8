// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres_test

import (
	"path/filepath"
	"testing"

	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
	"github.com/stretchr/testify/require"
)

func testdata(elem ...string) string {
	return filepath.Join(append([]string{"testdata"}, elem...)...)
}

func mustArchive(t *testing.T, name string) *archive.Reader {
	t.Helper()

	arc, err := archive.Open(testdata("archives", name))
	require.NoError(t, err)

	t.Cleanup(func() { _ = arc.Close() })

	return arc
}

func archiveCache(t *testing.T) *archive.Cache {
	t.Helper()

	cache := archive.NewCache()
	t.Cleanup(func() { _ = cache.Close() })

	return cache
}

type archiveLoader struct {
	arc    archive.Archive
	prefix string
}

func (l archiveLoader) Archive() archive.Archive { return l.arc }
func (l archiveLoader) Prefix() string           { return l.prefix }

type readerProvider struct {
	reader any
}

func (p readerProvider) ResourceReader(string) any { return p.reader }

// providingArchiveLoader offers a native reader and an archive at once.
type providingArchiveLoader struct {
	archiveLoader
	readerProvider
}

type staticReader struct {
	root traversable.Traversable
}

func (r staticReader) Files() (traversable.Traversable, error) { return r.root, nil }

// dirPackage returns a regular package backed by a testdata directory.
func dirPackage(name string) *pkgres.Package {
	return &pkgres.Package{
		Name:            name,
		Origin:          testdata(name, "__package__"),
		SearchLocations: []string{testdata(name)},
	}
}

// zipPackage returns a package living in the data01.zip archive.
func zipPackage(t *testing.T) *pkgres.Package {
	t.Helper()

	return &pkgres.Package{
		Name:            "data01",
		Origin:          testdata("archives", "data01.zip", "data01", "__package__"),
		SearchLocations: []string{testdata("archives", "data01.zip", "data01")},
		Loader:          archiveLoader{arc: mustArchive(t, "data01.zip")},
	}
}

func namespacePackage(locations ...string) *pkgres.Package {
	return &pkgres.Package{
		Name:            "nspkg",
		SearchLocations: locations,
	}
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
