// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"fmt"

	"github.com/aibor/pkgres/traversable"
)

// Resolver finds packages by their dotted name.
type Resolver interface {
	Find(name string) (*Package, error)
}

// Files returns the root of the resource tree of the given package.
func Files(pkg *Package) (traversable.Traversable, error) {
	reader, err := ReaderFor(pkg)
	if err != nil {
		return nil, err
	}

	root, err := reader.Files()
	if err != nil {
		return nil, fmt.Errorf("files of %s: %w", pkg.Name, err)
	}

	return root, nil
}

// FilesFor resolves the package with the given dotted name using the
// resolver and returns the root of its resource tree.
func FilesFor(resolver Resolver, name string) (traversable.Traversable, error) {
	pkg, err := resolver.Find(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return Files(pkg)
}
