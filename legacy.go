// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"fmt"
	"io"
	"strings"

	"github.com/aibor/pkgres/traversable"
)

// checkName validates that name is a bare file name.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..", strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	default:
		return nil
	}
}

func packageResource(pkg *Package, name string) (traversable.Traversable, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	root, err := Files(pkg)
	if err != nil {
		return nil, err
	}

	return resource(root, name)
}

// OpenBinary opens the named resource of the package for reading.
func OpenBinary(pkg *Package, name string) (io.ReadCloser, error) {
	node, err := packageResource(pkg, name)
	if err != nil {
		return nil, err
	}

	return node.Open() //nolint:wrapcheck
}

// OpenText opens the named resource of the package for reading decoded
// text.
func OpenText(pkg *Package, name string, opts ...traversable.TextOption) (io.ReadCloser, error) {
	node, err := packageResource(pkg, name)
	if err != nil {
		return nil, err
	}

	return traversable.OpenText(node, opts...) //nolint:wrapcheck
}

// ReadBinary returns the content of the named resource of the package.
func ReadBinary(pkg *Package, name string) ([]byte, error) {
	node, err := packageResource(pkg, name)
	if err != nil {
		return nil, err
	}

	return traversable.ReadBytes(node) //nolint:wrapcheck
}

// ReadText returns the decoded content of the named resource of the
// package.
func ReadText(pkg *Package, name string, opts ...traversable.TextOption) (string, error) {
	node, err := packageResource(pkg, name)
	if err != nil {
		return "", err
	}

	return traversable.ReadText(node, opts...) //nolint:wrapcheck
}

// Contents returns the names of the entries of the package's resource
// root.
func Contents(pkg *Package) ([]string, error) {
	root, err := Files(pkg)
	if err != nil {
		return nil, err
	}

	return contents(root)
}

// IsResource reports whether the named resource of the package exists and
// is a file.
func IsResource(pkg *Package, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	root, err := Files(pkg)
	if err != nil {
		return false, err
	}

	return isResource(root, name)
}

// Path provides a real file system path for the named resource of the
// package. See [AsFile].
func Path(pkg *Package, name string) (*TempPath, error) {
	node, err := packageResource(pkg, name)
	if err != nil {
		return nil, err
	}

	return AsFile(node)
}
