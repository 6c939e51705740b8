// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"io"
	"strings"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
)

// Package is a reference to a package as resolved by a package finder.
type Package struct {
	// Name is the fully qualified dotted name of the package.
	Name string

	// Origin is the path of the file that defines the package. It is empty
	// for namespace packages. For packages inside archives it is not a real
	// file system path.
	Origin string

	// SearchLocations are the locations subpackages are searched in. It is
	// nil for references that are not packages.
	SearchLocations []string

	// Loader is the object that loaded the package. It may implement
	// [ReaderProvider] or [ArchiveLoader].
	Loader any
}

// IsPackage reports whether the reference is a package.
func (p *Package) IsPackage() bool {
	return p != nil && p.SearchLocations != nil
}

// IsNamespace reports whether the reference is a namespace package.
func (p *Package) IsNamespace() bool {
	return p.IsPackage() && p.Origin == "" && len(p.SearchLocations) > 0
}

// lastName returns the last segment of the dotted package name.
func (p *Package) lastName() string {
	return p.Name[strings.LastIndexByte(p.Name, '.')+1:]
}

// TraversableReader is a resource reader that provides the root of a
// package's resource tree.
type TraversableReader interface {
	Files() (traversable.Traversable, error)
}

// ResourceReader is the narrow per resource reader contract the flat
// functions of older APIs are built on.
type ResourceReader interface {
	OpenResource(name string) (io.ReadCloser, error)
	ResourcePath(name string) (string, error)
	IsResource(name string) (bool, error)
	Contents() ([]string, error)
}

// ReaderProvider is implemented by loaders that provide their own resource
// readers. The returned reader is only used if it implements
// [TraversableReader].
type ReaderProvider interface {
	ResourceReader(name string) any
}

// ArchiveLoader is implemented by loaders for packages inside archives.
type ArchiveLoader interface {
	// Archive returns the archive the package lives in.
	Archive() archive.Archive
	// Prefix returns the slash separated path inside the archive of the
	// directory that contains the package directory.
	Prefix() string
}

// RealPather is implemented by resource nodes that may refer to a real file
// system path.
type RealPather interface {
	RealPath() (string, bool)
}
