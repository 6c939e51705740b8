// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pkgres provides access to data files shipped with packages,
// independent of whether a package is a plain directory, lives inside an
// archive or is a namespace package spread over multiple directories.
//
// [Files] resolves a [Package] to the root [traversable.Traversable] of its
// resource tree. The backing reader is picked in a fixed order: a native
// reader supplied by the package's loader, an archive reader if the loader
// exposes an archive, a namespace reader for namespace packages, and finally
// a file reader for the directory of the package's origin.
//
// [AsFile] and [WithFile] provide real file system paths for any resource,
// copying content out into temporary files if needed.
//
// The flat functions [OpenBinary], [OpenText], [ReadBinary], [ReadText],
// [Contents], [IsResource] and [Path] take a package and a bare resource
// name and are built on top of [Files].
package pkgres
