// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package finder resolves dotted package names against an ordered list of
// search roots.
//
// A search root is a directory, an archive file or a directory inside an
// archive file, like "bundle.zip/lib". A directory containing the marker
// file is a regular package. A directory without it is a portion of a
// namespace package, and all portions found across the search locations make
// up the package. Regular packages take precedence over namespace portions.
// Subpackages are only searched in the search locations of their parent.
package finder
