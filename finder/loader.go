// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package finder

import (
	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/archive"
)

// ArchiveLoader is the loader of packages found inside archives.
type ArchiveLoader struct {
	arc    archive.Archive
	prefix string
}

var _ pkgres.ArchiveLoader = (*ArchiveLoader)(nil)

// Archive returns the archive the package lives in.
func (l *ArchiveLoader) Archive() archive.Archive {
	return l.arc
}

// Prefix returns the directory inside the archive that contains the package
// directory.
func (l *ArchiveLoader) Prefix() string {
	return l.prefix
}
