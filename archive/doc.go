// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive provides read access to archive containers that house
// resource trees: zip (including zstd compressed members), SVR4 cpio and 7z.
//
// All formats are presented through the same [Archive] interface. Member
// names are always slash separated and relative, regardless of the host OS.
// Directories are known either from explicit directory entries or implicitly
// from the names of their members. [Archive.Lookup] only reports explicit
// entries, which lets callers tell real members from implied parents.
//
// The package also provides writers to produce new archives, see [Writer].
package archive
