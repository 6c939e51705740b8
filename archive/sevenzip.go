// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"

	"github.com/bodgit/sevenzip"
)

// OpenSevenZip opens the 7z archive at the given path. Reading members of
// solid archives decompresses the whole stream up to the member.
func OpenSevenZip(name string) (*Reader, error) {
	szReader, err := sevenzip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("open 7z: %w", err)
	}

	reader := newReader(name, FormatSevenZip, szReader)

	for _, file := range szReader.File {
		entry := Entry{
			Name:    file.Name,
			Mode:    file.Mode(),
			Size:    int64(file.UncompressedSize), //nolint:gosec
			ModTime: file.Modified,
		}
		reader.add(entry, file.Open)
	}

	return reader, nil
}
