// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// OpenZip opens the zip archive at the given path. Members compressed with
// zstd (method 93) are supported in addition to store and deflate.
func OpenZip(name string) (*Reader, error) {
	zipReader, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	return newZipReader(name, &zipReader.Reader, zipReader), nil
}

// NewZipReader creates a [Reader] for the zip archive in r of the given
// size. The name is only used for identification.
func NewZipReader(r io.ReaderAt, size int64, name string) (*Reader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read zip: %w", err)
	}

	return newZipReader(name, zipReader, nil), nil
}

func newZipReader(name string, zipReader *zip.Reader, closer io.Closer) *Reader {
	zipReader.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	reader := newReader(name, FormatZip, closer)

	for _, file := range zipReader.File {
		entry := Entry{
			Name:    file.Name,
			Mode:    file.Mode(),
			Size:    int64(file.UncompressedSize64), //nolint:gosec
			ModTime: file.Modified,
		}
		reader.add(entry, file.Open)
	}

	return reader
}
