// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ZipWriter implements [Writer] for zip archives.
type ZipWriter struct {
	zipWriter *zip.Writer
	method    uint16
}

// ZipOption configures a [ZipWriter].
type ZipOption func(*ZipWriter)

// WithZstd compresses members with zstd instead of deflate.
func WithZstd() ZipOption {
	return func(w *ZipWriter) {
		compressor := zstd.ZipCompressor(zstd.WithEncoderConcurrency(1))
		w.zipWriter.RegisterCompressor(zstd.ZipMethodWinZip, compressor)
		w.method = zstd.ZipMethodWinZip
	}
}

// NewZipWriter creates a new zip archive writer.
func NewZipWriter(w io.Writer, opts ...ZipOption) *ZipWriter {
	zipWriter := &ZipWriter{
		zipWriter: zip.NewWriter(w),
		method:    zip.Deflate,
	}

	for _, opt := range opts {
		opt(zipWriter)
	}

	return zipWriter
}

// Close writes the central directory.
func (w *ZipWriter) Close() error {
	err := w.zipWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// WriteDirectory adds an explicit directory entry.
func (w *ZipWriter) WriteDirectory(name string) error {
	header := &zip.FileHeader{
		Name:   CleanName(name) + "/",
		Method: zip.Store,
	}
	header.SetMode(fs.ModeDir | dirMode)

	if _, err := w.zipWriter.CreateHeader(header); err != nil {
		return fmt.Errorf("write header for %s: %w", name, err)
	}

	return nil
}

// WriteRegular adds a regular file with the content read from source.
func (w *ZipWriter) WriteRegular(name string, source io.Reader, mode fs.FileMode) error {
	header := &zip.FileHeader{
		Name:   CleanName(name),
		Method: w.method,
	}
	header.SetMode(permOrDefault(mode, fileMode))

	body, err := w.zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", name, err)
	}

	if _, err := io.Copy(body, source); err != nil {
		return fmt.Errorf("write body for %s: %w", name, err)
	}

	return nil
}
