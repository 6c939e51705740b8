// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/cavaliergopher/cpio"
)

const numLinks = 2

// CPIOWriter implements [Writer] for SVR4 cpio archives.
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new cpio archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close writes the trailer and flushes the archive.
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	if err := w.cpioWriter.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory adds a directory entry.
func (w *CPIOWriter) WriteDirectory(name string) error {
	header := &cpio.Header{
		Name:  CleanName(name),
		Mode:  cpio.TypeDir | cpio.FileMode(dirMode),
		Links: numLinks,
	}

	return w.writeHeader(header)
}

// WriteRegular adds a regular file with the content read from source. The
// content is buffered since cpio headers carry the size.
func (w *CPIOWriter) WriteRegular(name string, source io.Reader, mode fs.FileMode) error {
	data, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("read source for %s: %w", name, err)
	}

	header := &cpio.Header{
		Name:  CleanName(name),
		Mode:  cpio.TypeReg | cpio.FileMode(permOrDefault(mode, fileMode)),
		Size:  int64(len(data)),
		Links: 1,
	}
	if err := w.writeHeader(header); err != nil {
		return err
	}

	if _, err := w.cpioWriter.Write(data); err != nil {
		return fmt.Errorf("write body for %s: %w", name, err)
	}

	return nil
}
