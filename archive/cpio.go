// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cavaliergopher/cpio"
)

// countingReader tracks the offset into the underlying stream so member data
// can be addressed directly later on.
type countingReader struct {
	reader io.Reader
	offset int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.offset += int64(n)

	return n, err //nolint:wrapcheck
}

// OpenCPIO opens the SVR4 (newc) cpio archive at the given path. Only
// directories and regular files are indexed. Other member types like
// symbolic links and device nodes are skipped.
func OpenCPIO(name string) (*Reader, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open cpio: %w", err)
	}

	reader, err := newCPIOReader(name, file, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return reader, nil
}

// NewCPIOReader creates a [Reader] for the cpio archive in r. The name is
// only used for identification.
func NewCPIOReader(r io.ReaderAt, name string) (*Reader, error) {
	return newCPIOReader(name, r, nil)
}

func newCPIOReader(name string, src io.ReaderAt, closer io.Closer) (*Reader, error) {
	counter := &countingReader{
		reader: io.NewSectionReader(src, 0, math.MaxInt64),
	}
	cpioReader := cpio.NewReader(counter)
	reader := newReader(name, FormatCPIO, closer)

	for {
		hdr, err := cpioReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read cpio header: %w", err)
		}

		switch hdr.Mode & cpio.ModeType {
		case cpio.TypeDir, cpio.TypeReg:
		default:
			continue
		}

		data := io.NewSectionReader(src, counter.offset, hdr.Size)
		entry := Entry{
			Name:    hdr.Name,
			Mode:    hdr.FileInfo().Mode(),
			Size:    hdr.Size,
			ModTime: hdr.ModTime,
		}

		reader.add(entry, func() (io.ReadCloser, error) {
			return io.NopCloser(io.NewSectionReader(data, 0, data.Size())), nil
		})
	}

	return reader, nil
}
