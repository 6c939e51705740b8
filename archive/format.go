// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an archive container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatCPIO
	FormatSevenZip
)

var magics = []struct {
	format Format
	magic  []byte
}{
	{FormatZip, []byte("PK\x03\x04")},
	{FormatZip, []byte("PK\x05\x06")},
	{FormatCPIO, []byte("070701")},
	{FormatCPIO, []byte("070702")},
	{FormatSevenZip, []byte("7z\xbc\xaf\x27\x1c")},
}

const magicLen = 6

// String implements [fmt.Stringer].
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatCPIO:
		return "cpio"
	case FormatSevenZip:
		return "7z"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "zip":
		*f = FormatZip
	case "cpio":
		*f = FormatCPIO
	case "7z":
		*f = FormatSevenZip
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, text)
	}

	return nil
}

// FormatFromName guesses the format from the file name extension.
func FormatFromName(name string) Format {
	var format Format

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if err := format.UnmarshalText([]byte(ext)); err != nil {
		return FormatUnknown
	}

	return format
}

// DetectFormat reads the magic bytes at the start of r.
func DetectFormat(r io.ReaderAt) (Format, error) {
	buf := make([]byte, magicLen)

	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("read magic: %w", err)
	}

	for _, m := range magics {
		if bytes.HasPrefix(buf[:n], m.magic) {
			return m.format, nil
		}
	}

	return FormatUnknown, ErrUnknownFormat
}

// Open opens the archive at the given path. The format is detected from
// the content.
func Open(name string) (*Reader, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	format, err := DetectFormat(file)

	_ = file.Close()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	switch format {
	case FormatZip:
		return OpenZip(name)
	case FormatCPIO:
		return OpenCPIO(name)
	case FormatSevenZip:
		return OpenSevenZip(name)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
}

// IsArchive reports whether the file at the given path is a regular file
// with a supported format.
func IsArchive(name string) bool {
	file, err := os.Open(name)
	if err != nil {
		return false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	_, err = DetectFormat(file)

	return err == nil
}
