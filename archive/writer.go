// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"io/fs"
)

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// Writer writes members into a new archive. Names are slash separated and
// relative. Parent directories must be written before their members.
type Writer interface {
	WriteDirectory(name string) error
	WriteRegular(name string, source io.Reader, mode fs.FileMode) error
	Close() error
}

// NewWriter creates a [Writer] for the given format. Writing 7z archives is
// not supported.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatZip:
		return NewZipWriter(w), nil
	case FormatCPIO:
		return NewCPIOWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: cannot write %s", ErrUnknownFormat, format)
	}
}

func permOrDefault(mode, fallback fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return fallback
	}

	return mode.Perm()
}
