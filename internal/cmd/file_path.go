// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FilePathList is a [flag.Value] collecting absolute file paths. An empty
// value clears the list.
type FilePathList []string

func (f *FilePathList) String() string {
	return strings.Join(*f, ",")
}

func (f *FilePathList) Set(s string) error {
	if s == "" {
		*f = nil
		return nil
	}

	for e := range strings.SplitSeq(s, ",") {
		path, err := AbsoluteFilePath(e)
		if err != nil {
			return err
		}

		*f = append(*f, path)
	}

	return nil
}

func AbsoluteFilePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyFilePath
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return path, nil
}
