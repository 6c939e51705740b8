// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pack copies resource trees into archives.
package pack

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/traversable"
)

// Pack writes the tree rooted at root into w. Member names are placed under
// prefix, whose directories are written first. The root itself is written
// as prefix directory and not at all if prefix is empty.
func Pack(root traversable.Traversable, w archive.Writer, prefix string) error {
	prefix = archive.CleanName(prefix)

	if err := writeParents(w, prefix); err != nil {
		return err
	}

	return traversable.Walk(root, func(name string, node traversable.Traversable, err error) error {
		if err != nil {
			return err
		}

		target := path.Join(prefix, name)

		if node.IsDir() {
			if target == "." {
				return nil
			}

			if err := w.WriteDirectory(target); err != nil {
				return fmt.Errorf("write directory %s: %w", target, err)
			}

			return nil
		}

		return writeRegular(w, target, node)
	})
}

// ToFile packs the tree rooted at root into a new archive file. The format
// is derived from the file name extension.
func ToFile(root traversable.Traversable, name, prefix string, opts ...archive.ZipOption) (err error) {
	format := archive.FormatFromName(name)

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close archive: %w", closeErr)
		}

		if err != nil {
			_ = os.Remove(name)
		}
	}()

	var writer archive.Writer

	if format == archive.FormatZip {
		writer = archive.NewZipWriter(file, opts...)
	} else {
		writer, err = archive.NewWriter(file, format)
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err := Pack(root, writer, prefix); err != nil {
		_ = writer.Close()
		return err
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}

	return nil
}

func writeParents(w archive.Writer, prefix string) error {
	if prefix == "" {
		return nil
	}

	parts := strings.Split(prefix, "/")

	for idx := range parts[:len(parts)-1] {
		dir := strings.Join(parts[:idx+1], "/")

		if err := w.WriteDirectory(dir); err != nil {
			return fmt.Errorf("write directory %s: %w", dir, err)
		}
	}

	return nil
}

func writeRegular(w archive.Writer, name string, node traversable.Traversable) error {
	file, err := node.Open()
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer file.Close()

	if err := w.WriteRegular(name, file, 0); err != nil {
		return fmt.Errorf("write file %s: %w", name, err)
	}

	return nil
}
