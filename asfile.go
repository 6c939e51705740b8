// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aibor/pkgres/traversable"
)

const (
	tempPattern = "pkgres-*"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// TempPath is a real file system path for a resource. Temporary copies are
// removed by [TempPath.Close].
type TempPath struct {
	path    string
	cleanup func() error
	once    sync.Once
	err     error
}

// Path returns the file system path.
func (p *TempPath) Path() string {
	return p.path
}

// Temporary reports whether the path is a temporary copy that is removed on
// [TempPath.Close].
func (p *TempPath) Temporary() bool {
	return p.cleanup != nil
}

// Close removes temporary copies. It is safe to call it multiple times.
// Copies that are already gone are not an error.
func (p *TempPath) Close() error {
	p.once.Do(func() {
		if p.cleanup != nil {
			p.err = p.cleanup()
		}
	})

	return p.err
}

// AsFile provides a real file system path for the given node.
//
// Nodes that already are on the local file system are returned as they are
// and nothing is removed on close. Directories are copied recursively into a
// new temporary directory and the returned path is the copy of the node
// inside of it. Anything else is copied into a temporary file whose name
// ends with the node's name.
func AsFile(node traversable.Traversable) (*TempPath, error) {
	if realPath, ok := realPath(node); ok {
		return &TempPath{path: realPath}, nil
	}

	if node.IsDir() {
		return tempDir(node)
	}

	return tempFile(node)
}

// WithFile calls fn with a real file system path for the given node. Any
// temporary copy is removed after fn returns, even if it panics.
func WithFile(node traversable.Traversable, fn func(path string) error) (err error) {
	tmp, err := AsFile(node)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, tmp.Close())
	}()

	return fn(tmp.Path())
}

func tempFile(node traversable.Traversable) (*TempPath, error) {
	// The last "*" of the pattern is replaced by random characters, so the
	// name must not contain one for its suffix to survive.
	suffix := strings.ReplaceAll(node.Name(), "*", "_")

	file, err := os.CreateTemp("", tempPattern+"-"+suffix)
	if err != nil {
		return nil, fmt.Errorf("create temporary file: %w", err)
	}

	name := file.Name()

	err = copyContent(file, node)
	if closeErr := file.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close temporary file: %w", closeErr))
	}

	if err != nil {
		_ = removeFile(name)
		return nil, err
	}

	slog.Debug("Materialized resource",
		slog.String("resource", node.String()),
		slog.String("path", name),
	)

	return &TempPath{
		path:    name,
		cleanup: func() error { return removeFile(name) },
	}, nil
}

func tempDir(node traversable.Traversable) (*TempPath, error) {
	dir, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		return nil, fmt.Errorf("create temporary directory: %w", err)
	}

	target := filepath.Join(dir, node.Name())

	if err := replicate(node, target); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	slog.Debug("Materialized resource directory",
		slog.String("resource", node.String()),
		slog.String("path", target),
	)

	return &TempPath{
		path: target,
		cleanup: func() error {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("remove temporary directory: %w", err)
			}

			return nil
		},
	}, nil
}

// replicate copies the tree rooted at root to target. Target must not exist.
func replicate(root traversable.Traversable, target string) error {
	return traversable.Walk(root, func(name string, node traversable.Traversable, err error) error {
		if err != nil {
			return err
		}

		dest := filepath.Join(target, filepath.FromSlash(name))

		if node.IsDir() {
			if err := os.Mkdir(dest, dirPerm); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			return nil
		}

		return writeFile(dest, node)
	})
}

func writeFile(dest string, node traversable.Traversable) error {
	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	err = copyContent(file, node)
	if closeErr := file.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", closeErr))
	}

	return err
}

func copyContent(w io.Writer, node traversable.Traversable) error {
	src, err := node.Open()
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy %s: %w", node, err)
	}

	return nil
}

func removeFile(name string) error {
	err := os.Remove(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove temporary file: %w", err)
	}

	return nil
}
