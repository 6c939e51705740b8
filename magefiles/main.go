// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

const pkg = "github.com/aibor/pkgres/cmd/pkgres"

var env map[string]string

func init() {
	env = make(map[string]string)
	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}
	if gobin != "" {
		p, err := filepath.Abs(gobin)
		if err == nil {
			gobin = p
		}
	}
	env["GOBIN"] = gobin
}

// Install pkgres to gobin directory.
func Install() error {
	path := filepath.Join(env["GOBIN"], "pkgres")
	mod, err := target.Dir(path, "cmd", "internal", "archive", "finder", "traversable")
	if err != nil {
		return err
	}

	if !mod {
		return nil
	}

	return sh.RunWith(env, "go", "install", pkg)
}

// Regenerate the zip and cpio archives in testdata from testdata/data01.
//
// The 7z fixture and flat.zip are created with external tools and are not
// touched.
func Fixtures() error {
	for _, name := range []string{"data01.zip", "data01.cpio"} {
		out := filepath.Join("testdata", "archives", name)

		mod, err := target.Dir(out, filepath.Join("testdata", "data01"))
		if err != nil {
			return err
		}

		if !mod {
			continue
		}

		err = sh.RunV("go", "run", "./cmd/pkgres", "-path", "testdata", "pack", "data01", out)
		if err != nil {
			return fmt.Errorf("pack %s: %w", name, err)
		}
	}

	return nil
}

// Run all tests with coverage.
func Test() error {
	mg.Deps(Fixtures)

	return sh.RunV("go", "test", "-race", "-cover", "-coverprofile", "/tmp/cover.out", "./...")
}

// Remove volatile files.
func Clean() error {
	return sh.Rm(env["GOBIN"])
}
