// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	envArgsName   = "PKGRES_ARGS"
	commentPrefix = "#"
)

// EnvArgs returns pkgres arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(envArgsName))
}

// LocalConfigArgs returns pkgres arguments from a local config file.
//
// The file's format is one argument per line. Lines starting with "#" are
// ignored. Environment variables may be used and are expanded with
// [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, commentPrefix) {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the arguments from the local config file, the
// environment and the given args, in this order. So the given args have
// precedence when parsed with [flag].
func MergedArgs(args []string, fsys fs.FS, file string) ([]string, error) {
	localArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config args: %w", err)
	}

	merged := append(localArgs, EnvArgs()...)

	return append(merged, args...), nil
}
