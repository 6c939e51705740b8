// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime/debug"

	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/finder"
)

const localConfigFile = ".pkgres-args"

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func run(ctx context.Context, config *Config, flags *flags, cfg IO) error {
	cache := archive.NewCache()
	defer closeCache(cache)

	pkgFinder := finder.New(
		config.Paths,
		finder.WithMarker(config.Marker),
		finder.WithCache(cache),
	)

	slog.Debug("Search roots",
		slog.Any("paths", config.Paths),
		slog.String("marker", config.Marker))

	err := pkgFinder.Preload(ctx)
	if err != nil {
		return fmt.Errorf("preload archives: %w", err)
	}

	env := &environment{
		finder: pkgFinder,
		flags:  flags,
		io:     cfg,
	}

	return commands[flags.Command].run(ctx, env, flags.Args)
}

func closeCache(cache *archive.Cache) {
	slog.Debug("Closing archives")

	err := cache.Close()
	if err != nil {
		slog.Error(
			"Failed to close archives",
			slog.Any("error", err),
		)
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	// Do not print the error in case the executed command ran and
	// communicated a non-zero exit code itself.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		return exitErr.ExitCode()
	}

	slog.Error(err.Error())

	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	if flags.Version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return -1
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return 0
	}

	config, err := flags.config()
	if err != nil {
		slog.Error(err.Error())
		return -1
	}

	setupLogging(cfg.Stderr, config.Debug)

	err = run(ctx, config, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
