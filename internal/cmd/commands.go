// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aibor/pkgres"
	"github.com/aibor/pkgres/archive"
	"github.com/aibor/pkgres/finder"
	"github.com/aibor/pkgres/internal/pack"
	"github.com/aibor/pkgres/traversable"
)

const execPathPlaceholder = "{}"

type environment struct {
	finder *finder.Finder
	flags  *flags
	io     IO
}

type command struct {
	minArgs int
	// maxArgs is ignored if negative.
	maxArgs int
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = map[string]command{
	"packages": {minArgs: 0, maxArgs: 0, run: runPackages},
	"ls":       {minArgs: 1, maxArgs: 2, run: runList},
	"cat":      {minArgs: 2, maxArgs: 2, run: runCat},
	"path":     {minArgs: 1, maxArgs: 2, run: runPath},
	"pack":     {minArgs: 2, maxArgs: 2, run: runPack},
	"exec":     {minArgs: 3, maxArgs: -1, run: runExec},
}

func (c command) checkArgs(args []string) error {
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return fmt.Errorf("%w: %d", ErrArgumentCount, len(args))
	}

	return nil
}

// resource returns the node at the slash separated path relative to the
// named package's resource root. An empty path is the root itself.
func (e *environment) resource(pkgName, resourcePath string) (traversable.Traversable, error) {
	root, err := pkgres.FilesFor(e.finder, pkgName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if resourcePath == "" {
		return root, nil
	}

	return root.JoinPath(resourcePath) //nolint:wrapcheck
}

func optionalArg(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}

	return ""
}

func runPackages(_ context.Context, env *environment, _ []string) error {
	names, err := env.finder.Packages()
	if err != nil {
		return fmt.Errorf("list packages: %w", err)
	}

	for _, name := range names {
		fmt.Fprintln(env.io.Stdout, name)
	}

	return nil
}

func runList(_ context.Context, env *environment, args []string) error {
	node, err := env.resource(args[0], optionalArg(args, 1))
	if err != nil {
		return err
	}

	if !node.IsDir() {
		if !node.IsFile() {
			return &traversable.PathError{Op: "ls", Path: node.String(), Err: traversable.ErrNotExist}
		}

		fmt.Fprintln(env.io.Stdout, node.Name())

		return nil
	}

	for child, err := range node.IterDir() {
		if err != nil {
			return err //nolint:wrapcheck
		}

		name := child.Name()
		if child.IsDir() {
			name += "/"
		}

		fmt.Fprintln(env.io.Stdout, name)
	}

	return nil
}

func runCat(_ context.Context, env *environment, args []string) error {
	node, err := env.resource(args[0], args[1])
	if err != nil {
		return err
	}

	file, err := node.Open()
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer file.Close()

	if _, err := io.Copy(env.io.Stdout, file); err != nil {
		return fmt.Errorf("copy %s: %w", node, err)
	}

	return nil
}

func runPath(_ context.Context, env *environment, args []string) error {
	node, err := env.resource(args[0], optionalArg(args, 1))
	if err != nil {
		return err
	}

	tmp, err := pkgres.AsFile(node)
	if err != nil {
		return fmt.Errorf("materialize: %w", err)
	}

	fmt.Fprintln(env.io.Stdout, tmp.Path())

	if env.flags.Keep {
		if tmp.Temporary() {
			slog.Info("Preserving temporary copy",
				slog.String("path", tmp.Path()))
		}

		return nil
	}

	return tmp.Close()
}

func runPack(_ context.Context, env *environment, args []string) error {
	root, err := pkgres.FilesFor(env.finder, args[0])
	if err != nil {
		return err //nolint:wrapcheck
	}

	out, err := AbsoluteFilePath(args[1])
	if err != nil {
		return err
	}

	var opts []archive.ZipOption
	if env.flags.Zstd {
		opts = append(opts, archive.WithZstd())
	}

	// Place the package at its dotted path, so the archive can be used as
	// search root right away.
	prefix := strings.ReplaceAll(args[0], ".", "/")

	if err := pack.ToFile(root, out, prefix, opts...); err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	slog.Debug("Packed package",
		slog.String("package", args[0]),
		slog.String("path", out))

	return nil
}

func runExec(ctx context.Context, env *environment, args []string) error {
	cmdArgs := args[2:]
	if len(cmdArgs) > 0 && cmdArgs[0] == "--" {
		cmdArgs = cmdArgs[1:]
	}

	if len(cmdArgs) == 0 {
		return ErrNoExecCommand
	}

	node, err := env.resource(args[0], args[1])
	if err != nil {
		return err
	}

	return pkgres.WithFile(node, func(path string) error { //nolint:wrapcheck
		argv := make([]string, len(cmdArgs))
		for idx, arg := range cmdArgs {
			argv[idx] = strings.ReplaceAll(arg, execPathPlaceholder, path)
		}

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Stdin = env.io.Stdin
		cmd.Stdout = env.io.Stdout
		cmd.Stderr = env.io.Stderr

		slog.Debug("Executing command",
			slog.String("command", cmd.String()))

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("exec %s: %w", argv[0], err)
		}

		return nil
	})
}
