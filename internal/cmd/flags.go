// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/aibor/pkgres/finder"
)

const (
	name = "pkgres"

	usageMessage = `Usage of 'pkgres':
    pkgres [flags...] command [args...]

Commands:
    packages                          list top-level packages
    ls <package> [path]               list resources
    cat <package> <path>              print the content of a resource
    path <package> [path]             print a file system path of a resource
    pack <package> <archive>          pack resources into a .zip or .cpio file
    exec <package> <path> -- cmd...   run cmd with {} replaced by the path
                                      of the resource

Using it directly:
	pkgres -path /usr/share/app ls app.templates

All pkgres flags can also be provided via environment variable PKGRES_ARGS:
	PKGRES_ARGS="-path /usr/share/app -debug" pkgres cat app index.html

All pkgres flags can also be provided via file ./.pkgres-args, with one
argument per line.
`
)

type flags struct {
	Paths      FilePathList
	ConfigFile string
	Marker     string
	Debug      bool
	Version    bool
	Keep       bool
	Zstd       bool

	Command string
	Args    []string

	flagSet *flag.FlagSet
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	f := &flags{}
	f.initFlagset(output)

	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	if err := f.flagSet.Parse(args); err != nil {
		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	if f.Version {
		return f, nil
	}

	positionalArgs := f.flagSet.Args()

	// First positional argument is the command, all further are its
	// arguments.
	if len(positionalArgs) < 1 {
		return nil, f.fail("no command given", nil)
	}

	f.Command = positionalArgs[0]
	f.Args = positionalArgs[1:]

	cmd, exists := commands[f.Command]
	if !exists {
		return nil, f.fail(f.Command, ErrUnknownCommand)
	}

	if err := cmd.checkArgs(f.Args); err != nil {
		return nil, f.fail(f.Command, err)
	}

	return f, nil
}

// config merges the config file, if any, with the flags. Flags take
// precedence.
func (f *flags) config() (*Config, error) {
	config := &Config{}

	if f.ConfigFile != "" {
		var err error

		config, err = LoadConfig(f.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	config.Paths = append(slices.Clone(f.Paths), config.Paths...)
	if len(config.Paths) == 0 {
		config.Paths = []string{"."}
	}

	if f.Marker != "" {
		config.Marker = f.Marker
	}

	if config.Marker == "" {
		config.Marker = finder.DefaultMarker
	}

	config.Debug = config.Debug || f.Debug

	return config, nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.Var(
		&f.Paths,
		"path",
		"search root: directory, archive or directory inside an archive. "+
			"Flag may be used more than once. Empty value clears the list. "+
			"(default is the current directory)",
	)

	flagSet.StringVar(
		&f.ConfigFile,
		"config",
		f.ConfigFile,
		"YAML config file with search paths, marker and debug setting",
	)

	flagSet.StringVar(
		&f.Marker,
		"marker",
		f.Marker,
		"name of the file marking regular packages (default \""+
			finder.DefaultMarker+"\")",
	)

	flagSet.BoolVar(
		&f.Keep,
		"keep",
		f.Keep,
		"do not delete temporary copies created by the path command",
	)

	flagSet.BoolVar(
		&f.Zstd,
		"zstd",
		f.Zstd,
		"compress zip archives created by the pack command with zstd",
	)

	flagSet.BoolVar(
		&f.Debug,
		"debug",
		f.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.Version,
		"version",
		f.Version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
