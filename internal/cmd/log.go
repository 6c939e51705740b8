// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

// setupLogging sets the default logger. Library packages only log at debug
// level, so they are silent unless debug is set. Timestamps are omitted as
// the output of a single short lived invocation is read by humans and
// scripts alike.
func setupLogging(writer io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			AddSource:   debug,
			Level:       level,
			ReplaceAttr: dropTime,
		},
	)))
}

func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return attr
}
