// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package traversable provides a uniform tree interface for resources that
// live in plain directories, inside archives, or spread over multiple
// directories that are merged into one logical tree.
//
// All node types implement [Traversable]:
//
//   - [Path] wraps a path of a go-billy file system, usually a real OS path.
//   - [ArchiveNode] wraps a member path inside an [archive.Archive].
//   - [Multiplexed] merges several directory nodes into one.
//
// Nodes are immutable views on their backing storage. They may refer to
// locations that do not exist. Operations that require existence fail with an
// error matching [ErrNotExist].
package traversable
