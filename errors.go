// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pkgres

import (
	"errors"

	"github.com/aibor/pkgres/traversable"
)

var (
	// ErrNotPackage is returned if a package reference does not refer to a
	// package that may contain resources.
	ErrNotPackage = errors.New("not a package")

	// ErrNoReader is returned if no resource reader can be found for a
	// package.
	ErrNoReader = errors.New("no resource reader")

	// ErrInvalidName is returned by the flat functions if a resource name is
	// not a bare file name.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrNotExist is returned if a resource does not exist.
	ErrNotExist = traversable.ErrNotExist
)
