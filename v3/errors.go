/*
 * errors.go, part of traj2pdb.
 *
 * Copyright 2026 The traj2pdb Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import "strings"

// Error is the error type of the package. It satisfies chem.Error
// (the same interface is not imported to avoid a circular import).
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return strings.Join(err.deco, ": ") + ": " + err.message
}

// Decorate adds dec to the decoration slice of the error and returns the result.
// An empty dec only returns the current slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

// PanicMsg is used for panics. It satisfies the error interface so it
// can be recovered and returned.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNot3xX = PanicMsg("v3: A Matrix must have exactly 3 columns")
	ErrShape  = PanicMsg("v3: Dimension mismatch")
)
