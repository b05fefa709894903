/*
 * errors.go, part of mdkit.
 *
 *
 * Copyright 2023 A. Villagran
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package align

import "strings"

// Error implements the mdkit.Error interface for the align package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return "align error: " + err.message + strings.Join(err.deco, " ")
}

// Decorate adds the given string to the decoration slice of the error
// and returns the slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical reports whether the error is irrecoverable.
func (err Error) Critical() bool {
	return err.critical
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(mdkitError)
	if !ok {
		return Error{message: err.Error(), deco: []string{caller}, critical: true}
	}
	err2.Decorate(caller)
	return err2
}

type mdkitError interface {
	Error() string
	Decorate(string) []string
}

// Error messages for the align package.
const (
	ErrNilMolecule    = "nil molecule given"
	ErrNoFrame        = "requested frame not present"
	ErrBadMatches     = "requested number of matches must be positive"
	ErrBadTimeout     = "timeout must not be negative"
	ErrBadMapping     = "mapping refers to atoms outside the molecules"
	ErrNotEnoughAtoms = "not enough mapped atoms to superpose"
	ErrSingularMatrix = "singular matrix in superposition"
)
