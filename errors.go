/*
 * errors.go, part of mdkit.
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
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mdkit

//CError (for "concrete error") is the concrete error type for the root
//package. It implements the Error interface.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the given string to the decoration slice of the error and
//returns the resulting slice. An empty string only returns the current
//decoration.
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//NewCError builds a CError with the given message, decorated with the
//caller's name.
func NewCError(msg string, caller string) CError {
	return CError{msg, []string{caller}}
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. It panics on a non-mdkit error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
