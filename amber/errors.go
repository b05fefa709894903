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

package amber

import "fmt"

// Error is the general structure for sander process errors. It
// fulfills the mdkit.Error interface.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("sander process error: %s", err.message)
	}
	return fmt.Sprintf("sander process error in file %s: %s", err.filename, err.message)
}

func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Critical() bool { return err.critical }

const (
	NoExecutable    = "no sander executable found"
	NotRunning      = "process is not running"
	AlreadyRunning  = "process is already running"
	NoMolecule      = "nil molecule given"
	NoProtocol      = "nil protocol given"
	BadFrameIndex   = "frame index out of range"
	MissingConfig   = "custom configuration file not found"
	UnableToPrepare = "unable to prepare working directory"
)
