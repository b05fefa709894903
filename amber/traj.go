/*
 * traj.go, part of mdkit.
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

import (
	"fmt"
	"os"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/traj/mdcrd"
	"github.com/avillagran/mdkit/xyz"
)

// Trajectory opens the trajectory written by the run. It returns
// (nil, nil) when the engine has not written one yet; only production
// runs write trajectories. The caller owns the returned handle and
// must Close it.
func (p *Process) Trajectory() (*mdcrd.Traj, error) {
	path := p.file("mdcrd")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	natoms, err := readPrm7NAtoms(p.file("prm7"))
	if err != nil {
		return nil, errDecorate(err, "Trajectory")
	}
	traj, err := mdcrd.New(path, natoms, p.box)
	if err != nil {
		return nil, errDecorate(err, "Trajectory")
	}
	return traj, nil
}

// NFrames returns the number of complete frames in the trajectory, 0
// when there is none yet.
func (p *Process) NFrames() (int, error) {
	traj, err := p.Trajectory()
	if err != nil {
		return 0, errDecorate(err, "NFrames")
	}
	if traj == nil {
		return 0, nil
	}
	defer traj.Close()
	n := 0
	for {
		if err := traj.Next(nil); err != nil {
			if _, benign := err.(mdkit.LastFrameError); benign {
				return n, nil
			}
			return 0, errDecorate(err, "NFrames")
		}
		n++
	}
}

// Frames returns the requested trajectory frames, in the order the
// indices are given. With no indices, every frame is returned. Any
// index outside [0, NFrames) is an error.
func (p *Process) Frames(indices ...int) ([]*xyz.Matrix, error) {
	traj, err := p.Trajectory()
	if err != nil {
		return nil, errDecorate(err, "Frames")
	}
	if traj == nil {
		if len(indices) == 0 {
			return nil, nil
		}
		return nil, Error{message: BadFrameIndex + ": no trajectory yet", critical: true}
	}
	defer traj.Close()
	var all []*xyz.Matrix
	for {
		frame := xyz.Zeros(traj.Len())
		if err := traj.Next(frame); err != nil {
			if _, benign := err.(mdkit.LastFrameError); benign {
				break
			}
			return nil, errDecorate(err, "Frames")
		}
		all = append(all, frame)
	}
	if len(indices) == 0 {
		return all, nil
	}
	ret := make([]*xyz.Matrix, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(all) {
			return nil, Error{message: fmt.Sprintf("%s: %d of %d", BadFrameIndex, idx, len(all)), critical: true}
		}
		ret[i] = all[idx]
	}
	return ret, nil
}

// System returns the latest coordinates of the system, read from the
// restart file the engine keeps up to date, as a molecule sharing the
// topology of the input. It returns (nil, nil) when the engine has
// not written a restart yet.
func (p *Process) System() (*mdkit.Molecule, error) {
	path := p.file("crd")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	mol, err := readRst7(path, p.mol.Topology)
	if err != nil {
		return nil, errDecorate(err, "System")
	}
	return mol, nil
}
