/*
 * merge.go, part of mdkit.
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

import (
	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

// Merged is a combined system holding two molecules as the end states
// of an alchemical transformation. The combined topology contains
// every atom of molecule 0 followed by the atoms of molecule 1 that
// have no partner in molecule 0. Atoms present in only one end state
// are dummies in the other, where they keep the coordinates of the
// state they belong to.
type Merged struct {
	mapping Mapping
	top     *mdkit.Topology
	coords0 *xyz.Matrix
	coords1 *xyz.Matrix
	// atoms contributed by molecule 0; the rest come from molecule 1
	n0 int
}

// Merge builds the combined system for the two molecules. With a nil
// mapping, the pairing is searched with BestMatch and molA is first
// aligned onto molB; an explicit mapping is used as given, on the
// coordinates as given. mapping must send indices of molA to indices
// of molB.
func Merge(molA, molB *mdkit.Molecule, mapping Mapping) (*Merged, error) {
	if molA == nil || molB == nil {
		return nil, Error{message: ErrNilMolecule, critical: true}
	}
	if len(molA.Coords) == 0 || len(molB.Coords) == 0 {
		return nil, Error{message: ErrNoFrame, critical: true}
	}
	if mapping == nil {
		var err error
		mapping, err = BestMatch(molA, molB)
		if err != nil {
			return nil, errDecorate(err, "Merge")
		}
		if mapping == nil {
			return nil, Error{message: "no common substructure to merge on", critical: true}
		}
		molA, err = RMSDAlign(molA, molB, mapping)
		if err != nil {
			return nil, errDecorate(err, "Merge")
		}
	}
	inB := make(map[int]int, len(mapping)) // molB index -> molA index
	for k, v := range mapping {
		if k < 0 || k >= molA.Len() || v < 0 || v >= molB.Len() {
			return nil, Error{message: ErrBadMapping, critical: true}
		}
		if _, dup := inB[v]; dup {
			return nil, Error{message: ErrBadMapping + ": repeated target atom", critical: true}
		}
		inB[v] = k
	}
	m := &Merged{mapping: mapping.Copy(), n0: molA.Len()}
	ca := molA.Coords[0]
	cb := molB.Coords[0]
	total := molA.Len()
	for j := 0; j < molB.Len(); j++ {
		if _, mapped := inB[j]; !mapped {
			total++
		}
	}
	atoms := make([]*mdkit.Atom, 0, total)
	m.coords0 = xyz.Zeros(total)
	m.coords1 = xyz.Zeros(total)
	for i := 0; i < molA.Len(); i++ {
		atoms = append(atoms, molA.Atom(i).Copy())
		m.coords0.SetRow(i, ca.Row(i))
		if j, mapped := m.mapping[i]; mapped {
			m.coords1.SetRow(i, cb.Row(j))
		} else {
			// dummy in end state 1
			m.coords1.SetRow(i, ca.Row(i))
		}
	}
	row := molA.Len()
	for j := 0; j < molB.Len(); j++ {
		if _, mapped := inB[j]; mapped {
			continue
		}
		atoms = append(atoms, molB.Atom(j).Copy())
		// dummy in end state 0
		m.coords0.SetRow(row, cb.Row(j))
		m.coords1.SetRow(row, cb.Row(j))
		row++
	}
	top, err := mdkit.NewTopology(atoms, molA.Charge(), molA.Unpaired())
	if err != nil {
		return nil, errDecorate(err, "Merge")
	}
	top.FillIndexes()
	m.top = top
	return m, nil
}

// Mapping returns the atom pairing the merge was built from.
func (m *Merged) Mapping() Mapping {
	return m.mapping.Copy()
}

// Len returns the number of atoms in the combined system.
func (m *Merged) Len() int {
	return m.top.Len()
}

// Len0 returns how many of the combined atoms come from molecule 0.
// The atoms from index Len0 on are dummies in end state 0.
func (m *Merged) Len0() int {
	return m.n0
}

// Topology returns the combined topology.
func (m *Merged) Topology() *mdkit.Topology {
	return m.top
}

// EndState returns the combined system as a molecule in end state 0
// or 1.
func (m *Merged) EndState(state int) (*mdkit.Molecule, error) {
	var c *xyz.Matrix
	switch state {
	case 0:
		c = m.coords0
	case 1:
		c = m.coords1
	default:
		return nil, Error{message: "end state must be 0 or 1", critical: true}
	}
	frame := c.Copy()
	mol, err := mdkit.NewMolecule(m.top.CopyAtoms(), []*xyz.Matrix{frame})
	if err != nil {
		return nil, errDecorate(err, "EndState")
	}
	return mol, nil
}
