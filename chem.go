/*
 * chem.go, part of mdkit.
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

//Package mdkit provides atom and molecule structures, facilities for reading
//and writing some files used in molecular simulation, and the shared
//interfaces used by the alignment and process subpackages.
package mdkit

import (
	"fmt"

	"github.com/avillagran/mdkit/xyz"
)

/**Note: several functions here panic instead of returning errors. They are
 * "fundamental" functions, and if something goes wrong in them the program
 * is way-most likely wrong and should crash. Most panics are related to
 * nil objects or out-of-bounds accesses.**/

//Atom contains the information read for an atom, except for the coordinates,
//which live in a separate matrix.
type Atom struct {
	Name    string
	ID      int
	Molname string
	MolID   int
	Chain   string
	Mass    float64
	Charge  float64
	Symbol  string
	Bonds   []*Bond
	index   int //position in the containing topology, set by FillIndexes
}

//Index returns the position of the atom in its topology. Only valid
//after FillIndexes has been called on the topology.
func (A *Atom) Index() int {
	return A.index
}

//Copy returns a copy of the Atom object. Bonds are not copied,
//as they reference other atoms.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("mdkit: attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	at.Bonds = nil
	return at
}

//Bond is a chemical bond between two atoms.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
	Order float64 //order 0 means undetermined
}

//Cross returns, given one atom of the bond, the atom at the other end.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.index == B.At1.index {
		return B.At2
	}
	if origin.index == B.At2.index {
		return B.At1
	}
	panic("mdkit: the origin atom given is not present in the bond")
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to
//change in time, i.e. everything except for coordinates.
type Topology struct {
	Atoms    []*Atom
	charge   int
	unpaired int
}

//NewTopology makes a topology from the given atoms, charge and number of
//unpaired electrons. It returns an error if ats is nil. It doesn't check
//for consistency of the charge or unpaired electrons.
func NewTopology(ats []*Atom, charge, unpaired int) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("mdkit: supplied a nil atom slice")
	}
	top := new(Topology)
	top.Atoms = ats
	top.charge = charge
	top.unpaired = unpaired
	return top, nil
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Unpaired gets the number of unpaired electrons in the topology
func (T *Topology) Unpaired() int {
	return T.unpaired
}

//SetCharge sets the total charge of the topology to i
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SetUnpaired sets the number of unpaired electrons in the topology to i
func (T *Topology) SetUnpaired(i int) {
	T.unpaired = i
}

//Atom returns the Atom corresponding to the index i of the Atom slice in
//the Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("mdkit: requested atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//FillIndexes sets the unexported index field of each atom to its current
//position in the topology. Several functions depend on these being current.
func (T *Topology) FillIndexes() {
	for i, v := range T.Atoms {
		v.index = i
	}
}

//CopyAtoms returns a deep copy of the topology. Bonds are not carried over.
func (T *Topology) CopyAtoms() *Topology {
	top := new(Topology)
	top.Atoms = make([]*Atom, T.Len())
	for key, val := range T.Atoms {
		top.Atoms[key] = val.Copy()
		top.Atoms[key].index = key
	}
	top.charge = T.charge
	top.unpaired = T.unpaired
	return top
}

//Masses returns a slice with the masses of all atoms, or an error if
//any of them has not been assigned.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		if at.Mass == 0 {
			return nil, CError{fmt.Sprintf("not all masses have been obtained: %d %v", i, at), []string{"Masses"}}
		}
		mass[i] = at.Mass
	}
	return mass, nil
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info
//that is expected to change between states, i.e. coordinates, is stored
//separately from the atomic data.
type Molecule struct {
	*Topology
	Coords []*xyz.Matrix
}

//NewMolecule makes a molecule from a topology and a set of coordinate
//frames. It returns an error if any of them is nil or if the number of
//coordinates does not match the number of atoms.
func NewMolecule(top *Topology, coords []*xyz.Matrix) (*Molecule, error) {
	if top == nil {
		return nil, fmt.Errorf("mdkit: supplied a nil topology")
	}
	if coords == nil {
		return nil, fmt.Errorf("mdkit: supplied a nil coordinate slice")
	}
	mol := &Molecule{Topology: top, Coords: coords}
	if err := mol.Corrupted(); err != nil {
		return nil, err
	}
	return mol, nil
}

//Corrupted returns an error if the molecule is inconsistent,
//nil otherwise.
func (M *Molecule) Corrupted() error {
	for i, v := range M.Coords {
		if v.NVecs() != M.Len() {
			return CError{fmt.Sprintf("frame %d has %d coordinates for %d atoms", i, v.NVecs(), M.Len()), []string{"Corrupted"}}
		}
	}
	return nil
}

//Copy returns a deep copy of the molecule, including coordinates.
func (M *Molecule) Copy() *Molecule {
	mol := new(Molecule)
	mol.Topology = M.Topology.CopyAtoms()
	mol.Coords = make([]*xyz.Matrix, 0, len(M.Coords))
	for _, v := range M.Coords {
		mol.Coords = append(mol.Coords, v.Copy())
	}
	return mol
}

//AddFrame takes a matrix of coordinates and appends it at the end of
//Coords. It panics if the number of coordinates doesn't match the number
//of atoms.
func (M *Molecule) AddFrame(newframe *xyz.Matrix) {
	if newframe == nil {
		panic("mdkit: attempted to add nil frame")
	}
	if M.Len() != newframe.NVecs() {
		panic(fmt.Sprintf("mdkit: wrong number of coordinates (%d)", newframe.NVecs()))
	}
	M.Coords = append(M.Coords, newframe)
}

//Coord returns a view of the coordinates for the atom atom in the frame
//frame. Panics if either is out of range.
func (M *Molecule) Coord(atom, frame int) *xyz.Matrix {
	if frame >= len(M.Coords) {
		panic(fmt.Sprintf("mdkit: frame requested (%d) out of range", frame))
	}
	if atom >= M.Coords[frame].NVecs() {
		panic(fmt.Sprintf("mdkit: requested coordinate (%d) out of bounds (%d)", atom, M.Coords[frame].NVecs()))
	}
	return M.Coords[frame].VecView(atom)
}
