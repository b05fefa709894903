/*
 * files.go, part of mdkit.
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

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avillagran/mdkit/xyz"
)

//XYZRead reads an xyz formatted file and returns a molecule with one
//frame per geometry in the file. Masses are assigned from the internal
//table when the element is known, and left at zero otherwise.
func XYZRead(xyzname string) (*Molecule, error) {
	f, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{fmt.Sprintf("unable to open %s: %s", xyzname, err.Error()), []string{"XYZRead"}}
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var atoms []*Atom
	var coords []*xyz.Matrix
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			break //EOF between geometries is the normal termination
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, CError{fmt.Sprintf("malformed atom-count line in %s: %q", xyzname, strings.TrimSpace(line)), []string{"XYZRead"}}
		}
		if _, err := r.ReadString('\n'); err != nil { //comment line
			return nil, CError{fmt.Sprintf("truncated file %s", xyzname), []string{"XYZRead"}}
		}
		data := make([]float64, 0, natoms*3)
		first := atoms == nil
		for i := 0; i < natoms; i++ {
			line, err := r.ReadString('\n')
			if err != nil && line == "" {
				return nil, CError{fmt.Sprintf("truncated geometry in %s", xyzname), []string{"XYZRead"}}
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, CError{fmt.Sprintf("malformed line in %s: %q", xyzname, line), []string{"XYZRead"}}
			}
			for j := 1; j < 4; j++ {
				c, err := strconv.ParseFloat(fields[j], 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("unable to parse coordinate in %s: %s", xyzname, err.Error()), []string{"strconv.ParseFloat", "XYZRead"}}
				}
				data = append(data, c)
			}
			if first {
				at := &Atom{Name: fields[0], ID: i + 1, Symbol: fields[0], Molname: "UNK", MolID: 1}
				at.Mass = symbolMass[at.Symbol]
				atoms = append(atoms, at)
			}
		}
		frame, err := xyz.NewMatrix(data)
		if err != nil {
			return nil, errDecorate(err, "XYZRead")
		}
		coords = append(coords, frame)
	}
	if atoms == nil {
		return nil, CError{fmt.Sprintf("no geometries found in %s", xyzname), []string{"XYZRead"}}
	}
	top, _ := NewTopology(atoms, 0, 0)
	top.FillIndexes()
	return NewMolecule(top, coords)
}

//XYZWrite writes the frame frame of mol to the file xyzname in xyz format.
func XYZWrite(xyzname string, mol *Molecule, frame int) error {
	if frame >= len(mol.Coords) {
		return CError{fmt.Sprintf("frame %d requested but only %d present", frame, len(mol.Coords)), []string{"XYZWrite"}}
	}
	f, err := os.Create(xyzname)
	if err != nil {
		return CError{fmt.Sprintf("unable to create %s: %s", xyzname, err.Error()), []string{"XYZWrite"}}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	coords := mol.Coords[frame]
	fmt.Fprintf(w, "%d\n\n", mol.Len())
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		fmt.Fprintf(w, "%-3s %12.6f %12.6f %12.6f\n", at.Symbol, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	return nil
}
