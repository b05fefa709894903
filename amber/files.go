/*
 * files.go, part of mdkit.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

// writeRst7 writes the first frame of mol as an Amber ASCII restart
// file: a title line, the atom count, then coordinates as 6F12.7.
func writeRst7(path, title string, mol *mdkit.Molecule) error {
	fout, err := os.Create(path)
	if err != nil {
		return Error{message: err.Error(), filename: path, deco: []string{"writeRst7"}, critical: true}
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	fmt.Fprintf(w, "%s\n%5d\n", title, mol.Len())
	c := mol.Coords[0]
	col := 0
	for i := 0; i < mol.Len(); i++ {
		for j := 0; j < 3; j++ {
			fmt.Fprintf(w, "%12.7f", c.At(i, j))
			col++
			if col == 6 {
				fmt.Fprint(w, "\n")
				col = 0
			}
		}
	}
	if col != 0 {
		fmt.Fprint(w, "\n")
	}
	if err := w.Flush(); err != nil {
		return Error{message: err.Error(), filename: path, deco: []string{"writeRst7"}, critical: true}
	}
	return nil
}

// readRst7 reads an Amber ASCII restart file back into a molecule,
// taking the topology from top.
func readRst7(path string, top *mdkit.Topology) (*mdkit.Molecule, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, Error{message: err.Error(), filename: path, deco: []string{"readRst7"}, critical: true}
	}
	defer fin.Close()
	sc := bufio.NewScanner(fin)
	if !sc.Scan() {
		return nil, Error{message: "empty restart file", filename: path, deco: []string{"readRst7"}, critical: true}
	}
	if !sc.Scan() {
		return nil, Error{message: "restart file missing atom count", filename: path, deco: []string{"readRst7"}, critical: true}
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return nil, Error{message: "restart file missing atom count", filename: path, deco: []string{"readRst7"}, critical: true}
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil || natoms != top.Len() {
		return nil, Error{message: "restart file does not match the topology", filename: path, deco: []string{"readRst7"}, critical: true}
	}
	coords := make([]float64, 0, 3*natoms)
	for sc.Scan() && len(coords) < 3*natoms {
		for _, f := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, Error{message: "malformed restart coordinates", filename: path, deco: []string{"readRst7"}, critical: true}
			}
			coords = append(coords, v)
			if len(coords) == 3*natoms {
				break
			}
		}
	}
	if len(coords) < 3*natoms {
		return nil, Error{message: "restart file truncated", filename: path, deco: []string{"readRst7"}, critical: true}
	}
	frame, err := xyz.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "readRst7")
	}
	mol, err := mdkit.NewMolecule(top.CopyAtoms(), []*xyz.Matrix{frame})
	if err != nil {
		return nil, errDecorate(err, "readRst7")
	}
	return mol, nil
}

// writePrm7 writes a minimal Amber topology file for mol: version
// stamp, title, the POINTERS block with the atom count, atom names
// and masses. It is enough for the coordinate tooling in this
// package; a real force field assignment is out of its reach.
func writePrm7(path, title string, mol *mdkit.Molecule) error {
	fout, err := os.Create(path)
	if err != nil {
		return Error{message: err.Error(), filename: path, deco: []string{"writePrm7"}, critical: true}
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	fmt.Fprintf(w, "%%VERSION  VERSION_STAMP = V0001.000\n")
	fmt.Fprintf(w, "%%FLAG TITLE\n%%FORMAT(20a4)\n%s\n", title)
	fmt.Fprintf(w, "%%FLAG POINTERS\n%%FORMAT(10I8)\n")
	pointers := make([]int, 31)
	pointers[0] = mol.Len()
	for i, v := range pointers {
		fmt.Fprintf(w, "%8d", v)
		if (i+1)%10 == 0 {
			fmt.Fprint(w, "\n")
		}
	}
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "%%FLAG ATOM_NAME\n%%FORMAT(20a4)\n")
	for i := 0; i < mol.Len(); i++ {
		fmt.Fprintf(w, "%-4.4s", mol.Atom(i).Name)
		if (i+1)%20 == 0 {
			fmt.Fprint(w, "\n")
		}
	}
	if mol.Len()%20 != 0 {
		fmt.Fprint(w, "\n")
	}
	fmt.Fprintf(w, "%%FLAG MASS\n%%FORMAT(5E16.8)\n")
	for i := 0; i < mol.Len(); i++ {
		fmt.Fprintf(w, "%16.8E", mol.Atom(i).Mass)
		if (i+1)%5 == 0 {
			fmt.Fprint(w, "\n")
		}
	}
	if mol.Len()%5 != 0 {
		fmt.Fprint(w, "\n")
	}
	if err := w.Flush(); err != nil {
		return Error{message: err.Error(), filename: path, deco: []string{"writePrm7"}, critical: true}
	}
	return nil
}

// readPrm7NAtoms returns the atom count from the POINTERS block of an
// Amber topology file.
func readPrm7NAtoms(path string) (int, error) {
	fin, err := os.Open(path)
	if err != nil {
		return 0, Error{message: err.Error(), filename: path, deco: []string{"readPrm7NAtoms"}, critical: true}
	}
	defer fin.Close()
	sc := bufio.NewScanner(fin)
	inPointers := false
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "%FLAG") {
			inPointers = strings.Contains(line, "POINTERS")
			continue
		}
		if !inPointers || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, Error{message: "malformed POINTERS block", filename: path, deco: []string{"readPrm7NAtoms"}, critical: true}
		}
		return n, nil
	}
	return 0, Error{message: "no POINTERS block found", filename: path, deco: []string{"readPrm7NAtoms"}, critical: true}
}

// errDecorate asserts that the error implements mdkit.Error and
// decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(mdkit.Error)
	if !ok {
		return Error{message: err.Error(), deco: []string{caller}, critical: true}
	}
	err2.Decorate(caller)
	return err2
}
