/*
 * bonds.go, part of mdkit.
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
	"fmt"
	"math"

	"github.com/avillagran/mdkit/xyz"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//AssignBonds assigns bonds to the atoms of mol based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
//It might get slow for large systems; it's really not thought for proteins
//or macromolecules.
func AssignBonds(coord *xyz.Matrix, mol *Topology) error {
	mol.FillIndexes()
	bonds := make([]*Bond, 0, 10)
	tot := mol.Len()
	var nextIndex int
	for i := 0; i < tot; i++ {
		at1 := mol.Atom(i)
		at1.Bonds = nil
	}
	for i := 0; i < tot; i++ {
		at1 := mol.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return CError{fmt.Sprintf("unknown covalent radius for %s (atom %d)", at1.Symbol, i), []string{"AssignBonds"}}
		}
		for j := i + 1; j < tot; j++ {
			at2 := mol.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return CError{fmt.Sprintf("unknown covalent radius for %s (atom %d)", at2.Symbol, j), []string{"AssignBonds"}}
			}
			d := dist(coord, i, j)
			if d < tooclose {
				return CError{fmt.Sprintf("atoms %d and %d are too close: %4.2f A", i, j, d), []string{"AssignBonds"}}
			}
			if d <= cov1+cov2+bondtol {
				b := &Bond{Index: nextIndex, At1: at1, At2: at2, Dist: d}
				at1.Bonds = append(at1.Bonds, b)
				at2.Bonds = append(at2.Bonds, b)
				bonds = append(bonds, b)
				nextIndex++
			}
		}
	}
	return nil
}

func dist(coord *xyz.Matrix, i, j int) float64 {
	dx := coord.At(i, 0) - coord.At(j, 0)
	dy := coord.At(i, 1) - coord.At(j, 1)
	dz := coord.At(i, 2) - coord.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
