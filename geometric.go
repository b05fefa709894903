/*
 * geometric.go, part of mdkit.
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

//RMSD returns the root of the mean square deviation for the sets of
//cartesian coordinates in test and template, in the order given.
//No superposition is performed.
func RMSD(test, template *xyz.Matrix) (float64, error) {
	tmr := template.NVecs()
	tsr := test.NVecs()
	if tmr != tsr {
		return 0, fmt.Errorf("mdkit: ill formed matrices for RMSD calculation: %d vs %d vectors", tsr, tmr)
	}
	var rmsd float64
	for i := 0; i < tmr; i++ {
		dx := test.At(i, 0) - template.At(i, 0)
		dy := test.At(i, 1) - template.At(i, 1)
		dz := test.At(i, 2) - template.At(i, 2)
		rmsd += dx*dx + dy*dy + dz*dz
	}
	rmsd = rmsd / float64(tmr)
	return math.Sqrt(rmsd), nil
}

//CenterOfMass returns the center of mass of the atoms represented by the
//coordinates in geometry and the masses in mass. If mass is nil, it
//returns the geometric center.
func CenterOfMass(geometry *xyz.Matrix, mass []float64) (*xyz.Matrix, error) {
	if geometry == nil {
		return nil, fmt.Errorf("mdkit: nil matrix to get the center of mass")
	}
	gr := geometry.NVecs()
	if mass != nil && len(mass) != gr {
		return nil, fmt.Errorf("mdkit: inconsistent masses(%d)/coordinates(%d)", len(mass), gr)
	}
	ret := xyz.Zeros(1)
	var total float64
	for i := 0; i < gr; i++ {
		m := 1.0
		if mass != nil {
			m = mass[i]
		}
		ret.Set(0, 0, ret.At(0, 0)+geometry.At(i, 0)*m)
		ret.Set(0, 1, ret.At(0, 1)+geometry.At(i, 1)*m)
		ret.Set(0, 2, ret.At(0, 2)+geometry.At(i, 2)*m)
		total += m
	}
	ret.Scale(1/total, ret.Dense)
	return ret, nil
}

//MassCentrate centers in in the center of mass of oref. If mass is nil the
//geometric center is used. Returns the centered matrix and the
//displacement vector.
func MassCentrate(in, oref *xyz.Matrix, mass []float64) (*xyz.Matrix, *xyz.Matrix, error) {
	center, err := CenterOfMass(oref, mass)
	if err != nil {
		return nil, nil, err
	}
	centered := xyz.Zeros(in.NVecs())
	centered.SubVec(in, center)
	return centered, center, nil
}
