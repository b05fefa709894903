/*
 * kabsch_test.go, part of mdkit.
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
	"math"
	"testing"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

func TestSuperposeRecoversRotation(t *testing.T) {
	// a non-planar set of 4 points
	q, err := xyz.NewMatrix([]float64{
		0, 0, 0,
		1.5, 0, 0,
		0.7, 1.2, 0,
		0.7, 0.4, 1.1,
	})
	if err != nil {
		t.Fatal(err)
	}
	// rotate 40 degrees about z and translate
	a := 40 * math.Pi / 180
	p := xyz.Zeros(4)
	for i := 0; i < 4; i++ {
		r := q.Row(i)
		p.SetRow(i, []float64{
			r[0]*math.Cos(a) - r[1]*math.Sin(a) + 5,
			r[0]*math.Sin(a) + r[1]*math.Cos(a) - 2,
			r[2] + 1,
		})
	}
	rot, cp, cq, err := superpose(p, q)
	if err != nil {
		t.Fatal(err)
	}
	moved := transform(p, rot, cp, cq)
	rmsd, err := mdkit.RMSD(moved, q)
	if err != nil {
		t.Fatal(err)
	}
	if rmsd > 1e-9 {
		t.Errorf("superposition did not recover the rotation, RMSD %g", rmsd)
	}
}

func TestSuperposeMismatched(t *testing.T) {
	if _, _, _, err := superpose(xyz.Zeros(2), xyz.Zeros(3)); err == nil {
		t.Error("expected an error for mismatched coordinate sets")
	}
}
