/*
 * kabsch.go, part of mdkit.
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
	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"

	"github.com/avillagran/mdkit/xyz"
)

// superpose computes the rigid transform that moves the coordinate set
// p onto q with the smallest possible RMSD. Both sets must have the
// same number of rows. It returns the rotation matrix together with
// the centroids of p and q; the transform of a point x is
// (x - cp) R + cq.
func superpose(p, q *xyz.Matrix) (*mat.Dense, *xyz.Matrix, *xyz.Matrix, error) {
	n := p.NVecs()
	if n == 0 || q.NVecs() != n {
		return nil, nil, nil, Error{message: ErrNotEnoughAtoms, critical: true}
	}
	cp := p.Mean()
	cq := q.Mean()
	// cross-covariance of the centered sets
	cov := matrix.Zeros(3, 3)
	for i := 0; i < n; i++ {
		pr := p.Row(i)
		qr := q.Row(i)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				cov.Set(a, b, cov.Get(a, b)+(pr[a]-cp.At(0, a))*(qr[b]-cq.At(0, b)))
			}
		}
	}
	u, _, v, err := cov.SVD()
	if err != nil {
		return nil, nil, nil, Error{message: ErrSingularMatrix + ": " + err.Error(), critical: true}
	}
	// flip the smallest singular direction when the optimal transform
	// would otherwise be a reflection
	if u.Det()*v.Det() < 0 {
		for a := 0; a < 3; a++ {
			u.Set(a, 2, -u.Get(a, 2))
		}
	}
	rot, err := u.TimesDense(v.Transpose())
	if err != nil {
		return nil, nil, nil, Error{message: ErrSingularMatrix + ": " + err.Error(), critical: true}
	}
	return mat.NewDense(3, 3, rot.Array()), cp, cq, nil
}

// transform applies the rigid transform from superpose to every row of
// x, returning a new matrix.
func transform(x *xyz.Matrix, rot *mat.Dense, cp, cq *xyz.Matrix) *xyz.Matrix {
	moved := x.Copy()
	moved.SubVec(moved, cp)
	moved.Mul(moved, xyz.Dense2Matrix(rot))
	moved.AddVec(moved, cq)
	return moved
}
