/*
 * xyz_test.go, part of mdkit.
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

package xyz

import (
	"math"
	"testing"
)

func TestNewMatrix(t *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if A.NVecs() != 2 {
		t.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		t.Errorf("wrong element: %v", A.At(1, 2))
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		t.Error("expected an error for a slice not divisible by 3")
	}
}

func TestMeanAndSubVec(t *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 4, 6})
	m := A.Mean()
	if m.At(0, 0) != 1 || m.At(0, 1) != 2 || m.At(0, 2) != 3 {
		t.Errorf("wrong centroid: %v %v %v", m.At(0, 0), m.At(0, 1), m.At(0, 2))
	}
	A.SubVec(A, m)
	if A.At(0, 0) != -1 || A.At(1, 2) != 3 {
		t.Errorf("wrong centered matrix: %v %v", A.At(0, 0), A.At(1, 2))
	}
	centered := A.Mean()
	for j := 0; j < 3; j++ {
		if math.Abs(centered.At(0, j)) > 1e-12 {
			t.Errorf("centroid not at origin after centering: %v", centered.At(0, j))
		}
	}
}

func TestSomeVecs(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2, 3, 3, 3})
	B := Zeros(2)
	B.SomeVecs(A, []int{2, 0})
	if B.At(0, 0) != 3 || B.At(1, 0) != 1 {
		t.Errorf("wrong selection: %v %v", B.At(0, 0), B.At(1, 0))
	}
}

func TestVecViewShares(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		t.Error("view does not share storage with the matrix")
	}
	c := A.Copy()
	c.Set(0, 0, 99)
	if A.At(0, 0) == 99 {
		t.Error("Copy shares storage with the original")
	}
}

func TestMulAliasing(t *testing.T) {
	rot, _ := NewMatrix([]float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	A, _ := NewMatrix([]float64{1, 0, 0})
	A.Mul(A, rot)
	if A.At(0, 0) != 0 || A.At(0, 1) != -1 {
		t.Errorf("aliased multiplication wrong: %v %v", A.At(0, 0), A.At(0, 1))
	}
}
