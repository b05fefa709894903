/*
 * xyz.go, part of mdkit.
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

//Package xyz provides a container for sets of points in 3D space, wrapping
//the gonum dense matrix. Within the package it is understood that a "vector"
//is a row vector, i.e. the cartesian coordinates of a point in 3D space.
package xyz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//Matrix2Dense returns the dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a dense matrix into a Matrix. The matrix must
//have 3 columns, or the function panics.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrShape)
	}
	return &Matrix{A}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F spanning the vectors from i up to, not including, j.
func (F *Matrix) View(i, j int) *Matrix {
	r := F.Dense.Slice(i, j, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Row returns the ith vector as a newly allocated slice.
func (F *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, F.Dense)
}

//SomeVecs fills the receiver with the vectors of A indexed by clist, in the
//given order. The receiver must have exactly len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for i, v := range clist {
		if v >= ar {
			panic(ErrShape)
		}
		F.Set(i, 0, A.At(v, 0))
		F.Set(i, 1, A.At(v, 1))
		F.Set(i, 2, A.At(v, 2))
	}
}

//AddVec adds the 1x3 vector vec to each vector of A and puts the result
//in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	if vec.NVecs() != 1 {
		panic(ErrShape)
	}
	x, y, z := vec.At(0, 0), vec.At(0, 1), vec.At(0, 2)
	for i := 0; i < A.NVecs(); i++ {
		F.Set(i, 0, A.At(i, 0)+x)
		F.Set(i, 1, A.At(i, 1)+y)
		F.Set(i, 2, A.At(i, 2)+z)
	}
}

//SubVec subtracts the 1x3 vector vec from each vector of A and puts the
//result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	neg := Zeros(1)
	neg.Scale(-1, vec.Dense)
	F.AddVec(A, neg)
}

//Mean returns the centroid of the vectors in F as a 1x3 Matrix.
func (F *Matrix) Mean() *Matrix {
	n := F.NVecs()
	ret := Zeros(1)
	for i := 0; i < n; i++ {
		ret.Set(0, 0, ret.At(0, 0)+F.At(i, 0))
		ret.Set(0, 1, ret.At(0, 1)+F.At(i, 1))
		ret.Set(0, 2, ret.At(0, 2)+F.At(i, 2))
	}
	ret.Scale(1/float64(n), ret.Dense)
	return ret
}

//Copy returns a newly allocated copy of F.
func (F *Matrix) Copy() *Matrix {
	ret := Zeros(F.NVecs())
	ret.Dense.Copy(F.Dense)
	return ret
}

//Mul wraps the gonum multiplication to take care of the case when one of
//the arguments is also the receiver.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if C, ok := A.(*Matrix); ok {
		A = C.Dense
	}
	if C, ok := B.(*Matrix); ok {
		B = C.Dense
	}
	if F.Dense == A || F.Dense == B {
		tmp := new(mat.Dense)
		tmp.Mul(A, B)
		F.Dense.Copy(tmp)
		return
	}
	F.Dense.Mul(A, B)
}

//Errors

//Error is the error type for the xyz package. It implements the
//mdkit Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the given string to the decoration slice of the error,
//and returns the resulting slice. An empty string only returns the
//current decoration.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) Critical() bool { return err.critical }

const (
	ErrShape      = "xyz: dimension mismatch"
	ErrNotEnough  = "xyz: not enough elements"
	ErrNilData    = "xyz: nil data given"
	ErrDeterminan = "xyz: only 3x3 determinants are supported"
)
