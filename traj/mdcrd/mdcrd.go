/*
 * mdcrd.go, part of mdkit.
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

// Package mdcrd reads ASCII Amber trajectory files, plain or
// compressed with gzip or zstd.
package mdcrd

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

var _ mdkit.Traj = (*Traj)(nil)

// Traj is a handle for an open Amber trajectory file. Coordinates are
// free-format whitespace separated numbers, 3 per atom per frame,
// with one title line at the top of the file. When the trajectory
// carries periodic box dimensions, each frame is followed by 3 more
// numbers.
type Traj struct {
	natoms   int
	readable bool
	filename string
	box      bool
	fio      io.Closer
	zio      io.Closer
	words    *bufio.Scanner
	frame    int
}

// New opens the trajectory in filename, holding natoms atoms per
// frame, and leaves it ready to be read. Files ending in .gz or .zst
// are decompressed on the fly. box tells the reader whether each
// frame ends with box dimensions.
func New(filename string, natoms int, box bool) (*Traj, error) {
	if natoms <= 0 {
		return nil, Error{message: "the number of atoms must be positive", filename: filename, critical: true}
	}
	fio, err := os.Open(filename)
	if err != nil {
		return nil, Error{message: UnableToOpen, filename: filename, deco: []string{"New"}, critical: true}
	}
	traj := &Traj{natoms: natoms, filename: filename, box: box, fio: fio}
	var r io.Reader = fio
	switch {
	case strings.HasSuffix(filename, ".gz"):
		gz, err := gzip.NewReader(fio)
		if err != nil {
			fio.Close()
			return nil, Error{message: WrongFormat + ": " + err.Error(), filename: filename, deco: []string{"New"}, critical: true}
		}
		traj.zio = gz
		r = gz
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(fio)
		if err != nil {
			fio.Close()
			return nil, Error{message: WrongFormat + ": " + err.Error(), filename: filename, deco: []string{"New"}, critical: true}
		}
		traj.zio = zr.IOReadCloser()
		r = zr
	}
	lines := bufio.NewReader(r)
	if _, err := lines.ReadString('\n'); err != nil {
		traj.Close()
		return nil, Error{message: "missing title line", filename: filename, deco: []string{"New"}, critical: true}
	}
	traj.words = bufio.NewScanner(lines)
	traj.words.Split(bufio.ScanWords)
	traj.readable = true
	return traj, nil
}

// Readable returns true if the trajectory is ready to be read from.
// It does not guarantee that another frame is present.
func (T *Traj) Readable() bool {
	return T.readable
}

// Next reads the next frame into keep, which must have room for at
// least as many rows as the trajectory has atoms. A nil keep discards
// the frame. If a box slice of length 3 or more is given and the
// trajectory carries box dimensions, they are stored there. Running
// out of frames returns an error implementing LastFrameError and
// marks the trajectory unreadable.
func (T *Traj) Next(keep *xyz.Matrix, box ...[]float64) error {
	if !T.readable {
		return Error{message: TrajUnIni, filename: T.filename, deco: []string{"Next"}, critical: true}
	}
	if keep != nil && keep.NVecs() < T.natoms {
		return Error{message: NotEnoughSpace, filename: T.filename, deco: []string{"Next"}, critical: true}
	}
	for i := 0; i < T.natoms; i++ {
		for j := 0; j < 3; j++ {
			v, err := T.next()
			if err == io.EOF {
				T.readable = false
				return newlastFrameError(T.filename, "Next")
			}
			if err != nil {
				T.readable = false
				return Error{message: WrongFormat + ": " + err.Error(), filename: T.filename, deco: []string{"Next"}, critical: true}
			}
			if keep != nil {
				keep.Set(i, j, v)
			}
		}
	}
	if T.box {
		for j := 0; j < 3; j++ {
			v, err := T.next()
			if err == io.EOF {
				T.readable = false
				return newlastFrameError(T.filename, "Next")
			}
			if err != nil {
				T.readable = false
				return Error{message: WrongFormat + ": " + err.Error(), filename: T.filename, deco: []string{"Next"}, critical: true}
			}
			if len(box) > 0 && len(box[0]) > j {
				box[0][j] = v
			}
		}
	}
	T.frame++
	return nil
}

// next returns the next number in the coordinate stream.
func (T *Traj) next() (float64, error) {
	if !T.words.Scan() {
		if err := T.words.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	v, err := strconv.ParseFloat(T.words.Text(), 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Len returns the number of atoms per frame.
func (T *Traj) Len() int {
	return T.natoms
}

// Frame returns the number of frames read so far.
func (T *Traj) Frame() int {
	return T.frame
}

// Close closes the underlying file. The trajectory is no longer
// readable afterwards.
func (T *Traj) Close() {
	T.readable = false
	if T.zio != nil {
		T.zio.Close()
		T.zio = nil
	}
	if T.fio != nil {
		T.fio.Close()
		T.fio = nil
	}
}
