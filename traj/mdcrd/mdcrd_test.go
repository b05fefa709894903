/*
 * mdcrd_test.go, part of mdkit.
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

package mdcrd

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

const twoFrames = `title line
  0.100   0.200   0.300
  1.100   1.200   1.300
 10.100  10.200  10.300
 11.100  11.200  11.300
`

func writeTraj(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNextReadsFrames(t *testing.T) {
	path := writeTraj(t, "run.mdcrd", twoFrames)
	traj, err := New(path, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()
	if traj.Len() != 2 {
		t.Fatalf("expected 2 atoms, got %d", traj.Len())
	}
	frame := xyz.Zeros(2)
	if err := traj.Next(frame); err != nil {
		t.Fatal(err)
	}
	if frame.At(0, 0) != 0.1 || frame.At(1, 2) != 1.3 {
		t.Errorf("wrong first frame: %v %v", frame.At(0, 0), frame.At(1, 2))
	}
	if err := traj.Next(frame); err != nil {
		t.Fatal(err)
	}
	if frame.At(0, 0) != 10.1 {
		t.Errorf("wrong second frame: %v", frame.At(0, 0))
	}
	err = traj.Next(frame)
	if err == nil {
		t.Fatal("expected an error past the last frame")
	}
	if _, ok := err.(mdkit.LastFrameError); !ok {
		t.Fatalf("end of trajectory must be benign, got %v", err)
	}
	if traj.Readable() {
		t.Error("trajectory still readable after the last frame")
	}
	if traj.Frame() != 2 {
		t.Errorf("expected 2 frames read, got %d", traj.Frame())
	}
}

func TestNextDiscardsWithNil(t *testing.T) {
	path := writeTraj(t, "run.mdcrd", twoFrames)
	traj, err := New(path, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()
	if err := traj.Next(nil); err != nil {
		t.Fatal(err)
	}
	frame := xyz.Zeros(2)
	if err := traj.Next(frame); err != nil {
		t.Fatal(err)
	}
	if frame.At(0, 0) != 10.1 {
		t.Errorf("discarding a frame lost track of the stream: %v", frame.At(0, 0))
	}
}

func TestNextPartialTrailingFrame(t *testing.T) {
	path := writeTraj(t, "run.mdcrd", "title\n0.1 0.2 0.3 1.1 1.2 1.3\n9.9 9.9\n")
	traj, err := New(path, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()
	frame := xyz.Zeros(2)
	if err := traj.Next(frame); err != nil {
		t.Fatal(err)
	}
	err = traj.Next(frame)
	if _, ok := err.(mdkit.LastFrameError); !ok {
		t.Fatalf("truncated last frame must be benign, got %v", err)
	}
}

func TestNextWithBox(t *testing.T) {
	content := "title\n0.1 0.2 0.3 1.1 1.2 1.3\n30.0 30.0 30.0\n"
	path := writeTraj(t, "run.mdcrd", content)
	traj, err := New(path, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()
	frame := xyz.Zeros(2)
	box := make([]float64, 3)
	if err := traj.Next(frame, box); err != nil {
		t.Fatal(err)
	}
	if box[0] != 30 || box[2] != 30 {
		t.Errorf("wrong box dimensions: %v", box)
	}
}

func TestGzipTrajectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.mdcrd.gz")
	fout, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(fout)
	if _, err := gz.Write([]byte(twoFrames)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fout.Close(); err != nil {
		t.Fatal(err)
	}
	traj, err := New(path, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()
	frame := xyz.Zeros(2)
	if err := traj.Next(frame); err != nil {
		t.Fatal(err)
	}
	if frame.At(1, 0) != 1.1 {
		t.Errorf("wrong coordinates from compressed file: %v", frame.At(1, 0))
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("/no/such/file", 2, false); err == nil {
		t.Error("expected an error for a missing file")
	}
	path := writeTraj(t, "run.mdcrd", twoFrames)
	if _, err := New(path, 0, false); err == nil {
		t.Error("expected an error for zero atoms")
	}
}
