/*
 * nc_test.go, part of traj2pdb.
 *
 * Copyright 2026 The traj2pdb Authors.
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

package amber

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/traj2pdb"
	v3 "github.com/rmera/traj2pdb/v3"
)

//writes a trajectory of nframes frames of natoms atoms, where the coordinates of
//atom i in frame f are (f, i, f+i) and the box of frame f is 10+f.
func writeTestTraj(Te *testing.T, natoms, nframes int, box bool) string {
	Te.Helper()
	name := filepath.Join(Te.TempDir(), "test.nc")
	w, err := NewWriter(name, natoms, box)
	if err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(natoms)
	for f := 0; f < nframes; f++ {
		for i := 0; i < natoms; i++ {
			coords.SetVec(i, []float64{float64(f), float64(i), float64(f + i)})
		}
		b := []float64{10 + float64(f), 10 + float64(f), 10 + float64(f), 90, 90, 90}
		if err := w.WNext(coords, b); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	return name
}

func TestNCWriteRead(Te *testing.T) {
	name := writeTestTraj(Te, 4, 5, true)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	if traj.Len() != 4 || traj.NFrames() != 5 || !traj.HasBox() {
		Te.Fatalf("expected 4 atoms, 5 frames and a box, got %d, %d, %v", traj.Len(), traj.NFrames(), traj.HasBox())
	}
	coords := v3.Zeros(traj.Len())
	box := make([]float64, 6)
	read := 0
	for {
		err := traj.Next(coords, box)
		if err != nil {
			var last chem.LastFrameError
			if !errors.As(err, &last) {
				Te.Fatal(err)
			}
			break
		}
		for i := 0; i < 4; i++ {
			if coords.At(i, 0) != float64(read) || coords.At(i, 1) != float64(i) || coords.At(i, 2) != float64(read+i) {
				Te.Errorf("frame %d atom %d: %v", read, i, coords.Vec(i))
			}
		}
		if box[0] != 10+float64(read) || box[5] != 90 {
			Te.Errorf("frame %d: box %v", read, box)
		}
		read++
	}
	if read != 5 {
		Te.Errorf("read %d frames instead of 5", read)
	}
	if traj.Readable() {
		Te.Error("the trajectory should not be readable after the last frame")
	}
}

func TestNCSkipAndSeek(Te *testing.T) {
	name := writeTestTraj(Te, 3, 6, false)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	if traj.HasBox() {
		Te.Error("trajectory written without box reports a box")
	}
	coords := v3.Zeros(3)
	for i := 0; i < 2; i++ {
		if err := traj.Next(nil); err != nil {
			Te.Fatal(err)
		}
	}
	box := []float64{-1, -1, -1, -1, -1, -1}
	if err := traj.Next(coords, box); err != nil {
		Te.Fatal(err)
	}
	if coords.At(0, 0) != 2 {
		Te.Errorf("expected the third frame after skipping 2, got x=%f", coords.At(0, 0))
	}
	if box[0] != -1 {
		Te.Error("box changed when the trajectory has none")
	}
	if err := traj.Seek(5); err != nil {
		Te.Fatal(err)
	}
	if err := traj.Next(coords); err != nil || coords.At(2, 2) != 7 {
		Te.Errorf("after Seek(5): err %v, z=%f", err, coords.At(2, 2))
	}
	if err := traj.Seek(7); err == nil {
		Te.Error("Seek past the end should fail")
	}
}

func TestNCErrors(Te *testing.T) {
	dir := Te.TempDir()
	if _, err := New(filepath.Join(dir, "missing.nc")); err == nil {
		Te.Error("opening a missing file should fail")
	}
	garbage := filepath.Join(dir, "garbage.nc")
	if err := os.WriteFile(garbage, []byte("this is not a NetCDF file at all"), 0644); err != nil {
		Te.Fatal(err)
	}
	_, err := New(garbage)
	if err == nil {
		Te.Fatal("opening a text file should fail")
	}
	var terr chem.TrajError
	if !errors.As(err, &terr) || !terr.Critical() || terr.FileName() != garbage {
		Te.Errorf("unexpected error %v", err)
	}
	name := writeTestTraj(Te, 3, 1, false)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	if err := traj.Next(v3.Zeros(2)); err == nil {
		Te.Error("reading 3 atoms into 2 vectors should fail")
	}
	if _, err := NewWriter(filepath.Join(dir, "empty.nc"), 0, false); err == nil {
		Te.Error("a writer with 0 atoms should fail")
	}
	w, err := NewWriter(filepath.Join(dir, "boxless.nc"), 3, true)
	if err != nil {
		Te.Fatal(err)
	}
	defer w.Close()
	if err := w.WNext(v3.Zeros(3)); err == nil {
		Te.Error("writing a frame without box into a trajectory with box should fail")
	}
}
