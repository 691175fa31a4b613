/*
 * crd_test.go, part of traj2pdb.
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

package amberold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/traj2pdb"
	v3 "github.com/rmera/traj2pdb/v3"
)

//writes an mdcrd file where atom i of frame f is at (f, -i*100, i+0.5)
//so some fields touch each other.
func writeMdcrd(Te *testing.T, natoms, nframes int, box bool) string {
	Te.Helper()
	var b strings.Builder
	b.WriteString("Cpptraj generated trajectory\n")
	for f := 0; f < nframes; f++ {
		n := 0
		for i := 0; i < natoms; i++ {
			for _, v := range []float64{float64(f), -100 * float64(i), float64(i) + 0.5} {
				fmt.Fprintf(&b, "%8.3f", v)
				n++
				if n%10 == 0 {
					b.WriteString("\n")
				}
			}
		}
		if n%10 != 0 {
			b.WriteString("\n")
		}
		if box {
			fmt.Fprintf(&b, "%8.3f%8.3f%8.3f\n", 40+float64(f), 41.0, 42.0)
		}
	}
	name := filepath.Join(Te.TempDir(), "test.mdcrd")
	if err := os.WriteFile(name, []byte(b.String()), 0644); err != nil {
		Te.Fatal(err)
	}
	return name
}

func TestCrdRead(Te *testing.T) {
	for _, withBox := range []bool{false, true} {
		name := writeMdcrd(Te, 7, 4, withBox)
		traj, err := New(name, 7, withBox)
		if err != nil {
			Te.Fatal(err)
		}
		if traj.NFrames() != 4 || traj.Len() != 7 || traj.HasBox() != withBox {
			Te.Errorf("box %v: %d frames of %d atoms", withBox, traj.NFrames(), traj.Len())
		}
		coords := v3.Zeros(7)
		box := make([]float64, 6)
		read := 0
		for ; ; read++ {
			err := traj.Next(coords, box)
			if err != nil {
				var last chem.LastFrameError
				if !errors.As(err, &last) {
					Te.Fatal(err)
				}
				break
			}
			if coords.At(6, 0) != float64(read) || coords.At(6, 1) != -600 || coords.At(6, 2) != 6.5 {
				Te.Errorf("box %v, frame %d: last atom at %v", withBox, read, coords.Vec(6))
			}
			if withBox && (box[0] != 40+float64(read) || box[3] != 90) {
				Te.Errorf("frame %d: box %v", read, box)
			}
		}
		if read != 4 {
			Te.Errorf("box %v: read %d frames instead of 4", withBox, read)
		}
		traj.Close()
	}
}

func TestCrdSkip(Te *testing.T) {
	name := writeMdcrd(Te, 4, 3, true)
	traj, err := New(name, 4, true)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	if err := traj.Next(nil); err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(4)
	if err := traj.Next(coords); err != nil {
		Te.Fatal(err)
	}
	if coords.At(0, 0) != 1 {
		Te.Errorf("expected the second frame, got x=%f", coords.At(0, 0))
	}
}

func TestCrdErrors(Te *testing.T) {
	name := writeMdcrd(Te, 7, 2, true)
	if _, err := New(name, 6, true); err == nil {
		Te.Error("a wrong number of atoms should be detected")
	}
	if _, err := New(name, 7, false); err == nil {
		Te.Error("a wrong box setting should be detected")
	}
	if _, err := New(name, 0, true); err == nil {
		Te.Error("0 atoms should fail")
	}
	if _, err := New(filepath.Join(Te.TempDir(), "missing.mdcrd"), 7, false); err == nil {
		Te.Error("a missing file should fail")
	}
	traj, err := New(name, 7, true)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	if err := traj.Next(v3.Zeros(3)); err == nil {
		Te.Error("reading 7 atoms into 3 vectors should fail")
	}
}

func TestParseFields(Te *testing.T) {
	dst := make([]float64, 3)
	n, err := parseFields("   1.000-100.000-200.500", dst)
	if err != nil || n != 3 || dst[1] != -100 || dst[2] != -200.5 {
		Te.Errorf("got %v, %d, %v", dst, n, err)
	}
	if _, err := parseFields("   1.000   2.000   3.000   4.000", dst); err == nil {
		Te.Error("too many values should fail")
	}
	if _, err := parseFields("   1.000   x.000", dst); err == nil {
		Te.Error("a broken value should fail")
	}
}
