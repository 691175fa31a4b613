/*
 * run_test.go, part of traj2pdb.
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

package frames

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/traj2pdb"
	"github.com/rmera/traj2pdb/traj/amber"
	v3 "github.com/rmera/traj2pdb/v3"
)

const topPDB = `ATOM      1  N   GLY A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       1.450   0.000   0.000  1.00  0.00           C
ATOM      3  O   WAT B   2       5.000   5.000   5.000  1.00  0.00           O
END
`

//writes top.pdb and a NetCDF trajectory with nframes frames for it in a new
//directory, returning both paths. Frame f is the topology moved f/10 A along x.
func writeInputs(Te *testing.T, nframes int, box bool) (string, string) {
	Te.Helper()
	dir := Te.TempDir()
	top := filepath.Join(dir, "top.pdb")
	if err := os.WriteFile(top, []byte(topPDB), 0644); err != nil {
		Te.Fatal(err)
	}
	mol, err := chem.PDBFileRead(top)
	if err != nil {
		Te.Fatal(err)
	}
	trajname := filepath.Join(dir, "prod.nc")
	w, err := amber.NewWriter(trajname, mol.Len(), box)
	if err != nil {
		Te.Fatal(err)
	}
	for f := 0; f < nframes; f++ {
		c := mol.Coords[0].CopyMatrix()
		for i := 0; i < c.NVecs(); i++ {
			c.Set(i, 0, c.At(i, 0)+float64(f)/10)
		}
		if err := w.WNext(c, []float64{30, 30, 30, 90, 90, 90}); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	return trajname, top
}

func TestRunDefaults(Te *testing.T) {
	trajname, top := writeInputs(Te, 100, true)
	var out bytes.Buffer
	if err := Run(context.Background(), trajname, top, Options{}, &out, nil); err != nil {
		Te.Fatal(err)
	}
	dir := filepath.Join(filepath.Dir(top), "top_trajectoryPDB")
	entries, err := os.ReadDir(dir)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 100 {
		Te.Fatalf("expected 100 files in %s, got %d", dir, len(entries))
	}
	if entries[0].Name() != "frame0001_top.pdb" || entries[99].Name() != "frame0100_top.pdb" {
		Te.Errorf("unexpected names %s, %s", entries[0].Name(), entries[99].Name())
	}
	text := out.String()
	for _, l := range []string{
		"Loading trajectory: " + trajname + "\n",
		"Topology: " + top + "\n",
		"Trajectory has 100 frames\n",
		"Extracting frames 1 to 100 (inclusive)\n",
		"Saving 100 PDB files to " + dir + "\n",
		"  ✓ frame0100_top.pdb (100/100)\n",
		"✓ Done!\n",
	} {
		if !strings.Contains(text, l) {
			Te.Errorf("output lacks %q:\n%s", l, text)
		}
	}
	mol, err := chem.PDBFileRead(filepath.Join(dir, "frame0011_top.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	if x := mol.Coords[0].At(1, 0); x < 2.449 || x > 2.451 {
		Te.Errorf("frame 11 should have the CA at x=2.45, got %f", x)
	}
	first, _ := os.ReadFile(filepath.Join(dir, "frame0001_top.pdb"))
	if !bytes.Contains(first, []byte("CRYST1   30.000   30.000   30.000  90.00  90.00  90.00")) {
		Te.Errorf("no box in the output:\n%s", first)
	}
	//again, the same files with the same bytes.
	if err := Run(context.Background(), trajname, top, Options{}, new(bytes.Buffer), nil); err != nil {
		Te.Fatal(err)
	}
	again, _ := os.ReadFile(filepath.Join(dir, "frame0001_top.pdb"))
	if !bytes.Equal(first, again) {
		Te.Error("the output changed on the second run")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 100 {
		Te.Errorf("the second run left %d files", len(entries))
	}
}

func TestRunOptions(Te *testing.T) {
	trajname, top := writeInputs(Te, 50, false)
	outdir := filepath.Join(Te.TempDir(), "deep", "out")
	plot := filepath.Join(Te.TempDir(), "rmsd.png")
	var out bytes.Buffer
	opts := Options{All: true, End: intp(3), Outdir: outdir, PDBName: "sys", Compress: "gzip", Plot: plot}
	if err := Run(context.Background(), trajname, top, opts, &out, nil); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out.String(), "Extracting ALL frames (1 to 50, inclusive)\n") {
		Te.Errorf("unexpected output:\n%s", out.String())
	}
	entries, err := os.ReadDir(outdir)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 50 || entries[49].Name() != "frame0050_sys.pdb.gz" {
		Te.Errorf("expected 50 gzipped files, got %d", len(entries))
	}
	mol, err := chem.PDBFileRead(filepath.Join(outdir, "frame0050_sys.pdb.gz"))
	if err != nil || mol.Len() != 3 {
		Te.Errorf("can't read back the compressed output: %v", err)
	}
	if fi, err := os.Stat(plot); err != nil || fi.Size() == 0 {
		Te.Errorf("no RMSD plot: %v", err)
	}
}

func TestRunRange(Te *testing.T) {
	trajname, top := writeInputs(Te, 20, false)
	for _, c := range []struct {
		opts Options
		n    int
	}{
		{Options{Start: intp(5), End: intp(7)}, 3},
		{Options{Start: intp(10), End: intp(5)}, 0},
	} {
		c.opts.Outdir = Te.TempDir()
		var out bytes.Buffer
		if err := Run(context.Background(), trajname, top, c.opts, &out, nil); err != nil {
			Te.Fatal(err)
		}
		entries, _ := os.ReadDir(c.opts.Outdir)
		if len(entries) != c.n {
			Te.Errorf("%d to %d: expected %d files, got %d", *c.opts.Start, *c.opts.End, c.n, len(entries))
		}
		if !strings.Contains(out.String(), fmt.Sprintf("Saving %d PDB files", c.n)) || !strings.HasSuffix(out.String(), "✓ Done!\n") {
			Te.Errorf("unexpected output:\n%s", out.String())
		}
	}
	if err := Run(context.Background(), trajname, top, Options{Start: intp(0), Outdir: Te.TempDir()}, new(bytes.Buffer), nil); err == nil {
		Te.Error("start 0 should fail")
	}
	if err := Run(context.Background(), trajname, top, Options{All: true, Start: intp(2)}, new(bytes.Buffer), nil); err == nil {
		Te.Error("all and start together should fail")
	}
}

func TestLoad(Te *testing.T) {
	trajname, top := writeInputs(Te, 4, true)
	traj, err := Load(trajname, top, false, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if traj.NFrames() != 4 || traj.Topology().Len() != 3 {
		Te.Errorf("got %d frames of %d atoms", traj.NFrames(), traj.Topology().Len())
	}
	if _, box := traj.Frame(3); len(box) != 6 || box[0] != 30 {
		Te.Errorf("unexpected box %v", box)
	}
	//a topology with a different number of atoms.
	other := filepath.Join(Te.TempDir(), "other.pdb")
	if err := os.WriteFile(other, []byte(strings.SplitAfterN(topPDB, "\n", 2)[0]), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Load(trajname, other, false, nil); err == nil {
		Te.Error("an atom count mismatch should fail")
	}
	if _, err := Load(filepath.Join(Te.TempDir(), "missing.nc"), top, false, nil); err == nil {
		Te.Error("a missing trajectory should fail")
	}
}

func TestLoadMdcrd(Te *testing.T) {
	dir := Te.TempDir()
	top := filepath.Join(dir, "top.pdb")
	if err := os.WriteFile(top, []byte(topPDB), 0644); err != nil {
		Te.Fatal(err)
	}
	//2 frames of 3 atoms with box: 9 values in a line, then the box.
	var b strings.Builder
	b.WriteString("title\n")
	for f := 0; f < 2; f++ {
		for i := 0; i < 9; i++ {
			fmt.Fprintf(&b, "%8.3f", float64(f))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "%8.3f%8.3f%8.3f\n", 20.0, 21.0, 22.0)
	}
	trajname := filepath.Join(dir, "prod.mdcrd")
	if err := os.WriteFile(trajname, []byte(b.String()), 0644); err != nil {
		Te.Fatal(err)
	}
	traj, err := Load(trajname, top, true, nil)
	if err != nil {
		Te.Fatal(err)
	}
	c, box := traj.Frame(1)
	if traj.NFrames() != 2 || c.At(2, 2) != 1 || box[1] != 21 {
		Te.Errorf("got %d frames, last coordinate %f, box %v", traj.NFrames(), c.At(2, 2), box)
	}
}

func TestNewTrajectory(Te *testing.T) {
	top, _ := chem.NewTopology([]*chem.Atom{{Name: "O"}, {Name: "H1"}})
	if _, err := NewTrajectory(top, []*v3.Matrix{v3.Zeros(3)}, nil); err == nil {
		Te.Error("a frame with the wrong number of atoms should fail")
	}
	if _, err := NewTrajectory(top, []*v3.Matrix{v3.Zeros(2)}, [][]float64{}); err == nil {
		Te.Error("a wrong number of boxes should fail")
	}
}
