/*
 * load.go, part of traj2pdb.
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
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	chem "github.com/rmera/traj2pdb"
	"github.com/rmera/traj2pdb/traj/amber"
	"github.com/rmera/traj2pdb/traj/amberold"
	v3 "github.com/rmera/traj2pdb/v3"
)

//Source is a collection of frames that share a topology.
type Source interface {
	NFrames() int
	//Frame returns the coordinates of the 0-based frame i and its box
	//(a, b, c, alpha, beta, gamma), or nil if the frame has no box.
	Frame(i int) (*v3.Matrix, []float64)
	Topology() chem.Atomer
}

//Trajectory is a topology and all the frames of a trajectory, in memory.
type Trajectory struct {
	top    *chem.Topology
	coords []*v3.Matrix
	boxes  [][]float64 //nil if the trajectory has no box
}

//NewTrajectory builds a Trajectory from a topology and its frames. boxes can be nil.
func NewTrajectory(top *chem.Topology, coords []*v3.Matrix, boxes [][]float64) (*Trajectory, error) {
	if top == nil {
		return nil, fmt.Errorf("NewTrajectory: nil topology")
	}
	if boxes != nil && len(boxes) != len(coords) {
		return nil, fmt.Errorf("NewTrajectory: %d boxes for %d frames", len(boxes), len(coords))
	}
	for i, c := range coords {
		if c.NVecs() != top.Len() {
			return nil, fmt.Errorf("NewTrajectory: frame %d has %d atoms, the topology %d", i+1, c.NVecs(), top.Len())
		}
	}
	return &Trajectory{top: top, coords: coords, boxes: boxes}, nil
}

//NFrames returns the number of frames.
func (T *Trajectory) NFrames() int { return len(T.coords) }

//Topology returns the topology shared by all frames.
func (T *Trajectory) Topology() chem.Atomer { return T.top }

//Frame returns the coordinates and box of the 0-based frame i.
func (T *Trajectory) Frame(i int) (*v3.Matrix, []float64) {
	if T.boxes == nil {
		return T.coords[i], nil
	}
	return T.coords[i], T.boxes[i]
}

//reader is what Load needs from a trajectory reader.
type reader interface {
	chem.Traj
	NFrames() int
	HasBox() bool
	Close()
}

//Formats recognized by extension.
var (
	netCDFExt = []string{".nc", ".ncdf", ".netcdf"}
	mdcrdExt  = []string{".mdcrd", ".crd", ".trj", ".x"}
)

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

//IsMdcrd returns true if the trajectory name has an ASCII AMBER extension.
//Anything else is read as AMBER NetCDF.
func IsMdcrd(name string) bool {
	return hasExt(name, mdcrdExt)
}

func openTraj(name string, natoms int, mdcrdBox bool) (reader, error) {
	if IsMdcrd(name) {
		t, err := amberold.New(name, natoms, mdcrdBox)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	t, err := amber.New(name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

//Load reads the topology PDB and then all the frames of the trajectory trajname.
//mdcrdBox tells whether an ASCII trajectory has a box line after each frame.
//The number of atoms in the trajectory must match the topology.
func Load(trajname, topname string, mdcrdBox bool, log *slog.Logger) (*Trajectory, error) {
	if log == nil {
		log = discard
	}
	mol, err := chem.PDBFileRead(topname)
	if err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}
	log.Debug("read topology", "file", topname, "atoms", mol.Len())
	if !IsMdcrd(trajname) && !hasExt(trajname, netCDFExt) {
		log.Warn("unknown trajectory extension, reading as AMBER NetCDF", "file", trajname)
	}
	traj, err := openTraj(trajname, mol.Len(), mdcrdBox)
	if err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}
	defer traj.Close()
	if traj.Len() != mol.Len() {
		return nil, fmt.Errorf("trajectory %s has %d atoms, but topology %s has %d", trajname, traj.Len(), topname, mol.Len())
	}
	log.Debug("opened trajectory", "file", trajname, "atoms", traj.Len(), "frames", traj.NFrames(), "box", traj.HasBox())
	coords := make([]*v3.Matrix, 0, traj.NFrames())
	var boxes [][]float64
	if traj.HasBox() {
		boxes = make([][]float64, 0, traj.NFrames())
	}
	for {
		c := v3.Zeros(traj.Len())
		box := make([]float64, 6)
		err := traj.Next(c, box)
		if err != nil {
			var last chem.LastFrameError
			if errors.As(err, &last) {
				break
			}
			return nil, fmt.Errorf("trajectory: frame %d: %w", len(coords)+1, err)
		}
		coords = append(coords, c)
		if boxes != nil {
			boxes = append(boxes, box)
		}
	}
	log.Debug("read trajectory", "frames", len(coords))
	return NewTrajectory(mol.Topology, coords, boxes)
}
