/*
 * chem.go, part of traj2pdb.
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

package chem

import (
	"fmt"

	v3 "github.com/rmera/traj2pdb/v3"
)

//Atom contains the information of an atom read from a structure file, except
//for the coordinates and b-factors, which live in a v3.Matrix and a slice of
//float64, respectively.
type Atom struct {
	Name      string
	ID        int
	MolName   string //residue name
	MolID     int    //residue number
	Chain     string
	Char16    byte //alternate location indicator
	ICode     byte //residue insertion code
	Occupancy float64
	Charge    float64 //formal charge
	Symbol    string
	Het       bool //HETATM in the PDB file?
}

/*****Topology type***/

//Topology contains the information of a system that does not change along a
//trajectory, i.e. everything except for coordinates, b-factors and box.
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a Topology with the given atoms. The atoms are not copied.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("NewTopology: supplied a nil slice of atoms")
	}
	return &Topology{Atoms: ats}, nil
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Molecule contains a topology and one or more sets of coordinates (frames)
//with their b-factors, as read from a structure file.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
}

//NewMolecule makes a molecule from a topology, coordinates and b-factors.
//Each set of coordinates must have as many vectors as the topology has atoms.
//bfactors can be nil, in which case it is filled with zeros.
func NewMolecule(coords []*v3.Matrix, top *Topology, bfactors [][]float64) (*Molecule, error) {
	if top == nil || len(coords) == 0 {
		return nil, fmt.Errorf("NewMolecule: a topology and at least one set of coordinates are needed")
	}
	for i, c := range coords {
		if c.NVecs() != top.Len() {
			return nil, fmt.Errorf("NewMolecule: frame %d has %d coordinates, but the topology has %d atoms", i, c.NVecs(), top.Len())
		}
	}
	if bfactors == nil {
		bfactors = make([][]float64, len(coords))
	}
	for i := range coords {
		if i >= len(bfactors) {
			bfactors = append(bfactors, nil)
		}
		if len(bfactors[i]) != top.Len() {
			bfactors[i] = make([]float64, top.Len())
		}
	}
	return &Molecule{Topology: top, Coords: coords, Bfactors: bfactors}, nil
}
