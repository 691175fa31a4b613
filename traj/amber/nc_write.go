/*
 * nc_write.go, part of traj2pdb.
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
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	v3 "github.com/rmera/traj2pdb/v3"
)

//NCWObj is a container for an AMBER NetCDF trajectory opened for writing.
type NCWObj struct {
	natoms   int
	frames   int
	writable bool //Is it ready to be written on
	box      bool //does it store the periodic box?
	filename string
	f        *os.File
	nc       *cdf.File
	buf      []float32
}

//NewWriter creates the AMBER NetCDF trajectory filename for natoms atoms per frame.
//If box is true, every frame also stores the cell lengths and angles.
func NewWriter(filename string, natoms int, box bool) (*NCWObj, error) {
	N := new(NCWObj)
	N.filename = filename
	N.natoms = natoms
	N.box = box
	if err := N.initWrite(); err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	return N, nil
}

func (N *NCWObj) initWrite() error {
	if N.natoms <= 0 {
		return Error{fmt.Sprintf("Can't write a trajectory with %d atoms", N.natoms), N.filename, []string{"initWrite"}, true}
	}
	h := cdf.NewHeader(
		[]string{dFrame, dSpatial, dAtom, dCellSpatial, dCellAngular, dLabel},
		[]int{0, 3, N.natoms, 3, 3, 5})
	h.AddAttribute("", "Conventions", "AMBER")
	h.AddAttribute("", "ConventionVersion", "1.0")
	h.AddAttribute("", "program", "traj2pdb")
	h.AddAttribute("", "programVersion", "1.0")
	h.AddVariable(vTime, []string{dFrame}, float32(0))
	h.AddAttribute(vTime, "units", "picosecond")
	h.AddVariable(vCoords, []string{dFrame, dAtom, dSpatial}, float32(0))
	h.AddAttribute(vCoords, "units", "angstrom")
	if N.box {
		h.AddVariable(vCellLengths, []string{dFrame, dCellSpatial}, float64(0))
		h.AddAttribute(vCellLengths, "units", "angstrom")
		h.AddVariable(vCellAngles, []string{dFrame, dCellAngular}, float64(0))
		h.AddAttribute(vCellAngles, "units", "degree")
	}
	h.Define()
	var err error
	N.f, err = os.Create(N.filename)
	if err != nil {
		return Error{err.Error(), N.filename, []string{"os.Create", "initWrite"}, true}
	}
	N.nc, err = cdf.Create(N.f, h)
	if err != nil {
		N.f.Close()
		return Error{err.Error(), N.filename, []string{"cdf.Create", "initWrite"}, true}
	}
	N.buf = make([]float32, 3*N.natoms)
	N.writable = true
	return nil
}

//Len returns the number of atoms per frame.
func (N *NCWObj) Len() int {
	return N.natoms
}

//WNext writes the next frame to the trajectory. The box, if the trajectory stores one,
//must have at least 6 elements: a, b, c, alpha, beta, gamma.
func (N *NCWObj) WNext(towrite *v3.Matrix, box ...[]float64) error {
	if !N.writable {
		return Error{TrajUnIniWrite, N.filename, []string{"WNext"}, true}
	}
	if towrite == nil {
		return Error{NilCoordinates, N.filename, []string{"WNext"}, true}
	}
	if towrite.NVecs() != N.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", towrite.NVecs(), N.natoms), N.filename, []string{"WNext"}, true}
	}
	if N.box && (len(box) == 0 || len(box[0]) < 6) {
		return Error{"The trajectory stores a box, but no box was given", N.filename, []string{"WNext"}, true}
	}
	for i := 0; i < N.natoms; i++ {
		for j := 0; j < 3; j++ {
			N.buf[3*i+j] = float32(towrite.At(i, j))
		}
	}
	frame := N.frames
	if err := N.write(vCoords, []int{frame, 0, 0}, []int{frame + 1, N.natoms, 3}, N.buf); err != nil {
		return errDecorate(err, "WNext")
	}
	if err := N.write(vTime, []int{frame}, []int{frame + 1}, []float32{float32(frame)}); err != nil {
		return errDecorate(err, "WNext")
	}
	if N.box {
		b := box[0]
		if err := N.write(vCellLengths, []int{frame, 0}, []int{frame + 1, 3}, []float64{b[0], b[1], b[2]}); err != nil {
			return errDecorate(err, "WNext")
		}
		if err := N.write(vCellAngles, []int{frame, 0}, []int{frame + 1, 3}, []float64{b[3], b[4], b[5]}); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	N.frames++
	//Like DCD, the header carries the number of frames, so it must be kept up to date.
	if err := cdf.UpdateNumRecs(N.f); err != nil {
		return Error{err.Error(), N.filename, []string{"cdf.UpdateNumRecs", "WNext"}, true}
	}
	return nil
}

func (N *NCWObj) write(name string, begin, end []int, data interface{}) error {
	w := N.nc.Writer(name, begin, end)
	if _, err := w.Write(data); err != nil {
		return Error{fmt.Sprintf("writing %s: %s", name, err.Error()), N.filename, []string{"cdf.Writer.Write", "write"}, true}
	}
	return nil
}

//Close closes the trajectory. No more frames can be written after this call.
func (N *NCWObj) Close() error {
	if !N.writable {
		return nil
	}
	N.writable = false
	return N.f.Close()
}
