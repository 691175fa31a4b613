/*
 * nc.go, part of traj2pdb.
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

/*
Package amber reads and writes trajectories in the AMBER NetCDF convention
(https://ambermd.org/netcdf/nctraj.xhtml), i.e. NetCDF "classic" or 64-bit offset
files with a record dimension "frame", a "coordinates" variable of shape
(frame, atom, spatial) in Angstrom and, optionally, "cell_lengths" and "cell_angles"
variables with the periodic box of each frame.
*/
package amber

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/cdf"
	v3 "github.com/rmera/traj2pdb/v3"
)

//Names of the dimensions and variables of the AMBER convention.
const (
	dFrame       = "frame"
	dSpatial     = "spatial"
	dAtom        = "atom"
	dCellSpatial = "cell_spatial"
	dCellAngular = "cell_angular"
	dLabel       = "label"
	vTime        = "time"
	vCoords      = "coordinates"
	vCellLengths = "cell_lengths"
	vCellAngles  = "cell_angles"
)

//NCObj is a container for an AMBER NetCDF trajectory file opened for reading.
type NCObj struct {
	natoms   int
	nframes  int
	current  int  //the frame Next will read
	readable bool //Is it ready to be read?
	hasBox   bool
	filename string
	scale    float64 //scale_factor attribute of the coordinates
	f        *os.File
	nc       *cdf.File
	frame    []float64 //one frame, as float64, whatever the type in the file
}

//New opens the AMBER NetCDF trajectory filename for reading.
func New(filename string) (*NCObj, error) {
	N := new(NCObj)
	N.filename = filename
	if err := N.initRead(); err != nil {
		return nil, errDecorate(err, "New")
	}
	return N, nil
}

func (N *NCObj) initRead() error {
	var err error
	N.f, err = os.Open(N.filename)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), N.filename, []string{"os.Open", "initRead"}, true}
	}
	N.nc, err = cdf.Open(N.f)
	if err != nil {
		N.f.Close()
		return Error{NotAmber + ": " + err.Error(), N.filename, []string{"cdf.Open", "initRead"}, true}
	}
	h := N.nc.Header
	if conv, ok := h.GetAttribute("", "Conventions").(string); ok {
		if !strings.Contains(conv, "AMBER") {
			N.f.Close()
			return Error{fmt.Sprintf("%s: Conventions is %q", NotAmber, conv), N.filename, []string{"initRead"}, true}
		}
		//restart files have coordinates but no frame dimension.
		if strings.Contains(conv, "AMBERRESTART") {
			N.f.Close()
			return Error{"AMBER NetCDF restart files are not trajectories", N.filename, []string{"initRead"}, true}
		}
	}
	dims := h.Dimensions(vCoords)
	if len(dims) != 3 || dims[0] != dFrame || dims[1] != dAtom || dims[2] != dSpatial {
		N.f.Close()
		return Error{fmt.Sprintf("%s: coordinates have dimensions %v", WrongFormat, dims), N.filename, []string{"initRead"}, true}
	}
	lengths := h.Lengths(vCoords)
	if lengths[2] != 3 {
		N.f.Close()
		return Error{fmt.Sprintf("%s: spatial dimension is %d", WrongFormat, lengths[2]), N.filename, []string{"initRead"}, true}
	}
	N.natoms = lengths[1]
	N.nframes = lengths[0]
	if N.nframes <= 0 {
		//streaming files don't store the number of records.
		fi, err := N.f.Stat()
		if err != nil {
			N.f.Close()
			return Error{err.Error(), N.filename, []string{"os.File.Stat", "initRead"}, true}
		}
		N.nframes = int(h.NumRecs(fi.Size()))
	}
	N.scale = 1.0
	if s, ok := attributeFloat(h.GetAttribute(vCoords, "scale_factor")); ok && s != 0 {
		N.scale = s
	}
	N.hasBox = hasVariable(h, vCellLengths) && hasVariable(h, vCellAngles)
	N.frame = make([]float64, 3*N.natoms)
	N.readable = true
	return nil
}

//attributeFloat returns a float64 from a NetCDF numeric attribute, which can come
//as a scalar or as a slice.
func attributeFloat(a interface{}) (float64, bool) {
	switch v := a.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}

func hasVariable(h *cdf.Header, name string) bool {
	for _, v := range h.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (N *NCObj) Readable() bool {
	return N.readable
}

//Len returns the number of atoms per frame in the trajectory.
func (N *NCObj) Len() int {
	return N.natoms
}

//NFrames returns the number of frames in the trajectory.
func (N *NCObj) NFrames() int {
	return N.nframes
}

//HasBox returns true if the trajectory stores the periodic box of each frame.
func (N *NCObj) HasBox() bool {
	return N.hasBox
}

//Close closes the trajectory. It can not be read after this call.
func (N *NCObj) Close() {
	if N == nil || N.f == nil {
		return
	}
	N.f.Close()
	N.readable = false
}

//Seek sets the 0-based frame that the next call to Next will read.
func (N *NCObj) Seek(frame int) error {
	if frame < 0 || frame > N.nframes {
		return Error{fmt.Sprintf("frame %d out of range [0, %d]", frame, N.nframes), N.filename, []string{"Seek"}, true}
	}
	N.current = frame
	N.readable = N.f != nil
	return nil
}

//Next reads the next frame of the trajectory into keep. If keep is nil, the frame is
//skipped. If a box slice with at least 6 elements is given and the trajectory has
//a box, it is filled with a, b, c, alpha, beta and gamma.
//After the last frame it returns an error implementing chem.LastFrameError.
func (N *NCObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !N.readable {
		return Error{TrajUnIni, N.filename, []string{"Next"}, true}
	}
	if N.current >= N.nframes {
		N.readable = false
		return newlastFrameError(N.filename, "Next")
	}
	frame := N.current
	N.current++
	if keep == nil {
		return nil
	}
	if keep.NVecs() != N.natoms {
		return Error{fmt.Sprintf("%s: %d vectors for %d atoms", NotEnoughSpace, keep.NVecs(), N.natoms), N.filename, []string{"Next"}, true}
	}
	r := N.nc.Reader(vCoords, []int{frame, 0, 0}, []int{frame + 1, N.natoms, 3})
	if err := readFloats(r, N.frame); err != nil {
		return Error{fmt.Sprintf("%s %d: %s", ReadError, frame+1, err.Error()), N.filename, []string{"cdf.Reader.Read", "Next"}, true}
	}
	if N.scale != 1 {
		for i := range N.frame {
			N.frame[i] *= N.scale
		}
	}
	for i := 0; i < N.natoms; i++ {
		keep.SetVec(i, N.frame[3*i:3*i+3])
	}
	if len(box) > 0 && len(box[0]) >= 6 && N.hasBox {
		if err := N.readCell(vCellLengths, frame, box[0][:3]); err != nil {
			return errDecorate(err, "Next")
		}
		if err := N.readCell(vCellAngles, frame, box[0][3:6]); err != nil {
			return errDecorate(err, "Next")
		}
	}
	return nil
}

//reads the 3 values of the cell variable name for frame into dst.
func (N *NCObj) readCell(name string, frame int, dst []float64) error {
	r := N.nc.Reader(name, []int{frame, 0}, []int{frame + 1, 3})
	if err := readFloats(r, dst); err != nil {
		return Error{fmt.Sprintf("%s %d: %s: %s", ReadError, frame+1, name, err.Error()), N.filename, []string{"readCell"}, true}
	}
	return nil
}

//readFloats fills dst with exactly len(dst) values from r, converting from
//whatever floating point type the variable has in the file.
func readFloats(r cdf.Reader, dst []float64) error {
	buf := r.Zero(len(dst))
	n, err := r.Read(buf)
	if n != len(dst) {
		if err != nil {
			return fmt.Errorf("read %d of %d values: %w", n, len(dst), err)
		}
		return fmt.Errorf("read %d of %d values", n, len(dst))
	}
	switch b := buf.(type) {
	case []float32:
		for i, v := range b[:n] {
			dst[i] = float64(v)
		}
	case []float64:
		copy(dst, b[:n])
	default:
		return fmt.Errorf("unsupported variable type %T", buf)
	}
	return nil
}
