/*
 * crd.go, part of traj2pdb.
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
Package amberold reads ASCII AMBER trajectories (mdcrd). These files have a title line
followed, for each frame, by the 3N coordinates in F8.3 fields, 10 per line, and
optionally by a line with the box lengths. Since the format does not record the number
of atoms, it must be given when the trajectory is opened.
*/
package amberold

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/traj2pdb/v3"
)

const (
	fieldWidth    = 8
	fieldsPerLine = 10
)

//CrdObj is a container for an ASCII AMBER trajectory file.
type CrdObj struct {
	natoms   int
	nframes  int
	readable bool //Is it ready to be read?
	box      bool //is there a box line after each frame?
	filename string
	ioread   *os.File
	crd      *bufio.Reader
	values   []float64 //one frame
}

//New opens the ASCII AMBER trajectory filename, with ats atoms per frame.
//box must be true if each frame is followed by a line with the box lengths.
func New(filename string, ats int, box bool) (*CrdObj, error) {
	if ats <= 0 {
		return nil, Error{fmt.Sprintf("%d atoms per frame", ats), filename, []string{"New"}, true}
	}
	C := new(CrdObj)
	C.filename = filename
	C.natoms = ats
	C.box = box
	C.values = make([]float64, 3*ats)
	if err := C.count(); err != nil {
		return nil, errDecorate(err, "New")
	}
	var err error
	C.ioread, err = os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Open", "New"}, true}
	}
	C.crd = bufio.NewReader(C.ioread)
	//The first line is just a title
	if _, err := C.crd.ReadString('\n'); err != nil {
		C.ioread.Close()
		return nil, Error{"Unable to read the title line: " + err.Error(), filename, []string{"New"}, true}
	}
	C.readable = true
	return C, nil
}

//linesPerFrame returns how many lines each frame takes, box included.
func (C *CrdObj) linesPerFrame() int {
	l := (3*C.natoms + fieldsPerLine - 1) / fieldsPerLine
	if C.box {
		l++
	}
	return l
}

//count sets the number of frames from the number of non-empty lines in the file.
func (C *CrdObj) count() error {
	f, err := os.Open(C.filename)
	if err != nil {
		return Error{UnableToOpen, C.filename, []string{"os.Open", "count"}, true}
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := -1 //the title
	for s.Scan() {
		if strings.TrimSpace(s.Text()) != "" {
			lines++
		}
	}
	if err := s.Err(); err != nil {
		return Error{err.Error(), C.filename, []string{"bufio.Scanner.Scan", "count"}, true}
	}
	if lines < 0 {
		return Error{"Empty file", C.filename, []string{"count"}, true}
	}
	lpf := C.linesPerFrame()
	if lines%lpf != 0 {
		return Error{fmt.Sprintf("%s: %d lines are not a whole number of %d-line frames. Wrong number of atoms or box setting?", WrongFormat, lines, lpf), C.filename, []string{"count"}, true}
	}
	C.nframes = lines / lpf
	return nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (C *CrdObj) Readable() bool {
	return C.readable
}

//Len returns the number of atoms per frame.
func (C *CrdObj) Len() int {
	return C.natoms
}

//NFrames returns the number of frames in the trajectory.
func (C *CrdObj) NFrames() int {
	return C.nframes
}

//HasBox returns true if the trajectory stores the box of each frame.
func (C *CrdObj) HasBox() bool {
	return C.box
}

//Close closes the trajectory file.
func (C *CrdObj) Close() {
	if C == nil || C.ioread == nil {
		return
	}
	C.ioread.Close()
	C.readable = false
}

//Next reads the next frame into keep. If keep is nil, the frame is discarded.
//If a box slice with at least 6 elements is given and the trajectory has a box,
//the lengths are put in its first 3 elements and the angles are set to 90 degrees.
//After the last frame it returns an error implementing chem.LastFrameError.
func (C *CrdObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !C.readable {
		return Error{TrajUnIni, C.filename, []string{"Next"}, true}
	}
	if keep != nil && keep.NVecs() != C.natoms {
		return Error{fmt.Sprintf("%s: %d vectors for %d atoms", NotEnoughSpace, keep.NVecs(), C.natoms), C.filename, []string{"Next"}, true}
	}
	read := 0
	for read < len(C.values) {
		line, err := C.readLine()
		if err == io.EOF && read == 0 {
			C.readable = false
			return newlastFrameError(C.filename, "Next")
		}
		if err != nil {
			C.readable = false
			return Error{fmt.Sprintf("%s: %s", ReadError, err.Error()), C.filename, []string{"Next"}, true}
		}
		n, err := parseFields(line, C.values[read:])
		if err != nil {
			return Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), C.filename, []string{"parseFields", "Next"}, true}
		}
		read += n
	}
	if C.box {
		line, err := C.readLine()
		if err != nil {
			C.readable = false
			return Error{"Unable to read the box: " + err.Error(), C.filename, []string{"Next"}, true}
		}
		lengths := make([]float64, 3)
		if n, err := parseFields(line, lengths); err != nil || n != 3 {
			return Error{fmt.Sprintf("%s: box line %q", WrongFormat, line), C.filename, []string{"Next"}, true}
		}
		if len(box) > 0 && len(box[0]) >= 6 {
			copy(box[0], lengths)
			box[0][3], box[0][4], box[0][5] = 90, 90, 90
		}
	}
	if keep == nil {
		return nil
	}
	for i := 0; i < C.natoms; i++ {
		keep.SetVec(i, C.values[3*i:3*i+3])
	}
	return nil
}

//readLine returns the next non-empty line, without the line break.
func (C *CrdObj) readLine() (string, error) {
	for {
		line, err := C.crd.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) != "" {
			return trimmed, nil
		}
		if err != nil {
			return "", err
		}
	}
}

//parseFields reads the F8.3 fields in line into dst, returning how many were read.
//The fields can touch each other, as in "-100.000-200.000", so they are taken by
//column and not split on spaces.
func parseFields(line string, dst []float64) (int, error) {
	n := 0
	for start := 0; start < len(line); start += fieldWidth {
		end := start + fieldWidth
		if end > len(line) {
			end = len(line)
		}
		field := strings.TrimSpace(line[start:end])
		if field == "" {
			continue
		}
		if n >= len(dst) {
			return n, fmt.Errorf("more than %d values in line", len(dst))
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return n, err
		}
		dst[n] = v
		n++
	}
	return n, nil
}
