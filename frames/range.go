/*
 * range.go, part of traj2pdb.
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
Package frames exports the frames of a molecular dynamics trajectory as individual
PDB files. It resolves the options (frame range, output directory and naming tag),
loads the topology and trajectory, and writes one file per selected frame.

Frames are numbered from 1, and ranges are inclusive at both ends.
*/
package frames

import (
	"errors"
	"fmt"
	"log/slog"
)

//ErrInvalidRange is returned when a range bound is smaller than 1.
var ErrInvalidRange = errors.New("invalid frame range")

//Range is an inclusive range of 1-based frame numbers.
type Range struct {
	Start int
	End   int
	toEnd bool //End is the length of the trajectory, not a frame given by the user
}

//Len returns the number of frames in the range, 0 if End < Start.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d to %d", r.Start, r.End)
}

//Slice converts the range into the 0-based half-open interval [lo, hi) of a
//trajectory with total frames. An End past the last frame is clamped, and an empty
//range gives lo == hi. Either bound being smaller than 1 gives ErrInvalidRange, except
//for an End of 0 set by Options.Range for a trajectory without frames.
//If log is not nil, the adjustments are logged as warnings.
func (r Range) Slice(total int, log *slog.Logger) (lo, hi int, err error) {
	if r.Start < 1 || (r.End < 1 && !r.toEnd) {
		return 0, 0, fmt.Errorf("%w: %s (frames are numbered from 1)", ErrInvalidRange, r)
	}
	if log == nil {
		log = discard
	}
	lo, hi = r.Start-1, r.End
	if hi > total {
		log.Warn("end frame past the end of the trajectory, clamped", "end", r.End, "frames", total)
		hi = total
	}
	if lo > total {
		log.Warn("start frame past the end of the trajectory", "start", r.Start, "frames", total)
		lo = total
	}
	if lo >= hi {
		log.Warn("empty frame range, no files will be written", "range", r.String())
		return lo, lo, nil
	}
	return lo, hi, nil
}
