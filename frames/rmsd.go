/*
 * rmsd.go, part of traj2pdb.
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
	"fmt"

	chem "github.com/rmera/traj2pdb"
	"gonum.org/v1/gonum/stat"
)

//RMSDSeries returns the RMSD of each frame in the 0-based interval [lo, hi) of src
//with respect to frame lo. The first value is always 0.
func RMSDSeries(src Source, lo, hi int) ([]float64, error) {
	if lo < 0 || hi > src.NFrames() || lo >= hi {
		return nil, fmt.Errorf("RMSDSeries: bad interval [%d, %d) for %d frames", lo, hi, src.NFrames())
	}
	ref, _ := src.Frame(lo)
	ret := make([]float64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		c, _ := src.Frame(i)
		r, err := chem.RMSD(c, ref)
		if err != nil {
			return nil, fmt.Errorf("RMSDSeries: frame %d: %w", i+1, err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

//RMSDSummary holds the statistics of an RMSD series.
type RMSDSummary struct {
	Mean, StdDev, Max float64
}

//Summarize returns the mean, standard deviation and maximum of rmsd.
func Summarize(rmsd []float64) RMSDSummary {
	var s RMSDSummary
	if len(rmsd) == 0 {
		return s
	}
	if len(rmsd) == 1 {
		s.Mean = rmsd[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(rmsd, nil)
	}
	for _, v := range rmsd {
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}
