/*
 * geometric.go, part of traj2pdb.
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
	"math"

	v3 "github.com/rmera/traj2pdb/v3"
	"gonum.org/v1/gonum/floats"
)

//RMSD returns the root mean square deviation between the coordinates test and template.
//No superposition is performed, the coordinates are compared as they are. If
//indexes are given, only those atoms are considered.
func RMSD(test, template *v3.Matrix, indexes ...int) (float64, error) {
	if test == nil || template == nil {
		return 0, fmt.Errorf("RMSD: nil coordinates")
	}
	if test.NVecs() != template.NVecs() {
		return 0, fmt.Errorf("RMSD: ill formed matrices for RMSD calculation (%d and %d vectors)", test.NVecs(), template.NVecs())
	}
	if len(indexes) == 0 {
		indexes = make([]int, test.NVecs())
		for i := range indexes {
			indexes[i] = i
		}
	}
	var sq float64
	for _, i := range indexes {
		if i < 0 || i >= test.NVecs() {
			return 0, fmt.Errorf("RMSD: index %d out of range", i)
		}
		d := floats.Distance(test.RawRowView(i), template.RawRowView(i), 2)
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(indexes))), nil
}
