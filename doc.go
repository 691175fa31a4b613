/*
 * doc.go, part of traj2pdb.
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
Package chem is the main package of traj2pdb. It provides atom, topology and molecule
structures and facilities to read and write PDB files.

	**Capabilities**

	Reads PDB files (all models), plain or gzip/zstd-compressed.

	Writes single-frame PDB files, with unit cell (CRYST1) if known, plain or compressed.

	Defines the Traj interface implemented by the trajectory readers under traj/,
	and the error interfaces they share.

	Calculates the RMSD between sets of coordinates.

The trajectory readers live in traj/amber (AMBER NetCDF) and traj/amberold (ASCII AMBER
trajectories). The package frames puts everything together to export trajectory frames
as PDB files.
*/
package chem
