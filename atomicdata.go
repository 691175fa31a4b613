/*
 * atomicdata.go, part of traj2pdb.
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

import "strings"

//Ions are named like their element in AMBER, with or without a sign,
//e.g. Na+, Cl-, K+, MG, ZN.
var ionNames = map[string]string{
	"NA": "Na",
	"CL": "Cl",
	"K":  "K",
	"MG": "Mg",
	"ZN": "Zn",
	"CA": "Ca",
	"CU": "Cu",
	"FE": "Fe",
	"MN": "Mn",
	"CO": "Co",
	"LI": "Li",
	"RB": "Rb",
	"CS": "Cs",
	"BR": "Br",
	"F":  "F",
	"I":  "I",
}

//symbolFromName guesses a chemical element symbol from a PDB atom name and
//its residue name. Mostly based on AMBER names. Returns an empty string
//if nothing sensible can be guessed.
func symbolFromName(name, molname string) string {
	n := strings.ToUpper(strings.Trim(name, "+-0123456789"))
	m := strings.ToUpper(strings.Trim(molname, "+-0123456789"))
	//an ion is a single-atom residue named like the atom.
	if s, ok := ionNames[n]; ok && n == m {
		return s
	}
	//names like 1HB2 have the element after the digits.
	n = strings.TrimLeft(strings.ToUpper(name), "0123456789")
	if n == "" {
		return ""
	}
	switch n[0] {
	case 'H', 'C', 'N', 'O', 'S', 'P', 'F', 'I', 'K':
		if n[0] == 'S' && strings.HasPrefix(n, "SE") && m == "MSE" {
			return "Se"
		}
		return string(n[0])
	}
	return ""
}
