/*
 * pdb.go, part of traj2pdb.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	v3 "github.com/rmera/traj2pdb/v3"
)

//PDB_read family

//The shortest ATOM/HETATM line that still has the three coordinates.
const pdbMinLine = 54

//parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates and b-factors, which are returned
//separately as an array of 3 float64 and a float64, respectively.
//index is the 0-based position of the atom in the file, used when the serial
//number can't be read (i.e. hexadecimal serials in very large systems).
func readFullPDBLine(line string, index int) (*Atom, [3]float64, float64, error) {
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	var err error
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		atom.ID = index + 1
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Char16 = line[16]
	atom.MolName = strings.TrimSpace(line[17:21])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, [3]float64{}, 0, fmt.Errorf("residue number: %w", err)
	}
	atom.ICode = line[26]
	coords, bfactor, err := readOnlyCoordsPDBLine(line)
	if err != nil {
		return nil, coords, 0, err
	}
	atom.Occupancy = 1.0
	if len(line) >= 60 {
		if o, err := strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64); err == nil {
			atom.Occupancy = o
		}
	}
	//the element and charge columns are optional. Whatever is missing is guessed
	//or left empty.
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	if len(line) >= 80 {
		atom.Charge = parseFormalCharge(line[78:80])
	}
	if atom.Symbol == "" {
		atom.Symbol = symbolFromName(atom.Name, atom.MolName)
	}
	return atom, coords, bfactor, nil
}

//parses the formal charge columns, i.e. "1+" or "2-". Anything else is 0.
func parseFormalCharge(s string) float64 {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return 0
	}
	v, err := strconv.Atoi(s[:1])
	if err != nil {
		return 0
	}
	switch s[1] {
	case '+':
		return float64(v)
	case '-':
		return -float64(v)
	}
	return 0
}

//Parses a PDB line if only the coordinates and bfactors are to be read.
//A missing b-factor is read as 0.
func readOnlyCoordsPDBLine(line string) ([3]float64, float64, error) {
	var coords [3]float64
	var err error
	if len(line) < pdbMinLine {
		return coords, 0, fmt.Errorf("line too short to contain coordinates: %q", strings.TrimSpace(line))
	}
	for i := 0; i < 3; i++ {
		field := line[30+8*i : 38+8*i]
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return coords, 0, fmt.Errorf("coordinate %d: %w", i, err)
		}
	}
	var bfactor float64
	if len(line) >= 66 {
		bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	return coords, bfactor, nil
}

//PDBFileRead reads the atomic entries of the PDB file pdbname and returns them as a Molecule.
//Files ending in ".gz" or ".zst" are decompressed transparently.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := openMaybeCompressed(pdbname)
	if err != nil {
		return nil, fmt.Errorf("PDBFileRead: %w", err)
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, fmt.Errorf("PDBFileRead %s: %w", pdbname, err)
	}
	return mol, nil
}

//PDBRead reads the ATOM and HETATM records of a PDB from pdb. The atoms are taken
//from the first model, each model (or the single, MODEL-less, structure) supplies one set of coordinates.
//Every model must have the same number of atoms as the first one.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	atoms := make([]*Atom, 0)
	coords := [][]float64{make([]float64, 0)}
	bfactors := [][]float64{make([]float64, 0)}
	firstModel := true //are we reading the first model? if not we only save coordinates
	sc := bufio.NewScanner(pdb)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	nline := 0
	for sc.Scan() {
		nline++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			if len(line) < pdbMinLine {
				return nil, fmt.Errorf("line %d: too short for an atom record", nline)
			}
			var c [3]float64
			var bf float64
			var err error
			if firstModel {
				var at *Atom
				at, c, bf, err = readFullPDBLine(line, len(atoms))
				if err == nil {
					atoms = append(atoms, at)
				}
			} else {
				c, bf, err = readOnlyCoordsPDBLine(line)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", nline, err)
			}
			last := len(coords) - 1
			coords[last] = append(coords[last], c[0], c[1], c[2])
			bfactors[last] = append(bfactors[last], bf)
		case strings.HasPrefix(line, "ENDMDL"):
			if len(atoms) > 0 {
				firstModel = false
			}
		case strings.HasPrefix(line, "MODEL"):
			//A new model after the first one gets a new set of coordinates
			if !firstModel {
				coords = append(coords, make([]float64, 0, 3*len(atoms)))
				bfactors = append(bfactors, make([]float64, 0, len(atoms)))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("no atoms found")
	}
	//A trailing MODEL with no atoms is just dropped.
	if last := len(coords) - 1; last > 0 && len(coords[last]) == 0 {
		coords = coords[:last]
		bfactors = bfactors[:last]
	}
	mcoords := make([]*v3.Matrix, len(coords))
	for i, c := range coords {
		if len(c) != 3*len(atoms) {
			return nil, fmt.Errorf("model %d has %d atoms, the first one has %d", i+1, len(c)/3, len(atoms))
		}
		var err error
		mcoords[i], err = v3.NewMatrix(c)
		if err != nil {
			return nil, err
		}
	}
	top, err := NewTopology(atoms)
	if err != nil {
		return nil, err
	}
	return NewMolecule(mcoords, top, bfactors)
}

//End PDB_read family

//PDBFileWrite writes a single-model PDB file with name pdbname for the coordinates coords
//and the topology mol. bfact (can be nil) gives the b-factors and box (can be nil) the
//unit cell as a, b, c, alpha, beta, gamma. If the file exists it is overwritten. Names
//ending in ".gz" or ".zst" are compressed.
func PDBFileWrite(pdbname string, coords *v3.Matrix, mol Atomer, bfact []float64, box []float64) error {
	out, err := createMaybeCompressed(pdbname)
	if err != nil {
		return fmt.Errorf("PDBFileWrite: %w", err)
	}
	err = PDBWrite(out, coords, mol, bfact, box)
	//the compressed streams are only flushed on close.
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("PDBFileWrite %s: %w", pdbname, err)
	}
	return nil
}

//PDBWrite writes a single-model PDB for the coordinates coords and the topology mol to out.
//bfact and box can be nil. The output depends only on its arguments, so the same
//frame always gives the same bytes.
func PDBWrite(out io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64, box []float64) error {
	if coords == nil || mol == nil {
		return fmt.Errorf("PDBWrite: nil coordinates or topology")
	}
	if coords.NVecs() != mol.Len() {
		return fmt.Errorf("PDBWrite: topology (%d) and coordinates (%d) don't have the same number of atoms", mol.Len(), coords.NVecs())
	}
	if bfact != nil && len(bfact) != mol.Len() {
		return fmt.Errorf("PDBWrite: %d b-factors for %d atoms", len(bfact), mol.Len())
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK   1 CREATED WITH TRAJ2PDB\n")
	if len(box) >= 6 {
		fmt.Fprintf(w, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n", box[0], box[1], box[2], box[3], box[4], box[5])
	}
	fmt.Fprintf(w, "MODEL     %4d\n", 1)
	var prev *Atom
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		if prev != nil && a.Chain != prev.Chain {
			writeTER(w, prev)
		}
		var bf float64
		if bfact != nil {
			bf = bfact[i]
		}
		if err := writePDBAtom(w, a, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), bf); err != nil {
			return fmt.Errorf("PDBWrite: atom %d: %w", i, err)
		}
		prev = a
	}
	if prev != nil {
		writeTER(w, prev)
	}
	fmt.Fprint(w, "ENDMDL\nEND\n")
	return w.Flush()
}

func writeTER(w io.Writer, a *Atom) {
	fmt.Fprintf(w, "TER   %5d      %s%1s%4d%c\n", (a.ID+1)%100000, pdbResName(a.MolName), a.Chain, a.MolID%10000, printable(a.ICode))
}

//PDB columns allow 5 digits for serials and 4 for residue numbers, larger
//numbers wrap around.
func writePDBAtom(w io.Writer, a *Atom, x, y, z, bfactor float64) error {
	var xyz [3]string
	for i, v := range [3]float64{x, y, z} {
		var err error
		if xyz[i], err = format83(v); err != nil {
			return err
		}
	}
	if len(a.Name) > 4 {
		return fmt.Errorf("atom name %q longer than 4 characters", a.Name)
	}
	first := "ATOM"
	if a.Het {
		first = "HETATM"
	}
	_, err := fmt.Fprintf(w, "%-6s%5d %s%c%s%1s%4d%c   %s%s%s%6.2f%6.2f          %2s%2s\n",
		first, a.ID%100000, pdbAtomName(a.Name, a.Symbol), printable(a.Char16), pdbResName(a.MolName), a.Chain,
		a.MolID%10000, printable(a.ICode), xyz[0], xyz[1], xyz[2], a.Occupancy, bfactor, strings.ToUpper(a.Symbol), formalCharge(a.Charge))
	return err
}

//format83 formats a coordinate for an 8-column PDB field. Values that don't
//fit with 3 decimals are written with fewer.
func format83(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("coordinate %g doesn't fit in the PDB format", v)
	}
	for dec := 3; dec >= 0; dec-- {
		if f := fmt.Sprintf("%8.*f", dec, v); len(f) == 8 {
			return f, nil
		}
	}
	return "", fmt.Errorf("coordinate %g doesn't fit in the PDB format", v)
}

//4-character names start at column 13, shorter ones at column 14 unless the element
//has two letters.
func pdbAtomName(name, symbol string) string {
	if len(name) < 4 && len(symbol) < 2 {
		name = " " + name
	}
	return fmt.Sprintf("%-4s", name)
}

//residue names take columns 18-20, 4-character names (common in AMBER, e.g. NALA)
//use column 21 as well.
func pdbResName(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return fmt.Sprintf("%3s ", name)[:4]
}

func printable(b byte) byte {
	if b < ' ' || b > '~' {
		return ' '
	}
	return b
}

func formalCharge(c float64) string {
	q := int(math.Round(c))
	switch {
	case q == 0 || q > 9 || q < -9:
		return ""
	case q > 0:
		return fmt.Sprintf("%d+", q)
	default:
		return fmt.Sprintf("%d-", -q)
	}
}
