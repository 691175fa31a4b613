/*
 * export.go, part of traj2pdb.
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
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	chem "github.com/rmera/traj2pdb"
	v3 "github.com/rmera/traj2pdb/v3"
)

//progressEvery is how often, in files, a progress line is printed.
const progressEvery = 10

//Sink writes one frame to a file.
type Sink interface {
	WriteFrame(path string, coords *v3.Matrix, box []float64) error
}

//PDBSink writes frames as single-model PDB files with a fixed topology.
//Paths ending in ".gz" or ".zst" are compressed.
type PDBSink struct {
	Top chem.Atomer
}

//WriteFrame writes coords, and box if not nil, to the PDB file path, overwriting it.
func (s PDBSink) WriteFrame(path string, coords *v3.Matrix, box []float64) error {
	return chem.PDBFileWrite(path, coords, s.Top, nil, box)
}

//FrameName returns the file name for the 1-based frame number n:
//frame{NNNN}_{tag}.pdb followed by suffix.
func FrameName(n int, tag, suffix string) string {
	return fmt.Sprintf("frame%04d_%s.pdb%s", n, tag, suffix)
}

//Exporter writes the frames of a Source to a directory, one file per frame.
type Exporter struct {
	Sink   Sink
	Out    io.Writer    //progress lines, can be nil
	Log    *slog.Logger //can be nil
	Suffix string       //appended to every file name, such as chem.GzipSuffix
}

//Export writes the frames of src in the range r to dir, with names built from tag,
//and returns the paths written, in order. It stops when ctx is cancelled or a write
//fails, returning the paths written so far together with the error. Files already
//written are left in place.
func (e *Exporter) Export(ctx context.Context, src Source, r Range, dir, tag string) ([]string, error) {
	log := e.Log
	if log == nil {
		log = discard
	}
	out := e.Out
	if out == nil {
		out = io.Discard
	}
	lo, hi, err := r.Slice(src.NFrames(), log)
	if err != nil {
		return nil, err
	}
	n := hi - lo
	written := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("export interrupted after %d of %d files: %w", i, n, err)
		}
		name := FrameName(lo+i+1, tag, e.Suffix)
		path := filepath.Join(dir, name)
		coords, box := src.Frame(lo + i)
		if err := e.Sink.WriteFrame(path, coords, box); err != nil {
			return written, fmt.Errorf("writing frame %d: %w", lo+i+1, err)
		}
		written = append(written, path)
		log.Debug("wrote frame", "frame", lo+i+1, "file", path)
		if (i+1)%progressEvery == 0 || i+1 == n {
			fmt.Fprintf(out, "  ✓ %s (%d/%d)\n", name, i+1, n)
		}
	}
	return written, nil
}
