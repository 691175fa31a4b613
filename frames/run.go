/*
 * run.go, part of traj2pdb.
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
	"os"

	"github.com/rmera/traj2pdb/chemplot"
)

//Run exports the frames of the trajectory trajname, with topology topname, as PDB
//files according to opts. Messages for the user go to out, log gets the rest.
//The output directory is created, with its parents, before the trajectory is loaded.
func Run(ctx context.Context, trajname, topname string, opts Options, out io.Writer, log *slog.Logger) error {
	if log == nil {
		log = discard
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	suffix, _ := opts.Suffix()
	fmt.Fprintf(out, "Loading trajectory: %s\n", trajname)
	fmt.Fprintf(out, "Topology: %s\n", topname)
	tag := opts.Tag(topname)
	dir := opts.Dir(topname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	traj, err := Load(trajname, topname, opts.MdcrdBox, log)
	if err != nil {
		return err
	}
	total := traj.NFrames()
	r := opts.Range(total)
	fmt.Fprintf(out, "Trajectory has %d frames\n", total)
	if opts.All {
		fmt.Fprintf(out, "Extracting ALL frames (%d to %d, inclusive)\n", r.Start, r.End)
	} else {
		fmt.Fprintf(out, "Extracting frames %d to %d (inclusive)\n", r.Start, r.End)
	}
	lo, hi, err := r.Slice(total, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saving %d PDB files to %s\n", hi-lo, dir)
	e := &Exporter{Sink: PDBSink{Top: traj.Topology()}, Out: out, Log: log, Suffix: suffix}
	if _, err := e.Export(ctx, traj, r, dir, tag); err != nil {
		return err
	}
	if opts.Plot != "" {
		if err := plotRMSD(traj, lo, hi, tag, opts.Plot, log); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "✓ Done!")
	return nil
}

func plotRMSD(src Source, lo, hi int, tag, plotname string, log *slog.Logger) error {
	if lo >= hi {
		log.Warn("no frames exported, no RMSD plot written", "plot", plotname)
		return nil
	}
	rmsd, err := RMSDSeries(src, lo, hi)
	if err != nil {
		return err
	}
	s := Summarize(rmsd)
	log.Info("RMSD to the first exported frame", "mean", s.Mean, "stddev", s.StdDev, "max", s.Max)
	if err := chemplot.RMSDPlot(rmsd, lo+1, fmt.Sprintf("RMSD of %s to frame %d", tag, lo+1), plotname); err != nil {
		return err
	}
	log.Info("wrote RMSD plot", "file", plotname)
	return nil
}
