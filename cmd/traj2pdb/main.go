/*
 * main.go, part of traj2pdb.
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

//traj2pdb writes each frame of an AMBER trajectory, in a given range, to its own PDB file.
//
//	traj2pdb prod.nc LIG_solvated_tleap.pdb --start 100 --end 200
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rmera/traj2pdb/frames"
	"github.com/spf13/cobra"
)

//flags holds the values of the command line flags, before they are merged
//with the config file.
type flags struct {
	config   string
	all      bool
	start    int
	end      int
	outdir   string
	pdbname  string
	compress string
	plot     string
	mdcrdBox bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	f := new(flags)
	cmd := &cobra.Command{
		Use:   "traj2pdb TRAJ_NC TOPOLOGY_PDB",
		Short: "Convert AMBER MD trajectory frames to individual PDB files",
		Long: `traj2pdb writes one PDB file per frame of an AMBER trajectory (NetCDF, or ASCII
mdcrd) for a range of frames. Frames are numbered from 1 and the range includes both
ends. Files are named frame{NNNN}_{pdbname}.pdb and, by default, are written to
<topology_parent>/<pdbname>_trajectoryPDB.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd, f.verbose)
			opts, err := options(cmd, f)
			if err != nil {
				return err
			}
			log.Debug("options", "all", opts.All, "outdir", opts.Outdir, "pdbname", opts.PDBName, "compress", opts.Compress)
			return frames.Run(cmd.Context(), args[0], args[1], opts, cmd.OutOrStdout(), log)
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&f.all, "all", false, "Extract all frames in the trajectory (overrides --start and --end)")
	fl.IntVar(&f.start, "start", 1, "Start frame (human numbering)")
	fl.IntVar(&f.end, "end", 0, "End frame, inclusive (default: last frame)")
	fl.StringVar(&f.outdir, "outdir", "", "Output directory for PDB files (default: <topology_parent>/<pdbname>_trajectoryPDB)")
	fl.StringVar(&f.pdbname, "pdbname", "", "Naming tag for output files (default: topology filename without .pdb)")
	fl.StringVar(&f.config, "config", "", "YAML file with default values for the options")
	fl.StringVar(&f.compress, "compress", "none", "Compress the output files: none, gzip or zstd")
	fl.StringVar(&f.plot, "plot", "", "Write a plot of the RMSD of the exported frames to the first one to this file (png, svg, pdf)")
	fl.BoolVar(&f.mdcrdBox, "mdcrd-box", false, "The ASCII (mdcrd) trajectory has a box line after each frame")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Print debug messages")
	cmd.MarkFlagsMutuallyExclusive("all", "start")
	return cmd
}

//options returns the options from the config file, if any, overridden by the
//flags set in the command line.
func options(cmd *cobra.Command, f *flags) (frames.Options, error) {
	var opts frames.Options
	if f.config != "" {
		var err error
		opts, err = frames.LoadConfig(f.config)
		if err != nil {
			return opts, err
		}
	}
	fl := cmd.Flags()
	//all and start from the command line override each other in the config file.
	if fl.Changed("all") {
		opts.All = f.all
		if f.all {
			opts.Start = nil
		}
	}
	if fl.Changed("start") {
		opts.Start = &f.start
		opts.All = false
	}
	if fl.Changed("end") {
		opts.End = &f.end
	}
	if fl.Changed("outdir") {
		opts.Outdir = f.outdir
	}
	if fl.Changed("pdbname") {
		opts.PDBName = f.pdbname
	}
	if fl.Changed("compress") {
		opts.Compress = f.compress
	}
	if fl.Changed("plot") {
		opts.Plot = f.plot
	}
	if fl.Changed("mdcrd-box") {
		opts.MdcrdBox = f.mdcrdBox
	}
	return opts, opts.Validate()
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.TimeOnly})).Error("traj2pdb failed", "err", err)
		stop()
		os.Exit(1)
	}
}
