/*
 * options.go, part of traj2pdb.
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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/rmera/traj2pdb"
	"gopkg.in/yaml.v3"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

//Options controls which frames are exported and where. The zero value exports all
//frames into the default directory with the default tag.
type Options struct {
	All      bool   `yaml:"all"`
	Start    *int   `yaml:"start"` //nil means 1
	End      *int   `yaml:"end"`   //nil means the last frame
	Outdir   string `yaml:"outdir"`
	PDBName  string `yaml:"pdbname"`
	Compress string `yaml:"compress"` //"", "none", "gzip" or "zstd"
	Plot     string `yaml:"plot"`     //file for the RMSD plot, empty for no plot
	MdcrdBox bool   `yaml:"mdcrd_box"`
}

//LoadConfig reads Options from the YAML file name. Unknown keys are an error.
func LoadConfig(name string) (Options, error) {
	var o Options
	f, err := os.Open(name)
	if err != nil {
		return o, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return o, fmt.Errorf("config %s: %w", name, err)
	}
	return o, nil
}

//Validate checks the options that can be checked before loading anything.
func (o Options) Validate() error {
	if o.All && o.Start != nil {
		return fmt.Errorf("the options all and start are mutually exclusive")
	}
	if _, err := o.Suffix(); err != nil {
		return err
	}
	return nil
}

//Suffix returns the file suffix for the requested compression.
func (o Options) Suffix() (string, error) {
	switch strings.ToLower(o.Compress) {
	case "", "none":
		return "", nil
	case "gzip", "gz":
		return chem.GzipSuffix, nil
	case "zstd", "zst":
		return chem.ZstdSuffix, nil
	}
	return "", fmt.Errorf("unknown compression %q (use none, gzip or zstd)", o.Compress)
}

//Tag returns the naming tag for the output files: PDBName, or the base name of
//the topology without extension.
func (o Options) Tag(topology string) string {
	if o.PDBName != "" {
		return o.PDBName
	}
	return chem.Stem(topology)
}

//Dir returns the output directory: Outdir, or {topology_parent}/{tag}_trajectoryPDB.
func (o Options) Dir(topology string) string {
	if o.Outdir != "" {
		return o.Outdir
	}
	return filepath.Join(filepath.Dir(topology), o.Tag(topology)+"_trajectoryPDB")
}

//Range returns the frames to export from a trajectory with total frames.
//With All, the range is the whole trajectory, whatever Start and End are.
func (o Options) Range(total int) Range {
	r := Range{Start: 1, End: total, toEnd: true}
	if o.All {
		return r
	}
	if o.Start != nil {
		r.Start = *o.Start
	}
	if o.End != nil {
		r.End = *o.End
		r.toEnd = false
	}
	return r
}
