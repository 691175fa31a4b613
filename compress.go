/*
 * compress.go, part of traj2pdb.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression suffixes recognized when reading and writing structure files.
const (
	GzipSuffix = ".gz"
	ZstdSuffix = ".zst"
)

//CompressionSuffix returns the compression suffix of name (GzipSuffix or ZstdSuffix),
//or an empty string if the name doesn't carry one.
func CompressionSuffix(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case GzipSuffix, ZstdSuffix:
		return ext
	}
	return ""
}

//Stem returns the base name of the file name without its extension. A compression
//suffix, if present, is removed before the extension, so "top.pdb.gz" gives "top".
func Stem(name string) string {
	base := filepath.Base(name)
	if s := CompressionSuffix(base); s != "" {
		base = base[:len(base)-len(s)]
	}
	//hidden files, like ".pdb", are all stem.
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

//chainCloser closes several things in order, returning the first error.
type chainCloser struct {
	io.Reader
	io.Writer
	closers []func() error
}

func (c chainCloser) Close() error {
	var first error
	for _, f := range c.closers {
		if err := f(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//Also, why couldn't *zstd.Decoder.Close return an error? :-(
func zstdDecoderCloser(d *zstd.Decoder) func() error {
	return func() error {
		d.Close()
		return nil
	}
}

//openMaybeCompressed opens the file name for reading. Files ending in
//GzipSuffix or ZstdSuffix are decompressed on the fly.
func openMaybeCompressed(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch CompressionSuffix(name) {
	case GzipSuffix:
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return chainCloser{Reader: z, closers: []func() error{z.Close, f.Close}}, nil
	case ZstdSuffix:
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return chainCloser{Reader: z, closers: []func() error{zstdDecoderCloser(z), f.Close}}, nil
	}
	return f, nil
}

//createMaybeCompressed creates (or truncates) the file name for writing.
//Files ending in GzipSuffix or ZstdSuffix are compressed on the fly.
//The compressed stream is only complete after Close.
func createMaybeCompressed(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch CompressionSuffix(name) {
	case GzipSuffix:
		z := gzip.NewWriter(f)
		return chainCloser{Writer: z, closers: []func() error{z.Close, f.Close}}, nil
	case ZstdSuffix:
		z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return chainCloser{Writer: z, closers: []func() error{z.Close, f.Close}}, nil
	}
	return f, nil
}
