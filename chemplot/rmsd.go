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

//Package chemplot makes plots of quantities calculated from trajectories.
package chemplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//basicRMSDPlot returns a plot with the title, labels and grid for an RMSD series.
func basicRMSDPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "RMSD (A)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

//RMSDPlot plots rmsd against the 1-based frame numbers, starting with first, and
//saves it to plotname. The format (png, svg, pdf, eps...) is taken from the extension.
func RMSDPlot(rmsd []float64, first int, title, plotname string) error {
	if len(rmsd) == 0 {
		return fmt.Errorf("RMSDPlot: no data to plot")
	}
	p := basicRMSDPlot(title)
	pts := make(plotter.XYs, len(rmsd))
	for i, v := range rmsd {
		pts[i].X = float64(first + i)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("RMSDPlot: %w", err)
	}
	l.LineStyle.Width = vg.Points(1)
	l.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(l)
	//a single frame gives no line, so the points are drawn too.
	if len(rmsd) < 50 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("RMSDPlot: %w", err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = l.LineStyle.Color
		p.Add(s)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("RMSDPlot: %w", err)
	}
	return nil
}
