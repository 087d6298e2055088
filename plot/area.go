/*
Copyright © 2021 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package plot

import (
	"fmt"
	"image/color"
	"io"

	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/area"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the width and height of images written by WriteTo.
var Size = 4 * vg.Inch

var (
	boundaryColor = color.RGBA{R: 200, A: 255}
	gridColor     = color.Gray{Y: 128}
)

func checkDims(what string, dims int, c numerical.Coords) error {
	if c != numerical.Cartesian {
		return fmt.Errorf("plot: %s in %v coordinates: %w", what, c, numerical.ErrUnsupported)
	}
	if dims < 1 || dims > 2 {
		return fmt.Errorf("plot: %d-D %s: %w", dims, what, numerical.ErrUnsupported)
	}
	return nil
}

// Region plots the outline of a one or two dimensional cartesian region.
func Region(r *area.Region) (*gplot.Plot, error) {
	if err := checkDims("region", r.Len(), r.Coords()); err != nil {
		return nil, err
	}
	b, err := r.DescribedRect().Bounds()
	if err != nil {
		return nil, err
	}
	p := gplot.New()
	p.Title.Text = r.String()
	p.X.Label.Text = "x"
	if r.Len() == 2 {
		p.Y.Label.Text = "y"
	}
	l, err := plotter.NewLine(FromBounds(b))
	if err != nil {
		return nil, err
	}
	l.Color = boundaryColor
	l.Width = vg.Points(1.5)
	p.Add(l)
	if r.Len() == 1 {
		s, err := plotter.NewScatter(XYs{{b.Min.X, 0}, {b.Max.X, 0}})
		if err != nil {
			return nil, err
		}
		s.Color = boundaryColor
		p.Add(s)
	}
	return p, nil
}

// Grid plots the cell outlines of a one or two dimensional cartesian grid.
func Grid(g *area.Grid) (*gplot.Plot, error) {
	if err := checkDims("grid", g.Dims(), g.Coords()); err != nil {
		return nil, err
	}
	p := gplot.New()
	p.Title.Text = g.String()
	p.X.Label.Text = "x"

	if g.Dims() == 1 {
		nodes := g.Axis(0).Nodes()
		xys := make(XYs, len(nodes))
		for i, x := range nodes {
			xys[i] = XY{X: x}
		}
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		l.Color = gridColor
		s.Color = boundaryColor
		p.Add(l, s)
		return p, nil
	}

	p.Y.Label.Text = "y"
	polys, err := g.Polygons()
	if err != nil {
		return nil, err
	}
	for _, poly := range polys {
		for _, path := range poly {
			l, err := plotter.NewLine(FromPath(path))
			if err != nil {
				return nil, err
			}
			l.Color = gridColor
			l.Width = vg.Points(0.5)
			p.Add(l)
		}
	}
	return p, nil
}

// WriteTo writes p to w as an image in the given format
// ("png", "svg", "pdf", "eps", "jpg" or "tiff").
func WriteTo(w io.Writer, p *gplot.Plot, format string) error {
	wt, err := p.WriterTo(Size, Size, format)
	if err != nil {
		return fmt.Errorf("plot: %v: %w", err, numerical.ErrConfiguration)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot: writing image: %w", err)
	}
	return nil
}
