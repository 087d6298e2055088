/*
Copyright (C) 2012-2014 the InMAP authors.
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

package area

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	"github.com/spatialmodel/numerical"
	"github.com/tealeg/xlsx"
)

// WriteXLSX writes a spreadsheet with one sheet per grid axis. Each sheet
// lists the nodes along with the midpoint and half-width of the
// interval that starts at each node.
func (g *Grid) WriteXLSX(w io.Writer) error {
	f := xlsx.NewFile()
	for d, a := range g.axes {
		sheet, err := f.AddSheet(fmt.Sprintf("axis%d", d))
		if err != nil {
			return fmt.Errorf("area: writing grid spreadsheet: %w", err)
		}
		header := sheet.AddRow()
		for _, h := range []string{"node", "midpoint", "half_width"} {
			header.AddCell().SetString(h)
		}
		for i, node := range a.nodes {
			row := sheet.AddRow()
			row.AddCell().SetFloat(node)
			if i < a.Len() {
				row.AddCell().SetFloat(a.midpoints[i])
				row.AddCell().SetFloat(a.halfWidths[i])
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("area: writing grid spreadsheet: %w", err)
	}
	return nil
}

// Polygons returns the outline of each cell of a two dimensional
// cartesian grid, in row-major order.
func (g *Grid) Polygons() ([]geom.Polygon, error) {
	if g.Dims() != 2 || g.coords != numerical.Cartesian {
		return nil, fmt.Errorf("area: polygons of %d-D %v grid: %w", g.Dims(), g.coords, numerical.ErrUnsupported)
	}
	o := make([]geom.Polygon, g.Len())
	for i := range o {
		c := g.Cell(i)
		x, y := c.Centroid().D(0), c.Centroid().D(1)
		hx, hy := c.HalfWidth(0), c.HalfWidth(1)
		o[i] = geom.Polygon([]geom.Path{{
			{X: x - hx, Y: y - hy}, {X: x + hx, Y: y - hy},
			{X: x + hx, Y: y + hy}, {X: x - hx, Y: y + hy}, {X: x - hx, Y: y - hy}}})
	}
	return o, nil
}

// WriteToShp writes the cells of a two dimensional cartesian grid to
// a shapefile called name in directory outdir.
func (g *Grid) WriteToShp(outdir, name string) error {
	polys, err := g.Polygons()
	if err != nil {
		return err
	}
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(filepath.Join(outdir, name+ext))
	}
	fields := make([]goshp.Field, 2)
	fields[0] = goshp.NumberField("row", 10)
	fields[1] = goshp.NumberField("col", 10)
	shpf, err := shp.NewEncoderFromFields(filepath.Join(outdir, name+".shp"),
		goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("area: creating grid shapefile: %w", err)
	}
	ny := g.axes[1].Len()
	for i, p := range polys {
		if err = shpf.EncodeFields(p, i/ny, i%ny); err != nil {
			shpf.Close()
			return fmt.Errorf("area: writing grid shapefile: %w", err)
		}
	}
	shpf.Close()
	return nil
}
