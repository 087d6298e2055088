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

package area

import (
	"fmt"
	"math"
	"strings"

	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/mesh"
)

// Make sure the grid fulfills the mesh interface.
var _ mesh.Mesh = &Grid{}

// AxisGrid is a uniform discretization of a single boundary, along with
// the interval midpoints and half-widths used for Gauss quadrature.
// The slices returned by its methods must not be modified.
type AxisGrid struct {
	bound      Boundary
	step       float64
	nodes      []float64
	midpoints  []float64
	halfWidths []float64
}

// NewAxisGrid discretizes b with nodes spaced by step, starting at b.Start().
// b.End() is always the last node, so the last interval may be
// shorter than step.
func NewAxisGrid(b Boundary, step float64) (*AxisGrid, error) {
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, fmt.Errorf("area: grid step must be positive, not %g: %w", step, numerical.ErrConfiguration)
	}
	if b.end < b.start {
		return nil, fmt.Errorf("area: cannot discretize decreasing %v with positive step %g: %w",
			b, step, numerical.ErrConfiguration)
	}
	g := &AxisGrid{bound: b, step: step}
	for i := 0; ; i++ {
		v := b.start + float64(i)*step
		if v >= b.end {
			break
		}
		g.nodes = append(g.nodes, v)
	}
	g.nodes = append(g.nodes, b.end)

	n := len(g.nodes) - 1
	g.midpoints = make([]float64, n)
	g.halfWidths = make([]float64, n)
	for i := 0; i < n; i++ {
		g.midpoints[i] = (g.nodes[i+1] + g.nodes[i]) / 2
		g.halfWidths[i] = (g.nodes[i+1] - g.nodes[i]) / 2
	}
	return g, nil
}

// Boundary returns the boundary the grid discretizes.
func (g *AxisGrid) Boundary() Boundary { return g.bound }

// Step returns the nominal node spacing.
func (g *AxisGrid) Step() float64 { return g.step }

// Len returns the number of intervals.
func (g *AxisGrid) Len() int { return len(g.midpoints) }

// Nodes returns the grid nodes.
func (g *AxisGrid) Nodes() []float64 { return g.nodes }

// Midpoints returns the interval midpoints.
func (g *AxisGrid) Midpoints() []float64 { return g.midpoints }

// HalfWidths returns the interval half-widths.
func (g *AxisGrid) HalfWidths() []float64 { return g.halfWidths }

func (g *AxisGrid) String() string {
	return fmt.Sprintf("<AxisGrid: bound=%v, step=%g, nodes_count=%d>", g.bound, g.step, len(g.nodes))
}

// Grid is a multi-dimensional uniform grid made of one AxisGrid
// per dimension.
type Grid struct {
	axes   []*AxisGrid
	coords numerical.Coords
}

// NewGrid discretizes each boundary of r with the corresponding step.
func NewGrid(r *Region, steps []float64) (*Grid, error) {
	if r == nil {
		return nil, fmt.Errorf("area: nil region: %w", numerical.ErrConfiguration)
	}
	rect := r.DescribedRect()
	if rect.Len() != len(steps) {
		return nil, fmt.Errorf("area: boundary dimension (%d) and steps count (%d) don't match: %w",
			rect.Len(), len(steps), numerical.ErrDimensionMismatch)
	}
	axes := make([]*AxisGrid, rect.Len())
	for i, b := range rect.bounds {
		g, err := NewAxisGrid(b, steps[i])
		if err != nil {
			return nil, fmt.Errorf("area: axis %d: %w", i, err)
		}
		axes[i] = g
	}
	return &Grid{axes: axes, coords: r.coords}, nil
}

// NewGridFromAxes creates a grid directly from per-axis grids.
func NewGridFromAxes(coords numerical.Coords, axes ...*AxisGrid) (*Grid, error) {
	if len(axes) == 0 || len(axes) > numerical.MaxDims {
		return nil, fmt.Errorf("area: grid must have 1 to %d axes, not %d: %w",
			numerical.MaxDims, len(axes), numerical.ErrDimensionMismatch)
	}
	for i, a := range axes {
		if a == nil {
			return nil, fmt.Errorf("area: axis %d is nil: %w", i, numerical.ErrConfiguration)
		}
	}
	g := &Grid{axes: make([]*AxisGrid, len(axes)), coords: coords}
	copy(g.axes, axes)
	return g, nil
}

// Dims returns the number of dimensions of the grid.
func (g *Grid) Dims() int { return len(g.axes) }

// Axis returns the grid along dimension i.
func (g *Grid) Axis(i int) *AxisGrid { return g.axes[i] }

// Coords returns the coordinate system the grid was built in.
func (g *Grid) Coords() numerical.Coords { return g.coords }

// Shape returns the number of intervals along each dimension.
func (g *Grid) Shape() []int {
	s := make([]int, len(g.axes))
	for i, a := range g.axes {
		s[i] = a.Len()
	}
	return s
}

// Len returns the total number of cells in the grid.
func (g *Grid) Len() int {
	n := 1
	for _, a := range g.axes {
		n *= a.Len()
	}
	return n
}

// Cell returns the cell at row-major index i.
func (g *Grid) Cell(i int) mesh.Cell {
	c := &cell{center: make(mesh.Vec, len(g.axes)), half: make([]float64, len(g.axes))}
	for d := len(g.axes) - 1; d >= 0; d-- {
		n := g.axes[d].Len()
		j := i % n
		i /= n
		c.center[d] = g.axes[d].midpoints[j]
		c.half[d] = g.axes[d].halfWidths[j]
	}
	return c
}

func (g *Grid) String() string {
	s := make([]string, len(g.axes))
	for i, a := range g.axes {
		s[i] = a.String()
	}
	return "<[" + strings.Join(s, ", ") + "]>"
}

type cell struct {
	center mesh.Vec
	half   []float64
}

func (c *cell) Centroid() mesh.Point   { return c.center }
func (c *cell) HalfWidth(d int) float64 { return c.half[d] }

// Measure returns the product of the cell widths.
func (c *cell) Measure() float64 {
	m := 1.0
	for _, h := range c.half {
		m *= 2 * h
	}
	return m
}
