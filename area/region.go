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

	"github.com/ctessum/geom"
	"github.com/spatialmodel/numerical"
)

// Region is an ordered set of 1 to 3 boundaries in a single
// coordinate system.
type Region struct {
	bounds []Boundary
	coords numerical.Coords
}

// NewRegion creates a region from the given boundaries. Cartesian regions
// must have 1 to 3 Line boundaries; polar regions must have exactly a
// PolarRho boundary followed by a PolarPhi boundary.
func NewRegion(coords numerical.Coords, bounds ...Boundary) (*Region, error) {
	if len(bounds) == 0 || len(bounds) > numerical.MaxDims {
		return nil, fmt.Errorf("area: region must have 1 to %d boundaries, not %d: %w",
			numerical.MaxDims, len(bounds), numerical.ErrDimensionMismatch)
	}
	switch coords {
	case numerical.Cartesian:
		for i, b := range bounds {
			if b.axis != Line {
				return nil, fmt.Errorf("area: cartesian region boundary %d is %v: %w",
					i, b.axis, numerical.ErrBoundary)
			}
		}
	case numerical.Polar:
		if len(bounds) != 2 {
			return nil, fmt.Errorf("area: polar region must have 2 boundaries, not %d: %w",
				len(bounds), numerical.ErrDimensionMismatch)
		}
		if bounds[0].axis != PolarRho || bounds[1].axis != PolarPhi {
			return nil, fmt.Errorf("area: polar region axes must be [PolarRho, PolarPhi], not [%v, %v]: %w",
				bounds[0].axis, bounds[1].axis, numerical.ErrBoundary)
		}
	case numerical.Spherical:
		return nil, fmt.Errorf("area: spherical regions: %w", numerical.ErrUnsupported)
	default:
		return nil, fmt.Errorf("area: coordinate system %v: %w", coords, numerical.ErrConfiguration)
	}
	r := &Region{bounds: make([]Boundary, len(bounds)), coords: coords}
	copy(r.bounds, bounds)
	return r, nil
}

// NewLine1D returns the cartesian interval [x0, x1].
func NewLine1D(x0, x1 float64) (*Region, error) {
	return newLines(x0, x1)
}

// NewLine2D returns the cartesian rectangle [x0, x1]×[y0, y1].
func NewLine2D(x0, x1, y0, y1 float64) (*Region, error) {
	return newLines(x0, x1, y0, y1)
}

// NewLine3D returns the cartesian box [x0, x1]×[y0, y1]×[z0, z1].
func NewLine3D(x0, x1, y0, y1, z0, z1 float64) (*Region, error) {
	return newLines(x0, x1, y0, y1, z0, z1)
}

// NewLines returns a cartesian region from start, end pairs.
func NewLines(startEnd ...float64) (*Region, error) {
	if len(startEnd)%2 != 0 {
		return nil, fmt.Errorf("area: odd number of boundary values (%d): %w",
			len(startEnd), numerical.ErrDimensionMismatch)
	}
	return newLines(startEnd...)
}

func newLines(startEnd ...float64) (*Region, error) {
	bounds := make([]Boundary, len(startEnd)/2)
	for i := range bounds {
		b, err := NewLine(startEnd[2*i], startEnd[2*i+1])
		if err != nil {
			return nil, err
		}
		bounds[i] = b
	}
	return NewRegion(numerical.Cartesian, bounds...)
}

// NewCircleSegment returns the polar region between radii rho0 and rho1
// and angles phi0 and phi1.
func NewCircleSegment(rho0, rho1, phi0, phi1 float64) (*Region, error) {
	rho, err := NewPolarRho(rho0, rho1)
	if err != nil {
		return nil, err
	}
	phi, err := NewPolarPhi(phi0, phi1)
	if err != nil {
		return nil, err
	}
	return NewRegion(numerical.Polar, rho, phi)
}

// NewCircle returns a full disk with the given radius.
func NewCircle(radius float64) (*Region, error) {
	if radius < 0 {
		return nil, fmt.Errorf("area: negative circle radius %g: %w", radius, numerical.ErrBoundary)
	}
	return NewCircleSegment(0, radius, 0, 2*math.Pi)
}

// NewHalfCircle returns the upper half of a disk with the given radius.
func NewHalfCircle(radius float64) (*Region, error) {
	if radius < 0 {
		return nil, fmt.Errorf("area: negative half circle radius %g: %w", radius, numerical.ErrBoundary)
	}
	return NewCircleSegment(0, radius, 0, math.Pi)
}

// Len returns the number of boundaries in the region.
func (r *Region) Len() int { return len(r.bounds) }

// At returns the boundary at index i.
func (r *Region) At(i int) Boundary { return r.bounds[i] }

// Boundaries returns a copy of the region's boundaries.
func (r *Region) Boundaries() []Boundary {
	o := make([]Boundary, len(r.bounds))
	copy(o, r.bounds)
	return o
}

// Coords returns the coordinate system of the region.
func (r *Region) Coords() numerical.Coords { return r.coords }

// DescribedRect returns the n-dimensional rectangle that describes
// the region. Cartesian regions are already rectangular. Polar regions
// are currently returned unchanged, as rectangles in (rho, phi) space.
func (r *Region) DescribedRect() *Region { return r }

// Bounds returns the extent of the first two axes of a cartesian region.
// One dimensional regions have zero height.
func (r *Region) Bounds() (*geom.Bounds, error) {
	if r.coords != numerical.Cartesian {
		return nil, fmt.Errorf("area: bounds of %v region: %w", r.coords, numerical.ErrUnsupported)
	}
	b := &geom.Bounds{
		Min: geom.Point{X: r.bounds[0].start},
		Max: geom.Point{X: r.bounds[0].end},
	}
	if len(r.bounds) > 1 {
		b.Min.Y, b.Max.Y = r.bounds[1].start, r.bounds[1].end
	}
	return b, nil
}

func (r *Region) String() string {
	s := make([]string, len(r.bounds))
	for i, b := range r.bounds {
		s[i] = b.String()
	}
	return "<[" + strings.Join(s, ", ") + "]>"
}
