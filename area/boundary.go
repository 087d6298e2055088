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

// Package area defines integration boundaries, the regions they compose
// and the uniform grids that discretize them.
package area

import (
	"fmt"
	"math"

	"github.com/spatialmodel/numerical"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances used to decide whether two boundary values are
// approximately equal.
const (
	absTol = 1e-8
	relTol = 1e-5
)

// AxisKind is the kind of coordinate axis a Boundary lies on.
type AxisKind int

const (
	// Line is a cartesian axis.
	Line AxisKind = iota
	// PolarRho is the radial axis of polar coordinates.
	PolarRho
	// PolarPhi is the angular axis of polar coordinates, in radians.
	PolarPhi
)

func (k AxisKind) String() string {
	switch k {
	case Line:
		return "Line"
	case PolarRho:
		return "PolarRho"
	case PolarPhi:
		return "PolarPhi"
	default:
		return fmt.Sprintf("AxisKind(%d)", int(k))
	}
}

// validators holds the validity rule for each axis kind.
var validators = map[AxisKind]func(start, end float64) bool{
	Line: func(start, end float64) bool {
		return end > start && !approxEqual(start, end)
	},
	// start can be greater than end.
	PolarRho: func(start, end float64) bool {
		return !approxEqual(start, end) &&
			(start > 0 || approxEqual(start, 0)) &&
			!approxEqual(end, 0)
	},
	PolarPhi: func(start, end float64) bool {
		return start < end && !approxEqual(start, end) &&
			inAngleRange(start) && inAngleRange(end)
	},
}

// approxEqual reports whether b is within the default tolerance of a.
func approxEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, absTol, relTol)
}

func inAngleRange(v float64) bool {
	return (v > 0 && v < 2*math.Pi) || approxEqual(v, 0) || approxEqual(v, 2*math.Pi)
}

// Boundary is the start and end of a one dimensional interval
// along an axis of the given kind.
type Boundary struct {
	start, end float64
	axis       AxisKind
}

// NewBoundary returns a new boundary on the given axis kind, or an error
// wrapping numerical.ErrBoundary if start and end are not valid for it.
func NewBoundary(axis AxisKind, start, end float64) (Boundary, error) {
	valid, ok := validators[axis]
	if !ok {
		return Boundary{}, fmt.Errorf("area: unknown axis kind %v: %w", axis, numerical.ErrConfiguration)
	}
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) || !valid(start, end) {
		return Boundary{}, fmt.Errorf("area: %v boundary start=%g end=%g: %w",
			axis, start, end, numerical.ErrBoundary)
	}
	return Boundary{start: start, end: end, axis: axis}, nil
}

// NewLine returns a cartesian boundary. end must be greater than
// and not approximately equal to start.
func NewLine(start, end float64) (Boundary, error) {
	return NewBoundary(Line, start, end)
}

// NewPolarRho returns a boundary on the polar radius axis. start must not
// be negative and end must not be approximately zero. The radius may
// decrease from start to end.
func NewPolarRho(start, end float64) (Boundary, error) {
	return NewBoundary(PolarRho, start, end)
}

// NewPolarPhi returns a boundary on the polar angle axis. Both ends must
// lie within [0, 2π] and start must be less than end.
func NewPolarPhi(start, end float64) (Boundary, error) {
	return NewBoundary(PolarPhi, start, end)
}

// Start returns the beginning of the interval.
func (b Boundary) Start() float64 { return b.start }

// End returns the end of the interval.
func (b Boundary) End() float64 { return b.end }

// Axis returns the kind of axis the boundary lies on.
func (b Boundary) Axis() AxisKind { return b.axis }

// Len returns the signed length of the interval.
func (b Boundary) Len() float64 { return b.end - b.start }

func (b Boundary) String() string {
	return fmt.Sprintf("<%v: start=%g end=%g>", b.axis, b.start, b.end)
}
