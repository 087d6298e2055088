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

// Package numerical holds the types shared by the integration,
// interpolation and grid packages: the batched integrand signature,
// the coordinate system tag, and the error taxonomy.
//
// Definite integrals are computed by package gauss over grids built
// by package area; package coords adapts integrands written in cartesian
// coordinates to polar regions.
package numerical

import (
	"errors"
	"fmt"
	"strings"
)

// Func is a batched scalar function of 1 to 3 variables. x[d] holds the
// d-th coordinate of every point in the batch, and all x[d] have the same
// length as dst. The function must write its value at point i to dst[i].
// A Func must be free of side effects that are observable across calls.
type Func func(dst []float64, x [][]float64)

// Coords specifies the coordinate system of a region.
type Coords int

const (
	// Cartesian coordinates: x, y, z.
	Cartesian Coords = iota
	// Polar coordinates: rho, phi.
	Polar
	// Spherical coordinates are recognized but not supported.
	Spherical
)

// String returns the name of the coordinate system.
func (c Coords) String() string {
	switch c {
	case Cartesian:
		return "cartesian"
	case Polar:
		return "polar"
	case Spherical:
		return "spherical"
	default:
		return fmt.Sprintf("Coords(%d)", int(c))
	}
}

// ParseCoords returns the coordinate system with the given name.
func ParseCoords(s string) (Coords, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cartesian":
		return Cartesian, nil
	case "polar":
		return Polar, nil
	case "spherical":
		return Spherical, nil
	}
	return 0, fmt.Errorf("numerical: coordinates type can be 'cartesian', 'polar' or 'spherical', not %q: %w",
		s, ErrConfiguration)
}

// MaxDims is the largest number of dimensions supported.
const MaxDims = 3

var (
	// ErrBoundary indicates an invalid start/end pair for an axis.
	ErrBoundary = errors.New("bounds are not correct")

	// ErrDimensionMismatch indicates that the number of boundaries,
	// steps, batch sizes or coordinate arrays disagree, or that more
	// than MaxDims dimensions were requested.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupported indicates a recognized but unimplemented feature.
	ErrUnsupported = errors.New("not implemented")

	// ErrConfiguration indicates an invalid quadrature order, step,
	// batch size or coordinate system tag.
	ErrConfiguration = errors.New("invalid configuration")
)
