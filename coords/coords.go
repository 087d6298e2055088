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

// Package coords converts between polar and cartesian coordinates and
// adapts integrands written in cartesian coordinates to other
// coordinate systems.
package coords

import (
	"fmt"
	"math"

	"github.com/spatialmodel/numerical"
)

// Transform returns an integrand that can be integrated over a region
// in coordinate system c. f takes cartesian coordinates.
// For polar regions, the returned function converts its (rho, phi)
// input to (x, y), evaluates f, and multiplies by the area element rho.
func Transform(f numerical.Func, c numerical.Coords) (numerical.Func, error) {
	switch c {
	case numerical.Cartesian:
		return f, nil
	case numerical.Polar:
		return func(dst []float64, x [][]float64) {
			f(dst, PolarToCartesian(nil, x))
			for i, rho := range x[0] {
				dst[i] *= rho
			}
		}, nil
	case numerical.Spherical:
		return nil, fmt.Errorf("coords: spherical coordinates: %w", numerical.ErrUnsupported)
	default:
		return nil, fmt.Errorf("coords: coordinates type can be 'cartesian', 'polar' or 'spherical', not %v: %w",
			c, numerical.ErrConfiguration)
	}
}

// PolarToCartesian converts x = [rho, phi] to [x, y]. If dst is nil or
// too short, new slices are allocated; otherwise dst is reused.
func PolarToCartesian(dst, x [][]float64) [][]float64 {
	dst = ensure(dst, len(x[0]))
	for i, rho := range x[0] {
		sin, cos := math.Sincos(x[1][i])
		dst[0][i] = rho * cos
		dst[1][i] = rho * sin
	}
	return dst
}

// CartesianToPolar converts x = [x, y] to [rho, phi], with phi in [0, 2π).
func CartesianToPolar(dst, x [][]float64) [][]float64 {
	dst = ensure(dst, len(x[0]))
	for i := range x[0] {
		xi, yi := x[0][i], x[1][i]
		phi := math.Atan2(yi, xi)
		if yi < 0 {
			phi += 2 * math.Pi
		}
		dst[0][i] = math.Hypot(xi, yi)
		dst[1][i] = phi
	}
	return dst
}

func ensure(dst [][]float64, n int) [][]float64 {
	if len(dst) < 2 {
		dst = make([][]float64, 2)
	}
	for d := 0; d < 2; d++ {
		if len(dst[d]) < n {
			dst[d] = make([]float64, n)
		}
		dst[d] = dst[d][:n]
	}
	return dst
}
