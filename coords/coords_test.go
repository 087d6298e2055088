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

package coords

import (
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/numerical"
	"gonum.org/v1/gonum/floats"
)

func TestRoundTrip(t *testing.T) {
	x := [][]float64{
		{1, 0, -2, 0.5, -1},
		{0, 3, 0, -0.5, -1},
	}
	p := CartesianToPolar(nil, x)
	wantRho := []float64{1, 3, 2, math.Sqrt(0.5), math.Sqrt2}
	wantPhi := []float64{0, math.Pi / 2, math.Pi, 7 * math.Pi / 4, 5 * math.Pi / 4}
	if !floats.EqualApprox(p[0], wantRho, 1e-12) {
		t.Errorf("rho: %v != %v", p[0], wantRho)
	}
	if !floats.EqualApprox(p[1], wantPhi, 1e-12) {
		t.Errorf("phi: %v != %v", p[1], wantPhi)
	}
	c := PolarToCartesian(nil, p)
	for d := range x {
		if !floats.EqualApprox(c[d], x[d], 1e-12) {
			t.Errorf("axis %d: %v != %v", d, c[d], x[d])
		}
	}
}

func TestPolarToCartesianReusesDst(t *testing.T) {
	dst := [][]float64{make([]float64, 4), make([]float64, 4)}
	o := PolarToCartesian(dst, [][]float64{{2, 2}, {0, math.Pi / 2}})
	if &o[0][0] != &dst[0][0] {
		t.Errorf("dst not reused")
	}
	if len(o[0]) != 2 {
		t.Errorf("len %d != 2", len(o[0]))
	}
}

func TestTransform(t *testing.T) {
	f := func(dst []float64, x [][]float64) {
		for i := range dst {
			dst[i] = x[0][i] + 10*x[1][i]
		}
	}
	cf, err := Transform(f, numerical.Cartesian)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 1)
	cf(dst, [][]float64{{1}, {2}})
	if dst[0] != 21 {
		t.Errorf("cartesian: %g", dst[0])
	}

	pf, err := Transform(f, numerical.Polar)
	if err != nil {
		t.Fatal(err)
	}
	// rho=2, phi=π/2 → (0, 2); f = 20; times rho = 40.
	pf(dst, [][]float64{{2}, {math.Pi / 2}})
	if math.Abs(dst[0]-40) > 1e-12 {
		t.Errorf("polar: %g", dst[0])
	}

	if _, err := Transform(f, numerical.Spherical); !errors.Is(err, numerical.ErrUnsupported) {
		t.Errorf("spherical: %v", err)
	}
	if _, err := Transform(f, numerical.Coords(7)); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("unknown: %v", err)
	}
}
