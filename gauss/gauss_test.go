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

package gauss

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/area"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const relTol = 1e-6

func closeTo(have, want float64) bool {
	return scalar.EqualWithinAbsOrRel(have, want, 1e-10, relTol)
}

func mustGrid(t *testing.T, r *area.Region, err error, steps ...float64) *area.Grid {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	g, err := area.NewGrid(r, steps)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLegendre(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16, 32, 64} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			r, err := Legendre(n)
			if err != nil {
				t.Fatal(err)
			}
			if r.Len() != n {
				t.Fatalf("len %d != %d", r.Len(), n)
			}
			if s := floats.Sum(r.Weights()); math.Abs(s-2) > 1e-12 {
				t.Errorf("weight sum %g != 2", s)
			}
			for i := 0; i < n; i++ {
				if r.Root(i) <= -1 || r.Root(i) >= 1 {
					t.Errorf("root %d = %g", i, r.Root(i))
				}
				if r.Weight(i) <= 0 {
					t.Errorf("weight %d = %g", i, r.Weight(i))
				}
			}
			again, _ := Legendre(n)
			if again != r {
				t.Errorf("rule not cached")
			}
		})
	}
	if _, err := Legendre(0); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("zero roots: %v", err)
	}
}

func TestRuleCopies(t *testing.T) {
	r, err := Legendre(3)
	if err != nil {
		t.Fatal(err)
	}
	roots := r.Roots()
	roots[0] = 100
	if r.Root(0) == 100 {
		t.Errorf("rule modified through Roots")
	}
}

func TestCartesianProduct(t *testing.T) {
	blocks := [][]float64{
		{1, 2, 3, 4}, // two intervals, two roots each
		{10, 20},     // one interval
	}
	have := cartesianProduct(nil, blocks, []int{2, 1}, 2)
	want := [][]float64{
		{1, 1, 2, 2, 3, 3, 4, 4},
		{10, 20, 10, 20, 10, 20, 10, 20},
	}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("%v != %v", have, want)
	}

	blocks = [][]float64{{1, 2}, {3, 4}, {5, 6}}
	have = cartesianProduct(have, blocks, []int{1, 1, 1}, 2)
	want = [][]float64{
		{1, 1, 1, 1, 2, 2, 2, 2},
		{3, 3, 4, 4, 3, 3, 4, 4},
		{5, 6, 5, 6, 5, 6, 5, 6},
	}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("%v != %v", have, want)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		region func() (*area.Region, error)
		steps  []float64
		plan   BatchPlan
		f      func(x ...float64) float64
		want   float64
	}{
		{
			name:   "1d",
			region: func() (*area.Region, error) { return area.NewLine1D(-3.24, 9.24) },
			steps:  []float64{0.02},
			plan:   BatchPlan{64},
			f:      func(x ...float64) float64 { return x[0]*x[0] + 2*x[0] + 5 },
			want:   (math.Pow(9.24, 3)+math.Pow(3.24, 3))/3 + (9.24*9.24 - 3.24*3.24) + 5*12.48, // 411.580
		},
		{
			name:   "2d",
			region: func() (*area.Region, error) { return area.NewLine2D(0, 1, 0, 2*math.Pi) },
			steps:  []float64{0.02, math.Pi / 8},
			plan:   BatchPlan{64, 64},
			f:      func(x ...float64) float64 { return x[0]*x[0] + 2*x[1] + 5 },
			want:   2*math.Pi/3 + 4*math.Pi*math.Pi + 10*math.Pi, // 72.9887
		},
		{
			name:   "circle",
			region: func() (*area.Region, error) { return area.NewCircle(1) },
			steps:  []float64{0.1, math.Pi / 5},
			plan:   BatchPlan{32, 32},
			f:      func(x ...float64) float64 { return x[0]*x[0] + 2*x[1] + 5 },
			want:   5.25 * math.Pi, // 16.49336
		},
		{
			name:   "half circle",
			region: func() (*area.Region, error) { return area.NewHalfCircle(1) },
			steps:  []float64{0.1, math.Pi / 10},
			plan:   BatchPlan{32, 32},
			f:      func(x ...float64) float64 { return x[0]*x[0] + 2*x[1] + 5 },
			want:   math.Pi/8 + 4.0/3 + 2.5*math.Pi, // 9.58001
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := test.region()
			if err != nil {
				t.Fatal(err)
			}
			have, err := IntegrateRegion(pointwise(test.f), r, test.steps, 16, test.plan)
			if err != nil {
				t.Fatal(err)
			}
			if !closeTo(have, test.want) {
				t.Errorf("integral %.8g != %.8g", have, test.want)
			}
		})
	}
}

func TestScenario3D(t *testing.T) {
	if testing.Short() {
		t.Skip("evaluates ~10^8 points")
	}
	r, err := area.NewLine3D(-1, 1.5, -0.2, 0.5, 0, 1.8)
	g := mustGrid(t, r, err, 0.05, 0.05, 0.05)
	f := pointwise(func(x ...float64) float64 { return (7*x[0]*x[2] - x[1]*x[1]) * x[2] })
	have, err := Integrate(f, g, 16, BatchPlan{8, 8, 8})
	if err != nil {
		t.Fatal(err)
	}
	// 7·∫x·∫dy·∫z² − ∫dx·∫y²·∫z
	want := 7*0.625*0.7*(1.8*1.8*1.8/3) - 2.5*(0.133/3)*(1.8*1.8/2)
	if !closeTo(have, want) {
		t.Errorf("integral %.8g != %.8g", have, want)
	}
}

func TestExactness(t *testing.T) {
	tests := []struct {
		name   string
		roots  int
		bounds []float64
		steps  []float64
		f      func(x ...float64) float64
		want   float64
	}{
		{
			name:   "cubic, 2 roots",
			roots:  2,
			bounds: []float64{0, 1.3},
			steps:  []float64{0.5},
			f:      func(x ...float64) float64 { return x[0] * x[0] * x[0] },
			want:   math.Pow(1.3, 4) / 4,
		},
		{
			name:   "x^5 y^4, 3 roots",
			roots:  3,
			bounds: []float64{-1, 2, 0, 1},
			steps:  []float64{0.7, 0.3},
			f:      func(x ...float64) float64 { return math.Pow(x[0], 5) * math.Pow(x[1], 4) },
			want:   10.5 * 0.2,
		},
		{
			name:   "x^3 y^2 z, 2 roots",
			roots:  2,
			bounds: []float64{0, 1, 0, 1, 0, 1},
			steps:  []float64{0.4, 0.3, 0.5},
			f:      func(x ...float64) float64 { return x[0] * x[0] * x[0] * x[1] * x[1] * x[2] },
			want:   1.0 / 24,
		},
		{
			name:   "degree 7, single interval",
			roots:  4,
			bounds: []float64{-2, 3},
			steps:  []float64{10},
			f:      func(x ...float64) float64 { return math.Pow(x[0], 7) - x[0] },
			want:   (math.Pow(3, 8)-math.Pow(2, 8))/8 - (9.0-4.0)/2,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := area.NewLines(test.bounds...)
			g := mustGrid(t, r, err, test.steps...)
			have, err := Integrate(pointwise(test.f), g, test.roots, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !closeTo(have, test.want) {
				t.Errorf("integral %.12g != %.12g", have, test.want)
			}
		})
	}
}

func TestBatchInvariance(t *testing.T) {
	tests := []struct {
		name   string
		bounds []float64
		steps  []float64
		plans  []BatchPlan
		f      func(x ...float64) float64
	}{
		{
			name:   "1d",
			bounds: []float64{-1, 2.03},
			steps:  []float64{0.02},
			plans:  []BatchPlan{{1}, {8}, {64}, {1000}},
			f:      func(x ...float64) float64 { return math.Sin(3*x[0]) + x[0]*x[0] },
		},
		{
			name:   "2d",
			bounds: []float64{0, 1, 0, 1.05},
			steps:  []float64{0.1, 0.1},
			plans:  []BatchPlan{{1, 1}, {1, 2}, {3, 7}, {64, 64}},
			f:      func(x ...float64) float64 { return math.Exp(x[0]) * x[1] * x[1] },
		},
		{
			name:   "3d",
			bounds: []float64{0, 1, -0.5, 0.5, 0, 0.33},
			steps:  []float64{0.3, 0.25, 0.1},
			plans:  []BatchPlan{{1, 1, 1}, {1, 2, 3}, {4, 4, 4}, {32, 32, 32}},
			f:      func(x ...float64) float64 { return x[0]*x[1]*x[1] + math.Cos(x[2]) },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := area.NewLines(test.bounds...)
			g := mustGrid(t, r, err, test.steps...)
			var first float64
			for i, plan := range test.plans {
				have, err := Integrate(pointwise(test.f), g, 5, plan)
				if err != nil {
					t.Fatal(err)
				}
				if i == 0 {
					first = have
					continue
				}
				if !scalar.EqualWithinAbsOrRel(have, first, 1e-14, 1e-12) {
					t.Errorf("plan %v: %.17g != %.17g", plan, have, first)
				}
			}
		})
	}
}

// Splitting a dimension into several batches must keep each cell
// paired with its own Jacobian, even when the last interval is short.
func TestBatchSplitShortInterval(t *testing.T) {
	r, err := area.NewLine2D(0, 1, 0, 1.05)
	g := mustGrid(t, r, err, 0.1, 0.1)
	f := pointwise(func(x ...float64) float64 { return x[0] * x[1] * x[1] })
	want := 0.5 * math.Pow(1.05, 3) / 3
	for _, plan := range []BatchPlan{{1, 2}, {2, 5}, {11, 11}} {
		have, err := Integrate(f, g, 2, plan)
		if err != nil {
			t.Fatal(err)
		}
		if !closeTo(have, want) {
			t.Errorf("plan %v: %.12g != %.12g", plan, have, want)
		}
	}
}

func TestPolarJacobian(t *testing.T) {
	one := pointwise(func(x ...float64) float64 { return 1 })
	for _, radius := range []float64{0.5, 1, 3} {
		t.Run(fmt.Sprint(radius), func(t *testing.T) {
			c, err := area.NewCircle(radius)
			if err != nil {
				t.Fatal(err)
			}
			have, err := IntegrateRegion(one, c, []float64{radius / 7, math.Pi / 6}, 8, nil)
			if err != nil {
				t.Fatal(err)
			}
			if want := math.Pi * radius * radius; !closeTo(have, want) {
				t.Errorf("disk: %g != %g", have, want)
			}
			h, err := area.NewHalfCircle(radius)
			if err != nil {
				t.Fatal(err)
			}
			have, err = IntegrateRegion(one, h, []float64{radius / 7, math.Pi / 6}, 8, nil)
			if err != nil {
				t.Fatal(err)
			}
			if want := math.Pi * radius * radius / 2; !closeTo(have, want) {
				t.Errorf("half disk: %g != %g", have, want)
			}
		})
	}
}

func TestIntegrator(t *testing.T) {
	r, err := area.NewLine1D(0, 2)
	g := mustGrid(t, r, err, 0.5)
	it := Integrator{}
	have, err := it.Integrate(pointwise(func(x ...float64) float64 { return x[0] }), g)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(have, 2) {
		t.Errorf("%g != 2", have)
	}
	it = Integrator{Roots: 3, Batch: BatchPlan{1}}
	have, err = it.IntegrateRegion(pointwise(func(x ...float64) float64 { return 3 * x[0] * x[0] }), r, []float64{0.25})
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(have, 8) {
		t.Errorf("%g != 8", have)
	}
}

func TestIntegrateErrors(t *testing.T) {
	r, err := area.NewLine2D(0, 1, 0, 1)
	g := mustGrid(t, r, err, 0.5, 0.5)
	f := pointwise(func(x ...float64) float64 { return 1 })
	tests := []struct {
		name  string
		f     numerical.Func
		g     *area.Grid
		roots int
		plan  BatchPlan
		err   error
	}{
		{name: "zero roots", f: f, g: g, roots: 0, err: numerical.ErrConfiguration},
		{name: "plan length", f: f, g: g, roots: 2, plan: BatchPlan{4}, err: numerical.ErrDimensionMismatch},
		{name: "zero batch", f: f, g: g, roots: 2, plan: BatchPlan{4, 0}, err: numerical.ErrConfiguration},
		{name: "nil f", g: g, roots: 2, err: numerical.ErrConfiguration},
		{name: "nil grid", f: f, roots: 2, err: numerical.ErrConfiguration},
		{name: "empty grid", f: f, g: &area.Grid{}, roots: 2, err: numerical.ErrDimensionMismatch},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Integrate(test.f, test.g, test.roots, test.plan); !errors.Is(err, test.err) {
				t.Errorf("error: %v, want %v", err, test.err)
			}
		})
	}
	if _, err := IntegrateRegion(f, r, []float64{0.5}, 2, nil); !errors.Is(err, numerical.ErrDimensionMismatch) {
		t.Errorf("steps mismatch: %v", err)
	}
}

// pointwise adapts a function of one point to a batched integrand.
func pointwise(f func(x ...float64) float64) numerical.Func {
	return func(dst []float64, x [][]float64) {
		p := make([]float64, len(x))
		for i := range dst {
			for d := range x {
				p[d] = x[d][i]
			}
			dst[i] = f(p...)
		}
	}
}
