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

// Package gauss integrates functions of 1 to 3 variables over uniform
// grids with composite Gauss-Legendre quadrature.
//
// The integrand is evaluated in batches of grid cells so that the
// number of points held in memory at once is bounded by the BatchPlan.
// The batch sizes do not change the result.
package gauss

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/area"
	"github.com/spatialmodel/numerical/coords"
	"github.com/spatialmodel/numerical/linalg"
	"github.com/spatialmodel/numerical/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultRoots is the quadrature order used by Integrator
	// when Roots is zero.
	DefaultRoots = 32

	// DefaultBatchSize is the number of intervals per dimension
	// evaluated together when no BatchPlan is given.
	DefaultBatchSize = 32
)

// BatchPlan holds the number of grid intervals along each dimension
// that are evaluated in a single call of the integrand.
type BatchPlan []int

// UniformBatch returns a plan with the same batch size for every dimension.
func UniformBatch(dims, size int) BatchPlan {
	p := make(BatchPlan, dims)
	for i := range p {
		p[i] = size
	}
	return p
}

// Integrate computes the integral of f over grid g using rootsCount
// Gauss-Legendre points per interval along each dimension.
// If plan is nil, DefaultBatchSize is used for every dimension.
// f receives the grid coordinates unchanged; use coords.Transform
// or IntegrateRegion for non-cartesian grids.
func Integrate(f numerical.Func, g *area.Grid, rootsCount int, plan BatchPlan) (float64, error) {
	if f == nil {
		return 0, fmt.Errorf("gauss: nil integrand: %w", numerical.ErrConfiguration)
	}
	if g == nil {
		return 0, fmt.Errorf("gauss: nil grid: %w", numerical.ErrConfiguration)
	}
	dim := g.Dims()
	if dim < 1 {
		return 0, fmt.Errorf("gauss: grid has no dimensions: %w", numerical.ErrDimensionMismatch)
	}
	if dim > numerical.MaxDims {
		return 0, fmt.Errorf("gauss: repeating arguments for %d dimensions: %w", dim, numerical.ErrUnsupported)
	}
	if plan == nil {
		plan = UniformBatch(dim, DefaultBatchSize)
	}
	if len(plan) != dim {
		return 0, fmt.Errorf("gauss: batch plan has %d sizes for %d dimensions: %w",
			len(plan), dim, numerical.ErrDimensionMismatch)
	}
	for d, s := range plan {
		if s < 1 {
			return 0, fmt.Errorf("gauss: batch size for dimension %d must be positive, not %d: %w",
				d, s, numerical.ErrConfiguration)
		}
	}
	rule, err := Legendre(rootsCount)
	if err != nil {
		return 0, err
	}

	halfWidths := make([][]float64, dim)
	for d := range halfWidths {
		halfWidths[d] = g.Axis(d).HalfWidths()
	}
	ndWeights := linalg.Power(rule.weights, dim)
	// Product of the interval half-widths: the Jacobian of each cell.
	ndOuterDiff := linalg.Outer(halfWidths...)

	l := &loop{
		f:         f,
		g:         g,
		rule:      rule,
		ndWeights: mat.NewVecDense(len(ndWeights), ndWeights),
		shape:     g.Shape(),
		plan:      plan,
		position:  make([]int, dim),
		cellSums:  make([]float64, g.Len()),
		blocks:    make([][]float64, dim),
		counts:    make([]int, dim),
	}
	l.nest(0)

	logrus.WithFields(logrus.Fields{
		"dims":    dim,
		"cells":   len(l.cellSums),
		"roots":   rootsCount,
		"batches": l.batches,
	}).Debug("gauss: integration complete")

	return floats.Dot(ndOuterDiff, l.cellSums), nil
}

// IntegrateRegion integrates f, written in cartesian coordinates,
// over region r discretized with the given steps.
func IntegrateRegion(f numerical.Func, r *area.Region, steps []float64, rootsCount int, plan BatchPlan) (float64, error) {
	if r == nil {
		return 0, fmt.Errorf("gauss: nil region: %w", numerical.ErrConfiguration)
	}
	if f == nil {
		return 0, fmt.Errorf("gauss: nil integrand: %w", numerical.ErrConfiguration)
	}
	tf, err := coords.Transform(f, r.Coords())
	if err != nil {
		return 0, err
	}
	g, err := area.NewGrid(r, steps)
	if err != nil {
		return 0, err
	}
	return Integrate(tf, g, rootsCount, plan)
}

// Integrator holds integration settings for reuse across calls.
type Integrator struct {
	// Roots is the quadrature order; DefaultRoots if zero.
	Roots int

	// Batch is the batch plan; see Integrate.
	Batch BatchPlan
}

func (it Integrator) roots() int {
	if it.Roots == 0 {
		return DefaultRoots
	}
	return it.Roots
}

// Integrate integrates f over g. See the Integrate function.
func (it Integrator) Integrate(f numerical.Func, g *area.Grid) (float64, error) {
	return Integrate(f, g, it.roots(), it.Batch)
}

// IntegrateRegion integrates f over r. See the IntegrateRegion function.
func (it Integrator) IntegrateRegion(f numerical.Func, r *area.Region, steps []float64) (float64, error) {
	return IntegrateRegion(f, r, steps, it.roots(), it.Batch)
}

// loop holds the state of the nested batch iteration.
type loop struct {
	f         numerical.Func
	g         *area.Grid
	rule      *Rule
	ndWeights *mat.VecDense
	shape     []int
	plan      BatchPlan

	// position is the first interval of the current batch
	// along each dimension.
	position []int

	// cellSums holds the weighted quadrature sum of each cell,
	// in row-major order.
	cellSums []float64

	blocks  [][]float64
	counts  []int
	x       [][]float64
	dst     []float64
	batches int
}

// nest iterates over the batches of dimension d and everything inside it.
func (l *loop) nest(d int) {
	if d == len(l.shape) {
		l.evaluate()
		return
	}
	for l.position[d] = 0; l.position[d] < l.shape[d]; l.position[d] += l.plan[d] {
		l.nest(d + 1)
	}
	l.position[d] = 0
}

// evaluate computes the quadrature sums of the cells in the current batch.
func (l *loop) evaluate() {
	n := l.rule.Len()
	for d := range l.blocks {
		a := l.g.Axis(d)
		lo := l.position[d]
		hi := lo + l.plan[d]
		if hi > l.shape[d] {
			hi = l.shape[d]
		}
		l.counts[d] = hi - lo
		l.blocks[d] = samplePoints(l.blocks[d], a.Midpoints()[lo:hi], a.HalfWidths()[lo:hi], l.rule.roots)
	}

	l.x = cartesianProduct(l.x, l.blocks, l.counts, n)
	size := len(l.x[0])
	if cap(l.dst) < size {
		l.dst = make([]float64, size)
	}
	l.dst = l.dst[:size]
	l.f(l.dst, l.x)

	cells := size / l.ndWeights.Len()
	vals := mat.NewDense(cells, l.ndWeights.Len(), l.dst)
	sums := mat.NewVecDense(cells, nil)
	sums.MulVec(vals, l.ndWeights)

	mesh.Walk(l.counts, func(i int, idx []int) {
		global := 0
		for d, j := range idx {
			global = global*l.shape[d] + l.position[d] + j
		}
		l.cellSums[global] = sums.AtVec(i)
	})
	l.batches++
}

// samplePoints maps the roots into each interval: element i*len(roots)+k
// of the result is mid[i] + half[i]*roots[k].
func samplePoints(dst, mid, half, roots []float64) []float64 {
	n := len(mid) * len(roots)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range mid {
		for k, r := range roots {
			dst[i*len(roots)+k] = mid[i] + half[i]*r
		}
	}
	return dst
}

// cartesianProduct expands per-axis sample blocks into one coordinate
// slice per axis covering every combination of cells and roots.
// blocks[d] holds counts[d] intervals of n samples each. Cells are
// ordered row-major, and within each cell the n^dim root combinations
// are ordered row-major, matching linalg.Power(weights, dim).
func cartesianProduct(dst [][]float64, blocks [][]float64, counts []int, n int) [][]float64 {
	dim := len(blocks)
	rootStride := make([]int, dim)
	nd := 1
	for d := dim - 1; d >= 0; d-- {
		rootStride[d] = nd
		nd *= n
	}
	size := nd
	for _, c := range counts {
		size *= c
	}
	if len(dst) != dim {
		dst = make([][]float64, dim)
	}
	for d := range dst {
		if cap(dst[d]) < size {
			dst[d] = make([]float64, size)
		}
		dst[d] = dst[d][:size]
	}

	p := 0
	mesh.Walk(counts, func(_ int, cell []int) {
		for k := 0; k < nd; k++ {
			for d := 0; d < dim; d++ {
				dst[d][p] = blocks[d][cell[d]*n+(k/rootStride[d])%n]
			}
			p++
		}
	})
	return dst
}
