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

// Package interpolate builds functions from values tabulated on
// uniform grids using tensor products of spline basis functions.
package interpolate

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/mesh"
	"github.com/spatialmodel/numerical/spline"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultBatchSize is the number of points evaluated together
// when WithBatchSize is not given.
const DefaultBatchSize = 16

// Option configures an Interpolant.
type Option func(*Interpolant)

// WithBatchSize sets the number of points whose basis values are
// computed in one call of the basis function.
func WithBatchSize(n int) Option {
	return func(ip *Interpolant) { ip.batch = n }
}

// WithBasis sets the basis function. The default is spline.LinearBasis.
func WithBasis(b spline.Basis) Option {
	return func(ip *Interpolant) { ip.basis = b }
}

// Interpolant is a function built from tabulated values.
// The value at x is the sum over all nodes j of
// values[j] * Π_d basis((n_d-1)*(x_d-min_d)/(max_d-min_d) - j_d).
type Interpolant struct {
	lo, hi  []float64
	shape   []int
	strides []int
	values  []float64 // row-major

	basis spline.Basis
	batch int

	// window is the number of nodes per dimension that can
	// fall within the basis support of a point.
	window int
	reach  float64
}

// New returns an interpolant of values, where values.Shape[d] equals
// len(axes[d]) and axes[d] holds the uniformly spaced, increasing node
// coordinates along dimension d (matrix "ij" indexing).
func New(values *sparse.DenseArray, axes [][]float64, opts ...Option) (*Interpolant, error) {
	dims := len(axes)
	if dims < 1 || dims > numerical.MaxDims {
		return nil, fmt.Errorf("interpolate: %d dimensions, must be between 1 and %d: %w",
			dims, numerical.MaxDims, numerical.ErrDimensionMismatch)
	}
	if values == nil || len(values.Shape) != dims {
		return nil, fmt.Errorf("interpolate: values do not have %d dimensions: %w", dims, numerical.ErrDimensionMismatch)
	}
	ip := &Interpolant{
		lo:      make([]float64, dims),
		hi:      make([]float64, dims),
		shape:   make([]int, dims),
		strides: make([]int, dims),
		basis:   spline.LinearBasis,
		batch:   DefaultBatchSize,
	}
	for d, a := range axes {
		if values.Shape[d] != len(a) {
			return nil, fmt.Errorf("interpolate: axis %d has %d nodes but values have %d: %w",
				d, len(a), values.Shape[d], numerical.ErrDimensionMismatch)
		}
		if err := checkAxis(a); err != nil {
			return nil, fmt.Errorf("interpolate: axis %d: %w", d, err)
		}
		ip.lo[d], ip.hi[d] = a[0], a[len(a)-1]
		ip.shape[d] = len(a)
	}
	for _, o := range opts {
		o(ip)
	}
	if ip.batch < 1 {
		return nil, fmt.Errorf("interpolate: batch size must be positive, not %d: %w", ip.batch, numerical.ErrConfiguration)
	}
	if ip.basis == nil {
		return nil, fmt.Errorf("interpolate: nil basis: %w", numerical.ErrConfiguration)
	}
	lo, hi := ip.basis.Support()
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("interpolate: basis support [%g, %g] is not a finite interval: %w",
			lo, hi, numerical.ErrConfiguration)
	}
	ip.reach = hi
	ip.window = int(math.Ceil(hi-lo)) + 2

	n := 1
	for d := dims - 1; d >= 0; d-- {
		ip.strides[d] = n
		n *= ip.shape[d]
	}
	ip.values = make([]float64, n)
	mesh.Walk(ip.shape, func(i int, idx []int) {
		ip.values[i] = values.Get(idx...)
	})
	return ip, nil
}

func checkAxis(a []float64) error {
	if len(a) < 2 {
		return fmt.Errorf("need at least 2 nodes, have %d: %w", len(a), numerical.ErrConfiguration)
	}
	step := (a[len(a)-1] - a[0]) / float64(len(a)-1)
	if !(step > 0) {
		return fmt.Errorf("nodes are not increasing: %w", numerical.ErrConfiguration)
	}
	for i, v := range a {
		if !scalar.EqualWithinAbsOrRel(v, a[0]+float64(i)*step, 1e-8, 1e-5) {
			return fmt.Errorf("node %d (%g) is not uniformly spaced: %w", i, v, numerical.ErrConfiguration)
		}
	}
	return nil
}

// Dims returns the number of dimensions of the interpolant.
func (ip *Interpolant) Dims() int { return len(ip.shape) }

// EvalAll sets dst[i] to the interpolated value at point
// (x[0][i], x[1][i], ...). It has the signature of numerical.Func so
// that interpolants can be integrated.
func (ip *Interpolant) EvalAll(dst []float64, x [][]float64) {
	if len(x) != len(ip.shape) {
		panic(fmt.Errorf("interpolate: %d coordinates for %d dimensions: %w",
			len(x), len(ip.shape), numerical.ErrDimensionMismatch))
	}
	dims := len(ip.shape)
	w := ip.window
	first := make([][]int, dims)
	args := make([][]float64, dims)
	weights := make([][]float64, dims)
	for d := range args {
		first[d] = make([]int, ip.batch)
		args[d] = make([]float64, ip.batch*w)
		weights[d] = make([]float64, ip.batch*w)
	}
	counts := make([]int, dims)
	for d := range counts {
		counts[d] = w
	}

	for b0 := 0; b0 < len(dst); b0 += ip.batch {
		b1 := b0 + ip.batch
		if b1 > len(dst) {
			b1 = len(dst)
		}
		m := b1 - b0
		for d := 0; d < dims; d++ {
			n := ip.shape[d]
			scale := float64(n-1) / (ip.hi[d] - ip.lo[d])
			for i := 0; i < m; i++ {
				t := scale * (x[d][b0+i] - ip.lo[d])
				j0 := int(math.Floor(t - ip.reach))
				first[d][i] = j0
				for k := 0; k < w; k++ {
					j := j0 + k
					if j < 0 || j >= n || math.IsNaN(t) {
						args[d][i*w+k] = math.Inf(1)
						continue
					}
					args[d][i*w+k] = t - float64(j)
				}
			}
			ip.basis.Eval(weights[d][:m*w], args[d][:m*w])
		}

		for i := 0; i < m; i++ {
			var sum float64
			mesh.Walk(counts, func(_ int, k []int) {
				v := 1.
				flat := 0
				for d := 0; d < dims; d++ {
					j := first[d][i] + k[d]
					if j < 0 || j >= ip.shape[d] {
						return
					}
					v *= weights[d][i*w+k[d]]
					flat += j * ip.strides[d]
				}
				sum += v * ip.values[flat]
			})
			dst[b0+i] = sum
		}
	}
}

// Func returns the interpolant as an integrand.
func (ip *Interpolant) Func() numerical.Func { return ip.EvalAll }
