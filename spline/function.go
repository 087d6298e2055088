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

package spline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spatialmodel/numerical"
	"gonum.org/v1/gonum/floats"
)

// Partial is the derivative of a given order with respect to one variable.
type Partial struct {
	Var   string
	Order int
}

func (p Partial) String() string { return fmt.Sprintf("d%s^%d", p.Var, p.Order) }

// Function is a spline of one or more named variables whose partial
// derivatives are known ahead of time.
type Function interface {
	// Vars returns the variable names in argument order.
	Vars() []string

	// Eval sets dst[i] to the function value at (x[0][i], x[1][i], ...).
	Eval(dst []float64, x ...[]float64)

	// Deriv returns the mixed partial derivative given by p. The order
	// of p does not matter, and repeated variables add up.
	Deriv(p ...Partial) (Function, error)
}

// product is a separable function: the product of one
// one-dimensional factor per variable.
type product struct {
	vars    []string
	factors []func(dst, x []float64)

	// derivs maps derivative orders, one per variable, to the
	// factors of the corresponding partial derivative.
	derivs map[string][]func(dst, x []float64)
}

func (f *product) Vars() []string { return append([]string(nil), f.vars...) }

func (f *product) Eval(dst []float64, x ...[]float64) {
	if len(x) != len(f.vars) {
		panic(fmt.Errorf("spline: %d arguments for a function of %v: %w", len(x), f.vars, numerical.ErrDimensionMismatch))
	}
	for i := range dst {
		dst[i] = 1
	}
	tmp := make([]float64, len(dst))
	for d, fd := range f.factors {
		fd(tmp, x[d][:len(dst)])
		floats.Mul(dst, tmp)
	}
}

func (f *product) Deriv(p ...Partial) (Function, error) {
	orders := make([]int, len(f.vars))
	for _, pi := range p {
		d := -1
		for i, v := range f.vars {
			if v == pi.Var {
				d = i
			}
		}
		if d < 0 {
			return nil, fmt.Errorf("spline: no variable %q in %v: %w", pi.Var, f.vars, numerical.ErrConfiguration)
		}
		if pi.Order < 0 {
			return nil, fmt.Errorf("spline: negative order in %v: %w", pi, numerical.ErrConfiguration)
		}
		orders[d] += pi.Order
	}
	k := key(orders)
	if k == key(make([]int, len(orders))) {
		return f, nil
	}
	factors, ok := f.derivs[k]
	if !ok {
		return nil, fmt.Errorf("spline: derivative %v of function of %v: %w", p, f.vars, numerical.ErrUnsupported)
	}
	return &product{vars: f.vars, factors: factors}, nil
}

func key(orders []int) string {
	s := make([]string, len(orders))
	for i, o := range orders {
		s[i] = strconv.Itoa(o)
	}
	return strings.Join(s, ",")
}

// Schoenberg1D returns the Schoenberg spline of variable v, with
// derivatives up to MaxSchoenbergOrder.
func Schoenberg1D(v string) Function {
	f := &product{
		vars:    []string{v},
		factors: []func(dst, x []float64){Schoenberg},
		derivs:  make(map[string][]func(dst, x []float64)),
	}
	for o := 1; o <= MaxSchoenbergOrder; o++ {
		d, _ := SchoenbergDeriv(o)
		f.derivs[key([]int{o})] = []func(dst, x []float64){d}
	}
	return f
}

// Schoenberg2D returns the tensor product of Schoenberg splines of
// variables v0 and v1. The partial derivatives of orders (1, 0), (0, 1),
// (1, 1), (2, 1) and (1, 2) are available.
func Schoenberg2D(v0, v1 string) (Function, error) {
	if v0 == v1 {
		return nil, fmt.Errorf("spline: repeated variable %q: %w", v0, numerical.ErrConfiguration)
	}
	d1, _ := SchoenbergDeriv(1)
	d2, _ := SchoenbergDeriv(2)
	type fn = func(dst, x []float64)
	return &product{
		vars:    []string{v0, v1},
		factors: []fn{Schoenberg, Schoenberg},
		derivs: map[string][]fn{
			key([]int{1, 0}): {d1, Schoenberg},
			key([]int{0, 1}): {Schoenberg, d1},
			key([]int{1, 1}): {d1, d1},
			key([]int{2, 1}): {d2, d1},
			key([]int{1, 2}): {d1, d2},
		},
	}, nil
}
