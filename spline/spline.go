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

// Package spline holds piecewise polynomial basis functions used for
// interpolation, along with their derivatives.
package spline

import (
	"fmt"

	"github.com/spatialmodel/numerical"
)

// Basis is a one-dimensional basis function that is zero outside of
// its support.
type Basis interface {
	// Eval sets dst[i] to the value of the function at x[i].
	Eval(dst, x []float64)

	// Support returns the interval outside of which the
	// function is zero.
	Support() (lo, hi float64)
}

// BasisFunc adapts a function to the Basis interface.
type BasisFunc struct {
	F      func(dst, x []float64)
	Lo, Hi float64
}

// Eval implements Basis.
func (b BasisFunc) Eval(dst, x []float64) { b.F(dst, x) }

// Support implements Basis.
func (b BasisFunc) Support() (lo, hi float64) { return b.Lo, b.Hi }

var (
	// LinearBasis is the linear spline as a Basis.
	LinearBasis Basis = BasisFunc{F: Linear, Lo: -1, Hi: 1}

	// SchoenbergBasis is the quintic Schoenberg spline as a Basis.
	SchoenbergBasis Basis = BasisFunc{F: Schoenberg, Lo: 0, Hi: 3}
)

// Linear is the hat function on (-1, 1): x+1 on (-1, 0] and 1-x on (0, 1).
func Linear(dst, x []float64) {
	for i, v := range x {
		switch {
		case v > -1 && v <= 0:
			dst[i] = v + 1
		case v > 0 && v < 1:
			dst[i] = 1 - v
		default:
			dst[i] = 0
		}
	}
}

// Schoenberg is the fifth order Schoenberg spline defined on [0, 3).
func Schoenberg(dst, x []float64) {
	for i, v := range x {
		dst[i] = piecewise(v, schoenberg)
	}
}

// MaxSchoenbergOrder is the highest derivative order of Schoenberg
// that is available.
const MaxSchoenbergOrder = 3

// SchoenbergDeriv returns the derivative of Schoenberg with the given
// order. Order 0 returns Schoenberg itself.
func SchoenbergDeriv(order int) (func(dst, x []float64), error) {
	if order < 0 {
		return nil, fmt.Errorf("spline: negative derivative order %d: %w", order, numerical.ErrConfiguration)
	}
	if order > MaxSchoenbergOrder {
		return nil, fmt.Errorf("spline: derivative of order %d for Schoenberg splines (max order is %d): %w",
			order, MaxSchoenbergOrder, numerical.ErrUnsupported)
	}
	pieces := schoenbergDerivs[order]
	return func(dst, x []float64) {
		for i, v := range x {
			dst[i] = piecewise(v, pieces)
		}
	}, nil
}

// pieces holds the polynomial coefficients of a spline on [0, 1),
// [1, 2) and [2, 3), lowest degree first.
type pieces [3][]float64

var schoenberg = pieces{
	{0.55, 0, -1. / 2, 0, 1. / 4, -1. / 12},
	{0.425, 5. / 8, -7. / 4, 5. / 4, -3. / 8, 1. / 24},
	{2.025, -27. / 8, 9. / 4, -3. / 4, 1. / 8, -1. / 120},
}

var schoenbergDerivs = [MaxSchoenbergOrder + 1]pieces{
	schoenberg,
	{
		{0, -1, 0, 1, -5. / 12},
		{0.625, -7. / 2, 15. / 4, -3. / 2, 5. / 24},
		{-3.375, 9. / 2, -9. / 4, 1. / 2, -1. / 24},
	},
	{
		{-1, 0, 3, -5. / 3},
		{-3.5, 15. / 2, -9. / 2, 5. / 6},
		{4.5, -9. / 2, 3. / 2, -1. / 6},
	},
	{
		{0, 6, -5},
		{7.5, -9, 5. / 2},
		{-4.5, 3, -1. / 2},
	},
}

func piecewise(x float64, p pieces) float64 {
	var c []float64
	switch {
	case x >= 0 && x < 1:
		c = p[0]
	case x >= 1 && x < 2:
		c = p[1]
	case x >= 2 && x < 3:
		c = p[2]
	default:
		return 0
	}
	// Horner's method.
	var v float64
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}
