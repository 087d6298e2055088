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

// Package linalg holds small linear algebra helpers built on gonum.
package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// Outer returns the flattened, row-major outer product of the given
// vectors: element (i0, i1, ..., ik) of the product is
// vs[0][i0]*vs[1][i1]*...*vs[k][ik] and is stored at the index where
// the last vector's index varies fastest. The result always has
// a newly allocated backing array.
func Outer(vs ...[]float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	for _, v := range vs {
		if len(v) == 0 {
			return []float64{}
		}
	}
	out := make([]float64, len(vs[0]))
	copy(out, vs[0])
	for _, v := range vs[1:] {
		var m mat.Dense
		m.Outer(1, mat.NewVecDense(len(out), out), mat.NewVecDense(len(v), v))
		// A freshly allocated matrix is contiguous.
		out = m.RawMatrix().Data
	}
	return out
}

// Power returns the flattened n-fold outer product of v with itself.
func Power(v []float64, n int) []float64 {
	vs := make([][]float64, n)
	for i := range vs {
		vs[i] = v
	}
	return Outer(vs...)
}
