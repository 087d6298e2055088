/*
Copyright © 2019 the InMAP authors.
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

/*Package mesh defines interfaces for integration meshes.*/
package mesh

// Mesh describes a rectilinear integration mesh.
type Mesh interface {
	// Dims returns the number of dimensions
	// in this mesh.
	Dims() int

	// Len is the total number of cells in this Mesh.
	Len() int

	// Cell returns the mesh cell at index i (where i < Len()).
	// Cells are ordered row-major, with the last dimension
	// varying fastest.
	Cell(i int) Cell
}

// Cell specifies a hyper-rectangular cell in a mesh.
type Cell interface {
	// Centroid returns the centroid of this cell.
	Centroid() Point

	// HalfWidth returns half of the cell width
	// along dimension d.
	HalfWidth(d int) float64

	// Measure returns the length, area or volume
	// of the cell.
	Measure() float64
}

// Point represents a point in vector space.
type Point interface {
	// Len returns the number of dimensions of this point.
	Len() int

	// D returns the point value in the specified dimension.
	D(int) float64
}

// Vec is a Point backed by a slice.
type Vec []float64

// Len returns the number of dimensions of this point.
func (v Vec) Len() int { return len(v) }

// D returns the point value in dimension i.
func (v Vec) D(i int) float64 { return v[i] }

// Walk calls fn with the index and multi-dimensional position of
// every cell of a mesh with the given per-dimension cell counts,
// in row-major order. idx is reused between calls.
func Walk(counts []int, fn func(i int, idx []int)) {
	n := 1
	for _, c := range counts {
		n *= c
	}
	if n == 0 {
		return
	}
	idx := make([]int, len(counts))
	for i := 0; i < n; i++ {
		fn(i, idx)
		for d := len(counts) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < counts[d] {
				break
			}
			idx[d] = 0
		}
	}
}
