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

package linalg

import (
	"reflect"
	"testing"
)

func TestOuter(t *testing.T) {
	tests := []struct {
		name string
		vs   [][]float64
		want []float64
	}{
		{name: "single", vs: [][]float64{{1, 2, 3}}, want: []float64{1, 2, 3}},
		{name: "pair", vs: [][]float64{{1, 2}, {3, 4, 5}}, want: []float64{3, 4, 5, 6, 8, 10}},
		{
			name: "triple",
			vs:   [][]float64{{1, 2}, {1, 10}, {1, 100}},
			want: []float64{1, 100, 10, 1000, 2, 200, 20, 2000},
		},
		{name: "empty", vs: [][]float64{{1, 2}, {}}, want: []float64{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have := Outer(test.vs...)
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("%v != %v", have, test.want)
			}
		})
	}
}

func TestOuterDoesNotAlias(t *testing.T) {
	v := []float64{1, 2}
	o := Outer(v)
	o[0] = 5
	if v[0] != 1 {
		t.Errorf("input modified: %v", v)
	}
}

func TestPower(t *testing.T) {
	have := Power([]float64{0.5, 2}, 2)
	want := []float64{0.25, 1, 1, 4}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("%v != %v", have, want)
	}
	if n := len(Power([]float64{1, 2, 3}, 3)); n != 27 {
		t.Errorf("len %d != 27", n)
	}
}
