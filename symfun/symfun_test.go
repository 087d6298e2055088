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

package symfun

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/area"
	"github.com/spatialmodel/numerical/gauss"
)

func TestCall(t *testing.T) {
	f, err := New("x**2 + x*y*5 - z + 15")
	if err != nil {
		t.Fatal(err)
	}
	if f.String() != "x**2 + x*y*5 - z + 15" {
		t.Errorf("string: %s", f)
	}
	if want := []string{"x", "y", "z"}; !reflect.DeepEqual(f.Vars(), want) {
		t.Errorf("vars %v != %v", f.Vars(), want)
	}
	v, err := f.Call(map[string]float64{"x": 5, "y": 7, "z": 12})
	if err != nil {
		t.Fatal(err)
	}
	if v != 203 {
		t.Errorf("%g != 203", v)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"pi/5", math.Pi / 5},
		{"2*pi", 2 * math.Pi},
		{"sqrt(2) * cos(0)", math.Sqrt2},
		{"pow(2, 10) - exp(0)", 1023},
		{"abs(-3.5) + log(e)", 4.5},
		{"-1.52", -1.52},
	}
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			v, err := Eval(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(v-test.want) > 1e-12 {
				t.Errorf("%g != %g", v, test.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	if _, err := Eval("x + 1"); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("variable in constant: %v", err)
	}
	if _, err := New("x + y", "x"); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("unbound variable: %v", err)
	}
	if _, err := New("x + (", "x"); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("syntax: %v", err)
	}
	if _, err := New("pi * r", "r", "pi"); !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("shadowed constant: %v", err)
	}
}

func TestFuncIntegrate(t *testing.T) {
	f, err := New("x**2 + 2*y + 5", "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	c, err := area.NewCircle(1)
	if err != nil {
		t.Fatal(err)
	}
	v, err := gauss.IntegrateRegion(f.Func(), c, []float64{0.1, math.Pi / 5}, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := 5.25 * math.Pi; math.Abs(v-want) > 1e-6*want {
		t.Errorf("%g != %g", v, want)
	}
}

// Argument order follows the declared variables, not the expression.
func TestFuncOrder(t *testing.T) {
	f, err := New("a - b", "b", "a")
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 2)
	f.Func()(dst, [][]float64{{1, 2}, {10, 20}})
	if want := []float64{9, 18}; !reflect.DeepEqual(dst, want) {
		t.Errorf("%v != %v", dst, want)
	}
}

func TestFuncEvaluationFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	f, err := New("pow(x)", "x")
	if err != nil {
		t.Fatal(err)
	}
	fn := f.Func()
	dst := make([]float64, 3)
	fn(dst, [][]float64{{1, 2, 3}})
	fn(dst[:1], [][]float64{{4}})
	for i, v := range dst {
		if !math.IsNaN(v) {
			t.Errorf("dst[%d] = %g, want NaN", i, v)
		}
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("%d log entries, want 1", len(hook.Entries))
	}
	e := hook.LastEntry()
	if e.Level != logrus.WarnLevel {
		t.Errorf("level %v", e.Level)
	}
	if err, ok := e.Data[logrus.ErrorKey].(error); !ok || !errors.Is(err, numerical.ErrConfiguration) {
		t.Errorf("logged error: %v", e.Data[logrus.ErrorKey])
	}
}
