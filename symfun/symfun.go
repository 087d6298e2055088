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

// Package symfun compiles string expressions such as "x**2 + 2*y + 5"
// into functions that can be evaluated and integrated.
package symfun

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/numerical"
)

// Constants holds the named constants available in every expression.
var Constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow takes 2 arguments, not %d", len(args))
		}
		x, ok0 := args[0].(float64)
		y, ok1 := args[1].(float64)
		if !ok0 || !ok1 {
			return nil, fmt.Errorf("pow: non-numeric arguments %v", args)
		}
		return math.Pow(x, y), nil
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function takes 1 argument, not %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("non-numeric argument %v", args[0])
		}
		return f(x), nil
	}
}

// Function is a compiled expression of named variables.
type Function struct {
	expr string
	vars []string
	e    *govaluate.EvaluableExpression
}

// New compiles expr. vars gives the argument order used by Func; if
// it is empty, the variables in expr are used in alphabetical order.
func New(expr string, vars ...string) (*Function, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return nil, fmt.Errorf("symfun: parsing %q: %v: %w", expr, err, numerical.ErrConfiguration)
	}
	f := &Function{expr: expr, e: e}
	bound := make(map[string]bool)
	for _, v := range vars {
		if _, ok := Constants[v]; ok {
			return nil, fmt.Errorf("symfun: variable %q shadows a constant: %w", v, numerical.ErrConfiguration)
		}
		if bound[v] {
			return nil, fmt.Errorf("symfun: repeated variable %q: %w", v, numerical.ErrConfiguration)
		}
		bound[v] = true
	}
	var free []string
	for _, v := range e.Vars() {
		if _, ok := Constants[v]; ok || bound[v] {
			continue
		}
		free = append(free, v)
		bound[v] = true
	}
	if len(vars) > 0 && len(free) > 0 {
		return nil, fmt.Errorf("symfun: unknown variables %v in %q: %w", free, expr, numerical.ErrConfiguration)
	}
	if len(vars) == 0 {
		sort.Strings(free)
		vars = free
	}
	f.vars = append([]string(nil), vars...)
	return f, nil
}

// Vars returns the argument names in order.
func (f *Function) Vars() []string { return append([]string(nil), f.vars...) }

func (f *Function) String() string { return f.expr }

// Call evaluates the expression with the given variable values.
func (f *Function) Call(params map[string]float64) (float64, error) {
	p := make(map[string]interface{}, len(params)+len(Constants))
	for k, v := range Constants {
		p[k] = v
	}
	for k, v := range params {
		p[k] = v
	}
	return f.eval(p)
}

func (f *Function) eval(p map[string]interface{}) (float64, error) {
	r, err := f.e.Evaluate(p)
	if err != nil {
		return math.NaN(), fmt.Errorf("symfun: evaluating %q: %v: %w", f.expr, err, numerical.ErrConfiguration)
	}
	switch v := r.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return math.NaN(), fmt.Errorf("symfun: %q evaluates to %T: %w", f.expr, r, numerical.ErrConfiguration)
}

// Func returns the expression as an integrand, with x[d] bound to
// variable Vars()[d]. Points where evaluation fails are set to NaN
// and the first failure is logged.
func (f *Function) Func() numerical.Func {
	var once sync.Once
	return func(dst []float64, x [][]float64) {
		if len(x) != len(f.vars) {
			panic(fmt.Errorf("symfun: %d coordinates for variables %v: %w",
				len(x), f.vars, numerical.ErrDimensionMismatch))
		}
		p := make(map[string]interface{}, len(f.vars)+len(Constants))
		for k, v := range Constants {
			p[k] = v
		}
		for i := range dst {
			for d, v := range f.vars {
				p[v] = x[d][i]
			}
			var err error
			if dst[i], err = f.eval(p); err != nil {
				once.Do(func() {
					logrus.WithError(err).WithField("point", p).Warn("symfun: evaluation failed; using NaN")
				})
			}
		}
	}
}

// Eval evaluates an expression that contains only numbers,
// constants and functions, such as "2*pi/5".
func Eval(expr string) (float64, error) {
	f, err := New(expr)
	if err != nil {
		return math.NaN(), err
	}
	if len(f.vars) > 0 {
		return math.NaN(), fmt.Errorf("symfun: %q is not constant, it has variables %v: %w",
			expr, f.vars, numerical.ErrConfiguration)
	}
	return f.Call(nil)
}
