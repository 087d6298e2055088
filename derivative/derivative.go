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

// Package derivative dispatches derivative requests to the method
// that can compute them.
package derivative

import (
	"fmt"
	"strings"

	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/spline"
	"github.com/spf13/cast"
)

// Kind is a method of computing derivatives.
type Kind int

const (
	// Numerical derivatives are looked up from the tables that
	// spline functions carry.
	Numerical Kind = iota

	// Symbolical derivatives are not implemented.
	Symbolical
)

func (k Kind) String() string {
	switch k {
	case Numerical:
		return "numerical"
	case Symbolical:
		return "symbolical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "numerical":
		return Numerical, nil
	case "symbolical":
		return Symbolical, nil
	}
	return 0, fmt.Errorf("derivative: kind '%s' is not valid, use 'numerical' or 'symbolical': %w",
		s, numerical.ErrConfiguration)
}

// Diff returns the partial derivative p of f computed with the given method.
func Diff(f spline.Function, kind Kind, p ...spline.Partial) (spline.Function, error) {
	switch kind {
	case Numerical:
		return f.Deriv(p...)
	case Symbolical:
		return nil, fmt.Errorf("derivative: symbolical derivatives: %w", numerical.ErrUnsupported)
	default:
		return nil, fmt.Errorf("derivative: invalid kind %v: %w", kind, numerical.ErrConfiguration)
	}
}

// Parse converts alternating variables and orders, such as
// ("x", 1, "y", "2"), into partials.
func Parse(args ...interface{}) ([]spline.Partial, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("derivative: odd number of arguments %v: %w", args, numerical.ErrConfiguration)
	}
	p := make([]spline.Partial, len(args)/2)
	for i := range p {
		v, err := cast.ToStringE(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("derivative: variable %d: %v: %w", i, err, numerical.ErrConfiguration)
		}
		o, err := cast.ToIntE(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("derivative: order of %s: %v: %w", v, err, numerical.ErrConfiguration)
		}
		p[i] = spline.Partial{Var: v, Order: o}
	}
	return p, nil
}
