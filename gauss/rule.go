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

package gauss

import (
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/spatialmodel/numerical"
	"gonum.org/v1/gonum/integrate/quad"
)

// Rule is a Gauss-Legendre quadrature rule on [-1, 1]. A Rule is
// immutable and can be shared between goroutines.
type Rule struct {
	roots, weights []float64
}

// MaxCachedRules is the number of rules kept by Legendre.
const MaxCachedRules = 64

var rules = struct {
	sync.Mutex
	cache *lru.Cache
}{cache: lru.New(MaxCachedRules)}

// Legendre returns the n-point Gauss-Legendre rule. Rules are computed
// once and cached.
func Legendre(n int) (*Rule, error) {
	if n < 1 {
		return nil, fmt.Errorf("gauss: roots count must be at least 1, not %d: %w", n, numerical.ErrConfiguration)
	}
	rules.Lock()
	defer rules.Unlock()
	if r, ok := rules.cache.Get(n); ok {
		return r.(*Rule), nil
	}
	r := newRule(n)
	rules.cache.Add(n, r)
	return r, nil
}

func newRule(n int) *Rule {
	r := &Rule{roots: make([]float64, n), weights: make([]float64, n)}
	quad.Legendre{}.FixedLocations(r.roots, r.weights, -1, 1)
	return r
}

// Len returns the number of roots in the rule.
func (r *Rule) Len() int { return len(r.roots) }

// Root returns root i.
func (r *Rule) Root(i int) float64 { return r.roots[i] }

// Weight returns the weight of root i.
func (r *Rule) Weight(i int) float64 { return r.weights[i] }

// Roots returns a copy of the roots.
func (r *Rule) Roots() []float64 { return append([]float64(nil), r.roots...) }

// Weights returns a copy of the weights.
func (r *Rule) Weights() []float64 { return append([]float64(nil), r.weights...) }
