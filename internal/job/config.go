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

// Package job reads integration jobs from TOML files, runs them
// concurrently and stores their results.
package job

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/area"
	"github.com/spatialmodel/numerical/gauss"
	"github.com/spatialmodel/numerical/symfun"
	"github.com/spf13/cast"
)

// Config holds a set of jobs.
type Config struct {
	// Limit is the maximum number of jobs run at the same time.
	// Zero means no limit.
	Limit int

	Job []Job
}

// Job describes one integral. Numeric fields can be given either as
// numbers or as constant expressions such as "pi/5".
type Job struct {
	Name string

	// Expression is the integrand, for example "x**2 + 2*y + 5".
	// Polar integrands are written in cartesian x and y.
	Expression string

	// Variables lists the expression variables in axis order.
	// If empty, the variables found in Expression are used
	// in alphabetical order.
	Variables []string

	// Coords is "cartesian" (the default) or "polar".
	Coords string

	// Region is "line" (the default), "circle", "halfcircle"
	// or "segment".
	Region string

	// Bounds holds start and end pairs for "line" regions and
	// rho0, rho1, phi0, phi1 for "segment" regions.
	Bounds []interface{}

	// Radius is the radius of "circle" and "halfcircle" regions.
	Radius interface{}

	// Steps holds the grid step along each axis.
	Steps []interface{}

	// Roots is the quadrature order; gauss.DefaultRoots if zero.
	Roots int

	// Batch holds the batch size along each axis.
	Batch []int
}

// ReadConfig reads a configuration file.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("job: opening configuration: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads a configuration from r.
func DecodeConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("job: decoding configuration: %v: %w", err, numerical.ErrConfiguration)
	}
	seen := make(map[string]bool)
	for i, j := range c.Job {
		if j.Name == "" {
			c.Job[i].Name = fmt.Sprintf("job%d", i)
		}
		if seen[c.Job[i].Name] {
			return nil, fmt.Errorf("job: duplicate job name %q: %w", c.Job[i].Name, numerical.ErrConfiguration)
		}
		seen[c.Job[i].Name] = true
	}
	return c, nil
}

// Find returns the job with the given name.
func (c *Config) Find(name string) (*Job, error) {
	for i := range c.Job {
		if c.Job[i].Name == name {
			return &c.Job[i], nil
		}
	}
	return nil, fmt.Errorf("job: no job named %q: %w", name, numerical.ErrConfiguration)
}

// toFloat converts a number or a constant expression.
func toFloat(v interface{}) (float64, error) {
	if s, ok := v.(string); ok {
		return symfun.Eval(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN(), fmt.Errorf("%v: %w", err, numerical.ErrConfiguration)
	}
	return f, nil
}

func toFloats(name string, vs []interface{}) ([]float64, error) {
	o := make([]float64, len(vs))
	for i, v := range vs {
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		o[i] = f
	}
	return o, nil
}

var regionCoords = map[string]numerical.Coords{
	"line":       numerical.Cartesian,
	"circle":     numerical.Polar,
	"halfcircle": numerical.Polar,
	"segment":    numerical.Polar,
}

// BuildRegion returns the region the job integrates over.
func (j *Job) BuildRegion() (*area.Region, error) {
	c, err := numerical.ParseCoords(j.Coords)
	if err != nil {
		return nil, err
	}
	bounds, err := toFloats("Bounds", j.Bounds)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	var radius float64
	if j.Radius != nil {
		if radius, err = toFloat(j.Radius); err != nil {
			return nil, fmt.Errorf("job %s: Radius: %w", j.Name, err)
		}
	}
	kind := strings.ToLower(j.Region)
	if kind == "" {
		kind = "line"
	}
	want, ok := regionCoords[kind]
	if !ok {
		return nil, fmt.Errorf("job %s: region can be 'line', 'circle', 'halfcircle' or 'segment', not %q: %w",
			j.Name, j.Region, numerical.ErrConfiguration)
	}
	if c != want {
		return nil, fmt.Errorf("job %s: %s region in %v coordinates: %w", j.Name, kind, c, numerical.ErrConfiguration)
	}
	var r *area.Region
	switch kind {
	case "line":
		r, err = area.NewLines(bounds...)
	case "circle":
		r, err = area.NewCircle(radius)
	case "halfcircle":
		r, err = area.NewHalfCircle(radius)
	case "segment":
		if len(bounds) != 4 {
			return nil, fmt.Errorf("job %s: segment needs 4 bounds, not %d: %w",
				j.Name, len(bounds), numerical.ErrDimensionMismatch)
		}
		r, err = area.NewCircleSegment(bounds[0], bounds[1], bounds[2], bounds[3])
	}
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	return r, nil
}

// BuildGrid returns the grid the job integrates over.
func (j *Job) BuildGrid() (*area.Grid, error) {
	r, err := j.BuildRegion()
	if err != nil {
		return nil, err
	}
	steps, err := toFloats("Steps", j.Steps)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	g, err := area.NewGrid(r, steps)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	return g, nil
}

// Integrand compiles the job expression.
func (j *Job) Integrand() (*symfun.Function, error) {
	f, err := symfun.New(j.Expression, j.Variables...)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	return f, nil
}

// Integrator returns the quadrature settings of the job.
func (j *Job) Integrator() gauss.Integrator {
	it := gauss.Integrator{Roots: j.Roots}
	if len(j.Batch) > 0 {
		it.Batch = gauss.BatchPlan(j.Batch)
	}
	return it
}
