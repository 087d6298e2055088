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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/numerical"
	"github.com/spatialmodel/numerical/coords"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of a job.
type Result struct {
	Name  string
	Value float64
	Cells int

	// Seconds is the wall time of the integration.
	Seconds float64

	// Error is empty if the job succeeded.
	Error string `toml:",omitempty"`
}

// Run runs jobs with at most limit running at the same time (no limit
// if limit < 1) and returns their results in the same order. Failed
// jobs are reported in their Result; the returned error is only set
// if ctx is canceled.
func Run(ctx context.Context, jobs []Job, limit int) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runOne(&jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	return results, nil
}

func runOne(j *Job) Result {
	res := Result{Name: j.Name}
	log := logrus.WithField("job", j.Name)
	start := time.Now()
	v, cells, err := integrate(j)
	res.Seconds = time.Since(start).Seconds()
	if err != nil {
		log.WithError(err).Error("job failed")
		res.Error = err.Error()
		return res
	}
	res.Value, res.Cells = v, cells
	log.WithFields(logrus.Fields{
		"value":   v,
		"cells":   cells,
		"seconds": res.Seconds,
	}).Info("job complete")
	return res
}

func integrate(j *Job) (float64, int, error) {
	f, err := j.Integrand()
	if err != nil {
		return 0, 0, err
	}
	g, err := j.BuildGrid()
	if err != nil {
		return 0, 0, err
	}
	if len(f.Vars()) != g.Dims() {
		return 0, 0, fmt.Errorf("job %s: expression has variables %v for a %d-D region: %w",
			j.Name, f.Vars(), g.Dims(), numerical.ErrDimensionMismatch)
	}
	tf, err := coords.Transform(f.Func(), g.Coords())
	if err != nil {
		return 0, 0, err
	}
	v, err := j.Integrator().Integrate(tf, g)
	if err != nil {
		return 0, 0, fmt.Errorf("job %s: %w", j.Name, err)
	}
	return v, g.Len(), nil
}
