package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravsim/internal/nbody"
	"github.com/san-kum/gravsim/internal/timescale"
)

// Job is one independent world for an Ensemble.
type Job struct {
	Name    string
	World   *nbody.World
	Clock   *timescale.Clock
	Metrics []Metric
}

// Ensemble runs independent worlds concurrently with a shared config. Jobs
// must not share worlds, clocks or metric instances.
type Ensemble struct {
	base  *Runner
	limit int
}

// NewEnsemble runs at most limit jobs at once; limit <= 0 means no limit.
func NewEnsemble(r *Runner, limit int) *Ensemble {
	return &Ensemble{base: r, limit: limit}
}

// Run returns one result per job, in job order. The first failing job
// cancels the rest.
func (e *Ensemble) Run(ctx context.Context, jobs []Job, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			r := New(e.base.log.With("job", job.Name))
			for _, m := range job.Metrics {
				r.AddMetric(m)
			}
			res, err := r.Run(ctx, job.World, job.Clock, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
