package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// RunFunc performs one job and returns the id of what it produced.
type RunFunc func(ctx context.Context, job Job) (string, error)

type Result struct {
	Job Job
	ID  string
	Err error
}

// Ensemble runs jobs concurrently with at most Workers in flight.
type Ensemble struct {
	workers int
}

func NewEnsemble(workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{workers: workers}
}

// Run executes every job and returns their results in job order. The error
// joins every failed job; results for the others are still filled in. Jobs
// not yet started when ctx is cancelled fail with the context's error.
func (e *Ensemble) Run(ctx context.Context, jobs []Job, fn RunFunc) ([]Result, error) {
	results := make([]Result, len(jobs))
	sem := make(chan struct{}, e.workers)

	var wg sync.WaitGroup
	for i, job := range jobs {
		results[i].Job = job

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx].ID, results[idx].Err = fn(ctx, job)
		}(i, job)
	}

	wg.Wait()

	var errs []error
	for i, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("job %d (%s): %w", i+1, r.Job, r.Err))
		}
	}
	return results, errors.Join(errs...)
}
