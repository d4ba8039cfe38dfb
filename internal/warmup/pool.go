package warmup

import (
	"context"
	"sync"
	"sync/atomic"
)

// Result holds the outcome of one warm-up job.
type Result struct {
	Job   Job
	Items int // number of items the listing returned
	Err   error
}

// JobFunc fetches one listing and reports how many items it held.
type JobFunc func(ctx context.Context, job Job) (items int, err error)

// RunConcurrently fans jobs out across N workers. done is atomically
// incremented after each job finishes (success or failure) so callers can
// report progress. Results come back in no particular order.
func RunConcurrently(
	ctx context.Context,
	jobs []Job,
	fn JobFunc,
	workers int,
	done *int64,
) []Result {
	if workers <= 0 {
		workers = 1
	}

	queue := make(chan Job, len(jobs))
	results := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if ctx.Err() != nil {
					results <- Result{Job: job, Err: ctx.Err()}
					atomic.AddInt64(done, 1)
					continue
				}

				items, err := fn(ctx, job)
				results <- Result{Job: job, Items: items, Err: err}
				atomic.AddInt64(done, 1)
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(jobs))
	for r := range results {
		out = append(out, r)
	}
	return out
}
