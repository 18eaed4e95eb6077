package mapreduce

import (
	"context"
	"log/slog"
	"sync"
)

// job pairs an input with its position so results can be put back in order.
type job[In any] struct {
	index int
	input In
}

type result[Out any] struct {
	index int
	value Out
	err   error
}

// Parallel runs fn over inputs on a bounded pool of workers and returns the
// outputs in input order. A failing input is logged and left out of the
// returned slice; it never stops its siblings. If ctx ends before every job
// ran, the partial results are returned together with ctx.Err().
func Parallel[In, Out any](ctx context.Context, logger *slog.Logger, stage string, workers int, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(inputs) == 0 {
		return nil, ctx.Err()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan job[In], len(inputs))
	results := make(chan result[Out], len(inputs))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result[Out]{index: j.index, err: err}
					continue
				}
				v, err := fn(ctx, j.input)
				if err != nil {
					logger.Warn("Chunk task failed, skipping", "stage", stage, "worker_id", id, "chunk", j.index, "error", err)
				}
				results <- result[Out]{index: j.index, value: v, err: err}
			}
		}(w)
	}

	for i, in := range inputs {
		jobs <- job[In]{index: i, input: in}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]*result[Out], len(inputs))
	for r := range results {
		ordered[r.index] = &r
	}

	out := make([]Out, 0, len(inputs))
	for _, r := range ordered {
		if r == nil || r.err != nil {
			continue
		}
		out = append(out, r.value)
	}
	return out, ctx.Err()
}
