// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

type result[T any] struct {
	i   int
	v   T
	err error
}

// ForEachFile runs work on every path with cfg.Threads workers and calls
// visit with each result in the order paths were given. visit runs on the
// caller's goroutine. It returns the first error from work or visit, in
// input order, or ctx.Err() if ctx ends first.
func ForEachFile[T any](
	ctx context.Context,
	cfg Config,
	paths []string,
	work func(context.Context, string) (T, error),
	visit func(string, T) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads > len(paths) {
		cfg.Threads = len(paths)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, cfg.Threads*2)
	results := make(chan result[T], cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				v, err := work(ctx, paths[i])
				select {
				case results <- result[T]{i: i, v: v, err: err}:
				case <-ctx.Done():
				}
			}
		}()
	}

	// Feed work
	go func() {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// Reorder: hold early finishers until their predecessors arrive.
	var (
		first   error
		next    int
		pending = make(map[int]result[T])
	)
	for r := range results {
		pending[r.i] = r
		for first == nil {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			first = cur.err
			if first == nil {
				first = visit(paths[cur.i], cur.v)
			}
			if first != nil {
				cancel()
			}
		}
	}
	if first != nil {
		return first
	}
	return ctx.Err()
}
