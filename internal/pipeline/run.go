// Package pipeline maps the labeler over a whole table.
package pipeline

import (
	"context"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/rules"
)

type Options struct {
	// Workers bounds parallelism; <= 0 means GOMAXPROCS.
	Workers int
}

// Run labels every record of t. Results come back in input order no matter
// which worker finished first. A cancelled ctx stops scheduling new rows and
// its error is returned.
func Run(ctx context.Context, t domain.Table, l rules.Labeler, opts Options) ([]domain.Result, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]domain.Result, len(t.Records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range t.Records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.Label(t.Records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[pipeline] labeled rows=%d fake=%d workers=%d dur_ms=%d",
		len(results), CountFake(results), workers, time.Since(start).Milliseconds())
	return results, nil
}

func CountFake(results []domain.Result) int {
	n := 0
	for _, r := range results {
		if r.IsFake() {
			n++
		}
	}
	return n
}
