// Package scheduler runs periodic maintenance while the server is up.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

type Job struct {
	Name     string
	Interval time.Duration
	Task     Task
}

// Every runs job once immediately and then on each tick until ctx is done.
// Task errors are logged and never stop the loop.
func Every(ctx context.Context, job Job) {
	if job.Interval <= 0 {
		log.Printf("[%s] disabled: interval=%s", job.Name, job.Interval)
		return
	}
	t := time.NewTicker(job.Interval)
	defer t.Stop()

	run := func() {
		start := time.Now()
		if err := job.Task(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[%s] error: %v dur_ms=%d", job.Name, err, time.Since(start).Milliseconds())
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
