package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEveryRunsImmediatelyAndOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32

	done := make(chan struct{})
	go func() {
		Every(ctx, Job{Name: "test", Interval: 5 * time.Millisecond, Task: func(context.Context) error {
			if n.Add(1) == 2 {
				return errors.New("boom")
			}
			return nil
		}})
		close(done)
	}()

	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Every did not return after cancel")
	}
}

func TestEveryDisabled(t *testing.T) {
	called := false
	Every(context.Background(), Job{Name: "off", Task: func(context.Context) error {
		called = true
		return nil
	}})
	assert.False(t, called)
}
