package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrDraining is returned by Schedule once the Runner has started draining.
var ErrDraining = errors.New("task runner is draining")

// Scheduler is an interface for components that can run work after the
// response to a request has already been sent.
type Scheduler interface {
	// Schedule runs fn in the background. The context passed to fn is not tied
	// to any request and is only canceled if the Runner gives up waiting for
	// it during shutdown.
	Schedule(name string, fn func(context.Context)) error
}

// Runner runs detached background tasks and can wait for them to finish on
// shutdown.
type Runner struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
	mu       sync.Mutex
	draining bool
	wg       sync.WaitGroup
}

// NewRunner returns a Runner ready to accept tasks.
func NewRunner(logger *zap.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Schedule runs fn on its own goroutine. Panics are recovered and logged.
func (r *Runner) Schedule(name string, fn func(context.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draining {
		return ErrDraining
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error(
					"background task panicked",
					zap.String("task", name),
					zap.Any("panic", p),
				)
			}
		}()
		fn(r.ctx)
	}()
	return nil
}

// Drain stops the Runner from accepting new tasks and waits up to timeout for
// in-flight tasks. If they have not finished by then, their context is
// canceled and false is returned.
func (r *Runner) Drain(timeout time.Duration) bool {
	r.mu.Lock()
	r.draining = true
	r.mu.Unlock()

	// Adapt wg to a channel that can be used in a select
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		r.wg.Wait()
	}()

	select {
	case <-doneCh:
		r.cancel()
		return true
	case <-time.After(timeout):
		r.logger.Warn(
			"gave up waiting for background tasks",
			zap.Duration("timeout", timeout),
		)
		r.cancel()
		return false
	}
}
