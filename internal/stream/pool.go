package stream

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Pool runs short-lived jobs on background goroutines, at most `workers`
// at a time. Submit never blocks: each job gets its own goroutine that
// waits for a slot.
type Pool struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	active atomic.Int64
	log    *zap.Logger
}

// NewPool creates a pool running up to workers jobs concurrently.
func NewPool(workers int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		sem:    semaphore.NewWeighted(int64(workers)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Submit schedules job. A panic inside job is recovered and passed to
// onPanic as an error; the pool keeps running. Jobs submitted after Close
// are dropped.
func (p *Pool) Submit(name string, job func(ctx context.Context), onPanic func(err error)) {
	p.wg.Add(1)
	p.active.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.active.Add(-1)

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		if p.ctx.Err() != nil {
			return
		}

		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("job %s panicked: %v", name, r)
				p.log.Warn("job failed", zap.String("job", name), zap.Any("panic", r))
				if onPanic != nil {
					onPanic(err)
				}
			}
		}()
		job(p.ctx)
	}()
}

// Active returns the number of submitted jobs that have not finished,
// including those waiting for a slot.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Done is closed when the pool shuts down. Jobs select on it when handing
// results back so they never block past Close.
func (p *Pool) Done() <-chan struct{} {
	return p.ctx.Done()
}

// Close stops accepting work, cancels waiting jobs and waits for running
// jobs to return.
func (p *Pool) Close() {
	p.cancel()
	p.wg.Wait()
}
