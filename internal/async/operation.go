// Package async runs delayed save operations whose progress callers poll.
package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
)

type Status string

const (
	Pending   Status = "pending"
	Succeeded Status = "success"
	Failed    Status = "failure"
	Cancelled Status = "cancelled"
)

const retention = time.Hour

var ErrNotFound = errors.New("operation not found")

type Operation struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

type entry struct {
	op     Operation
	cancel context.CancelFunc
}

// Runner applies updates after a fixed delay. An operation cancelled before
// its delay elapses never applies its update.
type Runner struct {
	base    context.Context
	stop    context.CancelFunc
	delay   time.Duration
	metrics metrics.Recorder

	mu  sync.RWMutex
	ops map[string]*entry
	wg  sync.WaitGroup
}

func NewRunner(delay time.Duration, rec metrics.Recorder) *Runner {
	if rec == nil {
		rec = metrics.Nop{}
	}
	base, stop := context.WithCancel(context.Background())
	return &Runner{
		base:    base,
		stop:    stop,
		delay:   delay,
		metrics: rec,
		ops:     map[string]*entry{},
	}
}

// Start schedules apply after the runner's delay and returns the pending
// operation at once.
func (r *Runner) Start(kind string, apply func(ctx context.Context) error) Operation {
	return r.StartAfter(kind, r.delay, apply)
}

// StartAfter is Start with an explicit delay.
func (r *Runner) StartAfter(kind string, delay time.Duration, apply func(ctx context.Context) error) Operation {
	ctx, cancel := context.WithCancel(r.base)
	e := &entry{
		op: Operation{
			ID:        uuid.NewString(),
			Kind:      kind,
			Status:    Pending,
			StartedAt: time.Now(),
		},
		cancel: cancel,
	}

	r.mu.Lock()
	r.prune()
	r.ops[e.op.ID] = e
	op := e.op
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		r.finish(e, run(ctx, delay, apply))
	}()

	return op
}

func run(ctx context.Context, delay time.Duration, apply func(ctx context.Context) error) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return apply(ctx)
}

func (r *Runner) finish(e *entry, err error) {
	now := time.Now()

	r.mu.Lock()
	e.op.FinishedAt = &now
	switch {
	case err == nil:
		e.op.Status = Succeeded
	case errors.Is(err, context.Canceled):
		e.op.Status = Cancelled
	default:
		e.op.Status = Failed
		e.op.Error = err.Error()
	}
	op := e.op
	r.mu.Unlock()

	r.metrics.SaveFinished(op.Kind, string(op.Status))
	if op.Status == Failed {
		log.Error().Err(err).Str("operation_id", op.ID).Str("kind", op.Kind).Msg("[async] save failed")
		return
	}
	log.Debug().Str("operation_id", op.ID).Str("kind", op.Kind).Str("status", string(op.Status)).Msg("[async] save finished")
}

func (r *Runner) Get(id string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.ops[id]
	if !ok {
		return Operation{}, ErrNotFound
	}
	return e.op, nil
}

// Cancel aborts a pending operation. Finished operations are left unchanged.
func (r *Runner) Cancel(id string) (Operation, error) {
	r.mu.RLock()
	e, ok := r.ops[id]
	r.mu.RUnlock()
	if !ok {
		return Operation{}, ErrNotFound
	}
	e.cancel()
	return r.Get(id)
}

// Wait blocks until every started operation has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close cancels pending operations and waits for them to settle.
func (r *Runner) Close() {
	r.stop()
	r.wg.Wait()
}

// prune drops finished operations past retention. Callers hold r.mu.
func (r *Runner) prune() {
	cutoff := time.Now().Add(-retention)
	for id, e := range r.ops {
		if e.op.FinishedAt != nil && e.op.FinishedAt.Before(cutoff) {
			delete(r.ops, id)
		}
	}
}
