// Package watcher polls remote executions until they reach a terminal state.
package watcher

import (
	"context"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watcher implements ports.ExecutionWatcher.
type Watcher struct {
	jobs  ports.JobService
	clock Clock
}

// New creates a Watcher. A nil clock uses RealClock.
func New(jobs ports.JobService, clock Clock) *Watcher {
	if clock == nil {
		clock = RealClock{}
	}
	return &Watcher{jobs: jobs, clock: clock}
}

// Watch polls the execution every budget.Interval until it succeeds, fails or
// the budget is spent. Transport errors end the watch with StatusUnknown.
func (w *Watcher) Watch(
	ctx context.Context,
	session domain.Session,
	executionID string,
	budget domain.WatchBudget,
) domain.WatchResult {
	budget = budget.Normalize()
	remaining := budget.Timeout
	polls := 0

	for remaining > 0 {
		if ctx.Err() != nil {
			return w.timedOut(executionID, budget, polls)
		}

		status, err := w.jobs.ExecutionStatus(ctx, session, executionID)
		polls++
		if err != nil {
			return domain.WatchResult{
				Status: domain.StatusUnknown,
				Polls:  polls,
				Err:    err,
			}
		}

		switch {
		case status == domain.StatusSucceeded:
			return domain.WatchResult{Status: status, Polls: polls}
		case status.InProgress():
			if err := w.clock.Sleep(ctx, budget.Interval); err != nil {
				return w.timedOut(executionID, budget, polls)
			}
			remaining -= budget.Interval
		default:
			return domain.WatchResult{
				Status: domain.StatusFailed,
				Polls:  polls,
				Err: zerr.With(zerr.With(domain.ErrExecutionFailed,
					"execution_id", executionID), "status", string(status)),
			}
		}
	}

	return w.timedOut(executionID, budget, polls)
}

func (w *Watcher) timedOut(executionID string, budget domain.WatchBudget, polls int) domain.WatchResult {
	return domain.WatchResult{
		Status: domain.StatusTimedOut,
		Polls:  polls,
		Err: zerr.With(zerr.With(domain.ErrWatchTimedOut,
			"execution_id", executionID), "timeout", budget.Timeout.String()),
	}
}
