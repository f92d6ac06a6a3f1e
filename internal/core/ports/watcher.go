package ports

import (
	"context"

	"go.trai.ch/rollout/internal/core/domain"
)

// ExecutionWatcher follows a running execution to a terminal state.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type ExecutionWatcher interface {
	Watch(ctx context.Context, session domain.Session, executionID string, budget domain.WatchBudget) domain.WatchResult
}
