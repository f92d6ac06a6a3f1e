package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rollout/internal/adapters/rundeck"
	"go.trai.ch/rollout/internal/core/ports"
)

// NodeID is the unique identifier for the execution watcher node.
const NodeID graft.ID = "engine.watcher"

func init() {
	graft.Register(graft.Node[ports.ExecutionWatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{rundeck.NodeID},
		Run: func(ctx context.Context) (ports.ExecutionWatcher, error) {
			jobs, err := graft.Dep[ports.JobService](ctx)
			if err != nil {
				return nil, err
			}
			return New(jobs, RealClock{}), nil
		},
	})
}
