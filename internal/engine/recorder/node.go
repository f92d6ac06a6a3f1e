package recorder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rollout/internal/adapters/logger"
	"go.trai.ch/rollout/internal/adapters/properties"
	"go.trai.ch/rollout/internal/core/ports"
)

// NodeID is the unique identifier for the result recorder node.
const NodeID graft.ID = "engine.recorder"

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{properties.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Recorder, error) {
			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, log), nil
		},
	})
}
