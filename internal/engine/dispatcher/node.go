package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rollout/internal/adapters/config"
	"go.trai.ch/rollout/internal/adapters/logger"
	"go.trai.ch/rollout/internal/adapters/rundeck"
	"go.trai.ch/rollout/internal/adapters/telemetry/progrock"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/rollout/internal/engine/watcher"
)

// NodeID is the unique identifier for the dispatcher node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			rundeck.NodeID,
			watcher.NodeID,
			logger.NodeID,
			progrock.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			jobs, err := graft.Dep[ports.JobService](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.ExecutionWatcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(jobs, w, log, tel, settings), nil
		},
	})
}
