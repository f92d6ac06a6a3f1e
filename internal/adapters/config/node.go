package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rollout/internal/adapters/logger"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
)

const (
	// SettingsNodeID is the unique identifier for the settings Graft node.
	SettingsNodeID graft.ID = "adapter.settings"
	// TopologyNodeID is the unique identifier for the topology provider Graft node.
	TopologyNodeID graft.ID = "adapter.topology"
)

func init() {
	graft.Register(graft.Node[domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Settings, error) {
			loader := NewSettingsLoader(nil)
			return loader.Load(loader.Path())
		},
	})

	graft.Register(graft.Node[ports.TopologyProvider]{
		ID:        TopologyNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TopologyProvider, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTopologyProvider(settings.TopologyDir, log), nil
		},
	})
}
