package ports

import "go.trai.ch/rollout/internal/core/domain"

// TopologyProvider supplies the deployment topology for a run.
//
//go:generate mockgen -source=topology.go -destination=mocks/mock_topology.go -package=mocks
type TopologyProvider interface {
	// Load reads the topology resource named by key.
	Load(key string) (*domain.Topology, error)

	// Resolve returns the inline topology when the run state carries an override,
	// otherwise the resource named by the run state's project key.
	Resolve(state domain.RunState) (*domain.Topology, error)
}
