package ports

import "go.trai.ch/rollout/internal/core/domain"

// StateStore persists the key/value run state shared between pipeline stages.
//
//go:generate mockgen -source=state_store.go -destination=mocks/mock_state_store.go -package=mocks
type StateStore interface {
	// Load reads the run state at path. A missing file is an empty state.
	Load(path string) (domain.RunState, error)

	// Merge writes values into the run state at path, overwriting existing keys
	// and keeping all others.
	Merge(path string, values map[string]string) error
}
