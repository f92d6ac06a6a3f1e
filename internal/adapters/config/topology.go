package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/zerr"
)

// TopologyProvider implements ports.TopologyProvider over {project}.json files.
type TopologyProvider struct {
	dir    string
	logger ports.Logger
}

// NewTopologyProvider creates a provider reading resources from dir.
func NewTopologyProvider(dir string, logger ports.Logger) *TopologyProvider {
	return &TopologyProvider{dir: dir, logger: logger}
}

// Load reads {dir}/{key}.json.
func (p *TopologyProvider) Load(key string) (*domain.Topology, error) {
	if key == "" || filepath.Base(key) != key {
		return nil, zerr.With(domain.ErrConfigNotFound, "project", key)
	}

	path := filepath.Join(p.dir, key+".json")
	data, err := os.ReadFile(path) //nolint:gosec // project key is validated above
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file topologyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	envs := make(map[string]map[domain.BuildType]domain.EnvironmentTarget, len(file))
	for env, byType := range file {
		targets := make(map[domain.BuildType]domain.EnvironmentTarget, len(byType))
		for bt, dto := range byType {
			nodes := make([]domain.Node, 0, len(dto.Nodes))
			for _, n := range dto.Nodes {
				nodes = append(nodes, domain.Node{URL: n.URL, Token: n.Token})
			}
			targets[domain.BuildType(bt)] = domain.EnvironmentTarget{JobName: dto.JobName, Nodes: nodes}
		}
		envs[env] = targets
	}

	return domain.NewResourceTopology(key, envs), nil
}

// Resolve picks the inline override when RUNDECK_JOB and RUNDECK_NODES are both
// set, otherwise the resource named by RUNDECK_PROJECT.
func (p *TopologyProvider) Resolve(state domain.RunState) (*domain.Topology, error) {
	if state.HasInlineTopology() {
		if state.Get(domain.KeyRundeckProject) != "" {
			p.logger.Info(fmt.Sprintf("inline job %q overrides project %q", state.Get(domain.KeyRundeckJob), state.Get(domain.KeyRundeckProject)))
		}
		return domain.NewInlineTopology(state.Get(domain.KeyRundeckJob), state.Get(domain.KeyRundeckNodes)), nil
	}

	key := state.Get(domain.KeyRundeckProject)
	if key == "" {
		return nil, zerr.With(domain.ErrConfigNotFound, "hint", "set RUNDECK_PROJECT or RUNDECK_JOB and RUNDECK_NODES")
	}
	return p.Load(key)
}
