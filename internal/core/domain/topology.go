package domain

import (
	"slices"
	"strings"
)

// TopologySource tells where a Topology came from.
type TopologySource int

const (
	// TopologyFromResource is a topology loaded from a {project}.json resource.
	TopologyFromResource TopologySource = iota
	// TopologyInline is a topology synthesized from RUNDECK_JOB and RUNDECK_NODES.
	TopologyInline
)

// InlineEnvironment is the environment key used by inline topologies.
const InlineEnvironment = ""

// Node is a deployment host.
type Node struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// EnvironmentTarget is the job and hosts used to deploy one build type to one environment.
type EnvironmentTarget struct {
	JobName string `json:"job_name"`
	Nodes   []Node `json:"nodes"`
}

// ArgString joins the node URLs with commas. Tokens are not part of the argument string.
func (t EnvironmentTarget) ArgString() string {
	urls := make([]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		urls = append(urls, n.URL)
	}
	return strings.Join(urls, ",")
}

// Topology maps environments and build types to deployment targets.
// It is built once per run and never mutated afterwards.
type Topology struct {
	source       TopologySource
	key          string
	environments map[string]map[BuildType]EnvironmentTarget
	inline       EnvironmentTarget
}

// NewResourceTopology creates a topology from a loaded resource.
func NewResourceTopology(key string, environments map[string]map[BuildType]EnvironmentTarget) *Topology {
	envs := make(map[string]map[BuildType]EnvironmentTarget, len(environments))
	for env, byType := range environments {
		copied := make(map[BuildType]EnvironmentTarget, len(byType))
		for bt, target := range byType {
			target.Nodes = slices.Clone(target.Nodes)
			copied[bt] = target
		}
		envs[env] = copied
	}
	return &Topology{
		source:       TopologyFromResource,
		key:          key,
		environments: envs,
	}
}

// NewInlineTopology creates a single-target topology from a job name and a
// comma-separated list of node URLs. Blank entries are dropped.
func NewInlineTopology(jobName, nodeList string) *Topology {
	var nodes []Node
	for _, u := range strings.Split(nodeList, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		nodes = append(nodes, Node{URL: u})
	}
	return &Topology{
		source: TopologyInline,
		inline: EnvironmentTarget{JobName: jobName, Nodes: nodes},
	}
}

// Source reports whether the topology came from a resource or an inline override.
func (t *Topology) Source() TopologySource {
	return t.source
}

// Key returns the project key of a resource topology.
func (t *Topology) Key() string {
	return t.key
}

// Target returns the target for an environment and build type.
// Inline topologies only know the InlineEnvironment and ignore the build type.
// Targets without a job name are treated as absent.
func (t *Topology) Target(environment string, buildType BuildType) (EnvironmentTarget, bool) {
	if t.source == TopologyInline {
		if environment != InlineEnvironment || t.inline.JobName == "" {
			return EnvironmentTarget{}, false
		}
		return t.inline, true
	}

	byType, ok := t.environments[environment]
	if !ok {
		return EnvironmentTarget{}, false
	}
	target, ok := byType[buildType]
	if !ok || target.JobName == "" {
		return EnvironmentTarget{}, false
	}
	return target, true
}

// DispatchEnvironments returns the environments to dispatch for the requested list.
// An inline topology always dispatches its single environment.
func (t *Topology) DispatchEnvironments(requested []string) []string {
	if t.source == TopologyInline {
		return []string{InlineEnvironment}
	}
	return slices.Clone(requested)
}

// Environments returns the sorted environment names known to a resource topology.
func (t *Topology) Environments() []string {
	names := make([]string, 0, len(t.environments))
	for env := range t.environments {
		names = append(names, env)
	}
	slices.Sort(names)
	return names
}

// ParseEnvironmentList splits a comma-separated ENV_NAME value, trimming blanks and
// dropping duplicates while keeping first-occurrence order.
func ParseEnvironmentList(value string) []string {
	seen := make(map[string]struct{})
	var envs []string
	for _, env := range strings.Split(value, ",") {
		env = strings.TrimSpace(env)
		if env == "" {
			continue
		}
		if _, dup := seen[env]; dup {
			continue
		}
		seen[env] = struct{}{}
		envs = append(envs, env)
	}
	return envs
}
