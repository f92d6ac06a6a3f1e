package domain

import (
	"maps"
	"slices"
)

// Run-state keys shared between pipeline stages.
const (
	KeyEnvName        = "ENV_NAME"
	KeyBuildTag       = "BUILD_TAG"
	KeyRepoName       = "REPO_NAME"
	KeyBranchName     = "BRANCH_NAME"
	KeyDeployDelay    = "DEPLOY_DELAY"
	KeyRundeckProject = "RUNDECK_PROJECT"
	KeyRundeckJob     = "RUNDECK_JOB"
	KeyRundeckNodes   = "RUNDECK_NODES"
	KeyBuildType      = "BUILD_TYPE"
)

// OverridableKeys are the run-state keys the process environment may override.
var OverridableKeys = []string{
	KeyEnvName,
	KeyBuildTag,
	KeyRepoName,
	KeyBranchName,
	KeyDeployDelay,
	KeyRundeckProject,
	KeyRundeckJob,
	KeyRundeckNodes,
}

// JobOptionKeys are forwarded to the job service as job options when set.
var JobOptionKeys = []string{KeyBuildTag, KeyRepoName}

// RunState is the key/value store persisted between pipeline stages.
type RunState map[string]string

// Get returns the value for key, or "" when unset.
func (s RunState) Get(key string) string {
	return s[key]
}

// Environments returns the deduplicated ENV_NAME list.
func (s RunState) Environments() []string {
	return ParseEnvironmentList(s[KeyEnvName])
}

// HasInlineTopology reports whether both inline override keys are set.
func (s RunState) HasInlineTopology() bool {
	return s[KeyRundeckJob] != "" && s[KeyRundeckNodes] != ""
}

// JobOptions returns the non-empty job option values.
func (s RunState) JobOptions() map[string]string {
	opts := make(map[string]string)
	for _, k := range JobOptionKeys {
		if v := s[k]; v != "" {
			opts[k] = v
		}
	}
	return opts
}

// WithOverrides returns a copy of the state with the overridable keys replaced by
// values found through lookup.
func (s RunState) WithOverrides(lookup func(string) (string, bool)) RunState {
	out := maps.Clone(s)
	if out == nil {
		out = RunState{}
	}
	if lookup == nil {
		return out
	}
	for _, k := range OverridableKeys {
		if v, ok := lookup(k); ok {
			out[k] = v
		}
	}
	return out
}

// Keys returns the sorted keys.
func (s RunState) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
