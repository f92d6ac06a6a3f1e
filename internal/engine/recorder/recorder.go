// Package recorder writes deployment outcomes back into the run state.
package recorder

import (
	"context"
	"fmt"
	"maps"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder merges outcomes into the run-state file.
type Recorder struct {
	store  ports.StateStore
	logger ports.Logger
}

// New creates a Recorder.
func New(store ports.StateStore, logger ports.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record writes the keys of every outcome to path. Keys already present are
// overwritten and unrelated keys are kept. An environment whose keys are taken
// by an earlier one is skipped. A write failure is logged only.
func (r *Recorder) Record(_ context.Context, path string, outcomes []domain.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	environments := make([]string, len(outcomes))
	for i, o := range outcomes {
		environments[i] = o.Environment
	}
	conflicts := domain.KeyConflicts(environments)

	values := make(map[string]string, len(outcomes)*4)
	for _, o := range outcomes {
		if owner, ok := conflicts[o.Environment]; ok {
			r.logger.Warn(fmt.Sprintf("not recording %q: its keys belong to %q", o.Environment, owner))
			continue
		}
		maps.Copy(values, o.Properties())
	}

	r.write(path, values)
}

// RecordValues writes arbitrary run-state keys, such as the detected build type.
func (r *Recorder) RecordValues(_ context.Context, path string, values map[string]string) {
	if len(values) == 0 {
		return
	}
	r.write(path, values)
}

func (r *Recorder) write(path string, values map[string]string) {
	if err := r.store.Merge(path, values); err != nil {
		r.logger.Error(zerr.With(err, "file", path))
		return
	}
	r.logger.Info(fmt.Sprintf("recorded %d keys in %s", len(values), path))
}
