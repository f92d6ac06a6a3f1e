// Package detector resolves a workspace's build type from its root entries.
package detector

import (
	"fmt"
	"os"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
)

// Detector implements ports.BuildTypeDetector by listing the workspace root.
type Detector struct {
	logger ports.Logger
}

// New creates a Detector.
func New(logger ports.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect returns the build type of workspace. Subdirectories are not searched.
// A workspace that cannot be listed is treated as empty.
func (d *Detector) Detect(workspace string) domain.BuildType {
	entries, err := os.ReadDir(workspace)
	if err != nil {
		d.logger.Warn(fmt.Sprintf("cannot list workspace %q, falling back to %s: %v", workspace, domain.BuildTypeTar, err))
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}

	return domain.MatchBuildType(names)
}
