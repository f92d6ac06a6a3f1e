package ports

import "go.trai.ch/rollout/internal/core/domain"

// BuildTypeDetector determines how a workspace is built.
//
//go:generate mockgen -source=build_detector.go -destination=mocks/mock_build_detector.go -package=mocks
type BuildTypeDetector interface {
	// Detect inspects the entries directly under workspace. It never fails:
	// unreadable workspaces resolve to the catch-all build type.
	Detect(workspace string) domain.BuildType
}
