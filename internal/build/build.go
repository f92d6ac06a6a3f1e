// Package build holds build-time information.
package build

// Build metadata, overwritten by linker flags:
//
//	-X go.trai.ch/rollout/internal/build.Version=1.2.3
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
