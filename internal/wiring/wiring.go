// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rollout/internal/adapters/config"
	_ "go.trai.ch/rollout/internal/adapters/detector"
	_ "go.trai.ch/rollout/internal/adapters/logger"
	_ "go.trai.ch/rollout/internal/adapters/properties"
	_ "go.trai.ch/rollout/internal/adapters/rundeck"
	_ "go.trai.ch/rollout/internal/adapters/shell"
	_ "go.trai.ch/rollout/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/rollout/internal/app"
	_ "go.trai.ch/rollout/internal/engine/dispatcher"
	_ "go.trai.ch/rollout/internal/engine/recorder"
	_ "go.trai.ch/rollout/internal/engine/watcher"
)
