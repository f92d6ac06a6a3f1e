package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/rollout/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// JSONEnvVar switches the logger to JSON output when set to a non-empty value.
const JSONEnvVar = "ROLLOUT_LOG_JSON"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := New().(*Logger)
			if os.Getenv(JSONEnvVar) != "" {
				l.SetJSON(true)
			}
			return l, nil
		},
	})
}
