package rundeck

import (
	"net/http"

	"go.trai.ch/rollout/internal/core/domain"
)

// NewClientWithHTTP exposes newClientWithHTTP for tests.
func NewClientWithHTTP(settings domain.ServiceSettings, client *http.Client) *Client {
	return newClientWithHTTP(settings, client)
}
