package rundeck

import (
	"bytes"
	"encoding/json"
)

// runRequest is the body of POST /api/{v}/job/{id}/run.
type runRequest struct {
	ArgString string            `json:"argString,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
	RunAtTime string            `json:"runAtTime,omitempty"`
}

// executionResponse is returned by the run endpoint and GET /api/{v}/execution/{id}.
type executionResponse struct {
	ID        executionID `json:"id"`
	Status    string      `json:"status"`
	Permalink string      `json:"permalink"`
}

// executionID is an opaque id that may arrive as a JSON number or string.
type executionID string

func (id *executionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = executionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = executionID(n.String())
	return nil
}

// errorResponse is the body Rundeck returns alongside API errors.
type errorResponse struct {
	Error     bool   `json:"error"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}
