package amqp

import (
	"encoding/json"
	"time"
)

// RefreshRequest asks the worker to re-run the pipeline and republish the
// totals artifact. Reason is free-form ("input updated", "interval", ...).
type RefreshRequest struct {
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRefreshRequest(reason string) *RefreshRequest {
	return &RefreshRequest{
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *RefreshRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RefreshRequestFromJSON(data []byte) (*RefreshRequest, error) {
	var msg RefreshRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// RunCompleted announces a freshly published artifact so downstream
// consumers (site rebuilds, notifications) can react.
type RunCompleted struct {
	RunID      int64     `json:"run_id"`
	Categories int       `json:"categories"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewRunCompleted(runID int64, categories int) *RunCompleted {
	return &RunCompleted{
		RunID:      runID,
		Categories: categories,
		Timestamp:  time.Now(),
	}
}

func (m *RunCompleted) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
