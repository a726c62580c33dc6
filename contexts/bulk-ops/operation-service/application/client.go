package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"conductor/contexts/bulk-ops/operation-service/domain/progress"
)

// ConnectionLost is the user-facing message for any transport failure
// before a terminal event.
const ConnectionLost = "Connection lost"

// Result is the outcome a Consume/Start call settles with.
type Result struct {
	Success     bool
	OperationID string
	Err         string
}

// Snapshot mirrors the latest progress event plus the client state.
type Snapshot struct {
	IsRunning                 bool
	Processed                 int
	Total                     int
	Percentage                int
	CurrentItem               string
	EstimatedSecondsRemaining int
	Err                       string
}

// Client is the consuming side of the progress protocol: a state machine
// idle -> running -> succeeded|failed|disconnected. One operation may be in
// flight per client; callers disable the trigger while IsRunning.
type Client struct {
	mu   sync.Mutex
	snap Snapshot
}

// StartRequest is the body of the bulk-action request.
type StartRequest struct {
	Action  string            `json:"action"`
	IDs     []string          `json:"ids"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Start posts the bulk request and consumes the streamed response until a
// terminal event. A rejected request or broken stream settles as
// "Connection lost".
func (c *Client) Start(ctx context.Context, httpClient *http.Client, url string, req StartRequest) Result {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	body, err := json.Marshal(req)
	if err != nil {
		return c.fail(err.Error())
	}
	c.begin()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return c.fail(ConnectionLost)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return c.fail(ConnectionLost)
	}
	defer resp.Body.Close()
	return c.consume(resp.Body)
}

// Consume runs the state machine over an already-open stream. It is the
// transport-free core of Start and what tests drive directly.
func (c *Client) Consume(stream io.Reader) Result {
	c.begin()
	return c.consume(stream)
}

func (c *Client) consume(stream io.Reader) Result {
	decoder := progress.NewDecoder(stream)
	for {
		event, err := decoder.Next()
		if err != nil {
			// Clean end without terminal event and transport errors look the
			// same to the user: the operation's fate is unknown.
			return c.fail(ConnectionLost)
		}
		switch event.Type {
		case progress.EventProgress:
			c.apply(*event.Progress)
		case progress.EventError:
			c.mu.Lock()
			c.snap.IsRunning = false
			c.snap.Processed = event.Error.Processed
			c.snap.Total = event.Error.Total
			c.snap.Err = event.Error.Message
			c.mu.Unlock()
			return Result{Success: false, Err: event.Error.Message}
		case progress.EventComplete:
			c.mu.Lock()
			c.snap.IsRunning = false
			c.snap.Processed = event.Complete.Processed
			c.snap.Total = event.Complete.Total
			c.snap.Percentage = progress.Percentage(event.Complete.Processed, event.Complete.Total)
			c.mu.Unlock()
			return Result{Success: true, OperationID: event.Complete.OperationID}
		}
	}
}

func (c *Client) begin() {
	c.mu.Lock()
	c.snap = Snapshot{IsRunning: true}
	c.mu.Unlock()
}

func (c *Client) apply(event progress.ProgressEvent) {
	c.mu.Lock()
	c.snap.Processed = event.Processed
	c.snap.Total = event.Total
	c.snap.Percentage = event.Percentage
	c.snap.CurrentItem = event.CurrentItem
	c.snap.EstimatedSecondsRemaining = event.EstimatedSecondsRemaining
	c.mu.Unlock()
}

func (c *Client) fail(message string) Result {
	c.mu.Lock()
	c.snap.IsRunning = false
	c.snap.Err = message
	c.mu.Unlock()
	return Result{Success: false, Err: message}
}

// Snapshot returns the latest observed state.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// IsRunning reports whether a stream is being consumed.
func (c *Client) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.IsRunning
}
