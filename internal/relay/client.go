package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/domain"
)

// Outcome is the explicit result of one relay attempt. A failed relay
// never affects the already-persisted local record; the workflow only
// uses the outcome to pick its confirmation wording.
type Outcome struct {
	// Delivered means the request was dispatched and, in verified
	// mode, answered with a success status.
	Delivered bool
	// Verified is false in opaque mode, where the response cannot be
	// observed and success is assumed on dispatch.
	Verified bool
	Err      error
}

// Ok reports whether the record is considered delivered.
func (o Outcome) Ok() bool {
	return o.Delivered && o.Err == nil
}

// Error carries the status and body text of a rejected relay request.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("relay rejected: %d %s", e.Status, e.Body)
}

// Client forwards one feedback record to the configured sheet
// endpoint. Delivery is strictly best-effort.
type Client struct {
	url    string
	opaque bool
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a relay client from configuration. A zero timeout
// leaves the request without a deadline.
func NewClient(cfg config.RelayConfig, logger *zap.Logger) *Client {
	return &Client{
		url:    cfg.URL,
		opaque: cfg.Opaque,
		http:   &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Enabled reports whether an endpoint is configured at all.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Send POSTs the record as JSON. In opaque mode the response is
// ignored entirely and the outcome is ok-but-unverified; in verified
// mode a non-success status yields an *Error with status and body.
func (c *Client) Send(ctx context.Context, record domain.FeedbackRecord) Outcome {
	body, err := json.Marshal(record)
	if err != nil {
		return Outcome{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Outcome{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Err: err}
	}
	defer resp.Body.Close()

	if c.opaque {
		// Cross-origin analog: the request went out, the response is
		// not ours to inspect.
		_, _ = io.Copy(io.Discard, resp.Body)
		return Outcome{Delivered: true, Verified: false}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return Outcome{Err: &Error{Status: resp.StatusCode, Body: string(text)}}
	}

	// The sheet macro sometimes answers with plain text; a success
	// status with a non-JSON body still counts as delivered.
	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Debug("relay response not json", zap.Error(err))
	}
	return Outcome{Delivered: true, Verified: true}
}
