// Package driver defines the provider-neutral completion interface.
package driver

import "context"

// Request is a single completion request.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature *float64
	MaxTokens   *int
}

// Response is the text produced by a driver.
type Response struct {
	Text         string
	Model        string
	FinishReason string
}

// Driver is implemented by provider clients.
type Driver interface {
	// Complete runs one completion. Implementations honor ctx cancellation.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name identifies the driver for logging.
	Name() string
}
