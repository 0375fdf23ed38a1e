// Package llm talks to the external text-generation providers. Every
// provider is reached through the Client interface so the services never
// depend on a vendor SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a completion does not finish before the
	// caller's deadline.
	ErrTimeout = errors.New("text generation timed out")
	// ErrEmptyResponse is returned when the provider answers without any content.
	ErrEmptyResponse = errors.New("text generation returned no content")
)

// Task identifies what a completion is for. Providers may use it for
// logging; the demo provider uses it to choose its canned answer.
type Task string

const (
	TaskAnalysis     Task = "analysis"
	TaskSolution     Task = "solution"
	TaskOptimization Task = "optimization"
)

// Request is a single system + user prompt completion.
type Request struct {
	Task        Task
	System      string
	Prompt      string
	Temperature float32
	// JSON asks the provider to answer with a single JSON object.
	JSON bool
}

// Client produces a completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// wrapContextError turns a deadline expiry into ErrTimeout so callers can
// tell a slow provider apart from a failing one.
func wrapContextError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
