// Package code provides executors that run model generated code snippets.
package code

import "context"

// Executor defines the interface for executing code snippets.
type Executor interface {
	// Execute runs the given code snippet and returns the output or an error.
	Execute(ctx context.Context, code string) (string, error)
}
