package code

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"time"

	"github.com/hupe1980/agentgraph/logging"
)

var (
	// Models sometimes wrap code in markdown fences or prefix it with a
	// "python" marker as if addressing a terminal. Strip both ends.
	leadingJunkRe  = regexp.MustCompile("^(\\s|`)*(?i:python)?\\s*")
	trailingJunkRe = regexp.MustCompile("(\\s|`)*$")
)

// SanitizeInput strips whitespace, backticks and a leading "python" marker
// from a code snippet before execution.
func SanitizeInput(snippet string) string {
	snippet = leadingJunkRe.ReplaceAllString(snippet, "")
	snippet = trailingJunkRe.ReplaceAllString(snippet, "")
	return snippet
}

// PythonExecutorOptions configures a PythonExecutor.
type PythonExecutorOptions struct {
	// Interpreter is the python binary to invoke. Defaults to "python3".
	Interpreter string

	// Timeout bounds a single execution. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// Logger receives execution events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// PythonExecutor runs python snippets by shelling out to an interpreter.
//
// Each call starts a fresh interpreter process, so state is NOT preserved
// between calls. Snippets must be self-contained; anything meant to appear
// in the output has to be printed to stdout.
type PythonExecutor struct {
	interpreter string
	timeout     time.Duration
	logger      logging.Logger
}

var _ Executor = (*PythonExecutor)(nil)

// NewPythonExecutor creates a PythonExecutor.
func NewPythonExecutor(optFns ...func(o *PythonExecutorOptions)) *PythonExecutor {
	opts := PythonExecutorOptions{
		Interpreter: "python3",
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &PythonExecutor{
		interpreter: opts.Interpreter,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
	}
}

// Execute sanitizes the snippet, runs it with the configured interpreter and
// returns captured stdout. A non-zero exit returns an error carrying stderr.
func (e *PythonExecutor) Execute(ctx context.Context, snippet string) (string, error) {
	cleaned := SanitizeInput(snippet)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.interpreter, "-c", cleaned)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.logger.Debug("code.execute", "interpreter", e.interpreter, "duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("python execution aborted: %w", ctx.Err())
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("python execution failed: %s", stderr.String())
		}
		return "", fmt.Errorf("python execution failed: %w", err)
	}

	return stdout.String(), nil
}
