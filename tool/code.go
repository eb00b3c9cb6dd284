package tool

import (
	"context"

	"github.com/hupe1980/agentgraph/code"
)

// NewPythonTool returns a tool that executes python snippets with the given
// executor. The tool's output is whatever the snippet prints to stdout, so
// snippets must print any data they want returned. Each call runs in a fresh
// interpreter process.
func NewPythonTool(executor code.Executor, optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"command": map[string]any{"type": "string", "description": "Python code to execute"},
		},
		"required": []string{"command"},
	}

	return NewFunctionTool(
		"python_repl",
		"A Python shell. Use this to execute python commands. Input should be a valid "+
			"self-contained python snippet. The output is the content printed to stdout, "+
			"so use print(...) for any data you want returned. State is not preserved "+
			"between calls.",
		parameters,
		func(ctx context.Context, args map[string]any) (any, error) {
			command, err := stringArg("python_repl", args, "command")
			if err != nil {
				return nil, err
			}
			return executor.Execute(ctx, command)
		},
		optFns...,
	)
}
