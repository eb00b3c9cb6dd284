package tool

import (
	"context"

	"github.com/hupe1980/agentgraph/graph"
)

// NewGraphQueryTool returns a tool that runs a read-only SQL query against
// the graph store and returns the result rows. The store does not restrict
// the statement, so only register this tool with trusted models.
func NewGraphQueryTool(store graph.Store, optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string", "description": "SQL query to execute against the graph store"},
		},
		"required": []string{"query"},
	}

	return NewFunctionTool(
		"query_graph",
		"Run a SQL query against the graph store and return the matching rows",
		parameters,
		func(ctx context.Context, args map[string]any) (any, error) {
			query, err := stringArg("query_graph", args, "query")
			if err != nil {
				return nil, err
			}
			rows, err := store.RunQuery(ctx, query)
			if err != nil {
				return nil, err
			}
			out := make([][]any, len(rows))
			for i, row := range rows {
				out[i] = []any(row)
			}
			return out, nil
		},
		optFns...,
	)
}
