// Package agent implements a tool calling agent that drives a language model
// in a loop, executing requested tools and feeding their results back until
// the model produces a final answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentgraph/kvstore"
	"github.com/hupe1980/agentgraph/logging"
	"github.com/hupe1980/agentgraph/model"
	"github.com/hupe1980/agentgraph/tool"
)

// Options configures a ToolCallingAgent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Instruction is the system prompt sent with every model request.
	Instruction string

	// MaxIterations bounds the generate/execute loop. Exceeding it returns
	// an error rather than looping forever on a confused model.
	MaxIterations int

	// ToolTimeout bounds each individual tool call. Zero disables it.
	ToolTimeout time.Duration

	// KVStore, when set, registers insert_object and fetch_object tools so
	// the model can stash and retrieve intermediate results by id.
	KVStore kvstore.Store

	// Logger receives run lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// ToolCallingAgent integrates a language model with registered tools.
//
// Each Run builds a fresh conversation: the agent sends the user input, lets
// the model request tool calls, executes them, appends the results and
// repeats until the model answers in plain text.
type ToolCallingAgent struct {
	name          string
	llm           model.Model
	instruction   string
	tools         map[string]tool.Tool
	toolOrder     []string
	maxIterations int
	toolTimeout   time.Duration
	logger        logging.Logger
}

// New creates a tool calling agent with sensible defaults: a generic
// assistant instruction, a 10 iteration loop bound and a 15 second tool
// timeout.
func New(name string, llm model.Model, optFns ...func(o *Options)) *ToolCallingAgent {
	opts := Options{
		Instruction:   fmt.Sprintf("You are %s, a helpful AI assistant.", name),
		MaxIterations: 10,
		ToolTimeout:   15 * time.Second,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &ToolCallingAgent{
		name:          name,
		llm:           llm,
		instruction:   opts.Instruction,
		tools:         make(map[string]tool.Tool),
		maxIterations: opts.MaxIterations,
		toolTimeout:   opts.ToolTimeout,
		logger:        opts.Logger,
	}

	if opts.KVStore != nil {
		a.RegisterTools(
			tool.NewObjectInsertionTool(opts.KVStore),
			tool.NewObjectFetcherTool(opts.KVStore),
		)
	}

	return a
}

// Name returns the agent's name.
func (a *ToolCallingAgent) Name() string { return a.name }

// RegisterTool adds a tool to the agent's capability set. A tool with the
// same name replaces the previous registration.
func (a *ToolCallingAgent) RegisterTool(t tool.Tool) {
	if _, exists := a.tools[t.Name()]; !exists {
		a.toolOrder = append(a.toolOrder, t.Name())
	}
	a.tools[t.Name()] = t
}

// RegisterTools adds multiple tools to the agent's capability set.
func (a *ToolCallingAgent) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.RegisterTool(t)
	}
}

// Tools returns the registered tools in registration order.
func (a *ToolCallingAgent) Tools() []tool.Tool {
	out := make([]tool.Tool, 0, len(a.toolOrder))
	for _, name := range a.toolOrder {
		out = append(out, a.tools[name])
	}
	return out
}

// Run sends the input to the model and drives the tool calling loop until
// the model produces a final text answer.
func (a *ToolCallingAgent) Run(ctx context.Context, input string) (string, error) {
	runID := uuid.NewString()
	a.logger.Info("agent.run.start", "agent", a.name, "run_id", runID)

	messages := []model.Message{{Role: model.RoleUser, Text: input}}

	for i := 0; i < a.maxIterations; i++ {
		resp, err := a.llm.Generate(ctx, model.Request{
			Instructions: a.instruction,
			Messages:     messages,
			Tools:        a.toolDefinitions(),
		})
		if err != nil {
			return "", fmt.Errorf("model generation failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			a.logger.Info("agent.run.complete", "agent", a.name, "run_id", runID, "iterations", i+1)
			return resp.Text, nil
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		results := make([]model.ToolResult, 0, len(resp.ToolCalls))
		for _, tc := range resp.ToolCalls {
			results = append(results, a.executeToolCall(ctx, runID, tc))
		}
		messages = append(messages, model.Message{Role: model.RoleTool, ToolResults: results})
	}

	return "", fmt.Errorf("agent %q exceeded %d iterations without a final answer", a.name, a.maxIterations)
}

// executeToolCall runs a single requested tool call. Failures are returned
// to the model as error results instead of aborting the run, so the model
// can recover or rephrase.
func (a *ToolCallingAgent) executeToolCall(ctx context.Context, runID string, tc model.ToolCall) model.ToolResult {
	id := tc.ID
	if id == "" {
		id = uuid.NewString()
	}

	result := model.ToolResult{ID: id, Name: tc.Name}

	t, ok := a.tools[tc.Name]
	if !ok {
		result.Content = fmt.Sprintf("unknown tool: %s", tc.Name)
		result.IsError = true
		a.logger.Warn("agent.tool.unknown", "agent", a.name, "run_id", runID, "tool", tc.Name)
		return result
	}

	var args map[string]any
	if tc.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			result.Content = fmt.Sprintf("invalid tool arguments: %v", err)
			result.IsError = true
			return result
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	callCtx := ctx
	if a.toolTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.toolTimeout)
		defer cancel()
	}

	out, err := t.Call(callCtx, args)
	if err != nil {
		result.Content = err.Error()
		result.IsError = true
		a.logger.Error("agent.tool.error", "agent", a.name, "run_id", runID, "tool", tc.Name, "error", err.Error())
		return result
	}

	result.Content = stringifyResult(out)
	return result
}

// toolDefinitions exposes the registered tools to the model.
func (a *ToolCallingAgent) toolDefinitions() []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(a.toolOrder))
	for _, name := range a.toolOrder {
		t := a.tools[name]
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// stringifyResult renders a tool result for the model. Strings pass through,
// everything else is JSON encoded.
func stringifyResult(v any) string {
	switch out := v.(type) {
	case nil:
		return ""
	case string:
		return out
	default:
		encoded, err := json.Marshal(out)
		if err != nil {
			return fmt.Sprintf("%v", out)
		}
		return string(encoded)
	}
}
