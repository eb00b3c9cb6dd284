// Package agentgraph provides a high-level façade over the graph store,
// key-value store and agent abstractions enabling rapid construction of
// knowledge-graph backed agent applications. Most applications interact
// with this package by:
//  1. Creating an AgentGraph via New() (optionally overriding the default stores)
//  2. Defining node schemas and working with the graph store
//  3. Creating tool calling agents wired to the shared stores
//
// All defaults are safe for local development and testing; production
// deployments typically supply a persistence directory and a structured
// logger.
package agentgraph

import (
	"github.com/hupe1980/agentgraph/agent"
	"github.com/hupe1980/agentgraph/graph"
	"github.com/hupe1980/agentgraph/kvstore"
	"github.com/hupe1980/agentgraph/logging"
	"github.com/hupe1980/agentgraph/model"
	"github.com/hupe1980/agentgraph/tool"
)

// ToolCallingAgent re-exports the agent type for façade users.
type ToolCallingAgent = agent.ToolCallingAgent

// DefaultPersistDir is where the graph store lives when no directory is
// configured.
const DefaultPersistDir = "graph_data"

// Options configures the AgentGraph instance.
type Options struct {
	// PersistDir is the directory holding the embedded graph database.
	// Ignored when GraphStore is supplied directly.
	PersistDir string

	// GraphStore overrides the default on-disk store, e.g. for tests.
	GraphStore graph.Store

	// KVStore holds retrievable objects shared between agents.
	// Defaults to an in-memory implementation.
	KVStore kvstore.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentGraph is the high-level façade aggregating the shared stores.
type AgentGraph struct {
	graphStore graph.Store
	kvStore    kvstore.Store
	logger     logging.Logger
}

// New creates a new AgentGraph instance with optional overrides. Any unset
// store is initialized with its default implementation.
func New(optFns ...func(o *Options)) (*AgentGraph, error) {
	opts := Options{
		PersistDir: DefaultPersistDir,
		KVStore:    kvstore.NewInMemoryStore(),
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	graphStore := opts.GraphStore
	if graphStore == nil {
		store, err := graph.Open(opts.PersistDir, func(o *graph.Options) {
			o.Logger = opts.Logger
		})
		if err != nil {
			return nil, err
		}
		graphStore = store
	}

	return &AgentGraph{
		graphStore: graphStore,
		kvStore:    opts.KVStore,
		logger:     opts.Logger,
	}, nil
}

// Graph returns the shared graph store.
func (g *AgentGraph) Graph() graph.Store { return g.graphStore }

// KV returns the shared key-value store.
func (g *AgentGraph) KV() kvstore.Store { return g.kvStore }

// NewAgent creates a tool calling agent wired to the shared stores. The
// agent gets the key-value object tools and a graph query tool registered
// out of the box; additional tools can be registered on the returned agent.
func (g *AgentGraph) NewAgent(name string, llm model.Model, optFns ...func(o *agent.Options)) *ToolCallingAgent {
	a := agent.New(name, llm, append([]func(o *agent.Options){
		func(o *agent.Options) {
			o.KVStore = g.kvStore
			o.Logger = g.logger
		},
	}, optFns...)...)

	a.RegisterTool(tool.NewGraphQueryTool(g.graphStore))

	return a
}

// Close releases the underlying graph store.
func (g *AgentGraph) Close() error {
	return g.graphStore.Close()
}
