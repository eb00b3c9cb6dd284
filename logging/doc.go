// Package logging provides a minimal logging interface and adapters for AgentGraph.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the graph store, tools and agents use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewDefaultSlogLogger()
//	store, err := graph.Open("./data", func(o *graph.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available. No package in this
// module logs through a process-wide implicit logger; every component receives
// its Logger as a dependency.
package logging
