package graph

import "context"

// Row is a single raw query result row in query-result column order.
type Row []any

// Store is the typed graph persistence surface. Implementations own the
// database connection; records are owned by the caller and transition between
// transient and persisted under store control.
//
// Not-found conditions are ordinary results (false booleans, nil records),
// never errors. Precondition violations and internal consistency failures are
// returned as *PreconditionError and *InternalError respectively; everything
// else propagates from the underlying engine unmodified.
type Store interface {
	// NodeExists reports whether the record's identity is present in its
	// label table. Transient records always report false.
	NodeExists(ctx context.Context, node *Record) (bool, error)

	// NodeExistsByID is NodeExists without a live record: it checks a
	// (type, identity) pair directly.
	NodeExistsByID(ctx context.Context, schema *Schema, id int64) (bool, error)

	// RelationExists reports whether a directed edge with the given label
	// connects the two records. An empty label matches any label between
	// the pair. Missing tables and transient endpoints report false.
	RelationExists(ctx context.Context, from, to *Record, label string) (bool, error)

	// InsertNode persists a transient record, creating or evolving its
	// label table as needed, and binds the generated identity onto it.
	// Inserting an already persisted record is a precondition violation.
	InsertNode(ctx context.Context, node *Record) error

	// CreateRelation creates a directed labeled edge between two persisted
	// records, creating the relation table on first use. Both endpoints
	// must already exist in the database; callers that cannot guarantee
	// that should use UpsertTriplet.
	CreateRelation(ctx context.Context, from, to *Record, label string) error

	// UpsertTriplet is the idempotent variant: it inserts either endpoint
	// if not yet persisted and creates the relation only when no
	// equivalent edge exists. Repeated calls with the same logical triplet
	// converge to both nodes persisted and exactly one matching edge.
	UpsertTriplet(ctx context.Context, from, to *Record, label string) error

	// DeleteNode removes all edges incident to the node in either
	// direction, then the node row, and returns the record to the
	// transient state. Deleting a nonexistent node is a precondition
	// violation.
	DeleteNode(ctx context.Context, node *Record) error

	// GetNodeByID reconstructs the stored record with the given identity,
	// decoding JSON-prefixed field values. It returns (nil, nil) when no
	// such node exists.
	GetNodeByID(ctx context.Context, schema *Schema, id int64) (*Record, error)

	// SetProperty mutates a single declared field of a persisted record,
	// validating the value before it is written and confirming the write
	// by reading the stored value back. Nil values are rejected with
	// ErrNilProperty.
	SetProperty(ctx context.Context, node *Record, field string, value any) error

	// RunQuery is the low-level passthrough: it executes a query with
	// bound parameters and returns the eagerly materialized result rows.
	// It bypasses the typed surface entirely.
	RunQuery(ctx context.Context, query string, args ...any) ([]Row, error)

	// Close releases the underlying database connection.
	Close() error
}
