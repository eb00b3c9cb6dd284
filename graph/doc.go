// Package graph implements a typed label-property graph store on top of an
// embedded SQL engine.
//
// Callers describe each node type once as a Schema (a field-name to field-type
// registry) and manipulate Record values built against that schema. The store
// owns the mapping onto the database: it creates one table per node label and
// one table per (from-label, to-label, relation-label) triple on first use,
// adds columns for newly declared fields, and JSON-encodes values whose
// declared type has no direct column mapping.
//
// Records move between two states under store control:
//
//	Transient (no identity) --InsertNode--> Persisted (identity bound)
//	Persisted --DeleteNode--> Transient
//
// A persisted Record refuses direct mutation; SetProperty on the store is the
// only sanctioned way to change a stored field, and it validates the value
// before anything reaches the database.
//
// The store keeps no process-local cache of tables or columns: every existence
// check is answered from database metadata, so external schema changes are
// always visible. Operations are synchronous, issue independent statements and
// provide no atomicity across them; callers needing multi-operation atomicity
// must coordinate externally.
package graph
