package graph

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // embedded engine

	"github.com/hupe1980/agentgraph/logging"
)

const (
	// idColumn is the auto-generated primary key of every node table.
	idColumn = "id"
	// catalogTable tracks which table stores each (from, to, label) triple.
	// It is database metadata: consulted fresh on every call, never cached.
	catalogTable = "graph_relations"
	// jsonPrefix marks a stored string as a serialized complex value that
	// needs JSON decoding on read.
	jsonPrefix = "JSON__"
	// dbFileName is the database file created inside a persist directory.
	dbFileName = "graph.db"
)

// Options configures a SQLiteStore.
type Options struct {
	// Logger receives query traces and schema evolution events.
	// Defaults to NoOpLogger.
	Logger logging.Logger
}

// SQLiteStore implements Store on an embedded SQLite database. One table per
// node label, one table per relation triple, schema evolved additively on
// write. All operations run against a single connection with no internal
// concurrency or cross-statement atomicity.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps an already-open database handle.
func NewSQLiteStore(db *sql.DB, optFns ...func(o *Options)) (*SQLiteStore, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &SQLiteStore{db: db, logger: opts.Logger}
	if err := s.ensureCatalog(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Open creates or opens a database inside the given persistence directory.
func Open(persistDir string, optFns ...func(o *Options)) (*SQLiteStore, error) {
	if err := os.MkdirAll(persistDir, 0o755); err != nil {
		return nil, fmt.Errorf("graph: create persist dir: %w", err)
	}

	dsn := filepath.Join(persistDir, dbFileName) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("graph: open database: %w", err)
	}

	// Single writer; matches the store's single logical thread of control.
	db.SetMaxOpenConns(1)

	s, err := NewSQLiteStore(db, optFns...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// DB exposes the underlying handle for callers that need engine features the
// typed surface does not cover. Most callers should use RunQuery instead.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) ensureCatalog(ctx context.Context) error {
	_, err := s.exec(ctx, `CREATE TABLE IF NOT EXISTS `+catalogTable+` (
		tbl        TEXT NOT NULL PRIMARY KEY,
		from_label TEXT NOT NULL,
		to_label   TEXT NOT NULL,
		label      TEXT NOT NULL,
		UNIQUE (from_label, to_label, label)
	)`)
	if err != nil {
		return fmt.Errorf("graph: create relation catalog: %w", err)
	}
	return nil
}

// exec runs a statement, tracing it at debug level.
func (s *SQLiteStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.logger.Debug("graph.exec", "query", query)
	return s.db.ExecContext(ctx, query, args...)
}

// queryRow runs a single-row query, tracing it at debug level.
func (s *SQLiteStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	s.logger.Debug("graph.query", "query", query)
	return s.db.QueryRowContext(ctx, query, args...)
}

// tableExists consults the live database metadata; there is deliberately no
// process-local cache, so external schema changes stay visible.
func (s *SQLiteStore) tableExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.queryRow(ctx, `SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("graph: check table %s: %w", name, err)
	}
	return true, nil
}

// tableColumns returns the current column set of a table.
func (s *SQLiteStore) tableColumns(ctx context.Context, name string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, name))
	if err != nil {
		return nil, fmt.Errorf("graph: columns of %s: %w", name, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid, notnull, pk int
			cname, ctype     string
			dflt             any
		)
		if err := rows.Scan(&cid, &cname, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("graph: columns of %s: %w", name, err)
		}
		cols[cname] = true
	}
	return cols, rows.Err()
}

// ensureNodeTable creates the label table on first use and adds a column for
// every declared field not yet present. Columns are only ever added, never
// removed or retyped.
func (s *SQLiteStore) ensureNodeTable(ctx context.Context, node *Record) error {
	label := node.Label()

	exists, err := s.tableExists(ctx, label)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Info("Node table does not exist, creating", "label", label)
		if _, err := s.exec(ctx, fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %q (%s INTEGER PRIMARY KEY AUTOINCREMENT)`, label, idColumn,
		)); err != nil {
			return fmt.Errorf("graph: create node table %s: %w", label, err)
		}
	}

	cols, err := s.tableColumns(ctx, label)
	if err != nil {
		return err
	}
	for _, name := range node.Schema().FieldNames() {
		if cols[name] {
			continue
		}
		spec, _ := node.Schema().Field(name)
		s.logger.Info("Column not present in node table, creating",
			"label", label, "field", name, "type", spec.Type.storageType())
		if _, err := s.exec(ctx, fmt.Sprintf(
			`ALTER TABLE %q ADD COLUMN %q %s`, label, name, spec.Type.storageType(),
		)); err != nil {
			return fmt.Errorf("graph: add column %s.%s: %w", label, name, err)
		}
	}
	return nil
}

// relationTablesBetween returns the catalogued tables holding edges from one
// label to another. An empty relLabel matches any label.
func (s *SQLiteStore) relationTablesBetween(ctx context.Context, fromLabel, toLabel, relLabel string) ([]string, error) {
	query := `SELECT tbl FROM ` + catalogTable + ` WHERE from_label = ? AND to_label = ?`
	args := []any{fromLabel, toLabel}
	if relLabel != "" {
		query += ` AND label = ?`
		args = append(args, relLabel)
	}
	return s.catalogTables(ctx, query, args...)
}

func (s *SQLiteStore) catalogTables(ctx context.Context, query string, args ...any) ([]string, error) {
	s.logger.Debug("graph.query", "query", query)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("graph: relation catalog: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tbl string
		if err := rows.Scan(&tbl); err != nil {
			return nil, fmt.Errorf("graph: relation catalog: %w", err)
		}
		tables = append(tables, tbl)
	}
	return tables, rows.Err()
}

// ensureRelationTable creates the table for a (from, to, label) triple on
// first use and registers it in the catalog. Returns the table name.
func (s *SQLiteStore) ensureRelationTable(ctx context.Context, from, to *Record, label string) (string, error) {
	existing, err := s.relationTablesBetween(ctx, from.Label(), to.Label(), label)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	tbl := fmt.Sprintf("rel_%s__%s__%s", from.Label(), label, to.Label())
	s.logger.Info("Relation table does not exist, creating",
		"label", label, "from", from.Label(), "to", to.Label(), "table", tbl)

	if _, err := s.exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %q (from_id INTEGER NOT NULL, to_id INTEGER NOT NULL)`, tbl,
	)); err != nil {
		return "", fmt.Errorf("graph: create relation table %s: %w", tbl, err)
	}
	if _, err := s.exec(ctx,
		`INSERT OR IGNORE INTO `+catalogTable+` (tbl, from_label, to_label, label) VALUES (?, ?, ?, ?)`,
		tbl, from.Label(), to.Label(), label,
	); err != nil {
		return "", fmt.Errorf("graph: register relation table %s: %w", tbl, err)
	}
	return tbl, nil
}

// NodeExists implements Store.
func (s *SQLiteStore) NodeExists(ctx context.Context, node *Record) (bool, error) {
	id, ok := node.ID()
	if !ok {
		return false, nil // no identity set means the node is not in the database
	}
	return s.nodeExists(ctx, node.Schema(), id)
}

// NodeExistsByID implements Store.
func (s *SQLiteStore) NodeExistsByID(ctx context.Context, schema *Schema, id int64) (bool, error) {
	return s.nodeExists(ctx, schema, id)
}

func (s *SQLiteStore) nodeExists(ctx context.Context, schema *Schema, id int64) (bool, error) {
	exists, err := s.tableExists(ctx, schema.Label())
	if err != nil || !exists {
		return false, err
	}

	var one int
	err = s.queryRow(ctx, fmt.Sprintf(`SELECT 1 FROM %q WHERE %s = ?`, schema.Label(), idColumn), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("graph: check node %s/%d: %w", schema.Label(), id, err)
	}
	return true, nil
}

// RelationExists implements Store.
func (s *SQLiteStore) RelationExists(ctx context.Context, from, to *Record, label string) (bool, error) {
	fromID, fromOK := from.ID()
	toID, toOK := to.ID()
	if !fromOK || !toOK {
		return false, nil
	}

	for _, node := range []*Record{from, to} {
		exists, err := s.tableExists(ctx, node.Label())
		if err != nil || !exists {
			return false, err
		}
	}

	tables, err := s.relationTablesBetween(ctx, from.Label(), to.Label(), label)
	if err != nil {
		return false, err
	}
	for _, tbl := range tables {
		var one int
		err := s.queryRow(ctx, fmt.Sprintf(
			`SELECT 1 FROM %q WHERE from_id = ? AND to_id = ? LIMIT 1`, tbl,
		), fromID, toID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("graph: check relation %s: %w", tbl, err)
		}
		return true, nil
	}
	return false, nil
}

// InsertNode implements Store. Nil-valued fields are omitted from the write:
// the column stays NULL and reads back as an unset field, so absence and an
// intentionally unset value are indistinguishable in storage.
func (s *SQLiteStore) InsertNode(ctx context.Context, node *Record) error {
	if node.Persisted() {
		id, _ := node.ID()
		return &PreconditionError{
			Op:     "InsertNode",
			Reason: fmt.Sprintf("node %s already has identity %d, it is already in the database", node.Label(), id),
		}
	}

	if err := s.ensureNodeTable(ctx, node); err != nil {
		return err
	}

	var (
		columns      string
		placeholders string
		args         []any
	)
	for _, name := range node.Schema().FieldNames() {
		value, ok := node.Get(name)
		if !ok {
			continue
		}
		spec, _ := node.Schema().Field(name)
		encoded, err := encodeValue(spec, value)
		if err != nil {
			return &ValidationError{Label: node.Label(), Field: name, Reason: err.Error()}
		}
		if len(args) > 0 {
			columns += ", "
			placeholders += ", "
		}
		columns += fmt.Sprintf("%q", name)
		placeholders += "?"
		args = append(args, encoded)
	}

	query := fmt.Sprintf(`INSERT INTO %q DEFAULT VALUES RETURNING %s`, node.Label(), idColumn)
	if len(args) > 0 {
		query = fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s) RETURNING %s`,
			node.Label(), columns, placeholders, idColumn)
	}

	var id int64
	err := s.queryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return &InternalError{Op: "InsertNode", Reason: "created row did not return a generated identity"}
	}
	if err != nil {
		return fmt.Errorf("graph: insert node %s: %w", node.Label(), err)
	}

	node.bindIdentity(id)
	s.logger.Info("Node created", "label", node.Label(), "id", id)
	return nil
}

// CreateRelation implements Store.
func (s *SQLiteStore) CreateRelation(ctx context.Context, from, to *Record, label string) error {
	for _, pre := range []struct {
		node *Record
		role string
	}{{from, "from"}, {to, "to"}} {
		exists, err := s.NodeExists(ctx, pre.node)
		if err != nil {
			return err
		}
		if !exists {
			return &PreconditionError{
				Op: "CreateRelation",
				Reason: fmt.Sprintf("%s-node %s is not present in the database, consider UpsertTriplet when existence is not guaranteed",
					pre.role, pre.node.Label()),
			}
		}
	}

	tbl, err := s.ensureRelationTable(ctx, from, to, label)
	if err != nil {
		return err
	}

	fromID, _ := from.ID()
	toID, _ := to.ID()
	res, err := s.exec(ctx, fmt.Sprintf(`INSERT INTO %q (from_id, to_id) VALUES (?, ?)`, tbl), fromID, toID)
	if err != nil {
		return fmt.Errorf("graph: create relation %s: %w", tbl, err)
	}
	if err := confirmEdgeCreated(res); err != nil {
		return err
	}

	s.logger.Info("Relation created",
		"label", label, "from", from.Label(), "from_id", fromID, "to", to.Label(), "to_id", toID)
	return nil
}

// confirmEdgeCreated checks that exactly one edge row was written. A driver
// failure while reading the affected row count is wrapped and propagated as
// is; only a count disagreeing with the contract is an InternalError.
func confirmEdgeCreated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("graph: create relation: reading affected rows: %w", err)
	}
	if n != 1 {
		return &InternalError{Op: "CreateRelation", Reason: "edge creation was not confirmed by the database"}
	}
	return nil
}

// UpsertTriplet implements Store. The two inserts and the relation creation
// are independent statements; a crash mid-sequence can leave one endpoint
// persisted without the edge.
func (s *SQLiteStore) UpsertTriplet(ctx context.Context, from, to *Record, label string) error {
	for _, node := range []*Record{from, to} {
		exists, err := s.NodeExists(ctx, node)
		if err != nil {
			return err
		}
		if !exists {
			s.logger.Info("Node does not exist, creating", "label", node.Label())
			if err := s.InsertNode(ctx, node); err != nil {
				return err
			}
		}
	}

	exists, err := s.RelationExists(ctx, from, to, label)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Info("Relation does not exist, creating",
			"label", label, "from", from.Label(), "to", to.Label())
		return s.CreateRelation(ctx, from, to, label)
	}
	return nil
}

// DeleteNode implements Store.
func (s *SQLiteStore) DeleteNode(ctx context.Context, node *Record) error {
	exists, err := s.NodeExists(ctx, node)
	if err != nil {
		return err
	}
	if !exists {
		return &PreconditionError{
			Op:     "DeleteNode",
			Reason: fmt.Sprintf("cannot delete nonexistent node %s", node.Label()),
		}
	}
	id, _ := node.ID()

	// Undirected edge deletion is not expressible here; outgoing and
	// incoming edges are removed in two directed passes.
	outgoing, err := s.catalogTables(ctx, `SELECT tbl FROM `+catalogTable+` WHERE from_label = ?`, node.Label())
	if err != nil {
		return err
	}
	for _, tbl := range outgoing {
		if _, err := s.exec(ctx, fmt.Sprintf(`DELETE FROM %q WHERE from_id = ?`, tbl), id); err != nil {
			return fmt.Errorf("graph: delete outgoing edges of %s/%d: %w", node.Label(), id, err)
		}
	}
	incoming, err := s.catalogTables(ctx, `SELECT tbl FROM `+catalogTable+` WHERE to_label = ?`, node.Label())
	if err != nil {
		return err
	}
	for _, tbl := range incoming {
		if _, err := s.exec(ctx, fmt.Sprintf(`DELETE FROM %q WHERE to_id = ?`, tbl), id); err != nil {
			return fmt.Errorf("graph: delete incoming edges of %s/%d: %w", node.Label(), id, err)
		}
	}

	if _, err := s.exec(ctx, fmt.Sprintf(`DELETE FROM %q WHERE %s = ?`, node.Label(), idColumn), id); err != nil {
		return fmt.Errorf("graph: delete node %s/%d: %w", node.Label(), id, err)
	}

	node.releaseIdentity()
	s.logger.Info("Node deleted", "label", node.Label(), "id", id)
	return nil
}

// GetNodeByID implements Store.
func (s *SQLiteStore) GetNodeByID(ctx context.Context, schema *Schema, id int64) (*Record, error) {
	exists, err := s.tableExists(ctx, schema.Label())
	if err != nil || !exists {
		return nil, err
	}

	cols, err := s.tableColumns(ctx, schema.Label())
	if err != nil {
		return nil, err
	}
	var selected []string
	for _, name := range schema.FieldNames() {
		if cols[name] {
			selected = append(selected, name)
		}
	}

	query := fmt.Sprintf(`SELECT %s`, idColumn)
	for _, name := range selected {
		query += fmt.Sprintf(`, %q`, name)
	}
	query += fmt.Sprintf(` FROM %q WHERE %s = ?`, schema.Label(), idColumn)

	scanned := make([]any, len(selected)+1)
	ptrs := make([]any, len(scanned))
	for i := range scanned {
		ptrs[i] = &scanned[i]
	}
	err = s.queryRow(ctx, query, id).Scan(ptrs...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("graph: get node %s/%d: %w", schema.Label(), id, err)
	}

	props := make(map[string]any, len(selected))
	for i, name := range selected {
		stored := scanned[i+1]
		if stored == nil {
			continue // NULL column reads back as an unset field
		}
		spec, _ := schema.Field(name)
		value, err := decodeValue(schema.Label(), name, spec, stored)
		if err != nil {
			return nil, err
		}
		props[name] = value
	}

	rec := &Record{schema: schema, props: props}
	rec.bindIdentity(id)
	return rec, nil
}

// SetProperty implements Store.
func (s *SQLiteStore) SetProperty(ctx context.Context, node *Record, field string, value any) error {
	if value == nil {
		return ErrNilProperty
	}

	spec, declared := node.Schema().Field(field)
	if !declared {
		return &PreconditionError{
			Op:     "SetProperty",
			Reason: fmt.Sprintf("no field %q declared on label %s", field, node.Label()),
		}
	}

	exists, err := s.NodeExists(ctx, node)
	if err != nil {
		return err
	}
	if !exists {
		return &PreconditionError{
			Op:     "SetProperty",
			Reason: fmt.Sprintf("node %s is not present in the database", node.Label()),
		}
	}

	cols, err := s.tableColumns(ctx, node.Label())
	if err != nil {
		return err
	}
	if !cols[field] {
		return &PreconditionError{
			Op:     "SetProperty",
			Reason: fmt.Sprintf("no column %q in table %s", field, node.Label()),
		}
	}

	// Validate before anything reaches storage.
	if err := node.Schema().ValidateField(field, value); err != nil {
		return err
	}
	encoded, err := encodeValue(spec, value)
	if err != nil {
		return &ValidationError{Label: node.Label(), Field: field, Reason: err.Error()}
	}

	id, _ := node.ID()
	if _, err := s.exec(ctx, fmt.Sprintf(
		`UPDATE %q SET %q = ? WHERE %s = ?`, node.Label(), field, idColumn,
	), encoded, id); err != nil {
		return fmt.Errorf("graph: set %s.%s: %w", node.Label(), field, err)
	}

	// Confirm the write by reading the stored value back.
	var stored any
	if err := s.queryRow(ctx, fmt.Sprintf(
		`SELECT %q FROM %q WHERE %s = ?`, field, node.Label(), idColumn,
	), id).Scan(&stored); err != nil {
		return fmt.Errorf("graph: read back %s.%s: %w", node.Label(), field, err)
	}
	if !storedEqual(encoded, stored) {
		return &InternalError{
			Op:     "SetProperty",
			Reason: fmt.Sprintf("stored value for %s.%s does not match the written value", node.Label(), field),
		}
	}

	node.storeSet(field, value)
	return nil
}

// RunQuery implements Store: the untyped passthrough escape hatch. The full
// result set is buffered in memory; there is no retry and no pagination.
func (s *SQLiteStore) RunQuery(ctx context.Context, query string, args ...any) ([]Row, error) {
	s.logger.Debug("graph.query", "query", query)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, Row(values))
	}
	return out, rows.Err()
}

// encodeValue converts a validated field value into its storage form. Only
// TypeJSON fields are transformed: serialized and marked with the content
// prefix so reads know to decode them.
func encodeValue(spec FieldSpec, value any) (any, error) {
	if spec.Type != TypeJSON {
		return value, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON-serializable: %v", err)
	}
	return jsonPrefix + string(b), nil
}

// decodeValue converts a stored column value back to its field value,
// reversing the JSON prefix convention.
func decodeValue(label, field string, spec FieldSpec, stored any) (any, error) {
	if b, ok := stored.([]byte); ok {
		stored = string(b)
	}

	switch spec.Type {
	case TypeInt:
		if v, ok := stored.(int64); ok {
			return v, nil
		}
	case TypeFloat:
		switch v := stored.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
	case TypeBool:
		switch v := stored.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		}
	case TypeString:
		if v, ok := stored.(string); ok {
			return v, nil
		}
	case TypeJSON:
		v, ok := stored.(string)
		if !ok {
			break
		}
		if len(v) < len(jsonPrefix) || v[:len(jsonPrefix)] != jsonPrefix {
			// Stored before the field was declared JSON; surface as-is.
			return v, nil
		}
		var decoded any
		if err := json.Unmarshal([]byte(v[len(jsonPrefix):]), &decoded); err != nil {
			return nil, &InternalError{
				Op:     "GetNodeByID",
				Reason: fmt.Sprintf("undecodable JSON value in %s.%s: %v", label, field, err),
			}
		}
		return decoded, nil
	}
	return nil, &InternalError{
		Op:     "GetNodeByID",
		Reason: fmt.Sprintf("unexpected storage type %T for %s.%s", stored, label, field),
	}
}

// storedEqual compares an encoded value against what the engine handed back,
// normalizing the engine's integer representation of booleans and the
// various Go integer widths.
func storedEqual(encoded, stored any) bool {
	if b, ok := stored.([]byte); ok {
		stored = string(b)
	}

	switch e := encoded.(type) {
	case string:
		v, ok := stored.(string)
		return ok && v == e
	case bool:
		switch v := stored.(type) {
		case bool:
			return v == e
		case int64:
			return (v != 0) == e
		}
	case int:
		return storedEqual(int64(e), stored)
	case int32:
		return storedEqual(int64(e), stored)
	case int64:
		switch v := stored.(type) {
		case int64:
			return v == e
		case float64:
			return v == float64(e)
		}
	case float32:
		return storedEqual(float64(e), stored)
	case float64:
		switch v := stored.(type) {
		case float64:
			return v == e
		case int64:
			return float64(v) == e
		}
	}
	return false
}
