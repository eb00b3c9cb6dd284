package graph

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ Store = (*SQLiteStore)(nil)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustRecord(t *testing.T, schema *Schema, props map[string]any) *Record {
	t.Helper()
	rec, err := NewRecord(schema, props)
	require.NoError(t, err)
	return rec
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "nested", "graphdata"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.DB().Ping())
}

func TestNewSQLiteStoreFromHandle(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	defer store.Close()

	node := mustRecord(t, testQuestionSchema(), map[string]any{"question": "q1"})
	require.NoError(t, store.InsertNode(context.Background(), node))
	assert.True(t, node.Persisted())
}

func TestTransientNodeDoesNotExist(t *testing.T) {
	store := newTestStore(t)
	node := mustRecord(t, testQuestionSchema(), map[string]any{"question": "q1"})

	exists, err := store.NodeExists(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNodeExistsByIDWithoutTable(t *testing.T) {
	store := newTestStore(t)

	exists, err := store.NodeExistsByID(context.Background(), testQuestionSchema(), 1)
	require.NoError(t, err)
	assert.False(t, exists, "missing table is an ordinary not-found, not an error")
}

func TestInsertNodeAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	node := mustRecord(t, testQuestionSchema(), map[string]any{"question": "q1"})

	require.NoError(t, store.InsertNode(ctx, node))

	id, ok := node.ID()
	assert.True(t, ok)
	assert.Positive(t, id)

	exists, err := store.NodeExists(ctx, node)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.NodeExistsByID(ctx, testQuestionSchema(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	var perr *PreconditionError
	require.ErrorAs(t, store.InsertNode(ctx, node), &perr, "re-inserting a persisted node is caller misuse")
}

func TestGetNodeByIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	node := mustRecord(t, schema, map[string]any{
		"question": "q1",
		"context":  []string{"abc", "def"},
	})
	require.NoError(t, store.InsertNode(ctx, node))
	id, _ := node.ID()

	loaded, err := store.GetNodeByID(ctx, schema, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Persisted())

	q, _ := loaded.Get("question")
	assert.Equal(t, "q1", q)

	// The list-of-strings field survives the JSON prefix round trip.
	c, ok := loaded.Get("context")
	assert.True(t, ok)
	assert.Equal(t, []any{"abc", "def"}, c)

	_, ok = loaded.Get("answer")
	assert.False(t, ok, "NULL column reads back as an unset field")

	missing, err := store.GetNodeByID(ctx, schema, id+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestScalarFieldRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := MustSchema("Sample", map[string]FieldSpec{
		"count": {Type: TypeInt},
		"score": {Type: TypeFloat},
		"done":  {Type: TypeBool},
	})

	node := mustRecord(t, schema, map[string]any{
		"count": 3,
		"score": 0.5,
		"done":  true,
	})
	require.NoError(t, store.InsertNode(ctx, node))
	id, _ := node.ID()

	loaded, err := store.GetNodeByID(ctx, schema, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	count, _ := loaded.Get("count")
	assert.Equal(t, int64(3), count)
	score, _ := loaded.Get("score")
	assert.Equal(t, 0.5, score)
	done, _ := loaded.Get("done")
	assert.Equal(t, true, done)
}

func TestUpsertTripletIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})

	require.NoError(t, store.UpsertTriplet(ctx, a, b, "p"))
	aID, _ := a.ID()
	bID, _ := b.ID()

	require.NoError(t, store.UpsertTriplet(ctx, a, b, "p"))

	// Both nodes persisted exactly once.
	aID2, _ := a.ID()
	bID2, _ := b.ID()
	assert.Equal(t, aID, aID2)
	assert.Equal(t, bID, bID2)

	rows, err := store.RunQuery(ctx,
		`SELECT COUNT(*) FROM "rel_Question__p__Question" WHERE from_id = ? AND to_id = ?`, aID, bID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0][0], "exactly one matching edge after repeated upserts")
}

func TestRelationDirectionAndLabelSignificant(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})
	require.NoError(t, store.UpsertTriplet(ctx, a, b, "p"))

	exists, err := store.RelationExists(ctx, a, b, "p")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.RelationExists(ctx, a, b, "")
	require.NoError(t, err)
	assert.True(t, exists, "empty label matches any label")

	exists, err = store.RelationExists(ctx, b, a, "")
	require.NoError(t, err)
	assert.False(t, exists, "direction is significant")

	exists, err = store.RelationExists(ctx, a, b, "q")
	require.NoError(t, err)
	assert.False(t, exists, "label is significant")
}

func TestRelationExistsTransientEndpoints(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})

	exists, err := store.RelationExists(ctx, a, b, "p")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateRelationRequiresPersistedEndpoints(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})
	require.NoError(t, store.InsertNode(ctx, a))

	var perr *PreconditionError
	require.ErrorAs(t, store.CreateRelation(ctx, a, b, "p"), &perr)
}

func TestMultipleLabelsBetweenSamePair(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})
	require.NoError(t, store.UpsertTriplet(ctx, a, b, "p"))
	require.NoError(t, store.UpsertTriplet(ctx, a, b, "q"))

	for _, label := range []string{"p", "q"} {
		exists, err := store.RelationExists(ctx, a, b, label)
		require.NoError(t, err)
		assert.True(t, exists, "label %s", label)
	}

	rows, err := store.RunQuery(ctx, `SELECT COUNT(*) FROM `+catalogTable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows[0][0], "one relation table per triple")
}

func TestDeleteNode(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	a := mustRecord(t, schema, map[string]any{"question": "a"})
	b := mustRecord(t, schema, map[string]any{"question": "b"})
	c := mustRecord(t, schema, map[string]any{"question": "c"})
	require.NoError(t, store.UpsertTriplet(ctx, a, b, "p")) // outgoing from a
	require.NoError(t, store.UpsertTriplet(ctx, c, a, "p")) // incoming to a
	aID, _ := a.ID()

	require.NoError(t, store.DeleteNode(ctx, a))

	assert.False(t, a.Persisted(), "identity cleared, record back to transient")

	exists, err := store.NodeExistsByID(ctx, schema, aID)
	require.NoError(t, err)
	assert.False(t, exists)

	loaded, err := store.GetNodeByID(ctx, schema, aID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Edges in both directions are gone; b and c survive.
	rows, err := store.RunQuery(ctx, `SELECT COUNT(*) FROM "rel_Question__p__Question"`)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0][0])

	for _, n := range []*Record{b, c} {
		exists, err := store.NodeExists(ctx, n)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	// The transient record can be re-inserted as a new node.
	require.NoError(t, store.InsertNode(ctx, a))
	newID, _ := a.ID()
	assert.NotEqual(t, aID, newID)
}

func TestDeleteNonexistentNode(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	node := mustRecord(t, testQuestionSchema(), map[string]any{"question": "a"})

	var perr *PreconditionError
	require.ErrorAs(t, store.DeleteNode(ctx, node), &perr)
}

func TestSetPropertyJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	node := mustRecord(t, schema, map[string]any{"question": "q2", "answer": "a2"})
	require.NoError(t, store.InsertNode(ctx, node))
	id, _ := node.ID()

	require.NoError(t, store.SetProperty(ctx, node, "context", []string{"abc", "def"}))

	// In-memory object updated...
	c, ok := node.Get("context")
	assert.True(t, ok)
	assert.Equal(t, []string{"abc", "def"}, c)
	assert.True(t, node.Persisted(), "mutation does not change the persisted state")

	// ...and the stored value round-trips.
	loaded, err := store.GetNodeByID(ctx, schema, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	lc, _ := loaded.Get("context")
	assert.Equal(t, []any{"abc", "def"}, lc)
}

func TestSetPropertyValidateBeforeWrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	node := mustRecord(t, schema, map[string]any{"question": "q1"})
	require.NoError(t, store.InsertNode(ctx, node))
	id, _ := node.ID()

	var verr *ValidationError
	require.ErrorAs(t, store.SetProperty(ctx, node, "question", 42), &verr)

	// Neither storage nor the in-memory object changed.
	v, _ := node.Get("question")
	assert.Equal(t, "q1", v)

	loaded, err := store.GetNodeByID(ctx, schema, id)
	require.NoError(t, err)
	lv, _ := loaded.Get("question")
	assert.Equal(t, "q1", lv)
}

func TestSetPropertyPreconditions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	node := mustRecord(t, schema, map[string]any{"question": "q1"})

	// Nil values are rejected outright as an engine limitation.
	require.NoError(t, store.InsertNode(ctx, node))
	assert.ErrorIs(t, store.SetProperty(ctx, node, "answer", nil), ErrNilProperty)

	var perr *PreconditionError
	require.ErrorAs(t, store.SetProperty(ctx, node, "nope", "x"), &perr, "undeclared field")

	transient := mustRecord(t, schema, map[string]any{"question": "q2"})
	require.ErrorAs(t, store.SetProperty(ctx, transient, "question", "x"), &perr, "node not in database")
}

func TestSchemaEvolutionIsAdditive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	v1 := MustSchema("Note", map[string]FieldSpec{
		"text": {Type: TypeString},
	})
	old := mustRecord(t, v1, map[string]any{"text": "first"})
	require.NoError(t, store.InsertNode(ctx, old))
	oldID, _ := old.ID()

	v2 := MustSchema("Note", map[string]FieldSpec{
		"text": {Type: TypeString},
		"tags": {Type: TypeJSON, Optional: true},
	})
	fresh := mustRecord(t, v2, map[string]any{"text": "second", "tags": []string{"x"}})
	require.NoError(t, store.InsertNode(ctx, fresh))
	freshID, _ := fresh.ID()

	// Rows written before the column existed read back with the field unset.
	loadedOld, err := store.GetNodeByID(ctx, v2, oldID)
	require.NoError(t, err)
	require.NotNil(t, loadedOld)
	_, ok := loadedOld.Get("tags")
	assert.False(t, ok)

	loadedFresh, err := store.GetNodeByID(ctx, v2, freshID)
	require.NoError(t, err)
	tags, _ := loadedFresh.Get("tags")
	assert.Equal(t, []any{"x"}, tags)
}

func TestRunQueryMaterializesRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	for _, q := range []string{"q1", "q2"} {
		node := mustRecord(t, schema, map[string]any{"question": q})
		require.NoError(t, store.InsertNode(ctx, node))
	}

	rows, err := store.RunQuery(ctx, `SELECT id, question FROM "Question" ORDER BY id`)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "q1", rows[0][1])
	assert.Equal(t, "q2", rows[1][1])

	_, err = store.RunQuery(ctx, `SELECT * FROM no_such_table`)
	assert.Error(t, err, "underlying query failures propagate unmodified")
}

// TestEndToEndScenario mirrors the q1/q2 lifecycle: insert, upsert a triplet,
// check direction, delete, mutate a list-valued property.
func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := testQuestionSchema()

	q1 := mustRecord(t, schema, map[string]any{"question": "q1"})
	require.NoError(t, store.InsertNode(ctx, q1))
	q1ID, ok := q1.ID()
	require.True(t, ok)

	q2 := mustRecord(t, schema, map[string]any{"question": "q2", "answer": "a2"})
	require.NoError(t, store.UpsertTriplet(ctx, q1, q2, "p"))
	q2ID, ok := q2.ID()
	require.True(t, ok)

	exists, err := store.RelationExists(ctx, q1, q2, "p")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.RelationExists(ctx, q2, q1, "")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.DeleteNode(ctx, q1))
	exists, err = store.NodeExistsByID(ctx, schema, q1ID)
	require.NoError(t, err)
	assert.False(t, exists)

	gone, err := store.GetNodeByID(ctx, schema, q1ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, store.SetProperty(ctx, q2, "context", []string{"abc", "def"}))

	loaded, err := store.GetNodeByID(ctx, schema, q2ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	c, _ := loaded.Get("context")
	assert.Equal(t, []any{"abc", "def"}, c)
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestConfirmEdgeCreated(t *testing.T) {
	assert.NoError(t, confirmEdgeCreated(fakeResult{n: 1}))

	var internalErr *InternalError
	err := confirmEdgeCreated(fakeResult{n: 0})
	require.ErrorAs(t, err, &internalErr)

	driverErr := errors.New("driver gone away")
	err = confirmEdgeCreated(fakeResult{err: driverErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.False(t, errors.As(err, &internalErr))
}
