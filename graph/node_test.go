package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestionSchema() *Schema {
	return MustSchema("Question", map[string]FieldSpec{
		"question": {Type: TypeString},
		"answer":   {Type: TypeString, Optional: true},
		"context":  {Type: TypeJSON, Optional: true},
	})
}

func TestNewRecordRequiredFields(t *testing.T) {
	schema := testQuestionSchema()

	_, err := NewRecord(schema, map[string]any{})
	require.Error(t, err, "question is required")

	rec, err := NewRecord(schema, map[string]any{"question": "q1"})
	require.NoError(t, err)
	assert.Equal(t, "Question", rec.Label())
	assert.False(t, rec.Persisted())

	_, ok := rec.ID()
	assert.False(t, ok)

	v, ok := rec.Get("question")
	assert.True(t, ok)
	assert.Equal(t, "q1", v)

	_, ok = rec.Get("answer")
	assert.False(t, ok, "optional field left unset")
}

func TestNewRecordDropsNilValues(t *testing.T) {
	rec, err := NewRecord(testQuestionSchema(), map[string]any{
		"question": "q1",
		"answer":   nil,
	})
	require.NoError(t, err)

	_, ok := rec.Get("answer")
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"question": "q1"}, rec.Properties())
}

func TestNewRecordValidatesValues(t *testing.T) {
	_, err := NewRecord(testQuestionSchema(), map[string]any{"question": 42})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "question", verr.Field)
}

func TestRecordSetTransient(t *testing.T) {
	rec, err := NewRecord(testQuestionSchema(), map[string]any{"question": "q1"})
	require.NoError(t, err)

	require.NoError(t, rec.Set("answer", "a1"))
	v, ok := rec.Get("answer")
	assert.True(t, ok)
	assert.Equal(t, "a1", v)

	// nil clears the field again
	require.NoError(t, rec.Set("answer", nil))
	_, ok = rec.Get("answer")
	assert.False(t, ok)

	assert.Error(t, rec.Set("answer", 1), "type mismatch")
	assert.Error(t, rec.Set("nope", "x"), "undeclared field")
}

func TestRecordSetRefusedWhenPersisted(t *testing.T) {
	rec, err := NewRecord(testQuestionSchema(), map[string]any{"question": "q1"})
	require.NoError(t, err)

	rec.bindIdentity(7)
	assert.True(t, rec.Persisted())

	id, ok := rec.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	var perr *PreconditionError
	require.ErrorAs(t, rec.Set("question", "changed"), &perr)

	v, _ := rec.Get("question")
	assert.Equal(t, "q1", v, "refused mutation must not touch the record")

	rec.releaseIdentity()
	assert.False(t, rec.Persisted())
	assert.NoError(t, rec.Set("question", "changed"))
}

func TestPropertiesReturnsCopy(t *testing.T) {
	rec, err := NewRecord(testQuestionSchema(), map[string]any{"question": "q1"})
	require.NoError(t, err)

	props := rec.Properties()
	props["question"] = "mutated"

	v, _ := rec.Get("question")
	assert.Equal(t, "q1", v)
}
