package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStorePutGet(t *testing.T) {
	store := NewInMemoryStore()

	obj := RetrievableObject{
		ID:          "test123",
		Name:        "test_object",
		Description: "test object",
		Payload:     map[string]any{"value": 42},
	}
	require.NoError(t, store.Put(obj))

	got, err := store.Get("test123")
	require.NoError(t, err)
	assert.Equal(t, obj, got)
	assert.Equal(t, "test_object: test object (id: test123)", got.Summary())
}

func TestInMemoryStoreGetMissing(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("smth")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStorePutReplaces(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put(RetrievableObject{ID: "a", Name: "first"}))
	require.NoError(t, store.Put(RetrievableObject{ID: "a", Name: "second"}))

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
	assert.Len(t, store.List(), 1)
}

func TestInMemoryStoreDelete(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put(RetrievableObject{ID: "a"}))
	require.NoError(t, store.Delete("a"))

	_, err := store.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete("a"), ErrNotFound)
}

func TestInMemoryStoreListOrdered(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put(RetrievableObject{ID: "b"}))
	require.NoError(t, store.Put(RetrievableObject{ID: "a"}))
	require.NoError(t, store.Put(RetrievableObject{ID: "c"}))

	objs := store.List()
	require.Len(t, objs, 3)
	assert.Equal(t, "a", objs[0].ID)
	assert.Equal(t, "b", objs[1].ID)
	assert.Equal(t, "c", objs[2].ID)
}
