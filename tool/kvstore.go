package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentgraph/kvstore"
)

// NewObjectInsertionTool returns a tool that stores a retrievable object in
// the given key-value store and reports its summary back to the model. The
// summary is what the model later uses to refer to the object by id.
func NewObjectInsertionTool(store kvstore.Store, optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "description": "Unique identifier for the object"},
			"name":        map[string]any{"type": "string", "description": "Short name of the object"},
			"description": map[string]any{"type": "string", "description": "What the object contains"},
			"payload":     map[string]any{"type": "object", "description": "Arbitrary JSON payload to store"},
		},
		"required": []string{"id", "name", "description"},
	}

	return NewFunctionTool(
		"insert_object",
		"Insert an object into the key-value store for later retrieval by id",
		parameters,
		func(_ context.Context, args map[string]any) (any, error) {
			var obj kvstore.RetrievableObject
			var err error
			if obj.ID, err = stringArg("insert_object", args, "id"); err != nil {
				return nil, err
			}
			if obj.Name, err = stringArg("insert_object", args, "name"); err != nil {
				return nil, err
			}
			if obj.Description, err = stringArg("insert_object", args, "description"); err != nil {
				return nil, err
			}
			if payload, ok := args["payload"]; ok {
				obj.Payload = payload
			}
			if err := store.Put(obj); err != nil {
				return nil, err
			}
			return obj.Summary(), nil
		},
		optFns...,
	)
}

// NewObjectFetcherTool returns a tool that fetches a stored object's payload
// by id. A missing id surfaces as an EXECUTION_ERROR so the model can react.
func NewObjectFetcherTool(store kvstore.Store, optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"object_id": map[string]any{"type": "string", "description": "Identifier of the object to fetch"},
		},
		"required": []string{"object_id"},
	}

	return NewFunctionTool(
		"fetch_object",
		"Fetch the payload of a previously stored object by its id",
		parameters,
		func(_ context.Context, args map[string]any) (any, error) {
			id, err := stringArg("fetch_object", args, "object_id")
			if err != nil {
				return nil, err
			}
			obj, err := store.Get(id)
			if err != nil {
				return nil, fmt.Errorf("fetch object %q: %w", id, err)
			}
			return obj.Payload, nil
		},
		optFns...,
	)
}
