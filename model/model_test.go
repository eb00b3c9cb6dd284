package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Model = (*MockModel)(nil)

func TestMockModelCannedResponse(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("hello", "world")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModelFallbackResponse(t *testing.T) {
	m := NewMockModel("test-model")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "anything"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", resp.Text)
}

func TestMockModelQueuedResponses(t *testing.T) {
	m := NewMockModel("test-model")
	m.QueueResponse(&Response{
		ToolCalls:    []ToolCall{{ID: "call-1", Name: "lookup", Arguments: `{"id":"x"}`}},
		FinishReason: "tool_calls",
	})
	m.QueueResponse(&Response{Text: "done", FinishReason: "stop"})

	first, err := m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, first.ToolCalls, 1)
	assert.Equal(t, "lookup", first.ToolCalls[0].Name)

	second, err := m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "done", second.Text)
}

func TestMockModelNoMessages(t *testing.T) {
	m := NewMockModel("test-model")

	_, err := m.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestMockModelInfo(t *testing.T) {
	m := NewMockModel("test-model")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
