package main

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestConvertSchema(t *testing.T) {
	in := decode(t, `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "description": "job id"},
			"limit": {"type": "integer"},
			"min_salary": {"type": ["number", "null"]},
			"sort": {"type": "string", "enum": ["newest", "salary"]},
			"types": {"type": ["null", "array"], "items": {"type": "string"}},
			"clear_tab": {"type": "boolean"}
		}
	}`)

	got := convertSchema(in)

	assert.Equal(t, genai.TypeObject, got.Type)
	assert.Equal(t, []string{"id"}, got.Required)
	require.Len(t, got.Properties, 6)
	assert.Equal(t, genai.TypeString, got.Properties["id"].Type)
	assert.Equal(t, "job id", got.Properties["id"].Description)
	assert.Equal(t, genai.TypeInteger, got.Properties["limit"].Type)
	assert.Equal(t, genai.TypeNumber, got.Properties["min_salary"].Type)
	assert.Equal(t, []string{"newest", "salary"}, got.Properties["sort"].Enum)
	assert.Equal(t, genai.TypeArray, got.Properties["types"].Type)
	require.NotNil(t, got.Properties["types"].Items)
	assert.Equal(t, genai.TypeString, got.Properties["types"].Items.Type)
	assert.Equal(t, genai.TypeBoolean, got.Properties["clear_tab"].Type)
}

func TestConvertSchemaNonObject(t *testing.T) {
	assert.Equal(t, genai.TypeObject, convertSchema(nil).Type)
	assert.Equal(t, genai.TypeObject, convertSchema("nope").Type)
	assert.Equal(t, genai.TypeObject, convertSchema(map[string]any{}).Type)
}

func TestToolMessages(t *testing.T) {
	assert.Equal(t, "Job search", toolDisplayName("search_jobs"))
	assert.Equal(t, "custom", toolDisplayName("custom"))
}

func TestSystemPrompt(t *testing.T) {
	assert.NotContains(t, systemPrompt(""), "spreadsheet_id")
	assert.Contains(t, systemPrompt("sheet-1"), `"spreadsheet_id": "sheet-1"`)
}

func TestMCPEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/mcp/stream", mcpEndpoint(""))
	assert.Equal(t, "http://host:9000/mcp/stream", mcpEndpoint("http://host:9000/"))
	assert.Equal(t, "http://host/mcp/stream", mcpEndpoint("http://host/mcp/stream"))
}
