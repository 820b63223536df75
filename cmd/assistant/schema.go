package main

import "github.com/google/generative-ai-go/genai"

// convertSchema maps a decoded JSON schema from tools/list onto the subset
// Gemini function declarations accept.
func convertSchema(schema any) *genai.Schema {
	schemaMap, ok := schema.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	result := &genai.Schema{Type: schemaType(schemaMap["type"])}

	if desc, ok := schemaMap["description"].(string); ok {
		result.Description = desc
	}

	if enum, ok := schemaMap["enum"].([]any); ok {
		for _, v := range enum {
			if s, ok := v.(string); ok {
				result.Enum = append(result.Enum, s)
			}
		}
	}

	if required, ok := schemaMap["required"].([]any); ok {
		for _, req := range required {
			if s, ok := req.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if properties, ok := schemaMap["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema, len(properties))
		for name, prop := range properties {
			result.Properties[name] = convertSchema(prop)
		}
	}

	if items, ok := schemaMap["items"]; ok {
		result.Items = convertSchema(items)
	}

	return result
}

// schemaType handles both "string" and the ["string","null"] form jsonschema
// emits for optional fields.
func schemaType(v any) genai.Type {
	switch t := v.(type) {
	case string:
		return typeFromName(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "null" {
				return typeFromName(s)
			}
		}
	}
	return genai.TypeObject
}

func typeFromName(name string) genai.Type {
	switch name {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}
