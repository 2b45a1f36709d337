package insight

import "github.com/Sablekanishka11/mbti-mirror/internal/llm"

// InsightSchema defines the JSON schema for exemplar commentary.
var InsightSchema = &llm.Schema{
	Name:        "exemplar-insight",
	Description: "Short commentary on how a well-known person reflects a personality type",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"insight": map[string]any{
				"type":        "string",
				"description": "2-4 sentences connecting the person's public work to the type's traits",
			},
		},
		"required":             []any{"insight"},
		"additionalProperties": false,
	},
}
