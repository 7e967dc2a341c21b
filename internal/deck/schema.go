package deck

// deckSchema is the JSON Schema every deck file must satisfy, whether it is
// written as YAML or JSON.
var deckSchema = map[string]any{
	"type":     "object",
	"required": []any{"items"},
	"properties": map[string]any{
		"name": map[string]any{
			"type":        "string",
			"description": "Human-readable deck title",
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "prompt", "answer", "x", "y"},
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"prompt": map[string]any{
						"type":        "string",
						"minLength":   1,
						"description": "Question shown to the learner",
					},
					"answer": map[string]any{
						"type":        "string",
						"description": "Reference answer revealed after responding",
					},
					"x": map[string]any{
						"type":        "number",
						"description": "Horizontal position on the sorting canvas",
					},
					"y": map[string]any{
						"type":        "number",
						"description": "Vertical position on the sorting canvas",
					},
				},
				"additionalProperties": false,
			},
		},
	},
}
