package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON a prompt asks the model to return.
type OutputSchema struct {
	Name        string        // Schema name (e.g., "Suggestions")
	Description string        // Task preamble placed before the schema
	Array       bool          // The output is a JSON array of objects with Fields
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[\"string\"]"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildJSONPrompt constructs a prompt that asks for JSON matching schema,
// followed by the given context sections in order.
func BuildJSONPrompt(schema OutputSchema, sections ...PromptSection) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	open, closing := "{", "}"
	if schema.Array {
		open, closing = "[{", "}]"
	}
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(open)
	sb.WriteString("\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(closing)
	sb.WriteString("\n\nReturn ONLY the JSON, no markdown, no explanation, no code blocks.\n")

	for _, s := range sections {
		if strings.TrimSpace(s.Body) == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n\"\"\"\n%s\n\"\"\"\n", s.Title, s.Body)
	}
	return sb.String()
}

// PromptSection is a titled block of context appended to a prompt.
type PromptSection struct {
	Title string
	Body  string
}
