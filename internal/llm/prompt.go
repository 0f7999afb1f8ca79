package llm

import (
	"fmt"
	"strings"
)

// ResponseSchema describes the JSON object a prompt expects back.
type ResponseSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField defines a single field in the expected output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "boolean", "number"
	Description string
	Required    bool
}

// Format renders the schema as the output-format block appended to structured prompts.
func (s ResponseSchema) Format() string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}

// ClassificationSchema is the response shape of the entertainment classifier.
func ClassificationSchema() ResponseSchema {
	return ResponseSchema{
		Name: "TrendClassification",
		Fields: []SchemaField{
			{Name: "is_entertainment", Type: "boolean", Description: "true only if the trend itself is entertainment-focused", Required: true},
			{Name: "confidence", Type: "number", Description: "0.0 to 1.0", Required: true},
			{Name: "content_type", Description: "movie|tv_show|web_series|entertainment_news|actor|director|other|unknown", Required: true},
			{Name: "specific_content", Description: "exact title or name, empty if not entertainment", Required: true},
			{Name: "reasoning", Description: "brief explanation", Required: true},
		},
	}
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
