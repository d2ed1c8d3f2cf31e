package panel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
)

// ParamHint is one property of a tool's parameters schema, for display.
type ParamHint struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

func (h ParamHint) String() string {
	var sb strings.Builder
	sb.WriteString(h.Name)
	attrs := []string{}
	if h.Type != "" {
		attrs = append(attrs, h.Type)
	}
	if h.Required {
		attrs = append(attrs, "required")
	}
	if len(attrs) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(attrs, ", "))
	}
	if h.Description != "" {
		sb.WriteString(": " + h.Description)
	}
	return sb.String()
}

// ParameterHints reads an object schema's properties. ok is false when the
// value has no properties to show.
func ParameterHints(raw json.RawMessage) ([]ParamHint, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var schema spec.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, false
	}
	if len(schema.Properties) == 0 {
		return nil, false
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	hints := make([]ParamHint, 0, len(schema.Properties))
	for name, prop := range schema.Properties {
		hints = append(hints, ParamHint{
			Name:        name,
			Type:        strings.Join(prop.Type, "|"),
			Description: prop.Description,
			Required:    required[name],
		})
	}
	sort.Slice(hints, func(i, j int) bool {
		if hints[i].Required != hints[j].Required {
			return hints[i].Required
		}
		return hints[i].Name < hints[j].Name
	})
	return hints, true
}

// DescribeSchema renders a parameters schema for the tool detail pane,
// falling back to the pretty-printed JSON.
func DescribeSchema(raw json.RawMessage) string {
	if hints, ok := ParameterHints(raw); ok {
		lines := make([]string, len(hints))
		for i, h := range hints {
			lines[i] = "  " + h.String()
		}
		return strings.Join(lines, "\n")
	}
	return FormatResult(raw)
}
