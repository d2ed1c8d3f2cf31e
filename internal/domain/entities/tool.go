package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ToolID is the backend identifier of a tool. The registry may send it as a
// JSON number or a string.
type ToolID string

func (id *ToolID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ToolID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tool id must be a string or number: %w", err)
	}
	*id = ToolID(n.String())
	return nil
}

// timestampLayouts are tried in order. The registry sends naive UTC values
// without a zone, e.g. 2026-01-01T00:00:00.123456.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a display-only time sent by the registry. A value that does not
// parse decodes as the zero time rather than failing the enclosing document.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(bytes.TrimSpace(data), &s); err != nil {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Tool is an immutable snapshot of a tool as reported by the registry.
type Tool struct {
	ID               ToolID          `json:"id,omitempty"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	ClassName        string          `json:"class_name,omitempty"`
	Enabled          bool            `json:"enabled"`
	ParametersSchema json.RawMessage `json:"parameters_schema,omitempty"`
	CreatedAt        *Timestamp      `json:"created_at,omitempty"`
	UpdatedAt        *Timestamp      `json:"updated_at,omitempty"`
}

// Key identifies the tool within a listing, preferring the backend id.
func (t *Tool) Key() string {
	if t.ID != "" {
		return string(t.ID)
	}
	return t.Name
}

// HasSchema reports whether the registry sent a non-null parameters schema.
func (t *Tool) HasSchema() bool {
	s := bytes.TrimSpace(t.ParametersSchema)
	return len(s) > 0 && !bytes.Equal(s, []byte("null"))
}

// Status is the label shown next to the tool name.
func (t *Tool) Status() string {
	if t.Enabled {
		return "Enabled"
	}
	return "Disabled"
}

// ToolConfig is the persisted configuration object of a tool.
type ToolConfig map[string]any

// ExecutionResult is the registry's response to a tool execution.
type ExecutionResult struct {
	ToolName   string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Result     json.RawMessage `json:"result"`
	Timestamp  *Timestamp      `json:"timestamp,omitempty"`
}

// ToolItem adapts a Tool to the bubbles list.Item interface.
type ToolItem struct {
	Tool      *Tool
	Executing bool
}

func (i ToolItem) FilterValue() string { return i.Tool.Name }

func (i ToolItem) Title() string {
	title := fmt.Sprintf("%s [%s]", i.Tool.Name, i.Tool.Status())
	if i.Executing {
		title += " Running..."
	}
	return title
}

func (i ToolItem) Description() string {
	if i.Tool.Description == "" {
		return "No description available"
	}
	return i.Tool.Description
}
