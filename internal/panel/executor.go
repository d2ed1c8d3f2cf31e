package panel

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"

	"github.com/google/uuid"
)

var ErrToolBusy = stderrors.New("tool is already executing")

// PromptRequest describes what the operator is asked for before an execution.
type PromptRequest struct {
	ToolName string
	Title    string
	Example  string
}

// Prompter solicits text from the operator. ok is false when the operator
// cancelled.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (text string, ok bool, err error)
}

// ExecutionRequest lives from the operator confirming parameters until the
// registry answers.
type ExecutionRequest struct {
	ID         string
	Tool       *entities.Tool
	RawText    string
	Parameters any
	StartedAt  time.Time
}

type ExecutionOutcome struct {
	Request  *ExecutionRequest
	Result   *entities.ExecutionResult
	Err      error
	Duration time.Duration
}

func (o ExecutionOutcome) Notice() Notice {
	if o.Err != nil {
		return Notice{Kind: NoticeError, Title: "Failed to execute tool", Body: o.Err.Error()}
	}
	var raw json.RawMessage
	if o.Result != nil {
		raw = o.Result.Result
	}
	return Notice{Kind: NoticeInfo, Title: "Tool executed successfully!", Body: "Result: " + FormatResult(raw)}
}

// ParameterNotice is shown when the typed parameters do not parse.
func ParameterNotice(err error) Notice {
	return Notice{Kind: NoticeError, Title: "Invalid parameter format", Body: err.Error()}
}

// Executions tracks which tools have a call outstanding. Different tools may
// execute concurrently; the same tool may not.
type Executions struct {
	running map[string]*ExecutionRequest
	now     func() time.Time
}

func NewExecutions() *Executions {
	return &Executions{
		running: make(map[string]*ExecutionRequest),
		now:     time.Now,
	}
}

func (e *Executions) IsExecuting(name string) bool {
	_, ok := e.running[name]
	return ok
}

func (e *Executions) Running() int {
	return len(e.running)
}

func (e *Executions) PromptFor(tool *entities.Tool) (PromptRequest, error) {
	if e.IsExecuting(tool.Name) {
		return PromptRequest{}, ErrToolBusy
	}

	example, err := json.MarshalIndent(ExampleParameters(tool.Name), "", "  ")
	if err != nil {
		example = []byte("{}")
	}

	return PromptRequest{
		ToolName: tool.Name,
		Title:    fmt.Sprintf("Enter parameters for %s (JSON format)", tool.Name),
		Example:  string(example),
	}, nil
}

// Submit parses the operator's text and marks the tool executing. A nil
// request with a nil error means the operator gave no input. Blank but
// non-empty text is input and fails to parse.
func (e *Executions) Submit(tool *entities.Tool, text string) (*ExecutionRequest, error) {
	if text == "" {
		return nil, nil
	}
	if e.IsExecuting(tool.Name) {
		return nil, ErrToolBusy
	}

	params, err := ParseParameters(text)
	if err != nil {
		return nil, err
	}

	req := &ExecutionRequest{
		ID:         uuid.New().String(),
		Tool:       tool,
		RawText:    text,
		Parameters: params,
		StartedAt:  e.now(),
	}
	e.running[tool.Name] = req
	return req, nil
}

// Complete releases the tool whatever the outcome.
func (e *Executions) Complete(req *ExecutionRequest, result *entities.ExecutionResult, err error) ExecutionOutcome {
	if current, ok := e.running[req.Tool.Name]; ok && current.ID == req.ID {
		delete(e.running, req.Tool.Name)
	}

	outcome := ExecutionOutcome{
		Request:  req,
		Result:   result,
		Duration: e.now().Sub(req.StartedAt),
	}
	if err != nil {
		var execErr *errors.ExecutionError
		if !stderrors.As(err, &execErr) {
			execErr = errors.ExecutionErrorf("%s", err.Error())
		}
		outcome.Err = execErr
	}
	return outcome
}

// ExecuteFunc issues the execution call against the registry.
type ExecuteFunc func(ctx context.Context, name string, parameters any) (*entities.ExecutionResult, error)

// Execute runs the whole flow synchronously: prompt, parse, call, release.
// It returns nil when the operator cancelled.
func (e *Executions) Execute(ctx context.Context, tool *entities.Tool, prompter Prompter, execute ExecuteFunc) (*ExecutionOutcome, error) {
	prompt, err := e.PromptFor(tool)
	if err != nil {
		return nil, err
	}

	text, ok, err := prompter.Prompt(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	if !ok {
		return nil, nil
	}

	req, err := e.Submit(tool, text)
	if err != nil || req == nil {
		return nil, err
	}

	result, err := execute(ctx, tool.Name, req.Parameters)
	outcome := e.Complete(req, result, err)
	return &outcome, nil
}

// ParseParameters decodes a single JSON value, keeping numbers exact.
func ParseParameters(text string) (any, error) {
	value, err := decodeJSON(text)
	if err != nil {
		return nil, errors.ParameterFormatErrorf("Invalid JSON format in parameters: %v", err)
	}
	return value, nil
}

// FormatResult pretty-prints a raw registry result without interpreting it.
func FormatResult(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stderrors.New("unexpected data after JSON value")
	}
	return value, nil
}
