package panel

import (
	"encoding/json"
	stderrors "errors"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"

	"github.com/pmezard/go-difflib/difflib"
)

var (
	ErrNoSession      = stderrors.New("no configuration session is open")
	ErrSaveInProgress = stderrors.New("configuration save already in progress")
)

const emptyConfig = "{}"

type EditorPhase int

const (
	EditorClosed EditorPhase = iota
	EditorLoadingDraft
	EditorEditing
	EditorSaving
)

func (p EditorPhase) String() string {
	switch p {
	case EditorLoadingDraft:
		return "loading-draft"
	case EditorEditing:
		return "editing"
	case EditorSaving:
		return "saving"
	default:
		return "closed"
	}
}

// SaveRequest is what BeginSave hands to the caller to send to the registry.
type SaveRequest struct {
	Token    uint64
	ToolName string
	Config   entities.ToolConfig
}

// Editor is the single configuration editing session. Every Open starts a new
// session token; results carrying an older token belong to a discarded
// session and are not applied.
type Editor struct {
	phase  EditorPhase
	tool   *entities.Tool
	seed   string
	buffer string
	token  uint64
}

func NewEditor() *Editor {
	return &Editor{}
}

// Open discards any current session without warning and starts loading the
// draft for tool.
func (e *Editor) Open(tool *entities.Tool) uint64 {
	e.token++
	e.phase = EditorLoadingDraft
	e.tool = tool
	e.seed = ""
	e.buffer = ""
	return e.token
}

// DraftLoaded seeds the buffer. A failed fetch means no configuration exists
// yet and seeds an empty object.
func (e *Editor) DraftLoaded(token uint64, config entities.ToolConfig, err error) bool {
	if token != e.token || e.phase != EditorLoadingDraft {
		return false
	}

	seed := emptyConfig
	if err == nil {
		seed = FormatConfig(config)
	}
	e.seed = seed
	e.buffer = seed
	e.phase = EditorEditing
	return true
}

func (e *Editor) UpdateDraft(text string) bool {
	if e.phase != EditorEditing {
		return false
	}
	e.buffer = text
	return true
}

func (e *Editor) BeginSave() (*SaveRequest, error) {
	switch e.phase {
	case EditorSaving:
		return nil, ErrSaveInProgress
	case EditorEditing:
	default:
		return nil, ErrNoSession
	}

	config, err := ParseConfig(e.buffer)
	if err != nil {
		return nil, err
	}

	e.phase = EditorSaving
	return &SaveRequest{Token: e.token, ToolName: e.tool.Name, Config: config}, nil
}

// SaveOutcome is the registry's answer to a save as applied to the editor.
type SaveOutcome struct {
	// Closed is set when the answer ended the current session.
	Closed bool
	// Stale is set when the answer belongs to a discarded session.
	Stale bool
	Err   error
}

// Notice reports the save whether or not its session is still open.
func (o SaveOutcome) Notice() Notice {
	return SaveNotice(o.Err)
}

// SaveResolved applies the registry's answer. On failure the session goes
// back to editing with the buffer intact and Err is a ConfigSaveError. An
// answer for a discarded session changes nothing but is still returned so it
// can be reported.
func (e *Editor) SaveResolved(token uint64, err error) SaveOutcome {
	var outcome SaveOutcome
	if err != nil {
		outcome.Err = errors.ConfigSaveErrorf("%s", err.Error())
	}
	if token != e.token || e.phase != EditorSaving {
		outcome.Stale = true
		return outcome
	}

	if err != nil {
		e.phase = EditorEditing
		return outcome
	}

	e.close()
	outcome.Closed = true
	return outcome
}

// Cancel discards the session. It never talks to the registry.
func (e *Editor) Cancel() {
	if e.phase == EditorClosed {
		return
	}
	e.token++
	e.close()
}

func (e *Editor) close() {
	e.phase = EditorClosed
	e.tool = nil
	e.seed = ""
	e.buffer = ""
}

func (e *Editor) Phase() EditorPhase {
	return e.phase
}

func (e *Editor) Active() bool {
	return e.phase != EditorClosed
}

func (e *Editor) Saving() bool {
	return e.phase == EditorSaving
}

func (e *Editor) Token() uint64 {
	return e.token
}

func (e *Editor) Tool() *entities.Tool {
	return e.tool
}

func (e *Editor) Buffer() string {
	return e.buffer
}

func (e *Editor) Seed() string {
	return e.seed
}

func (e *Editor) Dirty() bool {
	return e.Active() && e.buffer != e.seed
}

// Diff renders the pending edits as a unified diff against the seed.
func (e *Editor) Diff() (string, error) {
	if !e.Dirty() {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(e.seed),
		B:        difflib.SplitLines(e.buffer),
		FromFile: "current",
		ToFile:   "draft",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// FormatConfig renders a configuration for editing.
func FormatConfig(config entities.ToolConfig) string {
	if len(config) == 0 {
		return emptyConfig
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return emptyConfig
	}
	return string(data)
}

// ParseConfig accepts only a JSON object.
func ParseConfig(text string) (entities.ToolConfig, error) {
	value, err := decodeJSON(text)
	if err != nil {
		return nil, errors.ConfigFormatErrorf("Invalid JSON format in configuration: %v", err)
	}
	object, ok := value.(map[string]any)
	if !ok {
		return nil, errors.ConfigFormatErrorf("Configuration must be a JSON object")
	}
	return entities.ToolConfig(object), nil
}

// SaveNotice reports the result of a save to the operator.
func SaveNotice(err error) Notice {
	if err != nil {
		return Notice{Kind: NoticeError, Title: "Failed to save config", Body: err.Error()}
	}
	return Notice{Kind: NoticeInfo, Title: "Configuration saved!"}
}

// ConfigFormatNotice is shown when the draft does not parse.
func ConfigFormatNotice(err error) Notice {
	return Notice{Kind: NoticeError, Title: "Failed to save config", Body: err.Error()}
}
