package tui

import (
	stderrors "errors"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/drujensen/toolpanel/internal/domain/errors"
	"github.com/drujensen/toolpanel/internal/domain/services"
	"github.com/drujensen/toolpanel/internal/panel"
)

const (
	stateList   = "tools/list"
	statePrompt = "tools/prompt"
	stateConfig = "tools/config"
	stateNotice = "tools/notice"
	stateHelp   = "tools/help"
)

type TUI struct {
	toolService services.ToolService
	panel       *panel.State

	toolView     ToolView
	paramPrompt  ParamPrompt
	configEditor ConfigEditor
	noticeView   NoticeView
	helpView     HelpView

	state    string
	returnTo string
}

func NewTUI(toolService services.ToolService) TUI {
	state := panel.NewState()

	return TUI{
		toolService: toolService,
		panel:       state,

		toolView:     NewToolView(state),
		paramPrompt:  NewParamPrompt(),
		configEditor: NewConfigEditor(state.Editor),
		noticeView:   NewNoticeView(),
		helpView:     NewHelpView(),

		state: stateList,
	}
}

func (t TUI) Init() tea.Cmd {
	t.panel.List.BeginLoad()
	return tea.Batch(
		loadToolsCmd(t.toolService),
		t.toolView.Init(),
	)
}

func (t TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Tool listing
	case refreshToolsMsg:
		t.panel.List.BeginLoad()
		return t, tea.Batch(loadToolsCmd(t.toolService), t.toolView.Init())
	case toolsLoadedMsg:
		t.panel.List.Resolve(msg.tools, msg.at)
		cmd := t.toolView.Refresh()
		return t, cmd

	// Execution
	case startExecuteMsg:
		prompt, err := t.panel.Exec.PromptFor(msg.tool)
		if err != nil {
			return t, nil
		}
		t.state = statePrompt
		cmd := t.paramPrompt.Open(msg.tool, prompt)
		return t, cmd
	case paramsSubmittedMsg:
		t.state = stateList
		req, err := t.panel.Exec.Submit(msg.tool, msg.text)
		if err != nil {
			if stderrors.Is(err, panel.ErrToolBusy) {
				return t, nil
			}
			t.panel.Notify(panel.ParameterNotice(err))
			t.showNotice()
			return t, nil
		}
		if req == nil {
			return t, nil
		}
		cmd := t.toolView.Refresh()
		return t, tea.Batch(executeToolCmd(t.toolService, req), cmd, t.toolView.Init())
	case paramsCancelledMsg:
		t.state = stateList
		return t, nil
	case toolExecutedMsg:
		outcome := t.panel.Exec.Complete(msg.req, msg.result, msg.err)
		t.panel.Notify(outcome.Notice())
		cmd := t.toolView.Refresh()
		t.showNotice()
		return t, cmd

	// Configuration
	case startConfigureMsg:
		token := t.panel.Editor.Open(msg.tool)
		t.state = stateConfig
		t.configEditor.Sync()
		return t, tea.Batch(fetchConfigCmd(t.toolService, token, msg.tool.Name), t.configEditor.Init())
	case configLoadedMsg:
		if !t.panel.Editor.DraftLoaded(msg.token, msg.config, msg.err) {
			return t, nil
		}
		cmd := t.configEditor.Sync()
		return t, cmd
	case saveConfigMsg:
		req, err := t.panel.Editor.BeginSave()
		if err != nil {
			var formatErr *errors.ConfigFormatError
			if stderrors.As(err, &formatErr) {
				t.panel.Notify(panel.ConfigFormatNotice(err))
				t.showNotice()
				return t, nil
			}
			return t, nil
		}
		t.configEditor.Sync()
		return t, tea.Batch(saveConfigCmd(t.toolService, req), t.configEditor.Init())
	case configSavedMsg:
		outcome := t.panel.Editor.SaveResolved(msg.token, msg.err)
		if outcome.Closed && t.state == stateConfig {
			t.state = stateList
		}
		if !outcome.Stale && outcome.Err != nil {
			t.configEditor.Sync()
		}
		t.panel.Notify(outcome.Notice())
		t.showNotice()
		return t, nil
	case configCancelledMsg:
		t.panel.Editor.Cancel()
		t.state = stateList
		return t, nil

	// Notices
	case noticeDismissedMsg:
		t.panel.DismissNotice()
		if next := t.panel.Notice(); next != nil {
			t.noticeView.Show(*next, t.panel.PendingNotices())
			return t, nil
		}
		t.state = t.returnTo
		if t.state == stateConfig && !t.panel.Editor.Active() {
			t.state = stateList
		}
		if t.state == stateConfig {
			cmd := t.configEditor.Sync()
			return t, cmd
		}
		return t, nil

	// Help
	case startHelpMsg:
		t.state = stateHelp
		return t, t.helpView.Init()
	case helpCancelledMsg:
		t.state = stateList
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return t, tea.Quit
		case "q":
			if t.state == stateList && t.toolView.list.FilterState() != list.Filtering {
				return t, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd1, cmd2 tea.Cmd
		t.toolView, cmd1 = t.toolView.Update(msg)
		t.configEditor, cmd2 = t.configEditor.Update(msg)
		return t, tea.Batch(cmd1, cmd2)

	case tea.WindowSizeMsg:
		var (
			cmd  tea.Cmd
			cmds []tea.Cmd
		)

		t.toolView, cmd = t.toolView.Update(msg)
		cmds = append(cmds, cmd)
		t.paramPrompt, cmd = t.paramPrompt.Update(msg)
		cmds = append(cmds, cmd)
		t.configEditor, cmd = t.configEditor.Update(msg)
		cmds = append(cmds, cmd)
		t.noticeView, cmd = t.noticeView.Update(msg)
		cmds = append(cmds, cmd)
		t.helpView, cmd = t.helpView.Update(msg)
		cmds = append(cmds, cmd)

		return t, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	switch t.state {
	case stateList:
		t.toolView, cmd = t.toolView.Update(msg)
	case statePrompt:
		t.paramPrompt, cmd = t.paramPrompt.Update(msg)
	case stateConfig:
		t.configEditor, cmd = t.configEditor.Update(msg)
	case stateNotice:
		t.noticeView, cmd = t.noticeView.Update(msg)
	case stateHelp:
		t.helpView, cmd = t.helpView.Update(msg)
	}
	return t, cmd
}

// showNotice brings up the head of the queue, remembering where to return.
func (t *TUI) showNotice() {
	notice := t.panel.Notice()
	if notice == nil {
		return
	}
	if t.state != stateNotice {
		t.returnTo = t.state
		t.state = stateNotice
	}
	t.noticeView.Show(*notice, t.panel.PendingNotices())
}

func (t TUI) View() string {
	switch t.state {
	case stateList:
		return t.toolView.View()
	case statePrompt:
		return t.paramPrompt.View()
	case stateConfig:
		return t.configEditor.View()
	case stateNotice:
		return t.noticeView.View()
	case stateHelp:
		return t.helpView.View()
	}

	return "Error: Invalid state"
}
