package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/panel"
)

// ParamPrompt asks for the JSON parameters of one execution.
type ParamPrompt struct {
	tool     *entities.Tool
	prompt   panel.PromptRequest
	textarea textarea.Model
	width    int
	height   int
}

func NewParamPrompt() ParamPrompt {
	ta := textarea.New()
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(10)

	return ParamPrompt{textarea: ta}
}

// Open resets the prompt for tool. The example is shown as a placeholder so
// an untouched prompt still submits nothing.
func (p *ParamPrompt) Open(tool *entities.Tool, prompt panel.PromptRequest) tea.Cmd {
	p.tool = tool
	p.prompt = prompt
	p.textarea.Reset()
	p.textarea.Placeholder = prompt.Example
	return p.textarea.Focus()
}

func (p ParamPrompt) Init() tea.Cmd {
	return textarea.Blink
}

func (p ParamPrompt) Update(msg tea.Msg) (ParamPrompt, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = m.Width
		p.height = m.Height
		p.textarea.SetWidth(max(m.Width-8, 20))
		p.textarea.SetHeight(max(m.Height-12, 3))
		return p, nil

	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+s":
			tool, text := p.tool, p.textarea.Value()
			p.textarea.Blur()
			return p, func() tea.Msg { return paramsSubmittedMsg{tool: tool, text: text} }
		case "esc":
			p.textarea.Blur()
			return p, func() tea.Msg { return paramsCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	p.textarea, cmd = p.textarea.Update(msg)
	return p, cmd
}

func (p ParamPrompt) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(p.prompt.Title) + "\n\n")
	sb.WriteString(p.textarea.View() + "\n")
	instructions := "Ctrl+S execute · Esc cancel · empty input cancels"
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions))

	outerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("4")).
		Width(p.width - 2).
		Height(p.height - 2)

	return outerStyle.Render(sb.String())
}
