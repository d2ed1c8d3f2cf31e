package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drujensen/toolpanel/internal/panel"
)

// ConfigEditor renders the editing session held by panel.Editor. The textarea
// is only a view of the draft buffer; every keystroke is written back.
type ConfigEditor struct {
	editor   *panel.Editor
	textarea textarea.Model
	spinner  spinner.Model
	showDiff bool
	width    int
	height   int
}

func NewConfigEditor(editor *panel.Editor) ConfigEditor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(12)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ConfigEditor{
		editor:   editor,
		textarea: ta,
		spinner:  s,
	}
}

func (c ConfigEditor) Init() tea.Cmd {
	return c.spinner.Tick
}

// Sync copies the draft into the textarea after the editor changed phase.
func (c *ConfigEditor) Sync() tea.Cmd {
	c.showDiff = false
	c.textarea.SetValue(c.editor.Buffer())
	if c.editor.Phase() == panel.EditorEditing {
		return c.textarea.Focus()
	}
	c.textarea.Blur()
	return nil
}

func (c ConfigEditor) Update(msg tea.Msg) (ConfigEditor, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = m.Width
		c.height = m.Height
		c.textarea.SetWidth(max(m.Width-8, 20))
		c.textarea.SetHeight(max(m.Height-10, 3))
		return c, nil

	case spinner.TickMsg:
		if c.editor.Phase() == panel.EditorEditing {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(m)
		return c, cmd

	case tea.KeyMsg:
		switch m.String() {
		case "esc":
			return c, func() tea.Msg { return configCancelledMsg{} }
		case "ctrl+s":
			if c.editor.Phase() != panel.EditorEditing {
				return c, nil
			}
			return c, func() tea.Msg { return saveConfigMsg{} }
		case "ctrl+d":
			c.showDiff = !c.showDiff
			return c, nil
		}

		// The buffer is only editable while it is on screen.
		if c.editor.Phase() != panel.EditorEditing || c.showDiff {
			return c, nil
		}
		var cmd tea.Cmd
		c.textarea, cmd = c.textarea.Update(m)
		c.editor.UpdateDraft(c.textarea.Value())
		return c, cmd
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

func (c ConfigEditor) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}

	name := ""
	if tool := c.editor.Tool(); tool != nil {
		name = tool.Name
	}

	var sb strings.Builder
	title := fmt.Sprintf("Configure %s", name)
	if c.editor.Dirty() {
		title += " (modified)"
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(title) + "\n\n")

	switch c.editor.Phase() {
	case panel.EditorLoadingDraft:
		sb.WriteString(c.spinner.View() + " Loading configuration...\n")
	case panel.EditorSaving:
		sb.WriteString(c.textarea.View() + "\n")
		sb.WriteString(c.spinner.View() + " Saving...\n")
	default:
		if c.showDiff {
			sb.WriteString(c.diffView() + "\n")
		} else {
			sb.WriteString(c.textarea.View() + "\n")
		}
	}

	instructions := "Ctrl+S save · Ctrl+D toggle diff · Esc cancel"
	if c.showDiff {
		instructions = "Ctrl+D back to editing · Ctrl+S save · Esc cancel"
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions))

	outerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("4")).
		Width(c.width - 2).
		Height(c.height - 2)

	return outerStyle.Render(sb.String())
}

func (c ConfigEditor) diffView() string {
	diff, err := c.editor.Diff()
	if err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(err.Error())
	}
	if diff == "" {
		return "No changes"
	}

	added := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removed := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
