package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/panel"
	"github.com/dustin/go-humanize"
)

type ToolView struct {
	state   *panel.State
	list    list.Model
	spinner spinner.Model
	width   int
	height  int
}

func NewToolView(state *panel.State) ToolView {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("6")).Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("7"))
	delegate.SetHeight(2)

	l := list.New([]list.Item{}, delegate, 100, 10)
	l.Title = "Available Tools"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowPagination(true)
	l.SetShowHelp(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ToolView{
		state:   state,
		list:    l,
		spinner: s,
	}
}

func (v ToolView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Refresh rebuilds the list items from the panel state, keeping the cursor.
func (v *ToolView) Refresh() tea.Cmd {
	tools := v.state.List.Tools()
	items := make([]list.Item, len(tools))
	for i, tool := range tools {
		items[i] = entities.ToolItem{Tool: tool, Executing: v.state.Exec.IsExecuting(tool.Name)}
	}
	index := v.list.Index()
	cmd := v.list.SetItems(items)
	if index < len(items) {
		v.list.Select(index)
	}
	return cmd
}

func (v ToolView) Selected() *entities.Tool {
	item, ok := v.list.SelectedItem().(entities.ToolItem)
	if !ok {
		return nil
	}
	return item.Tool
}

func (v ToolView) Update(msg tea.Msg) (ToolView, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = m.Width
		v.height = m.Height
		v.list.SetSize(m.Width/2-4, m.Height-8)
		return v, nil

	case spinner.TickMsg:
		if !v.state.List.Loading() && v.state.Exec.Running() == 0 {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(m)
		return v, cmd

	case tea.KeyMsg:
		if v.list.FilterState() == list.Filtering {
			break
		}
		switch m.String() {
		case "r":
			if v.state.List.Loading() {
				return v, nil
			}
			return v, func() tea.Msg { return refreshToolsMsg{} }
		case "enter", "x":
			// Execute is disabled while the same tool is running.
			if tool := v.Selected(); tool != nil && !v.state.Exec.IsExecuting(tool.Name) {
				return v, func() tea.Msg { return startExecuteMsg{tool: tool} }
			}
			return v, nil
		case "c":
			if tool := v.Selected(); tool != nil {
				return v, func() tea.Msg { return startConfigureMsg{tool: tool} }
			}
			return v, nil
		case "?":
			return v, func() tea.Msg { return startHelpMsg{} }
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v ToolView) View() string {

	if v.width == 0 || v.height == 0 {
		return ""
	}

	// Outer container style (Vim-like overall border)
	outerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("4")). // Blue for outer border
		Width(v.width - 2).
		Height(v.height - 2)

	paneStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("6")). // Bright cyan
		Width(v.width/2 - 4).
		Height(v.height - 8)

	var body string
	switch {
	case v.state.List.Phase() != panel.LoadReady:
		body = paneStyle.Width(v.width - 6).Render(v.spinner.View() + " Loading tools...")
	case v.state.List.Empty():
		body = paneStyle.Width(v.width - 6).Render(emptyState())
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Render(v.list.View()),
			paneStyle.Render(v.detail()))
	}

	var sb strings.Builder
	sb.WriteString(v.header() + "\n")
	sb.WriteString(body + "\n")
	instructions := "Enter/x execute · c configure · r refresh · / filter · ? help · Ctrl+C quit"
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions))

	// Wrap in outer border
	return outerStyle.Render(sb.String())
}

func (v ToolView) header() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render("Tool Registry")
	parts := []string{title}
	if v.state.List.Phase() == panel.LoadReady {
		parts = append(parts, fmt.Sprintf("%d tools", len(v.state.List.Tools())),
			"refreshed "+humanize.Time(v.state.List.LoadedAt()))
	}
	if n := v.state.Exec.Running(); n > 0 {
		parts = append(parts, v.spinner.View()+fmt.Sprintf("%d running", n))
	}
	return strings.Join(parts, " · ")
}

func (v ToolView) detail() string {
	tool := v.Selected()
	if tool == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(tool.Name) + "\n")
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	if !tool.Enabled {
		status = status.Foreground(lipgloss.Color("1"))
	}
	sb.WriteString(status.Render(tool.Status()) + "\n\n")

	description := tool.Description
	if description == "" {
		description = "No description available"
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")).Render(description) + "\n")

	if tool.HasSchema() {
		sb.WriteString("\nParameters:\n")
		sb.WriteString(panel.DescribeSchema(tool.ParametersSchema) + "\n")
	}

	if v.state.Exec.IsExecuting(tool.Name) {
		sb.WriteString("\n" + v.spinner.View() + " Running...")
	}
	return sb.String()
}

func emptyState() string {
	return lipgloss.NewStyle().Bold(true).Render("No tools available") + "\n" +
		"Tools will appear here when they are configured in your backend."
}
