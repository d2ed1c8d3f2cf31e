package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drujensen/toolpanel/internal/panel"
)

// NoticeView shows the head of the notice queue. Results can be long, so the
// body scrolls.
type NoticeView struct {
	notice  panel.Notice
	pending int
	port    viewport.Model
	width   int
	height  int
}

func NewNoticeView() NoticeView {
	return NoticeView{port: viewport.New(60, 10)}
}

func (n *NoticeView) Show(notice panel.Notice, pending int) {
	n.notice = notice
	n.pending = pending
	n.port.SetContent(lipgloss.NewStyle().Width(n.port.Width).Render(notice.Body))
	n.port.GotoTop()
}

func (n NoticeView) Init() tea.Cmd {
	return nil
}

func (n NoticeView) Update(msg tea.Msg) (NoticeView, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		n.width = m.Width
		n.height = m.Height
		n.port.Width = max(m.Width-8, 20)
		n.port.Height = max(m.Height-10, 3)
		n.port.SetContent(lipgloss.NewStyle().Width(n.port.Width).Render(n.notice.Body))
		return n, nil

	case tea.KeyMsg:
		switch m.String() {
		case "enter", "esc", "q":
			return n, func() tea.Msg { return noticeDismissedMsg{} }
		}
	}

	var cmd tea.Cmd
	n.port, cmd = n.port.Update(msg)
	return n, cmd
}

func (n NoticeView) View() string {
	if n.width == 0 || n.height == 0 {
		return ""
	}

	color := lipgloss.Color("2")
	if n.notice.IsError() {
		color = lipgloss.Color("1")
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(n.notice.Title)

	instructions := "Enter/Esc dismiss · ↑/↓ scroll"
	if n.pending > 1 {
		instructions = fmt.Sprintf("%s · %d more", instructions, n.pending-1)
	}

	content := title + "\n\n" + n.port.View() + "\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions)

	outerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(color).
		Width(n.width - 2).
		Height(n.height - 2)

	return outerStyle.Render(content)
}
