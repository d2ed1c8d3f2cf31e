package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drujensen/toolpanel/internal/domain/services"
	"github.com/drujensen/toolpanel/internal/panel"
)

func loadToolsCmd(toolService services.ToolService) tea.Cmd {
	return func() tea.Msg {
		tools := toolService.ListTools(context.Background())
		return toolsLoadedMsg{tools: tools, at: time.Now()}
	}
}

func executeToolCmd(toolService services.ToolService, req *panel.ExecutionRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := toolService.ExecuteTool(context.Background(), req.Tool.Name, req.Parameters)
		return toolExecutedMsg{req: req, result: result, err: err}
	}
}

func fetchConfigCmd(toolService services.ToolService, token uint64, name string) tea.Cmd {
	return func() tea.Msg {
		config, err := toolService.GetToolConfig(context.Background(), name)
		return configLoadedMsg{token: token, config: config, err: err}
	}
}

func saveConfigCmd(toolService services.ToolService, req *panel.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		err := toolService.ConfigureTool(context.Background(), req.ToolName, req.Config)
		return configSavedMsg{token: req.Token, err: err}
	}
}
