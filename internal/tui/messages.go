package tui

import (
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/panel"
)

type (
	refreshToolsMsg struct{}
	toolsLoadedMsg  struct {
		tools []*entities.Tool
		at    time.Time
	}
)

type (
	startExecuteMsg    struct{ tool *entities.Tool }
	paramsSubmittedMsg struct {
		tool *entities.Tool
		text string
	}
	paramsCancelledMsg struct{}
	toolExecutedMsg    struct {
		req    *panel.ExecutionRequest
		result *entities.ExecutionResult
		err    error
	}
)

type (
	startConfigureMsg struct{ tool *entities.Tool }
	configLoadedMsg   struct {
		token  uint64
		config entities.ToolConfig
		err    error
	}
	saveConfigMsg      struct{}
	configCancelledMsg struct{}
	configSavedMsg     struct {
		token uint64
		err   error
	}
)

type (
	noticeDismissedMsg struct{}
	startHelpMsg       struct{}
	helpCancelledMsg   struct{}
)
