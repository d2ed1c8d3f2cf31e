package interfaces

import (
	"context"

	"github.com/drujensen/toolpanel/internal/domain/entities"
)

// ToolRegistry is the backend that lists, executes and configures tools.
type ToolRegistry interface {
	GetTools(ctx context.Context) ([]*entities.Tool, error)
	ExecuteTool(ctx context.Context, name string, parameters any) (*entities.ExecutionResult, error)
	GetToolConfig(ctx context.Context, name string) (entities.ToolConfig, error)
	ConfigureTool(ctx context.Context, name string, config entities.ToolConfig) error
}
