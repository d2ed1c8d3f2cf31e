package services

import (
	"context"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"
	"github.com/drujensen/toolpanel/internal/domain/events"
	"github.com/drujensen/toolpanel/internal/domain/interfaces"

	"go.uber.org/zap"
)

type ToolService interface {
	// ListTools never fails: a registry error is logged and reported as an
	// empty listing.
	ListTools(ctx context.Context) []*entities.Tool
	ExecuteTool(ctx context.Context, name string, parameters any) (*entities.ExecutionResult, error)
	GetToolConfig(ctx context.Context, name string) (entities.ToolConfig, error)
	ConfigureTool(ctx context.Context, name string, config entities.ToolConfig) error
}

type toolService struct {
	registry interfaces.ToolRegistry
	logger   *zap.Logger
}

func NewToolService(registry interfaces.ToolRegistry, logger *zap.Logger) *toolService {
	return &toolService{
		registry: registry,
		logger:   logger,
	}
}

func (s *toolService) ListTools(ctx context.Context) []*entities.Tool {
	tools, err := s.registry.GetTools(ctx)
	if err != nil {
		s.logger.Error("Failed to load tools", zap.Error(err))
		events.PublishToolsListed(0, err)
		return []*entities.Tool{}
	}

	seen := make(map[string]bool, len(tools))
	result := make([]*entities.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool == nil {
			continue
		}
		if seen[tool.Name] {
			s.logger.Warn("Duplicate tool name in listing, keeping first", zap.String("tool", tool.Name))
			continue
		}
		seen[tool.Name] = true
		result = append(result, tool)
	}

	s.logger.Debug("Loaded tools", zap.Int("count", len(result)))
	events.PublishToolsListed(len(result), nil)
	return result
}

func (s *toolService) ExecuteTool(ctx context.Context, name string, parameters any) (*entities.ExecutionResult, error) {
	if name == "" {
		return nil, errors.ValidationErrorf("tool name is required")
	}

	start := time.Now()
	result, err := s.registry.ExecuteTool(ctx, name, parameters)
	duration := time.Since(start)
	if err != nil {
		s.logger.Warn("Tool execution failed",
			zap.String("tool", name),
			zap.Duration("duration", duration),
			zap.Error(err))
		events.PublishToolExecuted(name, duration, err)
		return nil, errors.ExecutionErrorf("%s", err.Error())
	}
	if result == nil {
		result = &entities.ExecutionResult{ToolName: name}
	}

	s.logger.Info("Tool executed", zap.String("tool", name), zap.Duration("duration", duration))
	events.PublishToolExecuted(name, duration, nil)
	return result, nil
}

func (s *toolService) GetToolConfig(ctx context.Context, name string) (entities.ToolConfig, error) {
	if name == "" {
		return nil, errors.ValidationErrorf("tool name is required")
	}

	config, err := s.registry.GetToolConfig(ctx, name)
	if err != nil {
		s.logger.Debug("No configuration loaded for tool", zap.String("tool", name), zap.Error(err))
		return nil, err
	}
	if config == nil {
		config = entities.ToolConfig{}
	}

	return config, nil
}

func (s *toolService) ConfigureTool(ctx context.Context, name string, config entities.ToolConfig) error {
	if name == "" {
		return errors.ValidationErrorf("tool name is required")
	}
	if config == nil {
		config = entities.ToolConfig{}
	}

	if err := s.registry.ConfigureTool(ctx, name, config); err != nil {
		s.logger.Warn("Failed to save tool configuration", zap.String("tool", name), zap.Error(err))
		events.PublishToolConfigured(name, err)
		return err
	}

	s.logger.Info("Saved tool configuration", zap.String("tool", name))
	events.PublishToolConfigured(name, nil)
	return nil
}
