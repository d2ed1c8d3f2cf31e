package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"
	"github.com/drujensen/toolpanel/internal/domain/interfaces"

	"go.uber.org/zap"
)

type Client struct {
	baseURL   string
	token     string
	userAgent string
	logger    *zap.Logger
	client    *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.client.Timeout = timeout }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "toolpanel/1.0.0",
		logger:    logger,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type executeRequest struct {
	Parameters any `json:"parameters"`
}

// GetTools lists the registry's tools. A body that is not a JSON array is
// treated as an empty listing.
func (c *Client) GetTools(ctx context.Context) ([]*entities.Tool, error) {
	body, err := c.do(ctx, http.MethodGet, "/tools", nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("Tool listing is not an array, treating as empty", zap.Int("bytes", len(body)))
		return []*entities.Tool{}, nil
	}

	var tools []*entities.Tool
	if err := json.Unmarshal(trimmed, &tools); err != nil {
		return nil, fmt.Errorf("failed to decode tool listing: %w", err)
	}
	if tools == nil {
		tools = []*entities.Tool{}
	}

	c.logger.Debug("Fetched tools", zap.Int("count", len(tools)))
	return tools, nil
}

func (c *Client) ExecuteTool(ctx context.Context, name string, parameters any) (*entities.ExecutionResult, error) {
	payload, err := json.Marshal(executeRequest{Parameters: parameters})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, toolPath(name, "execute"), payload)
	if err != nil {
		return nil, err
	}

	var result entities.ExecutionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode execution response: %w", err)
	}
	if result.ToolName == "" {
		result.ToolName = name
	}
	return &result, nil
}

func (c *Client) GetToolConfig(ctx context.Context, name string) (entities.ToolConfig, error) {
	body, err := c.do(ctx, http.MethodGet, toolPath(name, "config"), nil)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var config entities.ToolConfig
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode tool configuration: %w", err)
	}
	if config == nil {
		config = entities.ToolConfig{}
	}
	return config, nil
}

func (c *Client) ConfigureTool(ctx context.Context, name string, config entities.ToolConfig) error {
	payload, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	_, err = c.do(ctx, http.MethodPut, toolPath(name, "config"), payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach tool registry: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := errorMessage(resp.StatusCode, body)
		c.logger.Debug("Tool registry request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", message))
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.NotFoundErrorf("%s", message)
		}
		return nil, errors.RegistryErrorf(resp.StatusCode, "%s", message)
	}

	return body, nil
}

func toolPath(name, action string) string {
	return "/tools/" + url.PathEscape(name) + "/" + action
}

// errorMessage extracts the backend's own wording from an error response.
func errorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			switch v := payload[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case nil:
			default:
				if data, err := json.Marshal(v); err == nil {
					return string(data)
				}
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}

var _ interfaces.ToolRegistry = (*Client)(nil)
