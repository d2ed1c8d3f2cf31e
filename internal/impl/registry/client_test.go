package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	listing     string
	configs     map[string]string
	saved       map[string]string
	executed    map[string]string
	timestamp   string
	authHeaders []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listing:   `[]`,
		configs:   map[string]string{},
		saved:     map[string]string{},
		executed:  map[string]string{},
		timestamp: "2026-01-02T03:04:05Z",
	}
}

func (b *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.HideBanner = true
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			b.authHeaders = append(b.authHeaders, c.Request().Header.Get("Authorization"))
			return next(c)
		}
	})

	e.GET("/tools", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(b.listing))
	})
	e.POST("/tools/:name/execute", func(c echo.Context) error {
		name := c.Param("name")
		body, _ := io.ReadAll(c.Request().Body)
		b.executed[name] = string(body)
		if name == "broken" {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Tool 'broken' failed: timeout"})
		}
		var req struct {
			Parameters json.RawMessage `json:"parameters"`
		}
		_ = json.Unmarshal(body, &req)
		return c.JSON(http.StatusOK, map[string]any{
			"tool_name":  name,
			"parameters": req.Parameters,
			"result":     map[string]any{"status": 200, "echo": req.Parameters},
			"timestamp":  b.timestamp,
		})
	})
	e.GET("/tools/:name/config", func(c echo.Context) error {
		cfg, ok := b.configs[c.Param("name")]
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Tool configuration not found"})
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(cfg))
	})
	e.PUT("/tools/:name/config", func(c echo.Context) error {
		name := c.Param("name")
		if name == "locked" {
			return c.String(http.StatusForbidden, "configuration is locked")
		}
		body, _ := io.ReadAll(c.Request().Body)
		b.saved[name] = string(body)
		return c.NoContent(http.StatusNoContent)
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetTools(t *testing.T) {
	backend := newFakeBackend()
	backend.listing = `[
		{"id": 1, "name": "http_client", "description": "HTTP requests", "enabled": true,
		 "parameters_schema": {"type": "object"}, "class_name": "HttpClientTool",
		 "created_at": "2026-01-01T00:00:00Z"},
		{"id": 2, "name": "email_sender", "enabled": false}
	]`
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop(), WithToken("secret"))

	tools, err := client.GetTools(context.Background())

	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, entities.ToolID("1"), tools[0].ID)
	assert.Equal(t, "http_client", tools[0].Name)
	assert.True(t, tools[0].Enabled)
	assert.JSONEq(t, `{"type": "object"}`, string(tools[0].ParametersSchema))
	assert.NotNil(t, tools[0].CreatedAt)
	assert.False(t, tools[1].Enabled)
	assert.Equal(t, []string{"Bearer secret"}, backend.authHeaders)
}

func TestClient_NaiveTimestamps(t *testing.T) {
	backend := newFakeBackend()
	backend.listing = `[
		{"id": 1, "name": "http_client", "enabled": true,
		 "created_at": "2026-01-01T00:00:00.123456", "updated_at": "yesterday"}
	]`
	backend.timestamp = "2026-01-02T03:04:05.654321"
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	tools, err := client.GetTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].CreatedAt)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 123456000, time.UTC), tools[0].CreatedAt.Time)
	require.NotNil(t, tools[0].UpdatedAt)
	assert.True(t, tools[0].UpdatedAt.IsZero())

	result, err := client.ExecuteTool(context.Background(), "http_client", map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, result.Timestamp)
	assert.Equal(t, 3, result.Timestamp.Hour())
}

func TestClient_GetTools_NonArrayIsEmpty(t *testing.T) {
	for _, listing := range []string{`{"tools": []}`, `null`, `"tools"`, `42`, ``} {
		t.Run(listing, func(t *testing.T) {
			backend := newFakeBackend()
			backend.listing = listing
			srv := backend.server(t)
			client := NewClient(srv.URL, zap.NewNop())

			tools, err := client.GetTools(context.Background())

			assert.NoError(t, err)
			assert.NotNil(t, tools)
			assert.Empty(t, tools)
		})
	}
}

func TestClient_GetTools_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, zap.NewNop(), WithTimeout(time.Second))
	tools, err := client.GetTools(context.Background())

	assert.Nil(t, tools)
	assert.ErrorContains(t, err, "failed to reach tool registry")
}

func TestClient_ExecuteTool(t *testing.T) {
	backend := newFakeBackend()
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	params := map[string]any{"url": "https://x", "method": "GET"}
	result, err := client.ExecuteTool(context.Background(), "http_client", params)

	require.NoError(t, err)
	assert.Equal(t, "http_client", result.ToolName)
	assert.JSONEq(t, `{"parameters": {"url": "https://x", "method": "GET"}}`, backend.executed["http_client"])
	assert.JSONEq(t, `{"status": 200, "echo": {"url": "https://x", "method": "GET"}}`, string(result.Result))
	require.NotNil(t, result.Timestamp)
	assert.Equal(t, 2026, result.Timestamp.Year())
}

func TestClient_ExecuteTool_DetailIsVerbatim(t *testing.T) {
	backend := newFakeBackend()
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	result, err := client.ExecuteTool(context.Background(), "broken", map[string]any{})

	assert.Nil(t, result)
	var regErr *errors.RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, http.StatusBadRequest, regErr.StatusCode)
	assert.Equal(t, "Tool 'broken' failed: timeout", err.Error())
}

func TestClient_GetToolConfig(t *testing.T) {
	backend := newFakeBackend()
	backend.configs["email_sender"] = `{"a": 1, "smtp": {"host": "mail"}}`
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	config, err := client.GetToolConfig(context.Background(), "email_sender")

	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), config["a"])
	assert.Equal(t, map[string]any{"host": "mail"}, config["smtp"])
}

func TestClient_GetToolConfig_Missing(t *testing.T) {
	backend := newFakeBackend()
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	config, err := client.GetToolConfig(context.Background(), "email_sender")

	assert.Nil(t, config)
	assert.IsType(t, &errors.NotFoundError{}, err)
	assert.EqualError(t, err, "Tool configuration not found")
}

func TestClient_ConfigureTool_RoundTrip(t *testing.T) {
	backend := newFakeBackend()
	backend.configs["email_sender"] = `{"a": 1}`
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())
	ctx := context.Background()

	config, err := client.GetToolConfig(ctx, "email_sender")
	require.NoError(t, err)
	require.NoError(t, client.ConfigureTool(ctx, "email_sender", config))

	assert.Equal(t, `{"a":1}`, backend.saved["email_sender"])
}

func TestClient_ConfigureTool_PlainTextError(t *testing.T) {
	backend := newFakeBackend()
	srv := backend.server(t)
	client := NewClient(srv.URL, zap.NewNop())

	err := client.ConfigureTool(context.Background(), "locked", entities.ToolConfig{"k": "v"})

	assert.EqualError(t, err, "configuration is locked")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "nope", errorMessage(400, []byte(`{"detail": "nope"}`)))
	assert.Equal(t, "bad input", errorMessage(400, []byte(`{"error": "bad input"}`)))
	assert.Equal(t, `[{"loc":["body"],"msg":"field required"}]`,
		errorMessage(422, []byte(`{"detail": [{"loc": ["body"], "msg": "field required"}]}`)))
	assert.Equal(t, "500 Internal Server Error", errorMessage(500, nil))
}

func TestToolPath_Escapes(t *testing.T) {
	assert.Equal(t, "/tools/a%2Fb/execute", toolPath("a/b", "execute"))
}
