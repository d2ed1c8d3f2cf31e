package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultAPIURL  = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
	LogLevel zapcore.Level
	LogFile  string
	logger   *zap.Logger
}

var (
	configInstance *Config
	once           sync.Once
)

// InitConfig resolves settings once per process. Precedence is environment
// (including .env), then the global settings file, then defaults.
func InitConfig() (*Config, error) {
	var initErr error

	once.Do(func() {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		config.OutputPaths = []string{"stderr"}
		logger, err := config.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		defer logger.Sync()

		// Load .env file
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				logger.Debug("No .env file found; falling back to system environment variables")
			} else {
				initErr = fmt.Errorf("failed to load .env file: %w", err)
				logger.Error("Config file load error", zap.Error(err))
				return
			}
		}

		global, err := LoadGlobalConfig(logger)
		if err != nil {
			initErr = err
			return
		}

		cfg, err := build(global, logger)
		if err != nil {
			initErr = err
			return
		}
		configInstance = cfg
	})

	if initErr != nil {
		return nil, initErr
	}
	if configInstance == nil {
		return nil, fmt.Errorf("configuration initialization failed unexpectedly")
	}

	return configInstance, nil
}

func build(global *GlobalConfig, logger *zap.Logger) (*Config, error) {
	c := &Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogLevel: zapcore.WarnLevel,
		LogFile:  filepath.Join(os.Getenv("HOME"), ".toolpanel", "toolpanel.log"),
		logger:   logger,
	}

	if global.APIURL != "" {
		c.APIURL = global.APIURL
	}
	if global.APIToken != "" {
		token, err := c.ResolveEnvironmentVariable(global.APIToken)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve api_token: %w", err)
		}
		c.APIToken = token
	}
	if global.Timeout != "" {
		timeout, err := time.ParseDuration(global.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q in global config: %w", global.Timeout, err)
		}
		c.Timeout = timeout
	}

	if v := os.Getenv("TOOLPANEL_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("TOOLPANEL_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("TOOLPANEL_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOOLPANEL_TIMEOUT %q: %w", v, err)
		}
		c.Timeout = timeout
	}
	if v := os.Getenv("TOOLPANEL_LOG_LEVEL"); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOOLPANEL_LOG_LEVEL %q: %w", v, err)
		}
		c.LogLevel = level
	}
	if v := os.Getenv("TOOLPANEL_LOG_FILE"); v != "" {
		c.LogFile = v
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	logger.Debug("Resolved configuration",
		zap.String("api_url", c.APIURL),
		zap.String("api_token", maskKey(c.APIToken)),
		zap.Duration("timeout", c.Timeout))
	return c, nil
}

// ResolveEnvironmentVariable expands a #{VAR}# reference; any other value is
// returned unchanged.
func (c *Config) ResolveEnvironmentVariable(value string) (string, error) {
	const prefix, suffix = "#{", "}#"
	if strings.HasPrefix(value, prefix) && strings.HasSuffix(value, suffix) {
		varName := strings.TrimSuffix(strings.TrimPrefix(value, prefix), suffix)
		if varName == "" {
			return "", fmt.Errorf("empty variable name in reference: %s", value)
		}

		resolved := os.Getenv(varName)
		if resolved == "" {
			c.logger.Warn("Environment variable not found for reference",
				zap.String("reference", value),
				zap.String("var_name", varName))
			return "", fmt.Errorf("environment variable '%s' not found", varName)
		}

		c.logger.Debug("Resolved environment variable",
			zap.String("var_name", varName),
			zap.String("resolved", maskKey(resolved)))
		return resolved, nil
	}

	return value, nil
}

// NewLogger builds the process logger. The TUI owns the terminal, so logs go
// to the configured file instead of stderr.
func (c *Config) NewLogger(toFile bool) (*zap.Logger, error) {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(c.LogLevel)
	if toFile && c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		logConfig.OutputPaths = []string{c.LogFile}
		logConfig.ErrorOutputPaths = []string{c.LogFile}
	}
	return logConfig.Build()
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
