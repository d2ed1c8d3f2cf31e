package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// GlobalConfig is the optional settings file at ~/.config/toolpanel/toolpanel.yaml.
type GlobalConfig struct {
	APIURL   string `yaml:"api_url,omitempty"`
	APIToken string `yaml:"api_token,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
}

func GlobalConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "toolpanel", "toolpanel.yaml")
}

// LoadGlobalConfig loads the global configuration. A missing file yields an
// empty configuration.
func LoadGlobalConfig(logger *zap.Logger) (*GlobalConfig, error) {
	return loadGlobalConfig(GlobalConfigPath(), logger)
}

func loadGlobalConfig(configPath string, logger *zap.Logger) (*GlobalConfig, error) {
	config := &GlobalConfig{}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Global config file does not exist, using defaults", zap.String("path", configPath))
			return config, nil
		}
		return nil, fmt.Errorf("failed to read global config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse global config file %s: %w", configPath, err)
	}

	logger.Debug("Loaded global config", zap.String("path", configPath))
	return config, nil
}

// SaveGlobalConfig writes the global configuration, creating its directory.
func SaveGlobalConfig(config *GlobalConfig, logger *zap.Logger) error {
	return saveGlobalConfig(GlobalConfigPath(), config, logger)
}

func saveGlobalConfig(configPath string, config *GlobalConfig, logger *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Saved global config", zap.String("path", configPath))
	return nil
}
