package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	ClientConfig  ClientConfig  `json:"client_config,omitempty" yaml:"client_config,omitempty"`
	DiffConfig    DiffConfig    `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	GatewayConfig GatewayConfig `json:"gateway_config,omitempty" yaml:"gateway_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	TaskLogConfig TaskLogConfig `json:"task_log_config,omitempty" yaml:"task_log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ClientConfig:  NewDefaultClientConfig(),
		DiffConfig:    NewDefaultDiffConfig(),
		GatewayConfig: NewDefaultGatewayConfig(),
		LogConfig:     NewDefaultLogConfig(),
		TaskLogConfig: NewDefaultTaskLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// Defaults apply when no config file is found. YAML is preferred when the
// extension is .yaml/.yml, JSON otherwise.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse YAML config")
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse JSON config")
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "config validation failed")
	}

	return cfg, nil
}
