package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server tuning loaded from an optional YAML file.
type ServerConfig struct {
	Host            string   `yaml:"host,omitempty"`
	Port            int      `yaml:"port,omitempty"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec,omitempty"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec,omitempty"`
	ShutdownSec     int      `yaml:"shutdown_sec,omitempty"`
	CORSOrigins     []string `yaml:"cors_origins,omitempty"`
	AI              AIConfig `yaml:"ai,omitempty"`
}

// AIConfig selects the model names used by the AI services.
type AIConfig struct {
	GeminiModel     string `yaml:"gemini_model,omitempty"`
	WhisperModel    string `yaml:"whisper_model,omitempty"`
	QuotaRetries    int    `yaml:"quota_retries,omitempty"`
	QuotaBackoffSec int    `yaml:"quota_backoff_sec,omitempty"`
}

// LoadServerConfig loads server configuration from a YAML file. A missing
// file yields the defaults; a malformed file is an error.
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	cfg := &ServerConfig{}

	configPath = os.ExpandEnv(configPath)
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *ServerConfig) setDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 30
	}
	if c.WriteTimeoutSec == 0 {
		// Summary generation waits on the model; give writes headroom.
		c.WriteTimeoutSec = 120
	}
	if c.ShutdownSec == 0 {
		c.ShutdownSec = 10
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}
	}
	if c.AI.GeminiModel == "" {
		c.AI.GeminiModel = "gemini-2.5-flash"
	}
	if c.AI.WhisperModel == "" {
		c.AI.WhisperModel = "whisper-1"
	}
	if c.AI.QuotaRetries == 0 {
		c.AI.QuotaRetries = 3
	}
	if c.AI.QuotaBackoffSec == 0 {
		c.AI.QuotaBackoffSec = 10
	}
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReadTimeout returns the configured read timeout as a duration.
func (c *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the configured write timeout as a duration.
func (c *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// ShutdownTimeout returns the configured graceful shutdown window.
func (c *ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSec) * time.Second
}

// GetDefaultConfigPath returns the server config file path. The
// MEDSYS_CONFIG_PATH environment variable overrides the local default.
func GetDefaultConfigPath() string {
	if path := os.Getenv("MEDSYS_CONFIG_PATH"); path != "" {
		return path
	}
	return "server.yaml"
}
