/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/easytables/pkg/codec"
	"github.com/ssargent/easytables/pkg/logging"
)

// Table sources.
const (
	SourceDir   = "dir"
	SourceStore = "store"
)

// Config represents the EasyTables configuration
type Config struct {
	DataDir     string   `yaml:"data_dir"`
	Source      string   `yaml:"source"`
	StoreDir    string   `yaml:"store_dir"`
	TableExt    string   `yaml:"table_ext"`
	Delimiter   string   `yaml:"delimiter"`
	SkipMissing bool     `yaml:"skip_missing"`
	Port        int      `yaml:"port"`
	Bind        string   `yaml:"bind"`
	Security    Security `yaml:"security"`
	Logging     Logging  `yaml:"logging"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "./data",
		Source:    SourceDir,
		StoreDir:  "./data/store",
		TableExt:  ".txt",
		Delimiter: ",",
		Port:      8080,
		Bind:      "127.0.0.1",
		Security: Security{
			APIKey: "auto",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// DelimiterByte returns the configured field delimiter.
func (c *Config) DelimiterByte() byte {
	if c.Delimiter == "" {
		return codec.DefaultDelimiter
	}
	return c.Delimiter[0]
}

// Validate checks the configuration for values the loader cannot use.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source {
	case SourceDir:
		if c.DataDir == "" {
			errs = append(errs, errors.New("data_dir is required for source \"dir\""))
		}
	case SourceStore:
		if c.StoreDir == "" {
			errs = append(errs, errors.New("store_dir is required for source \"store\""))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source))
	}

	if len(c.Delimiter) > 1 {
		errs = append(errs, fmt.Errorf("delimiter must be a single byte, got %q", c.Delimiter))
	} else if err := codec.CheckDelimiter(c.DelimiterByte()); err != nil {
		errs = append(errs, err)
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if f := c.Logging.Format; f != "" && f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", f))
	}

	return errors.Join(errs...)
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a default configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
		config.StoreDir = filepath.Join(dataDir, "store")
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./easytables.yaml"
	}

	// ~/.config/easytables/config.yaml
	configDir := filepath.Join(homeDir, ".config", "easytables")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
