// Package config handles configuration loading and management for agentbuilder.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ProjectConfigName is the project-level override file searched from the cwd upward.
const ProjectConfigName = ".agentbuilder.yaml"

// EnvPrefix prefixes environment overrides, e.g. AGENTBUILDER_LOG_DEBUG=true.
const EnvPrefix = "AGENTBUILDER"

// Config holds all configuration for agentbuilder.
type Config struct {
	Scan     ScanConfig     `mapstructure:"scan"`
	Scope    ScopeConfig    `mapstructure:"scope"`
	Proposal ProposalConfig `mapstructure:"proposal"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ScanConfig holds folder scanner settings.
type ScanConfig struct {
	// SkipDirs lists directory names that are never descended into.
	SkipDirs []string `mapstructure:"skip_dirs"`
}

// ScopeConfig bounds the inspection scope summary.
type ScopeConfig struct {
	TopGroups int `mapstructure:"top_groups" validate:"min=1,max=50"`
	TopFiles  int `mapstructure:"top_files" validate:"min=1,max=50"`
}

// ProposalConfig holds proposal rendering settings.
type ProposalConfig struct {
	// AmendmentSlice caps how many backlog tickets one proposal may carry.
	AmendmentSlice int `mapstructure:"amendment_slice" validate:"min=1,max=10"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// OutputConfig selects how CLI results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text yaml"`
}

// MetricsConfig holds the optional prometheus listener.
type MetricsConfig struct {
	// Addr is a listen address such as ":9464". Empty disables the endpoint.
	Addr string `mapstructure:"addr"`
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (AGENTBUILDER_*)
// 2. Project config (.agentbuilder.yaml in current directory or parent)
// 3. User config (~/.config/agentbuilder/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(userConfigDir, "config.yaml"))

	v.Set("scan.skip_dirs", cfg.Scan.SkipDirs)
	v.Set("scope.top_groups", cfg.Scope.TopGroups)
	v.Set("scope.top_files", cfg.Scope.TopFiles)
	v.Set("proposal.amendment_slice", cfg.Proposal.AmendmentSlice)
	v.Set("log.debug", cfg.Log.Debug)
	v.Set("output.format", cfg.Output.Format)
	v.Set("metrics.addr", cfg.Metrics.Addr)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("scan.skip_dirs", d.Scan.SkipDirs)
	v.SetDefault("scope.top_groups", d.Scope.TopGroups)
	v.SetDefault("scope.top_files", d.Scope.TopFiles)
	v.SetDefault("proposal.amendment_slice", d.Proposal.AmendmentSlice)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// getUserConfigDir returns the XDG config directory for agentbuilder.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "agentbuilder")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "agentbuilder")
	}
	return filepath.Join(home, ".config", "agentbuilder")
}

// findProjectConfig searches for .agentbuilder.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			SkipDirs: []string{".git", "node_modules", "vendor", "__pycache__"},
		},
		Scope: ScopeConfig{
			TopGroups: 5,
			TopFiles:  3,
		},
		Proposal: ProposalConfig{
			AmendmentSlice: 2,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}
