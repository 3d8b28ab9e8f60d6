package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/qrinvite/internal/apiclient"
)

// EnvPrefix namespaces the environment variables read by the CLI
const EnvPrefix = "QRINVITE"

// Config holds CLI configuration
type Config struct {
	APIURL     string `mapstructure:"api_url" validate:"required,url"`
	SessionDir string `mapstructure:"session_dir" validate:"required"`
	Tab        string `mapstructure:"tab" validate:"required"`
	Output     string `mapstructure:"output" validate:"oneof=text json"`
	Verbose    bool   `mapstructure:"verbose"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"api-url":     "api_url",
	"session-dir": "session_dir",
	"tab":         "tab",
	"output":      "output",
	"verbose":     "verbose",
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		APIURL:     apiclient.DefaultBaseURL,
		SessionDir: filepath.Join(defaultHomeDir(), "session"),
		Tab:        DefaultTab(),
		Output:     "text",
		Verbose:    false,
	}
}

// DefaultTab names the tab after the shell that runs the CLI, so a login
// lasts as long as that shell session and no other shell sees it
func DefaultTab() string {
	return fmt.Sprintf("sh-%d", os.Getppid())
}

// LoadConfig resolves flags, QRINVITE_* environment variables and the
// optional config file, in that order of precedence
func LoadConfig(cmd *cobra.Command, configFile string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("session_dir", defaults.SessionDir)
	v.SetDefault("tab", defaults.Tab)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("verbose", defaults.Verbose)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultHomeDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qrinvite"
	}
	return filepath.Join(home, ".qrinvite")
}
