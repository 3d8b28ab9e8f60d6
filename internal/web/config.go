package web

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/factory"
)

// EnvPrefix namespaces the environment variables read by the web server
const EnvPrefix = "QRINVITE"

// Config holds the web server configuration
type Config struct {
	Addr            string        `mapstructure:"web_addr" validate:"required"`
	APIURL          string        `mapstructure:"api_url" validate:"required,url"`
	Storage         string        `mapstructure:"storage" validate:"oneof=memory redis"`
	RedisURL        string        `mapstructure:"redis_url" validate:"required_if=Storage redis"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TabIdleTimeout  time.Duration `mapstructure:"tab_idle_timeout"`
}

// LoadConfig reads QRINVITE_* environment variables over the defaults
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("web_addr", ":8080")
	v.SetDefault("api_url", apiclient.DefaultBaseURL)
	v.SetDefault("storage", factory.StorageTypeMemory)
	v.SetDefault("redis_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 30*time.Second)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("tab_idle_timeout", DefaultTabIdleTimeout)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
