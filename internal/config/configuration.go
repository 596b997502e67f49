package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. IMAGECRAFT_PORT.
const EnvPrefix = "IMAGECRAFT"

// Defaults
const (
	DefaultBind         = "127.0.0.1"
	DefaultPort         = 8080
	DefaultTimeout      = 60 * time.Second
	DefaultMaxBodyBytes = 64 << 20
	DefaultLogLevel     = "info"
)

type Config struct {
	// HTTP server
	Bind         string        `mapstructure:"bind" validate:"required"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" validate:"gt=0"`

	// Processing
	Workers int `mapstructure:"workers" validate:"min=0"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Level returns LogLevel as a slog level.
func (c *Config) Level() slog.Level {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps debug, info, warn and error to their slog levels. Anything
// else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			_ = viper.BindEnv(tag)
		}
	}
}

// LoadConfig builds the configuration from defaults, the config file, the
// environment and any flags already bound to viper, then validates it.
func LoadConfig(ctx context.Context) (*Config, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	bindEnv(Config{})
	viper.AutomaticEnv()

	viper.SetDefault("bind", DefaultBind)
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("max_body_bytes", DefaultMaxBodyBytes)
	viper.SetDefault("workers", 0)
	viper.SetDefault("log_level", DefaultLogLevel)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.DebugContext(ctx, "Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
