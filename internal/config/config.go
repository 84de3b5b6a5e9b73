// Package config loads the configuration of the pokedex binaries from an
// optional YAML file, an optional .env file and POKEDEX_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
	"github.com/Sternrassler/pokedex-client/pkg/tracing"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables, e.g.
// POKEDEX_API_BASE_URL or POKEDEX_SERVER_PORT.
const EnvPrefix = "POKEDEX"

// Config is the configuration of the proxy binary.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	API     client.Config  `mapstructure:"api"`
	Log     logging.Config `mapstructure:"log"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type options struct {
	configFile string
	envFile    string
}

// Option customizes Load.
type Option func(*options)

// WithConfigFile sets an explicit YAML config file. Loading fails if it
// cannot be read.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file. Loading fails if it cannot be read.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// Load reads the configuration. Without options it looks for ./config.yml
// and ./.env and silently skips them when absent.
func Load(opts ...Option) (*Config, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := loadEnvFile(o.envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, o.configFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Log.Output = os.Stderr

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the libraries do not validate themselves.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("config: tracing.sample_rate must be between 0 and 1 (got %g)", c.Tracing.SampleRate)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	api := pokedex.DefaultConfig()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.base_url", api.BaseURL)
	v.SetDefault("api.timeout", api.Timeout)
	v.SetDefault("api.user_agent", api.UserAgent)
	v.SetDefault("api.client_name", api.ClientName)
	v.SetDefault("api.client_version", api.ClientVersion)
	v.SetDefault("api.page_size", api.PageSize)

	v.SetDefault("log.level", string(logging.LevelInfo))
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service", "pokedex-proxy")

	tc := tracing.DefaultConfig("pokedex-proxy")
	v.SetDefault("tracing.endpoint", tc.Endpoint)
	v.SetDefault("tracing.service_name", tc.ServiceName)
	v.SetDefault("tracing.service_version", pokedex.Version)
	v.SetDefault("tracing.insecure", tc.Insecure)
	v.SetDefault("tracing.sample_rate", tc.SampleRate)
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load env file %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("config: load env file .env: %w", err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read config.yml: %w", err)
	}
	return nil
}
