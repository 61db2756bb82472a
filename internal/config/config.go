package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/coffee-sales/pkg/query"
)

// EnvPrefix is prepended to environment variable overrides, e.g. COFFEE_SALES_DATA_PATH
const EnvPrefix = "COFFEE_SALES"

// Config represents the application configuration
type Config struct {
	LogLevel string                  `mapstructure:"log_level"`
	Data     DataConfig              `mapstructure:"data"`
	Server   ServerConfig            `mapstructure:"server"`
	Reports  map[string]ReportConfig `mapstructure:"reports"`
}

// DataConfig defines where the sales dataset is read from
type DataConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"` // empty means the first sheet
}

// ServerConfig defines the HTTP dashboard API settings
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ReportConfig overrides how a built-in report is computed
type ReportConfig struct {
	Sort  string `mapstructure:"sort"`  // "asc", "desc" or "none"
	Scope string `mapstructure:"scope"` // "filtered" or "full"
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath skips the file and uses defaults plus environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// Set defaults
	v.SetDefault("log_level", "INFO")
	v.SetDefault("data.path", "Coffee_sales.xlsx")
	v.SetDefault("data.sheet", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return errors.New("missing required config field: data.path")
	}
	for name, r := range c.Reports {
		if r.Sort != "" {
			if _, err := query.ParseSortDirection(r.Sort); err != nil {
				return fmt.Errorf("report %s: %w", name, err)
			}
		}
		if r.Scope != "" {
			if _, err := query.ParseScope(r.Scope); err != nil {
				return fmt.Errorf("report %s: %w", name, err)
			}
		}
	}
	return nil
}
