package config

import (
	"fmt"
	"strings"

	"fjacquet/contrib-sql/internal/fileutils"
	"fjacquet/contrib-sql/internal/sqlgen"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Defaults reproduce the fixed values the tool has always emitted.
const (
	DefaultTable          = sqlgen.DefaultTable
	DefaultProjectLabel   = sqlgen.DefaultProjectLabel
	DefaultOutputSuffix   = fileutils.DefaultOutputSuffix
	DefaultCurrencySymbol = sqlgen.DefaultCurrencySymbol
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	SQL struct {
		Table        string `mapstructure:"table" yaml:"table"`
		ProjectLabel string `mapstructure:"project_label" yaml:"project_label"`
		OutputSuffix string `mapstructure:"output_suffix" yaml:"output_suffix"`
	} `mapstructure:"sql" yaml:"sql"`

	Report struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"report" yaml:"report"`
}

// DelimiterRune returns the configured CSV delimiter as a rune
func (c *Config) DelimiterRune() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// When configFile is empty the usual locations are searched and a missing file
// is not an error; an explicit configFile must exist and parse.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.contrib-sql")
		v.AddConfigPath(".contrib-sql")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("CONTRIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if err := v.BindEnv("log.level", "CONTRIB_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("sql.table", DefaultTable)
	v.SetDefault("sql.project_label", DefaultProjectLabel)
	v.SetDefault("sql.output_suffix", DefaultOutputSuffix)

	v.SetDefault("report.currency_symbol", DefaultCurrencySymbol)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.SQL.Table) == "" {
		return fmt.Errorf("sql.table must not be empty")
	}

	if config.SQL.OutputSuffix == "" {
		return fmt.Errorf("sql.output_suffix must not be empty")
	}

	return nil
}
