// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SPEND_CYCLE_START_DAY.
const EnvPrefix = "SPEND"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Cycle struct {
		StartDay int `mapstructure:"start_day" yaml:"start_day"`
	} `mapstructure:"cycle" yaml:"cycle"`

	Input struct {
		Transactions string `mapstructure:"transactions" yaml:"transactions"`
		Categories   string `mapstructure:"categories" yaml:"categories"`
	} `mapstructure:"input" yaml:"input"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Statement struct {
		Password   string `mapstructure:"password" yaml:"password"`
		SortFormat string `mapstructure:"sort_format" yaml:"sort_format"`
	} `mapstructure:"statement" yaml:"statement"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
		Output string `mapstructure:"output" yaml:"output"`
		Color  bool   `mapstructure:"color" yaml:"color"`
	} `mapstructure:"report" yaml:"report"`
}

// DelimiterRune returns the CSV delimiter as a rune, or 0 when unset.
func (c *Config) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in the search path and SPEND_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile is InitializeConfig with an explicit config file. An
// explicit file must exist and parse.
func InitializeConfigFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.cycle-spend")
		v.AddConfigPath(".cycle-spend")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		case !errors.As(err, &notFound):
			// Stdout may carry a report, so warnings go to stderr.
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cycle.start_day", cycle.MinStartDay)

	v.SetDefault("input.transactions", "dump.csv")
	v.SetDefault("input.categories", "categories.json")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("statement.password", "")
	v.SetDefault("statement.sort_format", "")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "")
	v.SetDefault("report.color", false)
}

// reportFormats mirrors the renderers in internal/report.
var reportFormats = []string{"text", "json", "csv"}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ConfigError{Key: "log.level", Value: config.Log.Level, Reason: "unknown log level"}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ConfigError{Key: "log.format", Value: config.Log.Format, Reason: "must be 'text' or 'json'"}
	}

	if err := cycle.ValidateStartDay(config.Cycle.StartDay); err != nil {
		return err
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &parsererror.ConfigError{Key: "csv.delimiter", Value: config.CSV.Delimiter, Reason: "must be a single character"}
	}

	format := strings.ToLower(config.Report.Format)
	valid := false
	for _, f := range reportFormats {
		if format == f {
			valid = true
			break
		}
	}
	if !valid {
		return &parsererror.ConfigError{Key: "report.format", Value: config.Report.Format, Reason: "must be one of text, json, csv"}
	}
	config.Report.Format = format

	if strings.TrimSpace(config.Input.Categories) == "" {
		return &parsererror.ConfigError{Key: "input.categories", Value: config.Input.Categories, Reason: "must not be empty"}
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
