// Package config loads obofang settings from YAML files and OBOFANG_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
	"github.com/Sumatoshi-tech/obofang/pkg/observability"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
	ErrInvalidOutputFormat  = errors.New("invalid output format")
	ErrInvalidSampleRatio   = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidTopNamespaces = errors.New("top namespaces must not be negative")
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// EnvPrefix prefixes every environment override, e.g. OBOFANG_PARSER_KEEP_XREFS.
const EnvPrefix = "OBOFANG"

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{FormatText, FormatJSON, FormatYAML}
)

// Config holds all obofang configuration.
type Config struct {
	Parser    ParserConfig    `mapstructure:"parser"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Output    OutputConfig    `mapstructure:"output"`
}

// ParserConfig selects the optional decoders and the progress cadence.
type ParserConfig struct {
	ProgressInterval  time.Duration `mapstructure:"progress_interval"`
	KeepDefinitions   bool          `mapstructure:"keep_definitions"`
	KeepXrefs         bool          `mapstructure:"keep_xrefs"`
	KeepIntersections bool          `mapstructure:"keep_intersections"`
	NameFromID        bool          `mapstructure:"name_from_id"`
	IgnoreSynonyms    bool          `mapstructure:"ignore_synonyms"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OTLP export and metrics file settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format        string `mapstructure:"format"`
	TopNamespaces int    `mapstructure:"top_namespaces"`
	Color         bool   `mapstructure:"color"`
}

// LoadConfig loads configuration from configPath, or from obofang.yaml in the
// search path when configPath is empty, then applies environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("obofang")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME/.config/obofang")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("parser.keep_definitions", DefaultKeepDefinitions)
	viperCfg.SetDefault("parser.keep_xrefs", DefaultKeepXrefs)
	viperCfg.SetDefault("parser.keep_intersections", DefaultKeepIntersections)
	viperCfg.SetDefault("parser.name_from_id", DefaultNameFromID)
	viperCfg.SetDefault("parser.ignore_synonyms", DefaultIgnoreSynonyms)
	viperCfg.SetDefault("parser.progress_interval", DefaultProgressInterval)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Registered so AutomaticEnv can see them during Unmarshal.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.metrics_file", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultColor)
	viperCfg.SetDefault("output.top_namespaces", DefaultTopNamespaces)
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if !slices.Contains(outputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	if c.Output.TopNamespaces < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopNamespaces, c.Output.TopNamespaces)
	}

	return nil
}

// ParserFlags converts the parser section into decoder flags.
func (c *Config) ParserFlags() obo.Flags {
	var flags obo.Flags

	set := func(on bool, flag obo.Flags) {
		if on {
			flags |= flag
		}
	}

	set(c.Parser.KeepDefinitions, obo.KeepDefinitions)
	set(c.Parser.KeepXrefs, obo.KeepXrefs)
	set(c.Parser.KeepIntersections, obo.KeepIntersections)
	set(c.Parser.NameFromID, obo.NameFromID)
	set(c.Parser.IgnoreSynonyms, obo.IgnoreSynonyms)

	return flags
}

// SlogLevel returns the configured log level. Validate guarantees it parses.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Logging.Level))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

// ObservabilityConfig maps the logging and telemetry sections onto an
// observability.Config.
func (c *Config) ObservabilityConfig(version string) observability.Config {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(c.Telemetry.OTLPHeaders)
	cfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	cfg.SampleRatio = c.Telemetry.SampleRatio
	cfg.MetricsFile = c.Telemetry.MetricsFile
	cfg.LogLevel = c.SlogLevel()
	cfg.LogJSON = strings.EqualFold(c.Logging.Format, "json")

	return cfg
}
