// Package config loads runtime settings for the vocaltrans binaries.
//
// Values come from built-in defaults, then an optional YAML file, then
// VOCALTRANS_* environment variables, each layer overriding the last.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr           = ":8080"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultShutdownGrace  = 10 * time.Second
	defaultMaxBodyBytes   = 64 << 10
	defaultMaxTextBytes   = 32 << 10
	defaultIntensity      = 5
	defaultLogLevel       = "info"

	envPrefix = "VOCALTRANS_"
)

// Config is the full set of runtime settings.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Translate TranslateConfig `yaml:"translate"`
	Log       LogConfig       `yaml:"log"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
}

// ServerConfig captures HTTP listener settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	MaxTextBytes   int           `yaml:"max_text_bytes"`
}

// TranslateConfig holds translation defaults.
type TranslateConfig struct {
	Intensity float64 `yaml:"intensity"`
	Hyphenate bool    `yaml:"hyphenate"`
	Uppercase bool    `yaml:"uppercase"`
	// TablesDir replaces the embedded rule tables when set.
	TablesDir string `yaml:"tables_dir"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// FeedbackConfig toggles the feedback endpoint.
type FeedbackConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           defaultAddr,
			ReadTimeout:    defaultReadTimeout,
			WriteTimeout:   defaultWriteTimeout,
			IdleTimeout:    defaultIdleTimeout,
			RequestTimeout: defaultRequestTimeout,
			ShutdownGrace:  defaultShutdownGrace,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   defaultMaxBodyBytes,
			MaxTextBytes:   defaultMaxTextBytes,
		},
		Translate: TranslateConfig{
			Intensity: defaultIntensity,
			Hyphenate: true,
		},
		Log:      LogConfig{Level: defaultLogLevel},
		Feedback: FeedbackConfig{Enabled: true},
	}
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	path          string
	envMap        map[string]string
	useSystemEnv  bool
	requireConfig bool
}

// WithFile reads path as YAML. A missing file is ignored unless
// WithRequiredFile is also given.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.path = path }
}

// WithRequiredFile makes a missing config file an error.
func WithRequiredFile() Option {
	return func(o *loadOptions) { o.requireConfig = true }
}

// WithEnvMap supplies environment values that take precedence over the
// process environment.
func WithEnvMap(env map[string]string) Option {
	return func(o *loadOptions) { o.envMap = env }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loadOptions) { o.useSystemEnv = false }
}

// Load builds a Config from defaults, the optional file and the environment,
// then validates it.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Default()
	if options.path != "" {
		data, err := os.ReadFile(options.path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !options.requireConfig:
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", options.path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", options.path, err)
			}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			return os.LookupEnv(key)
		}
		return "", false
	}
	cfg.applyEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	c.Server.Addr = stringWithDefault(lookup, envPrefix+"ADDR", c.Server.Addr)
	c.Server.ReadTimeout = durationWithDefault(lookup, envPrefix+"READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = durationWithDefault(lookup, envPrefix+"WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = durationWithDefault(lookup, envPrefix+"IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.RequestTimeout = durationWithDefault(lookup, envPrefix+"REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownGrace = durationWithDefault(lookup, envPrefix+"SHUTDOWN_GRACE", c.Server.ShutdownGrace)
	c.Server.AllowedOrigins = csvWithDefault(lookup, envPrefix+"ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.MaxBodyBytes = int64(intWithDefault(lookup, envPrefix+"MAX_BODY_BYTES", int(c.Server.MaxBodyBytes)))
	c.Server.MaxTextBytes = intWithDefault(lookup, envPrefix+"MAX_TEXT_BYTES", c.Server.MaxTextBytes)

	c.Translate.Intensity = floatWithDefault(lookup, envPrefix+"INTENSITY", c.Translate.Intensity)
	c.Translate.Hyphenate = boolWithDefault(lookup, envPrefix+"HYPHENATE", c.Translate.Hyphenate)
	c.Translate.Uppercase = boolWithDefault(lookup, envPrefix+"UPPERCASE", c.Translate.Uppercase)
	c.Translate.TablesDir = stringWithDefault(lookup, envPrefix+"TABLES_DIR", c.Translate.TablesDir)

	c.Log.Level = stringWithDefault(lookup, envPrefix+"LOG_LEVEL", c.Log.Level)
	c.Feedback.Enabled = boolWithDefault(lookup, envPrefix+"FEEDBACK_ENABLED", c.Feedback.Enabled)
}

// ValidationError lists every setting that failed validation.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return "config: invalid " + strings.Join(e.fields, ", ")
}

// Fields returns the offending setting names.
func (e *ValidationError) Fields() []string {
	return append([]string(nil), e.fields...)
}

// Validate checks the settings the binaries depend on.
func (c Config) Validate() error {
	var bad []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		bad = append(bad, "Server.Addr")
	}
	if c.Server.ReadTimeout <= 0 {
		bad = append(bad, "Server.ReadTimeout")
	}
	if c.Server.WriteTimeout <= 0 {
		bad = append(bad, "Server.WriteTimeout")
	}
	if c.Server.IdleTimeout <= 0 {
		bad = append(bad, "Server.IdleTimeout")
	}
	if c.Server.RequestTimeout <= 0 {
		bad = append(bad, "Server.RequestTimeout")
	}
	if c.Server.ShutdownGrace <= 0 {
		bad = append(bad, "Server.ShutdownGrace")
	}
	if c.Server.MaxBodyBytes <= 0 {
		bad = append(bad, "Server.MaxBodyBytes")
	}
	if c.Server.MaxTextBytes <= 0 {
		bad = append(bad, "Server.MaxTextBytes")
	}
	if math.IsNaN(c.Translate.Intensity) || math.IsInf(c.Translate.Intensity, 0) {
		bad = append(bad, "Translate.Intensity")
	}
	if len(bad) > 0 {
		return &ValidationError{fields: bad}
	}
	return nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
