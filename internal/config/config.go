package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vango-dev/vango-refs/internal/errors"
)

const (
	// ConfigName is the base name of the configuration file.
	ConfigName = "vango-refs"

	// EnvPrefix prefixes environment overrides, e.g. VANGO_REFS_LOG_LEVEL.
	EnvPrefix = "VANGO_REFS"

	// DefaultAddr is the default listen address of the debug server.
	DefaultAddr = "localhost:7070"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "vango"
)

// Config is the vango-refs configuration.
type Config struct {
	// Fixture is the default tree fixture used when none is given on the
	// command line.
	Fixture string `mapstructure:"fixture"`

	// Log configures structured logging.
	Log LogConfig `mapstructure:"log"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Serve configures the debug HTTP server.
	Serve ServeConfig `mapstructure:"serve"`

	// Trace configures lifecycle span export.
	Trace TraceConfig `mapstructure:"trace"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// MetricsConfig configures Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ServeConfig configures the debug HTTP server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// TraceConfig configures lifecycle span export.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is stdout or none.
	Exporter string `mapstructure:"exporter"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
		},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Trace: TraceConfig{
			Exporter: "stdout",
		},
	}
}

// New returns a viper instance carrying the defaults and environment
// bindings. Commands bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("fixture", d.Fixture)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("trace.enabled", d.Trace.Enabled)
	v.SetDefault("trace.exporter", d.Trace.Exporter)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration into v and decodes it.
//
// With an explicit path that file must exist. Otherwise vango-refs.yaml (or
// .json/.toml) is looked up in dir; a missing file leaves the defaults in
// place.
func Load(v *viper.Viper, dir, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New("R020").Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("R020").Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// FixturePath resolves Fixture relative to the config file.
func (c *Config) FixturePath() string {
	if c.Fixture == "" || filepath.IsAbs(c.Fixture) || c.configPath == "" {
		return c.Fixture
	}
	return filepath.Join(filepath.Dir(c.configPath), c.Fixture)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("R021").WithDetail(err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("R021").
			WithDetail(fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("R021").WithDetail("metrics.namespace must not be empty when metrics are enabled")
	}
	switch c.Trace.Exporter {
	case "stdout", "none":
	default:
		return errors.New("R021").
			WithDetail(fmt.Sprintf("trace.exporter must be stdout or none, got %q", c.Trace.Exporter))
	}
	return nil
}

// Logger builds the configured slog logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
	return level, nil
}
