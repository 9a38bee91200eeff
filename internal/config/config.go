// Package config handles global configuration loading using viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GlobalConfig is the top-level static configuration. It maps to the
// `netsum:` root key in YAML; env vars use the NETSUM_ prefix via the key
// replacer (e.g. NETSUM_LOG_LEVEL).
type GlobalConfig struct {
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Output  OutputConfig  `mapstructure:"output"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level"`  // debug / info / warn / error
	Format  string           `mapstructure:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains log output destinations beyond the console.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures rotating file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// MetricsConfig contains Prometheus metrics settings. The metrics server
// only runs for the duration of a scan, so it is disabled by default.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// ScanConfig contains scan engine settings.
type ScanConfig struct {
	ChannelCapacity int  `mapstructure:"channel_capacity"` // Packet channel buffer size
	MaxPackets      int  `mapstructure:"max_packets"`      // 0 = no limit
	StrictExit      bool `mapstructure:"strict_exit"`      // Exit nonzero on skipped packets too
}

// OutputConfig contains report rendering settings.
type OutputConfig struct {
	Format string `mapstructure:"format"` // text / table / json / csv
	Color  bool   `mapstructure:"color"`
}

// configRoot is the top-level wrapper matching the YAML structure `netsum: ...`.
type configRoot struct {
	Netsum GlobalConfig `mapstructure:"netsum"`
}

// Load loads configuration from path. A missing file is not an error: the
// tool must work with zero setup, so defaults (and env overrides) apply.
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variable overrides. The `netsum.` key prefix maps to
	// NETSUM_ env vars via the key replacer (e.g. key "netsum.log.level"
	// → env "NETSUM_LOG_LEVEL").
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Netsum

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values. All keys use the "netsum." prefix to
// match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("netsum.log.level", "info")
	v.SetDefault("netsum.log.format", "text")
	v.SetDefault("netsum.log.outputs.file.enabled", false)
	v.SetDefault("netsum.log.outputs.file.path", "/var/log/netsum/netsum.log")
	v.SetDefault("netsum.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("netsum.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("netsum.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("netsum.log.outputs.file.rotation.compress", true)

	// Metrics defaults
	v.SetDefault("netsum.metrics.enabled", false)
	v.SetDefault("netsum.metrics.listen", ":9091")
	v.SetDefault("netsum.metrics.path", "/metrics")

	// Scan defaults
	v.SetDefault("netsum.scan.channel_capacity", 1024)
	v.SetDefault("netsum.scan.max_packets", 0)
	v.SetDefault("netsum.scan.strict_exit", false)

	// Output defaults
	v.SetDefault("netsum.output.format", "text")
	v.SetDefault("netsum.output.color", true)
}

// ValidateAndApplyDefaults validates configuration and applies runtime
// defaults.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json/text)", cfg.Log.Format)
	}

	validFormats := map[string]bool{"text": true, "table": true, "json": true, "csv": true}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be text/table/json/csv)", cfg.Output.Format)
	}

	if cfg.Scan.ChannelCapacity <= 0 {
		cfg.Scan.ChannelCapacity = 1024
	}
	if cfg.Scan.MaxPackets < 0 {
		return fmt.Errorf("scan.max_packets must be >= 0, got %d", cfg.Scan.MaxPackets)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen is required when metrics.enabled=true")
	}

	return nil
}
