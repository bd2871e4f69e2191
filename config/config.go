// Package config holds the configuration of the peocoin node and loads it from a file.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/config/mapstructureutil"
	"github.com/peocoin/go-peocoin/governance"
	"github.com/peocoin/go-peocoin/ledger"
	"github.com/peocoin/go-peocoin/metrics"
	"github.com/peocoin/go-peocoin/scoring"
	"github.com/peocoin/go-peocoin/staking"
)

const (
	defaultDataDir = "./peo_data"

	// StateDBFile is the name of the database with stakes, proposals and parameters.
	StateDBFile = "state.sql"
	// LedgerDBFile is the name of the database with token balances.
	LedgerDBFile = "ledger.sql"
	// LockFile is the name of the file that guards the data directory.
	LockFile = "peo.lock"
)

// Config defines the top level configuration for a peocoin node.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Logging    LoggerConfig      `mapstructure:"logging"`
	Access     access.Config     `mapstructure:"access"`
	Ledger     ledger.Config     `mapstructure:"ledger"`
	Staking    staking.Config    `mapstructure:"staking"`
	Scoring    scoring.Config    `mapstructure:"scoring"`
	Governance governance.Config `mapstructure:"governance"`
}

// BaseConfig defines options shared by the node and the operational commands.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	// FileLock defaults to the lock file in the data directory.
	FileLock string `mapstructure:"filelock"`

	CollectMetrics bool               `mapstructure:"metrics"`
	MetricsPort    int                `mapstructure:"metrics-port"`
	MetricsPush    metrics.PushConfig `mapstructure:"metrics-push"`

	DatabaseConnections     int  `mapstructure:"db-connections"`
	DatabaseLatencyMetering bool `mapstructure:"db-latency-metering"`
}

// DataDir returns the absolute path of the data directory.
func (cfg *Config) DataDir() string {
	path, err := filepath.Abs(cfg.DataDirParent)
	if err != nil {
		return filepath.Clean(cfg.DataDirParent)
	}
	return path
}

// LockPath returns the path of the data directory lock.
func (cfg *Config) LockPath() string {
	if cfg.FileLock != "" {
		return cfg.FileLock
	}
	return filepath.Join(cfg.DataDir(), LockFile)
}

// MarshalLogObject implements logging interface.
func (cfg *Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("data dir", cfg.DataDir())
	encoder.AddBool("metrics", cfg.CollectMetrics)
	if cfg.CollectMetrics {
		encoder.AddInt("metrics port", cfg.MetricsPort)
	}
	encoder.AddBool("metrics push", cfg.MetricsPush.Enabled())
	if err := encoder.AddObject("access", cfg.Access); err != nil {
		return err
	}
	if err := encoder.AddObject("ledger", cfg.Ledger); err != nil {
		return err
	}
	if err := encoder.AddObject("staking", cfg.Staking); err != nil {
		return err
	}
	if err := encoder.AddObject("scoring", cfg.Scoring); err != nil {
		return err
	}
	return encoder.AddObject("governance", cfg.Governance)
}

// DefaultConfig returns the default configuration for a peocoin node.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Logging:    DefaultLoggingConfig(),
		Access:     access.DefaultConfig(),
		Ledger:     ledger.DefaultConfig(),
		Staking:    staking.DefaultConfig(),
		Scoring:    scoring.DefaultConfig(),
		Governance: governance.DefaultConfig(),
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		DataDirParent:       defaultDataDir,
		CollectMetrics:      false,
		MetricsPort:         1010,
		DatabaseConnections: 16,
	}
}

// LoadConfig reads the config file into vip. Empty location is not an error, defaults are used.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		return nil
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", fileLocation, err)
	}
	return nil
}

// Load overrides cfg with values from the file at path.
// Values that are not set in the file keep what cfg had.
func Load(cfg *Config, path string) error {
	v := viper.New()
	if err := LoadConfig(path, v); err != nil {
		return err
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructureutil.AddressDecodeFunc(),
		mapstructureutil.BigIntDecodeFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks values that components can't recover from.
func (cfg *Config) Validate() error {
	if err := cfg.Staking.Validate(); err != nil {
		return fmt.Errorf("staking: %w", err)
	}
	for i, a := range cfg.Ledger.Genesis {
		if a.Address.Empty() || a.Amount == nil {
			return fmt.Errorf("ledger: genesis allocation %d is incomplete", i)
		}
	}
	if cfg.Scoring.DurationUnit == nil || cfg.Scoring.DurationUnit.Sign() <= 0 {
		return fmt.Errorf("scoring: duration unit must be positive")
	}
	if cfg.Governance.ExecuteInterval <= 0 {
		return fmt.Errorf("governance: execute interval must be positive")
	}
	return cfg.Logging.Validate()
}

// WithZeroFields replaces maps and slices instead of merging them with defaults.
func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

// WithErrorUnused fails on keys in the file that don't map to any field.
func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
