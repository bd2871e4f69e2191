package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/log"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = log.ConsoleEncoder
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = log.JSONEncoder
)

// Names of the loggers that can be configured separately.
const (
	AppLogger        = "app"
	DatabaseLogger   = "database"
	AccessLogger     = "access"
	LedgerLogger     = "ledger"
	StakingLogger    = "staking"
	ScoringLogger    = "scoring"
	GovernanceLogger = "governance"
	ExecutorLogger   = "executor"
	MetricsLogger    = "metrics"
)

var loggers = []string{
	AppLogger,
	DatabaseLogger,
	AccessLogger,
	LedgerLogger,
	StakingLogger,
	ScoringLogger,
	GovernanceLogger,
	ExecutorLogger,
	MetricsLogger,
}

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder               LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel        string     `mapstructure:"app"`
	DatabaseLoggerLevel   string     `mapstructure:"database"`
	AccessLoggerLevel     string     `mapstructure:"access"`
	LedgerLoggerLevel     string     `mapstructure:"ledger"`
	StakingLoggerLevel    string     `mapstructure:"staking"`
	ScoringLoggerLevel    string     `mapstructure:"scoring"`
	GovernanceLoggerLevel string     `mapstructure:"governance"`
	ExecutorLoggerLevel   string     `mapstructure:"executor"`
	MetricsLoggerLevel    string     `mapstructure:"metrics"`
}

// DefaultLoggingConfig logs info and above for every module.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:               ConsoleLogEncoder,
		AppLoggerLevel:        defaultLoggingLevel.String(),
		DatabaseLoggerLevel:   zapcore.WarnLevel.String(),
		AccessLoggerLevel:     defaultLoggingLevel.String(),
		LedgerLoggerLevel:     defaultLoggingLevel.String(),
		StakingLoggerLevel:    defaultLoggingLevel.String(),
		ScoringLoggerLevel:    defaultLoggingLevel.String(),
		GovernanceLoggerLevel: defaultLoggingLevel.String(),
		ExecutorLoggerLevel:   defaultLoggingLevel.String(),
		MetricsLoggerLevel:    defaultLoggingLevel.String(),
	}
}

// SetLevel sets the level of every module.
func (c *LoggerConfig) SetLevel(level string) {
	c.AppLoggerLevel = level
	c.DatabaseLoggerLevel = level
	c.AccessLoggerLevel = level
	c.LedgerLoggerLevel = level
	c.StakingLoggerLevel = level
	c.ScoringLoggerLevel = level
	c.GovernanceLoggerLevel = level
	c.ExecutorLoggerLevel = level
	c.MetricsLoggerLevel = level
}

// Level returns the level of the named module. Unknown or empty modules use the default level.
func (c LoggerConfig) Level(name string) (zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevelAt(defaultLoggingLevel)
	levels := map[string]string{}
	if err := mapstructure.Decode(c, &levels); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}
	level, ok := levels[name]
	if !ok || level == "" {
		return lvl, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("cannot parse logging for %v: %w", name, err)
	}
	return lvl, nil
}

// Validate checks the encoder and the level of every module.
func (c LoggerConfig) Validate() error {
	if _, err := log.Encoder(c.Encoder); err != nil {
		return err
	}
	for _, name := range loggers {
		if _, err := c.Level(name); err != nil {
			return err
		}
	}
	return nil
}

// Logger creates a logger for the named module with its configured level.
func (c LoggerConfig) Logger(name string) (*zap.Logger, error) {
	lvl, err := c.Level(name)
	if err != nil {
		return nil, err
	}
	enc, err := log.Encoder(c.Encoder)
	if err != nil {
		return nil, err
	}
	return log.NewWithLevel(name, lvl, enc), nil
}

// MinLevel returns the lowest level among all modules.
func (c LoggerConfig) MinLevel() (zapcore.Level, error) {
	lowest := zapcore.InvalidLevel
	for _, name := range loggers {
		lvl, err := c.Level(name)
		if err != nil {
			return zapcore.InvalidLevel, err
		}
		if lowest == zapcore.InvalidLevel || lvl.Level() < lowest {
			lowest = lvl.Level()
		}
	}
	return lowest, nil
}
