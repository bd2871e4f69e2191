package governance

import (
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/common/types"
)

// Config of the governance engine.
type Config struct {
	// VotingPeriod, Quorum and Majority are used until an operator replaces them.
	// VotingPeriod is fixed on a proposal at creation, Quorum and Majority are read at execution.
	// Persisted parameters take precedence.
	VotingPeriod time.Duration `mapstructure:"voting-period"`
	Quorum       *big.Int      `mapstructure:"quorum"`
	// Majority is the minimal share of yes weight in percents.
	Majority uint64 `mapstructure:"majority"`

	// ExecuteInterval is how often closed proposals are checked for execution.
	ExecuteInterval time.Duration `mapstructure:"execute-interval"`
	CacheSize       int           `mapstructure:"cache-size"`
}

// MarshalLogObject implements logging interface.
func (c Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddObject("parameters", c.Params())
	encoder.AddDuration("execute interval", c.ExecuteInterval)
	encoder.AddInt("cache size", c.CacheSize)
	return nil
}

// Params returns governance parameters from the config.
func (c Config) Params() types.GovernanceParams {
	return types.GovernanceParams{
		VotingPeriod: c.VotingPeriod,
		Quorum:       c.Quorum,
		Majority:     c.Majority,
	}
}

// DefaultConfig returns the default governance configuration.
func DefaultConfig() Config {
	return Config{
		VotingPeriod:    3 * 24 * time.Hour,
		Quorum:          new(big.Int).Mul(big.NewInt(1000), types.OneToken()),
		Majority:        51,
		ExecuteInterval: time.Minute,
		CacheSize:       256,
	}
}

func validateParams(p types.GovernanceParams) error {
	switch {
	case p.VotingPeriod <= 0:
		return fmt.Errorf("%w: voting period must be positive, got %v", ErrInvalidParameters, p.VotingPeriod)
	case p.Quorum == nil || p.Quorum.Sign() < 0:
		return fmt.Errorf("%w: quorum must not be negative, got %v", ErrInvalidParameters, p.Quorum)
	case p.Majority > 100:
		return fmt.Errorf("%w: majority is a percentage, got %d", ErrInvalidParameters, p.Majority)
	}
	return nil
}
