package staking

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/common/types"
)

// Year is the length of the period the rates are quoted for.
const Year = 365 * 24 * time.Hour

// MaxRateBps bounds configured rates (1000%).
const MaxRateBps = 100_000

// Tier raises the rate for stakes that are at least MinAmount and were held for at least MinDuration.
type Tier struct {
	MinAmount   *big.Int      `mapstructure:"min-amount"`
	MinDuration time.Duration `mapstructure:"min-duration"`
	RateBps     uint64        `mapstructure:"rate-bps"`
}

// Config of the staking engine.
type Config struct {
	// Custody holds staked principals and the reward reserve.
	Custody    types.Address `mapstructure:"custody"`
	LockPeriod time.Duration `mapstructure:"lock-period"`
	// BaseRateBps applies to every stake, in basis points per year.
	BaseRateBps uint64 `mapstructure:"base-rate-bps"`
	Tiers       []Tier `mapstructure:"tiers"`
}

// MarshalLogObject implements logging interface.
func (c Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("custody", c.Custody.String())
	encoder.AddDuration("lock period", c.LockPeriod)
	encoder.AddUint64("base rate bps", c.BaseRateBps)
	encoder.AddInt("tiers", len(c.Tiers))
	return nil
}

// DefaultConfig returns the default staking configuration.
func DefaultConfig() Config {
	return Config{
		Custody:     "custody",
		LockPeriod:  7 * 24 * time.Hour,
		BaseRateBps: 500,
		Tiers: []Tier{
			{MinAmount: new(big.Int).Mul(big.NewInt(1000), types.OneToken()), RateBps: 800},
			{MinAmount: new(big.Int), MinDuration: 90 * 24 * time.Hour, RateBps: 1000},
			{
				MinAmount:   new(big.Int).Mul(big.NewInt(1000), types.OneToken()),
				MinDuration: 180 * 24 * time.Hour,
				RateBps:     1200,
			},
		},
	}
}

// Validate checks that the configuration can be used by the engine.
func (c Config) Validate() error {
	if c.Custody.Empty() {
		return errors.New("custody address is empty")
	}
	if c.LockPeriod < 0 {
		return fmt.Errorf("lock period is negative: %v", c.LockPeriod)
	}
	if c.BaseRateBps > MaxRateBps {
		return fmt.Errorf("base rate %d bps exceeds %d", c.BaseRateBps, MaxRateBps)
	}
	for i, tier := range c.Tiers {
		switch {
		case tier.MinAmount != nil && tier.MinAmount.Sign() < 0:
			return fmt.Errorf("tier %d: negative min amount %s", i, tier.MinAmount)
		case tier.MinDuration < 0:
			return fmt.Errorf("tier %d: negative min duration %v", i, tier.MinDuration)
		case tier.RateBps > MaxRateBps:
			return fmt.Errorf("tier %d: rate %d bps exceeds %d", i, tier.RateBps, MaxRateBps)
		}
	}
	return nil
}
