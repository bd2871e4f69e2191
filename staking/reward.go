package staking

import (
	"math/big"
	"time"
)

var (
	bpsDenominator = big.NewInt(10_000)
	yearSeconds    = big.NewInt(int64(Year / time.Second))
)

func (t Tier) qualifies(principal *big.Int, elapsed time.Duration) bool {
	if t.MinAmount != nil && principal.Cmp(t.MinAmount) < 0 {
		return false
	}
	return elapsed >= t.MinDuration
}

// Rate returns the yearly rate in basis points for a stake of principal held for elapsed.
// It is the highest rate among the base rate and all tiers the stake qualifies for, so it
// never decreases as principal or elapsed grow.
func (c Config) Rate(principal *big.Int, elapsed time.Duration) uint64 {
	rate := c.BaseRateBps
	for _, tier := range c.Tiers {
		if tier.RateBps > rate && tier.qualifies(principal, elapsed) {
			rate = tier.RateBps
		}
	}
	return rate
}

// Reward computes principal * rate * seconds / (10000 * year seconds), truncated.
// Only whole seconds accrue. Zero when elapsed is not positive.
func (c Config) Reward(principal *big.Int, elapsed time.Duration) *big.Int {
	secs := int64(elapsed / time.Second)
	if secs <= 0 || principal == nil || principal.Sign() <= 0 {
		return new(big.Int)
	}
	rate := c.Rate(principal, elapsed)
	reward := new(big.Int).Mul(principal, new(big.Int).SetUint64(rate))
	reward.Mul(reward, big.NewInt(secs))
	return reward.Quo(reward, new(big.Int).Mul(bpsDenominator, yearSeconds))
}
