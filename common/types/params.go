package types

import (
	"math/big"
	"time"

	"go.uber.org/zap/zapcore"
)

// ScoreWeights are the coefficients of the contribution score.
type ScoreWeights struct {
	Token    uint64 `mapstructure:"token"`
	Stake    uint64 `mapstructure:"stake"`
	Duration uint64 `mapstructure:"duration"`
}

// MarshalLogObject implements logging interface.
func (w ScoreWeights) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("token", w.Token)
	encoder.AddUint64("stake", w.Stake)
	encoder.AddUint64("duration", w.Duration)
	return nil
}

// GovernanceParams configure proposals. VotingPeriod applies to proposals created after
// it was set, Quorum and Majority apply to every execution after they were set.
type GovernanceParams struct {
	VotingPeriod time.Duration
	// Quorum is the minimal yes + no weight.
	Quorum *big.Int
	// Majority is the minimal percentage of yes weight in the total weight.
	Majority uint64
}

// MarshalLogObject implements logging interface.
func (p GovernanceParams) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddDuration("voting period", p.VotingPeriod)
	encoder.AddString("quorum", p.Quorum.String())
	encoder.AddUint64("majority", p.Majority)
	return nil
}
