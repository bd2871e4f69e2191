package types

import (
	"math/big"
	"time"

	"go.uber.org/zap/zapcore"
)

// Stake is an active deposit of a participant. A participant has at most one.
type Stake struct {
	Participant Address
	Principal   *big.Int
	StartTime   time.Time
}

// Elapsed returns the duration the stake was locked for at now. Never negative.
func (s *Stake) Elapsed(now time.Time) time.Duration {
	if now.Before(s.StartTime) {
		return 0
	}
	return now.Sub(s.StartTime)
}

// MarshalLogObject implements logging interface.
func (s *Stake) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("participant", s.Participant.String())
	encoder.AddString("principal", FormatAmount(s.Principal))
	encoder.AddTime("start", s.StartTime)
	return nil
}

// Payout is a record of principal and reward released to a participant on unstake.
type Payout struct {
	Participant Address
	Principal   *big.Int
	Reward      *big.Int
	StakedAt    time.Time
	PaidAt      time.Time
}

// Total returns principal + reward.
func (p *Payout) Total() *big.Int {
	return new(big.Int).Add(p.Principal, p.Reward)
}

// MarshalLogObject implements logging interface.
func (p *Payout) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("participant", p.Participant.String())
	encoder.AddString("principal", FormatAmount(p.Principal))
	encoder.AddString("reward", FormatAmount(p.Reward))
	encoder.AddDuration("held", p.PaidAt.Sub(p.StakedAt))
	return nil
}
