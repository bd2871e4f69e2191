// Package scoring computes the dynamic contribution score of a participant from the
// ledger balance and the active stake.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/events"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/params"
)

// Config of the scoring engine.
type Config struct {
	// Weights are used until an operator replaces them. Persisted weights take precedence.
	Weights types.ScoreWeights `mapstructure:"weights"`
	// DurationUnit is the value of one second of stake duration, in base units.
	DurationUnit *big.Int `mapstructure:"duration-unit"`
}

// MarshalLogObject implements logging interface.
func (c Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddObject("weights", c.Weights)
	encoder.AddString("duration unit", c.DurationUnit.String())
	return nil
}

// DefaultConfig weights all terms equally. A day of staking is worth about one token.
func DefaultConfig() Config {
	return Config{
		Weights:      types.ScoreWeights{Token: 1, Stake: 1, Duration: 1},
		DurationUnit: new(big.Int).Quo(types.OneToken(), big.NewInt(int64(24*time.Hour/time.Second))),
	}
}

// Opt for configuring Engine.
type Opt func(*Engine)

// WithLogger specifies logger for Engine.
func WithLogger(logger *zap.Logger) Opt {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig specifies config for Engine.
func WithConfig(cfg Config) Opt {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithClock specifies clock used to measure stake duration.
func WithClock(clock clockwork.Clock) Opt {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithReporter specifies where notifications about weight updates are sent.
func WithReporter(reporter *events.Reporter) Opt {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// Breakdown is the score of a participant split into weighted terms.
type Breakdown struct {
	Participant types.Address
	Weights     types.ScoreWeights
	Balance     *big.Int
	Principal   *big.Int
	Duration    time.Duration

	TokenTerm    *big.Int
	StakeTerm    *big.Int
	DurationTerm *big.Int
}

// Score is the sum of the weighted terms.
func (b *Breakdown) Score() *big.Int {
	score := new(big.Int).Add(b.TokenTerm, b.StakeTerm)
	return score.Add(score, b.DurationTerm)
}

// MarshalLogObject implements logging interface.
func (b *Breakdown) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("participant", b.Participant.String())
	encoder.AddObject("weights", b.Weights)
	encoder.AddString("balance", types.FormatAmount(b.Balance))
	encoder.AddString("principal", types.FormatAmount(b.Principal))
	encoder.AddDuration("duration", b.Duration)
	encoder.AddString("score", b.Score().String())
	return nil
}

// Engine computes scores. It doesn't keep per participant state, every score is
// computed from the current ledger balance and stake.
type Engine struct {
	logger   *zap.Logger
	cfg      Config
	clock    clockwork.Clock
	reporter *events.Reporter

	db       *sql.Database
	balances balanceReader
	stakes   stakeReader
	access   *access.Control

	mu      sync.RWMutex
	weights types.ScoreWeights
}

// New creates a scoring engine. Weights are loaded from the database, or persisted from
// the config if the database has none.
func New(
	db *sql.Database,
	balances balanceReader,
	stakes stakeReader,
	ac *access.Control,
	opts ...Opt,
) (*Engine, error) {
	e := &Engine{
		logger:   zap.NewNop(),
		cfg:      DefaultConfig(),
		clock:    clockwork.NewRealClock(),
		db:       db,
		balances: balances,
		stakes:   stakes,
		access:   ac,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.DurationUnit == nil || e.cfg.DurationUnit.Sign() <= 0 {
		return nil, fmt.Errorf("duration unit must be positive: %v", e.cfg.DurationUnit)
	}
	weights, err := params.Weights(db)
	switch {
	case errors.Is(err, sql.ErrNotFound):
		if err := params.SetWeights(db, e.cfg.Weights); err != nil {
			return nil, err
		}
		weights = e.cfg.Weights
	case err != nil:
		return nil, err
	}
	e.weights = weights
	setWeightGauges(weights)
	e.logger.Info("loaded score weights", zap.Object("weights", weights))
	return e, nil
}

// Weights returns weights currently in use.
func (e *Engine) Weights() types.ScoreWeights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// Breakdown computes the weighted terms of the participant score.
func (e *Engine) Breakdown(ctx context.Context, participant types.Address) (*Breakdown, error) {
	weights := e.Weights()
	now := e.clock.Now()

	balance, err := e.balances.BalanceOf(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", participant, err)
	}
	b := &Breakdown{
		Participant: participant,
		Weights:     weights,
		Balance:     balance,
		Principal:   new(big.Int),
	}
	stake, err := e.stakes.GetStake(ctx, participant)
	switch {
	case errors.Is(err, types.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("stake of %s: %w", participant, err)
	default:
		b.Principal = stake.Principal
		b.Duration = stake.Elapsed(now)
	}

	b.TokenTerm = weighted(weights.Token, balance)
	b.StakeTerm = weighted(weights.Stake, b.Principal)
	b.DurationTerm = weighted(weights.Duration, e.durationValue(b.Duration))
	return b, nil
}

// Score returns token*balance + stake*principal + duration*g(stake duration).
// With positive token and stake weights it is zero if and only if the participant holds
// no tokens and has no stake.
func (e *Engine) Score(ctx context.Context, participant types.Address) (*big.Int, error) {
	b, err := e.Breakdown(ctx, participant)
	if err != nil {
		return nil, err
	}
	score := b.Score()
	scoreQueries.Inc()
	e.logger.Debug("computed score", zap.Inline(b))
	return score, nil
}

// durationValue counts whole seconds.
func (e *Engine) durationValue(d time.Duration) *big.Int {
	secs := int64(d / time.Second)
	return new(big.Int).Mul(e.cfg.DurationUnit, big.NewInt(secs))
}

func weighted(weight uint64, x *big.Int) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(weight), x)
}

// UpdateWeights replaces weights. Caller must hold access.RoleOperator.
// Scores computed earlier, including votes already cast, are not recomputed.
func (e *Engine) UpdateWeights(ctx context.Context, caller types.Address, weights types.ScoreWeights) error {
	if err := e.access.Require(access.RoleOperator, caller); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		return params.SetWeights(tx, weights)
	}); err != nil {
		return fmt.Errorf("update weights: %w", err)
	}
	previous := e.weights
	e.weights = weights
	setWeightGauges(weights)
	e.logger.Info("score weights updated",
		log.ZAddress("operator", caller),
		zap.Object("previous", previous),
		zap.Object("weights", weights),
	)
	e.reporter.EmitWeightsUpdated(caller, weights)
	return nil
}
