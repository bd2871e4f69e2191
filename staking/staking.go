// Package staking locks participant tokens in custody and pays principal and a tiered reward on unstake.
package staking

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/events"
	"github.com/peocoin/go-peocoin/ledger"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/payouts"
	"github.com/peocoin/go-peocoin/sql/stakes"
)

var (
	// ErrInvalidAmount is returned when staking or funding zero tokens.
	ErrInvalidAmount = types.NewError(types.ErrInvalidAmount, "staking: amount must be positive")
	// ErrStakeExists is returned when participant stakes again while the stake is active.
	ErrStakeExists = types.NewError(types.ErrAlreadyDone, "staking: participant already has an active stake")
	// ErrNoStakeFound is returned when participant has no active stake.
	ErrNoStakeFound = types.NewError(types.ErrNotFound, "staking: no stake found")
	// ErrLockNotEnded is returned when unstaking before the lock period has passed.
	ErrLockNotEnded = types.NewError(types.ErrTemporalViolation, "staking: lock period not ended")
	// ErrCustodyUnderfunded is returned when custody can't cover principal and reward.
	ErrCustodyUnderfunded = types.NewError(types.ErrInsufficientFunds, "staking: custody can't cover the payout")
)

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

// WithClock specifies clock used to timestamp stakes and accrue rewards.
func WithClock(clock clockwork.Clock) Opt {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithReporter specifies where notifications about stakes are sent.
func WithReporter(reporter *events.Reporter) Opt {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// Engine keeps one stake per participant. Staked tokens are moved to the custody
// account of the ledger and released together with the reward on unstake.
type Engine struct {
	logger   *zap.Logger
	cfg      Config
	clock    clockwork.Clock
	reporter *events.Reporter

	db     *sql.Database
	ledger ledger.TokenLedger
	access *access.Control

	// mu serializes mutations. Queries read the database directly.
	mu sync.Mutex
}

// New creates a staking engine.
func New(db *sql.Database, tl ledger.TokenLedger, ac *access.Control, opts ...Opt) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
		clock:  clockwork.NewRealClock(),
		db:     db,
		ledger: tl,
		access: ac,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stake moves amount from participant to custody and records the stake.
// Participant must have approved custody to spend amount on the ledger.
func (e *Engine) Stake(ctx context.Context, participant types.Address, amount *big.Int) (*types.Stake, error) {
	if !types.Positive(amount) {
		return nil, ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	stake := &types.Stake{
		Participant: participant,
		Principal:   new(big.Int).Set(amount),
		StartTime:   e.clock.Now(),
	}
	transferred := false
	err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		exists, err := stakes.Has(tx, participant)
		if err != nil {
			return err
		}
		if exists {
			return ErrStakeExists
		}
		if err := stakes.Add(tx, stake); err != nil {
			return err
		}
		if err := e.ledger.TransferFrom(ctx, e.cfg.Custody, participant, e.cfg.Custody, amount); err != nil {
			return err
		}
		transferred = true
		return nil
	})
	if err != nil {
		if transferred {
			e.refund(ctx, participant, amount, err)
		}
		return nil, fmt.Errorf("stake %s: %w", participant, err)
	}
	stakeOps.Inc()
	e.updateMetrics()
	e.logger.Info("staked", zap.Inline(stake))
	e.reporter.EmitStaked(participant, amount, stake.StartTime)
	return stake, nil
}

// refund returns tokens that reached custody when the stake itself wasn't recorded.
func (e *Engine) refund(ctx context.Context, participant types.Address, amount *big.Int, cause error) {
	if err := e.ledger.Transfer(ctx, e.cfg.Custody, participant, amount); err != nil {
		e.logger.Error("failed to refund tokens after failed stake",
			log.ZAddress("participant", participant),
			log.ZAmount("amount", amount),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	e.logger.Warn("refunded tokens after failed stake",
		log.ZAddress("participant", participant),
		log.ZAmount("amount", amount),
		zap.NamedError("cause", cause),
	)
}

// Unstake releases principal and reward to the participant and removes the stake.
// If custody can't cover the payout the stake is kept and ErrCustodyUnderfunded is returned.
//
// The stake is removed and the payout recorded before tokens leave custody. If the transfer
// fails both are restored, so tokens are never paid for a stake that is still recorded.
func (e *Engine) Unstake(ctx context.Context, participant types.Address) (*types.Payout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var (
		stake  *types.Stake
		payout *types.Payout
	)
	err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		stake, err = e.stake(tx, participant)
		if err != nil {
			return err
		}
		if unlock := stake.StartTime.Add(e.cfg.LockPeriod); now.Before(unlock) {
			return fmt.Errorf("%w: unlocks in %v", ErrLockNotEnded, unlock.Sub(now))
		}
		payout = &types.Payout{
			Participant: participant,
			Principal:   stake.Principal,
			Reward:      e.cfg.Reward(stake.Principal, stake.Elapsed(now)),
			StakedAt:    stake.StartTime,
			PaidAt:      now,
		}
		if err := stakes.Delete(tx, participant); err != nil {
			return err
		}
		return payouts.Add(tx, payout)
	})
	if err == nil {
		if err = e.ledger.Transfer(ctx, e.cfg.Custody, participant, payout.Total()); err != nil {
			e.restore(ctx, stake, payout, err)
			if errors.Is(err, types.ErrInsufficientFunds) {
				err = fmt.Errorf("%w: %w", ErrCustodyUnderfunded, err)
			}
		}
	}
	switch {
	case errors.Is(err, ErrCustodyUnderfunded):
		underfunded.Inc()
		e.logger.Error("custody is underfunded",
			log.ZAddress("custody", e.cfg.Custody),
			zap.Inline(payout),
			zap.Error(err),
		)
		return nil, fmt.Errorf("unstake %s: %w", participant, err)
	case err != nil:
		return nil, fmt.Errorf("unstake %s: %w", participant, err)
	}
	unstakeOps.Inc()
	rewardsPaid.Add(types.TokenFloat(payout.Reward))
	e.updateMetrics()
	e.logger.Info("unstaked", zap.Inline(payout))
	e.reporter.EmitUnstaked(payout)
	return payout, nil
}

func (e *Engine) stake(db sql.Executor, participant types.Address) (*types.Stake, error) {
	stake, err := stakes.Get(db, participant)
	if errors.Is(err, sql.ErrNotFound) {
		return nil, ErrNoStakeFound
	}
	return stake, err
}

// restore puts back the stake and drops the payout record after a failed payout transfer.
func (e *Engine) restore(ctx context.Context, stake *types.Stake, payout *types.Payout, cause error) {
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := stakes.Add(tx, stake); err != nil {
			return err
		}
		return payouts.Delete(tx, payout.Participant, payout.PaidAt)
	}); err != nil {
		e.logger.Error("failed to restore stake after failed payout",
			zap.Inline(stake),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}

// GetStake returns the active stake of the participant.
func (e *Engine) GetStake(_ context.Context, participant types.Address) (*types.Stake, error) {
	return e.stake(e.db, participant)
}

// CalculateReward returns the reward the participant would receive if the stake was released now.
func (e *Engine) CalculateReward(_ context.Context, participant types.Address) (*big.Int, error) {
	stake, err := e.stake(e.db, participant)
	if err != nil {
		return nil, err
	}
	return e.cfg.Reward(stake.Principal, stake.Elapsed(e.clock.Now())), nil
}

// UnlockTime returns the earliest time the stake of the participant can be released.
func (e *Engine) UnlockTime(_ context.Context, participant types.Address) (time.Time, error) {
	stake, err := e.stake(e.db, participant)
	if err != nil {
		return time.Time{}, err
	}
	return stake.StartTime.Add(e.cfg.LockPeriod), nil
}

// Fund moves amount from operator to custody to cover future rewards.
// Operator must have approved custody to spend amount on the ledger.
func (e *Engine) Fund(ctx context.Context, operator types.Address, amount *big.Int) error {
	if err := e.access.Require(access.RoleOperator, operator); err != nil {
		return err
	}
	if !types.Positive(amount) {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.TransferFrom(ctx, e.cfg.Custody, operator, e.cfg.Custody, amount); err != nil {
		return fmt.Errorf("fund custody from %s: %w", operator, err)
	}
	fundOps.Inc()
	e.logger.Info("custody funded",
		log.ZAddress("operator", operator),
		log.ZAmount("amount", amount),
	)
	e.reporter.EmitCustodyFunded(operator, amount)
	return nil
}

// Reserve returns custody balance that is not owed as principal. Negative if custody
// doesn't even hold the principals.
func (e *Engine) Reserve(ctx context.Context) (*big.Int, error) {
	balance, err := e.ledger.BalanceOf(ctx, e.cfg.Custody)
	if err != nil {
		return nil, fmt.Errorf("custody balance: %w", err)
	}
	total, _, err := stakes.Total(e.db)
	if err != nil {
		return nil, err
	}
	return balance.Sub(balance, total), nil
}

// Payouts returns the history of payouts to the participant, oldest first.
func (e *Engine) Payouts(_ context.Context, participant types.Address) ([]*types.Payout, error) {
	return payouts.FilterByAddress(e.db, participant)
}

// TotalStaked returns the sum of active principals and the number of active stakes.
func (e *Engine) TotalStaked(_ context.Context) (*big.Int, int, error) {
	return stakes.Total(e.db)
}

// Stakes calls fn for every active stake until fn returns false.
func (e *Engine) Stakes(_ context.Context, fn func(*types.Stake) bool) error {
	return stakes.IterateAll(e.db, fn)
}

func (e *Engine) updateMetrics() {
	total, count, err := stakes.Total(e.db)
	if err != nil {
		e.logger.Warn("failed to read total stake", zap.Error(err))
		return
	}
	stakedGauge.Set(types.TokenFloat(total))
	activeStakes.Set(float64(count))
}
