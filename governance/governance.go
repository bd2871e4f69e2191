// Package governance runs the proposal lifecycle: creation by token holders, votes weighted
// by contribution score, and execution once voting closes with quorum and majority.
package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/events"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/ballots"
	"github.com/peocoin/go-peocoin/sql/params"
	"github.com/peocoin/go-peocoin/sql/proposals"
)

var (
	// ErrNotEligible is returned when a creator without tokens submits a proposal.
	ErrNotEligible = types.NewError(types.ErrUnauthorized, "governance: creator holds no tokens")
	// ErrProposalNotFound is returned for unknown proposal ids.
	ErrProposalNotFound = types.NewError(types.ErrNotFound, "governance: proposal not found")
	// ErrVotingClosed is returned when voting after the deadline.
	ErrVotingClosed = types.NewError(types.ErrTemporalViolation, "governance: voting closed")
	// ErrVotingStillOpen is returned when executing before the deadline.
	ErrVotingStillOpen = types.NewError(types.ErrTemporalViolation, "governance: voting still open")
	// ErrAlreadyVoted is returned on a second vote of the same participant.
	ErrAlreadyVoted = types.NewError(types.ErrAlreadyDone, "governance: already voted")
	// ErrAlreadyExecuted is returned when executing an executed proposal.
	ErrAlreadyExecuted = types.NewError(types.ErrAlreadyDone, "governance: proposal already executed")
	// ErrZeroWeight is returned when the voter has zero score.
	ErrZeroWeight = types.NewError(types.ErrUnauthorized, "governance: voter has zero weight")
	// ErrInvalidParameters is returned by UpdateParameters.
	ErrInvalidParameters = types.NewError(types.ErrInvalidAmount, "governance: invalid parameters")
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

// WithClock specifies clock for deadlines.
func WithClock(clock clockwork.Clock) Opt {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithReporter specifies where notifications about proposals are sent.
func WithReporter(reporter *events.Reporter) Opt {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// Engine stores proposals and ballots in the database.
type Engine struct {
	logger   *zap.Logger
	cfg      Config
	clock    clockwork.Clock
	reporter *events.Reporter

	db       *sql.Database
	scorer   scorer
	balances balanceReader
	access   *access.Control

	// executed proposals never change.
	executedCache *lru.Cache[types.ProposalID, *types.Proposal]

	// mu serializes mutations. params is guarded by it as well.
	mu     sync.Mutex
	params types.GovernanceParams
}

// New creates a governance engine. Parameters are loaded from the database, or persisted
// from the config if the database has none.
func New(
	db *sql.Database,
	scorer scorer,
	balances balanceReader,
	ac *access.Control,
	opts ...Opt,
) (*Engine, error) {
	e := &Engine{
		logger:   zap.NewNop(),
		cfg:      DefaultConfig(),
		clock:    clockwork.NewRealClock(),
		db:       db,
		scorer:   scorer,
		balances: balances,
		access:   ac,
	}
	for _, opt := range opts {
		opt(e)
	}
	cache, err := lru.New[types.ProposalID, *types.Proposal](max(e.cfg.CacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("create proposals cache: %w", err)
	}
	e.executedCache = cache

	p, err := params.Governance(db)
	switch {
	case errors.Is(err, sql.ErrNotFound):
		p = e.cfg.Params()
		if err := validateParams(p); err != nil {
			return nil, err
		}
		if err := params.SetGovernance(db, p); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	e.params = p
	e.logger.Info("loaded governance parameters", zap.Object("parameters", p))
	return e, nil
}

// Parameters returns the current parameters. The voting period applies to new proposals,
// quorum and majority to every following execution.
func (e *Engine) Parameters() types.GovernanceParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// CreateProposal creates a proposal that accepts votes for the current voting period.
// Creator must hold tokens.
func (e *Engine) CreateProposal(ctx context.Context, creator types.Address, description string) (*types.Proposal, error) {
	balance, err := e.balances.BalanceOf(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", creator, err)
	}
	if balance.Sign() == 0 {
		return nil, ErrNotEligible
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	p := &types.Proposal{
		Creator:        creator,
		Description:    description,
		CreatedAt:      now,
		VotingDeadline: now.Add(e.params.VotingPeriod),
		YesWeight:      new(big.Int),
		NoWeight:       new(big.Int),
	}
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		id, err := proposals.NextID(tx)
		if err != nil {
			return err
		}
		p.ID = id
		return proposals.Add(tx, p)
	}); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	proposalsCreated.Inc()
	e.logger.Info("proposal created", zap.Inline(p))
	e.reporter.EmitProposalCreated(p)
	return p, nil
}

func (e *Engine) proposal(db sql.Executor, id types.ProposalID) (*types.Proposal, error) {
	if p, ok := e.executedCache.Get(id); ok {
		return p.Copy(), nil
	}
	p, err := proposals.Get(db, id)
	if errors.Is(err, sql.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrProposalNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if p.Executed {
		e.executedCache.Add(id, p.Copy())
	}
	return p, nil
}

// Vote adds the current score of the voter to yes or no weight of an open proposal.
// Each participant votes at most once per proposal.
func (e *Engine) Vote(ctx context.Context, id types.ProposalID, voter types.Address, support bool) (*types.Ballot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	p, err := e.proposal(e.db, id)
	if err != nil {
		return nil, err
	}
	if !p.Open(now) {
		return nil, fmt.Errorf("%w: proposal %d closed at %v", ErrVotingClosed, id, p.VotingDeadline)
	}
	voted, err := ballots.Has(e.db, id, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}
	weight, err := e.scorer.Score(ctx, voter)
	if err != nil {
		return nil, fmt.Errorf("score of %s: %w", voter, err)
	}
	if weight.Sign() <= 0 {
		return nil, ErrZeroWeight
	}

	ballot := &types.Ballot{
		Proposal: id,
		Voter:    voter,
		Support:  support,
		Weight:   weight,
		CastAt:   now,
	}
	yes, no := new(big.Int).Set(p.YesWeight), new(big.Int).Set(p.NoWeight)
	if support {
		yes.Add(yes, weight)
	} else {
		no.Add(no, weight)
	}
	err = e.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := ballots.Add(tx, ballot); err != nil {
			return err
		}
		return proposals.SetTally(tx, id, yes, no)
	})
	switch {
	case errors.Is(err, sql.ErrObjectExists):
		return nil, ErrAlreadyVoted
	case err != nil:
		return nil, fmt.Errorf("vote on %d: %w", id, err)
	}
	if support {
		yesVotes.Inc()
	} else {
		noVotes.Inc()
	}
	e.logger.Info("vote cast", zap.Inline(ballot))
	e.reporter.EmitVoteCast(ballot)
	return ballot, nil
}

// ExecuteProposal executes a closed proposal whose tally satisfies quorum and majority of
// the current parameters. Returns false without error if it doesn't, the proposal stays
// non-executed and may be executed later if the thresholds are lowered.
func (e *Engine) ExecuteProposal(ctx context.Context, id types.ProposalID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.execute(ctx, id, e.clock.Now())
}

func (e *Engine) execute(ctx context.Context, id types.ProposalID, now time.Time) (bool, error) {
	p, err := e.proposal(e.db, id)
	if err != nil {
		return false, err
	}
	if p.Open(now) {
		return false, fmt.Errorf("%w: proposal %d closes at %v", ErrVotingStillOpen, id, p.VotingDeadline)
	}
	if p.Executed {
		return false, ErrAlreadyExecuted
	}
	if !p.Passed(e.params) {
		notExecuted.Inc()
		e.logger.Debug("proposal didn't pass", zap.Inline(p), zap.Object("parameters", e.params))
		return false, nil
	}
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		return proposals.SetExecuted(tx, id, now)
	}); err != nil {
		return false, fmt.Errorf("execute %d: %w", id, err)
	}
	p.Executed = true
	p.ExecutedAt = now
	e.executedCache.Add(id, p.Copy())
	executed.Inc()
	e.logger.Info("proposal executed", zap.Inline(p))
	e.reporter.EmitProposalExecuted(p)
	return true, nil
}

// UpdateParameters replaces governance parameters. Deadlines of existing proposals keep
// the voting period they were created with, quorum and majority apply to every execution
// from now on. Caller must hold access.RoleOperator.
func (e *Engine) UpdateParameters(ctx context.Context, caller types.Address, p types.GovernanceParams) error {
	if err := e.access.Require(access.RoleOperator, caller); err != nil {
		return err
	}
	if err := validateParams(p); err != nil {
		return err
	}
	p.Quorum = new(big.Int).Set(p.Quorum)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		return params.SetGovernance(tx, p)
	}); err != nil {
		return fmt.Errorf("update parameters: %w", err)
	}
	previous := e.params
	e.params = p
	e.logger.Info("governance parameters updated",
		log.ZAddress("operator", caller),
		zap.Object("previous", previous),
		zap.Object("parameters", p),
	)
	e.reporter.EmitParametersUpdated(caller, p)
	return nil
}

// Proposal returns the proposal with its current tally.
func (e *Engine) Proposal(_ context.Context, id types.ProposalID) (*types.Proposal, error) {
	return e.proposal(e.db, id)
}

// Proposals returns up to limit proposals starting from id, ordered by id. Limit 0 returns all.
func (e *Engine) Proposals(_ context.Context, from types.ProposalID, limit int) ([]*types.Proposal, error) {
	return proposals.List(e.db, from, limit)
}

// Ballots returns ballots cast on the proposal.
func (e *Engine) Ballots(_ context.Context, id types.ProposalID) ([]*types.Ballot, error) {
	if _, err := e.proposal(e.db, id); err != nil {
		return nil, err
	}
	return ballots.ForProposal(e.db, id)
}

// HasVoted returns true if voter voted on the proposal.
func (e *Engine) HasVoted(_ context.Context, id types.ProposalID, voter types.Address) (bool, error) {
	return ballots.Has(e.db, id, voter)
}

// Status returns the lifecycle position of the proposal at the current time.
func (e *Engine) Status(_ context.Context, id types.ProposalID) (types.ProposalStatus, error) {
	p, err := e.proposal(e.db, id)
	if err != nil {
		return 0, err
	}
	return p.Status(e.clock.Now(), e.Parameters()), nil
}
