package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/scoring"
)

type stakeView struct {
	Participant types.Address `json:"participant"`
	Principal   string        `json:"principal"`
	StartTime   time.Time     `json:"start_time"`
	UnlockTime  time.Time     `json:"unlock_time"`
	Reward      string        `json:"reward,omitempty"`
}

func (app *App) stakeView(s *types.Stake) stakeView {
	return stakeView{
		Participant: s.Participant,
		Principal:   types.FormatAmount(s.Principal),
		StartTime:   s.StartTime,
		UnlockTime:  s.StartTime.Add(app.staking.Config().LockPeriod),
	}
}

type payoutView struct {
	Participant types.Address `json:"participant"`
	Principal   string        `json:"principal"`
	Reward      string        `json:"reward"`
	StakedAt    time.Time     `json:"staked_at"`
	PaidAt      time.Time     `json:"paid_at"`
}

func newPayoutView(p *types.Payout) payoutView {
	return payoutView{
		Participant: p.Participant,
		Principal:   types.FormatAmount(p.Principal),
		Reward:      types.FormatAmount(p.Reward),
		StakedAt:    p.StakedAt,
		PaidAt:      p.PaidAt,
	}
}

type scoreView struct {
	Participant  types.Address      `json:"participant"`
	Weights      types.ScoreWeights `json:"weights"`
	Balance      string             `json:"balance"`
	Principal    string             `json:"principal"`
	Duration     string             `json:"duration"`
	TokenTerm    string             `json:"token_term"`
	StakeTerm    string             `json:"stake_term"`
	DurationTerm string             `json:"duration_term"`
	Score        string             `json:"score"`
}

func newScoreView(b *scoring.Breakdown) scoreView {
	return scoreView{
		Participant:  b.Participant,
		Weights:      b.Weights,
		Balance:      types.FormatAmount(b.Balance),
		Principal:    types.FormatAmount(b.Principal),
		Duration:     b.Duration.String(),
		TokenTerm:    b.TokenTerm.String(),
		StakeTerm:    b.StakeTerm.String(),
		DurationTerm: b.DurationTerm.String(),
		Score:        b.Score().String(),
	}
}

type proposalView struct {
	ID             types.ProposalID `json:"id"`
	Creator        types.Address    `json:"creator"`
	Description    string           `json:"description"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	VotingDeadline time.Time        `json:"voting_deadline"`
	Yes            string           `json:"yes"`
	No             string           `json:"no"`
	ExecutedAt     *time.Time       `json:"executed_at,omitempty"`
}

// newProposalView reports status under params, the thresholds an execution at now would use.
func newProposalView(p *types.Proposal, now time.Time, params types.GovernanceParams) proposalView {
	v := proposalView{
		ID:             p.ID,
		Creator:        p.Creator,
		Description:    p.Description,
		Status:         p.Status(now, params).String(),
		CreatedAt:      p.CreatedAt,
		VotingDeadline: p.VotingDeadline,
		Yes:            p.YesWeight.String(),
		No:             p.NoWeight.String(),
	}
	if p.Executed {
		at := p.ExecutedAt
		v.ExecutedAt = &at
	}
	return v
}

type paramsView struct {
	VotingPeriod string `json:"voting_period"`
	Quorum       string `json:"quorum"`
	Majority     uint64 `json:"majority"`
}

func newParamsView(p types.GovernanceParams) paramsView {
	return paramsView{
		VotingPeriod: p.VotingPeriod.String(),
		Quorum:       types.FormatAmount(p.Quorum),
		Majority:     p.Majority,
	}
}

// Snapshot is a point in time view of balances, stakes and governance.
type Snapshot struct {
	Time        time.Time                `json:"time"`
	Supply      string                   `json:"supply"`
	Balances    map[types.Address]string `json:"balances"`
	TotalStaked string                   `json:"total_staked"`
	Reserve     string                   `json:"reserve"`
	Stakes      []stakeView              `json:"stakes"`
	Weights     types.ScoreWeights       `json:"weights"`
	Parameters  paramsView               `json:"parameters"`
	Proposals   []proposalView           `json:"proposals"`
}

// Snapshot collects the current state of every component.
func (app *App) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := app.clock.Now()
	params := app.governance.Parameters()
	snap := &Snapshot{
		Time:       now.UTC(),
		Balances:   map[types.Address]string{},
		Stakes:     []stakeView{},
		Weights:    app.scoring.Weights(),
		Parameters: newParamsView(params),
		Proposals:  []proposalView{},
	}
	supply, err := app.ledger.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}
	snap.Supply = types.FormatAmount(supply)
	if err := app.ledger.Holders(ctx, func(addr types.Address, balance *big.Int) bool {
		snap.Balances[addr] = types.FormatAmount(balance)
		return true
	}); err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}

	staked, _, err := app.staking.TotalStaked(ctx)
	if err != nil {
		return nil, err
	}
	snap.TotalStaked = types.FormatAmount(staked)
	reserve, err := app.staking.Reserve(ctx)
	if err != nil {
		return nil, err
	}
	snap.Reserve = types.FormatAmount(reserve)
	cfg := app.staking.Config()
	if err := app.staking.Stakes(ctx, func(s *types.Stake) bool {
		v := app.stakeView(s)
		v.Reward = types.FormatAmount(cfg.Reward(s.Principal, s.Elapsed(now)))
		snap.Stakes = append(snap.Stakes, v)
		return true
	}); err != nil {
		return nil, fmt.Errorf("stakes: %w", err)
	}

	proposals, err := app.governance.Proposals(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("proposals: %w", err)
	}
	for _, p := range proposals {
		snap.Proposals = append(snap.Proposals, newProposalView(p, now, params))
	}
	return snap, nil
}

// Export writes the snapshot to path as json. The file is replaced atomically.
func (app *App) Export(ctx context.Context, path string) (*Snapshot, error) {
	snap, err := app.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("write snapshot to %s: %w", path, err)
	}
	app.log.Info("exported snapshot",
		zap.String("path", path),
		zap.Int("accounts", len(snap.Balances)),
		zap.Int("stakes", len(snap.Stakes)),
		zap.Int("proposals", len(snap.Proposals)),
	)
	return snap, nil
}
