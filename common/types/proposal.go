package types

import (
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

// ProposalID is a sequential identifier of a proposal, starting at 0.
type ProposalID uint64

// String implements fmt.Stringer.
func (id ProposalID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ProposalStatus is a position of the proposal in its lifecycle.
type ProposalStatus uint8

const (
	// ProposalOpen accepts votes until the deadline.
	ProposalOpen ProposalStatus = iota
	// ProposalExecutable is past the deadline and satisfies current quorum and majority.
	ProposalExecutable
	// ProposalFailed is past the deadline and doesn't satisfy current quorum or majority.
	// It becomes executable if the thresholds are lowered.
	ProposalFailed
	// ProposalExecuted was executed. Terminal.
	ProposalExecuted
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalOpen:
		return "open"
	case ProposalExecutable:
		return "executable"
	case ProposalFailed:
		return "failed"
	case ProposalExecuted:
		return "executed"
	}
	return "unknown"
}

// Proposal is a governance proposal together with its tally.
//
// VotingDeadline is computed from the voting period at creation and never changes.
// Quorum and majority are not part of the proposal, the tally is checked against
// the parameters in effect at execution.
type Proposal struct {
	ID             ProposalID
	Creator        Address
	Description    string
	CreatedAt      time.Time
	VotingDeadline time.Time
	YesWeight      *big.Int
	NoWeight       *big.Int
	Executed       bool
	ExecutedAt     time.Time
}

// Total returns yes + no weight.
func (p *Proposal) Total() *big.Int {
	return new(big.Int).Add(p.YesWeight, p.NoWeight)
}

// Open returns true while votes are accepted.
func (p *Proposal) Open(now time.Time) bool {
	return now.Before(p.VotingDeadline)
}

// Passed returns true if the tally satisfies quorum and majority of params.
// A nil quorum is treated as zero.
func (p *Proposal) Passed(params GovernanceParams) bool {
	total := p.Total()
	if params.Quorum != nil && total.Cmp(params.Quorum) < 0 {
		return false
	}
	yes := new(big.Int).Mul(p.YesWeight, big.NewInt(100))
	required := new(big.Int).Mul(new(big.Int).SetUint64(params.Majority), total)
	return yes.Cmp(required) >= 0
}

// Status returns the lifecycle position at now under params.
func (p *Proposal) Status(now time.Time, params GovernanceParams) ProposalStatus {
	switch {
	case p.Executed:
		return ProposalExecuted
	case p.Open(now):
		return ProposalOpen
	case p.Passed(params):
		return ProposalExecutable
	default:
		return ProposalFailed
	}
}

// MarshalLogObject implements logging interface.
func (p *Proposal) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("id", uint64(p.ID))
	encoder.AddString("creator", p.Creator.String())
	encoder.AddTime("deadline", p.VotingDeadline)
	encoder.AddString("yes", p.YesWeight.String())
	encoder.AddString("no", p.NoWeight.String())
	encoder.AddBool("executed", p.Executed)
	return nil
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() *Proposal {
	c := *p
	if p.YesWeight != nil {
		c.YesWeight = new(big.Int).Set(p.YesWeight)
	}
	if p.NoWeight != nil {
		c.NoWeight = new(big.Int).Set(p.NoWeight)
	}
	return &c
}

// Ballot is a single vote on a proposal.
type Ballot struct {
	Proposal ProposalID
	Voter    Address
	Support  bool
	Weight   *big.Int
	CastAt   time.Time
}

// MarshalLogObject implements logging interface.
func (b *Ballot) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("proposal", uint64(b.Proposal))
	encoder.AddString("voter", b.Voter.String())
	encoder.AddBool("support", b.Support)
	encoder.AddString("weight", b.Weight.String())
	return nil
}
