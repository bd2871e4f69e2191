// Package events delivers notifications about staking and governance mutations to subscribers.
package events

import (
	"math/big"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/peocoin/go-peocoin/common/types"
)

// Reporter fans out events to subscribers without blocking the emitter.
// A nil *Reporter is valid and drops every event.
type Reporter struct {
	logger *zap.Logger
	clock  clockwork.Clock

	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewReporter creates a reporter.
func NewReporter(logger *zap.Logger, clock clockwork.Clock) *Reporter {
	return &Reporter{
		logger: logger,
		clock:  clock,
		subs:   map[chan Event]struct{}{},
	}
}

// Subscribe returns a channel that receives events. Events are dropped when it is full.
func (r *Reporter) Subscribe(bufsize int) <-chan Event {
	if r == nil {
		return nil
	}
	ch := make(chan Event, bufsize)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to the channel and closes it.
func (r *Reporter) Unsubscribe(sub <-chan Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subs {
		if ch == sub {
			delete(r.subs, ch)
			close(ch)
			return
		}
	}
}

func (r *Reporter) emit(typ EventType, help string, details any) {
	if r == nil {
		return
	}
	ev := Event{
		Timestamp: r.clock.Now(),
		Help:      help,
		Type:      typ,
		Details:   details,
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for ch := range r.subs {
		select {
		case ch <- ev:
		default:
			r.logger.Debug("subscriber is full, dropping event", zap.String("type", string(typ)))
		}
	}
}

func (r *Reporter) EmitStaked(participant types.Address, amount *big.Int, start time.Time) {
	r.emit(TypeStaked,
		"Participant locked tokens in custody.",
		EventStaked{Participant: participant, Amount: amount.String(), StartTime: start},
	)
}

func (r *Reporter) EmitUnstaked(payout *types.Payout) {
	r.emit(TypeUnstaked,
		"Participant received principal and reward from custody.",
		EventUnstaked{
			Participant: payout.Participant,
			Principal:   payout.Principal.String(),
			Reward:      payout.Reward.String(),
		},
	)
}

func (r *Reporter) EmitCustodyFunded(operator types.Address, amount *big.Int) {
	r.emit(TypeCustodyFunded,
		"Operator deposited tokens to custody to cover rewards.",
		EventCustodyFunded{Operator: operator, Amount: amount.String()},
	)
}

func (r *Reporter) EmitProposalCreated(p *types.Proposal) {
	r.emit(TypeProposalCreated,
		"New proposal accepts votes until the deadline.",
		EventProposalCreated{ID: p.ID, Creator: p.Creator, VotingDeadline: p.VotingDeadline},
	)
}

func (r *Reporter) EmitVoteCast(b *types.Ballot) {
	r.emit(TypeVoteCast,
		"Participant voted on a proposal with the weight of their score.",
		EventVoteCast{ID: b.Proposal, Voter: b.Voter, Support: b.Support, Weight: b.Weight.String()},
	)
}

func (r *Reporter) EmitProposalExecuted(p *types.Proposal) {
	r.emit(TypeProposalExecuted,
		"Proposal reached quorum and majority and was executed.",
		EventProposalExecuted{ID: p.ID, Yes: p.YesWeight.String(), No: p.NoWeight.String()},
	)
}

func (r *Reporter) EmitWeightsUpdated(operator types.Address, w types.ScoreWeights) {
	r.emit(TypeWeightsUpdated,
		"Score weights were replaced. Past votes are not recomputed.",
		EventWeightsUpdated{Operator: operator, Weights: w},
	)
}

func (r *Reporter) EmitParametersUpdated(operator types.Address, p types.GovernanceParams) {
	r.emit(TypeParametersUpdated,
		"Governance parameters were replaced. Existing proposals keep their deadlines, thresholds apply to every execution.",
		EventParametersUpdated{
			Operator:     operator,
			VotingPeriod: p.VotingPeriod,
			Quorum:       p.Quorum.String(),
			Majority:     p.Majority,
		},
	)
}
