package events

import (
	"time"

	"github.com/peocoin/go-peocoin/common/types"
)

type EventType string

const (
	TypeStaked            EventType = "Staked"
	TypeUnstaked          EventType = "Unstaked"
	TypeCustodyFunded     EventType = "Custody Funded"
	TypeProposalCreated   EventType = "Proposal Created"
	TypeVoteCast          EventType = "Vote Cast"
	TypeProposalExecuted  EventType = "Proposal Executed"
	TypeWeightsUpdated    EventType = "Weights Updated"
	TypeParametersUpdated EventType = "Parameters Updated"
)

// Event is a notification about a successful mutation.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Help      string    `json:"help"`
	Type      EventType `json:"type"`
	Details   any       `json:"details"`
}

type EventStaked struct {
	Participant types.Address `json:"participant"`
	Amount      string        `json:"amount"`
	StartTime   time.Time     `json:"start_time"`
}

type EventUnstaked struct {
	Participant types.Address `json:"participant"`
	Principal   string        `json:"principal"`
	Reward      string        `json:"reward"`
}

type EventCustodyFunded struct {
	Operator types.Address `json:"operator"`
	Amount   string        `json:"amount"`
}

type EventProposalCreated struct {
	ID             types.ProposalID `json:"id"`
	Creator        types.Address    `json:"creator"`
	VotingDeadline time.Time        `json:"voting_deadline"`
}

type EventVoteCast struct {
	ID      types.ProposalID `json:"id"`
	Voter   types.Address    `json:"voter"`
	Support bool             `json:"support"`
	Weight  string           `json:"weight"`
}

type EventProposalExecuted struct {
	ID  types.ProposalID `json:"id"`
	Yes string           `json:"yes"`
	No  string           `json:"no"`
}

type EventWeightsUpdated struct {
	Operator types.Address      `json:"operator"`
	Weights  types.ScoreWeights `json:"weights"`
}

type EventParametersUpdated struct {
	Operator     types.Address `json:"operator"`
	VotingPeriod time.Duration `json:"voting_period"`
	Quorum       string        `json:"quorum"`
	Majority     uint64        `json:"majority"`
}
