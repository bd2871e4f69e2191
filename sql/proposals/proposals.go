package proposals

import (
	"fmt"
	"math/big"
	"time"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

const fields = `id, creator, description, created_at, deadline,
	yes_weight, no_weight, executed, executed_at`

// NextID returns the id that will be assigned to the next proposal.
func NextID(db sql.Executor) (types.ProposalID, error) {
	var id types.ProposalID
	if _, err := db.Exec("select coalesce(max(id) + 1, 0) from proposals;", nil,
		func(stmt *sql.Statement) bool {
			id = types.ProposalID(stmt.ColumnInt64(0))
			return true
		}); err != nil {
		return 0, fmt.Errorf("next proposal id: %w", err)
	}
	return id, nil
}

// Add inserts a proposal. Fails with sql.ErrObjectExists if id is taken.
func Add(db sql.Executor, p *types.Proposal) error {
	if _, err := db.Exec(`insert into proposals
			(id, creator, description, created_at, deadline, yes_weight, no_weight)
			values (?1, ?2, ?3, ?4, ?5, ?6, ?7);`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(p.ID))
			stmt.BindText(2, p.Creator.String())
			stmt.BindText(3, p.Description)
			sql.BindTime(stmt, 4, p.CreatedAt)
			sql.BindTime(stmt, 5, p.VotingDeadline)
			sql.BindBigInt(stmt, 6, p.YesWeight)
			sql.BindBigInt(stmt, 7, p.NoWeight)
		}, nil); err != nil {
		return fmt.Errorf("insert proposal %d: %w", p.ID, err)
	}
	return nil
}

func decodeProposal(stmt *sql.Statement) (*types.Proposal, error) {
	p := &types.Proposal{
		ID:             types.ProposalID(stmt.ColumnInt64(0)),
		Creator:        types.Address(stmt.ColumnText(1)),
		Description:    stmt.ColumnText(2),
		CreatedAt:      sql.ColumnTime(stmt, 3),
		VotingDeadline: sql.ColumnTime(stmt, 4),
		Executed:       stmt.ColumnInt(7) != 0,
		ExecutedAt:     sql.ColumnTime(stmt, 8),
	}
	var err error
	if p.YesWeight, err = sql.ColumnBigInt(stmt, 5); err != nil {
		return nil, err
	}
	if p.NoWeight, err = sql.ColumnBigInt(stmt, 6); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the proposal or sql.ErrNotFound.
func Get(db sql.Executor, id types.ProposalID) (*types.Proposal, error) {
	var (
		p    *types.Proposal
		derr error
	)
	rows, err := db.Exec("select "+fields+" from proposals where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
		}, func(stmt *sql.Statement) bool {
			p, derr = decodeProposal(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get proposal %d: %w", id, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("proposal %d: %w", id, sql.ErrNotFound)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode proposal %d: %w", id, derr)
	}
	return p, nil
}

func list(db sql.Executor, query string, enc sql.Encoder) (rst []*types.Proposal, err error) {
	var derr error
	if _, err := db.Exec(query, enc, func(stmt *sql.Statement) bool {
		var p *types.Proposal
		p, derr = decodeProposal(stmt)
		if derr != nil {
			return false
		}
		rst = append(rst, p)
		return true
	}); err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode proposal: %w", derr)
	}
	return rst, nil
}

// List returns up to limit proposals starting from id from, ordered by id.
// Limit 0 returns all proposals.
func List(db sql.Executor, from types.ProposalID, limit int) ([]*types.Proposal, error) {
	if limit <= 0 {
		limit = -1
	}
	return list(db, "select "+fields+" from proposals where id >= ?1 order by id limit ?2;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(from))
			stmt.BindInt64(2, int64(limit))
		})
}

// Closed returns proposals that are past the deadline at now and not executed.
func Closed(db sql.Executor, now time.Time) ([]*types.Proposal, error) {
	return list(db, "select "+fields+" from proposals where executed = 0 and deadline <= ?1 order by id;",
		func(stmt *sql.Statement) {
			sql.BindTime(stmt, 1, now)
		})
}

// SetTally overwrites yes and no weight of the proposal.
func SetTally(db sql.Executor, id types.ProposalID, yes, no *big.Int) error {
	rows, err := db.Exec("update proposals set yes_weight = ?2, no_weight = ?3 where id = ?1 returning id;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
			sql.BindBigInt(stmt, 2, yes)
			sql.BindBigInt(stmt, 3, no)
		}, nil)
	if err != nil {
		return fmt.Errorf("set tally %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("proposal %d: %w", id, sql.ErrNotFound)
	}
	return nil
}

// SetExecuted marks the proposal as executed at the given time.
// Fails with sql.ErrNotFound if proposal is unknown or already executed.
func SetExecuted(db sql.Executor, id types.ProposalID, at time.Time) error {
	rows, err := db.Exec("update proposals set executed = 1, executed_at = ?2 where id = ?1 and executed = 0 returning id;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
			sql.BindTime(stmt, 2, at)
		}, nil)
	if err != nil {
		return fmt.Errorf("set executed %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("executable proposal %d: %w", id, sql.ErrNotFound)
	}
	return nil
}

// Count returns the number of proposals.
func Count(db sql.Executor) (int, error) {
	var n int
	if _, err := db.Exec("select count(*) from proposals;", nil, func(stmt *sql.Statement) bool {
		n = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("count proposals: %w", err)
	}
	return n, nil
}
