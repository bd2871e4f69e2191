package ballots

import (
	"fmt"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

// Add records a ballot. Fails with sql.ErrObjectExists if voter already voted on the proposal.
func Add(db sql.Executor, b *types.Ballot) error {
	if _, err := db.Exec(`insert into ballots (proposal, voter, support, weight, cast_at)
			values (?1, ?2, ?3, ?4, ?5);`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(b.Proposal))
			stmt.BindText(2, b.Voter.String())
			stmt.BindBool(3, b.Support)
			sql.BindBigInt(stmt, 4, b.Weight)
			sql.BindTime(stmt, 5, b.CastAt)
		}, nil); err != nil {
		return fmt.Errorf("insert ballot %d/%s: %w", b.Proposal, b.Voter, err)
	}
	return nil
}

// Has returns true if voter voted on the proposal.
func Has(db sql.Executor, id types.ProposalID, voter types.Address) (bool, error) {
	rows, err := db.Exec("select 1 from ballots where proposal = ?1 and voter = ?2;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
			stmt.BindText(2, voter.String())
		}, nil)
	if err != nil {
		return false, fmt.Errorf("has ballot %d/%s: %w", id, voter, err)
	}
	return rows > 0, nil
}

// ForProposal returns ballots of the proposal in the order they were cast.
func ForProposal(db sql.Executor, id types.ProposalID) (rst []*types.Ballot, err error) {
	var derr error
	if _, err := db.Exec(`select voter, support, weight, cast_at from ballots
			where proposal = ?1 order by cast_at, voter;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
		}, func(stmt *sql.Statement) bool {
			b := &types.Ballot{
				Proposal: id,
				Voter:    types.Address(stmt.ColumnText(0)),
				Support:  stmt.ColumnInt(1) != 0,
				CastAt:   sql.ColumnTime(stmt, 3),
			}
			b.Weight, derr = sql.ColumnBigInt(stmt, 2)
			if derr != nil {
				return false
			}
			rst = append(rst, b)
			return true
		}); err != nil {
		return nil, fmt.Errorf("ballots for %d: %w", id, err)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode ballot: %w", derr)
	}
	return rst, nil
}
