package stakes

import (
	"fmt"
	"math/big"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

// Add inserts a stake. Fails with sql.ErrObjectExists if participant already has one.
func Add(db sql.Executor, stake *types.Stake) error {
	if _, err := db.Exec(`insert into stakes (address, principal, start_time) values (?1, ?2, ?3);`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, stake.Participant.String())
			sql.BindBigInt(stmt, 2, stake.Principal)
			sql.BindTime(stmt, 3, stake.StartTime)
		}, nil); err != nil {
		return fmt.Errorf("insert stake %s: %w", stake.Participant, err)
	}
	return nil
}

// Get returns the stake of the participant or sql.ErrNotFound.
func Get(db sql.Executor, participant types.Address) (*types.Stake, error) {
	var (
		stake *types.Stake
		derr  error
	)
	rows, err := db.Exec("select principal, start_time from stakes where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, participant.String())
		}, func(stmt *sql.Statement) bool {
			var principal *big.Int
			principal, derr = sql.ColumnBigInt(stmt, 0)
			stake = &types.Stake{
				Participant: participant,
				Principal:   principal,
				StartTime:   sql.ColumnTime(stmt, 1),
			}
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get stake %s: %w", participant, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("stake %s: %w", participant, sql.ErrNotFound)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode stake %s: %w", participant, derr)
	}
	return stake, nil
}

// Has returns true if participant has a stake.
func Has(db sql.Executor, participant types.Address) (bool, error) {
	rows, err := db.Exec("select 1 from stakes where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, participant.String())
		}, nil)
	if err != nil {
		return false, fmt.Errorf("has stake %s: %w", participant, err)
	}
	return rows > 0, nil
}

// Delete removes the stake of the participant. Fails with sql.ErrNotFound if there is none.
func Delete(db sql.Executor, participant types.Address) error {
	rows, err := db.Exec("delete from stakes where address = ?1 returning address;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, participant.String())
		}, nil)
	if err != nil {
		return fmt.Errorf("delete stake %s: %w", participant, err)
	}
	if rows == 0 {
		return fmt.Errorf("stake %s: %w", participant, sql.ErrNotFound)
	}
	return nil
}

// Total returns the sum of all principals and the number of stakes.
func Total(db sql.Executor) (*big.Int, int, error) {
	var (
		total = new(big.Int)
		derr  error
	)
	rows, err := db.Exec("select principal from stakes;", nil, func(stmt *sql.Statement) bool {
		var principal *big.Int
		principal, derr = sql.ColumnBigInt(stmt, 0)
		if derr != nil {
			return false
		}
		total.Add(total, principal)
		return true
	})
	if err != nil {
		return nil, 0, fmt.Errorf("total stakes: %w", err)
	}
	if derr != nil {
		return nil, 0, fmt.Errorf("decode principal: %w", derr)
	}
	return total, rows, nil
}

// IterateAll calls fn for every stake ordered by address, until fn returns false.
func IterateAll(db sql.Executor, fn func(*types.Stake) bool) error {
	var derr error
	_, err := db.Exec("select address, principal, start_time from stakes order by address;", nil,
		func(stmt *sql.Statement) bool {
			var principal *big.Int
			principal, derr = sql.ColumnBigInt(stmt, 1)
			if derr != nil {
				return false
			}
			return fn(&types.Stake{
				Participant: types.Address(stmt.ColumnText(0)),
				Principal:   principal,
				StartTime:   sql.ColumnTime(stmt, 2),
			})
		})
	if err != nil {
		return fmt.Errorf("iterate stakes: %w", err)
	}
	if derr != nil {
		return fmt.Errorf("decode stake: %w", derr)
	}
	return nil
}
