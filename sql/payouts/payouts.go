package payouts

import (
	"fmt"
	"math/big"
	"time"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

// Add payout to the database.
func Add(db sql.Executor, p *types.Payout) error {
	if _, err := db.Exec(`insert into payouts
			(address, principal, reward, staked_at, paid_at)
			values (?1, ?2, ?3, ?4, ?5);`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, p.Participant.String())
			sql.BindBigInt(stmt, 2, p.Principal)
			sql.BindBigInt(stmt, 3, p.Reward)
			sql.BindTime(stmt, 4, p.StakedAt)
			sql.BindTime(stmt, 5, p.PaidAt)
		}, nil); err != nil {
		return fmt.Errorf("insert payout %s: %w", p.Participant, err)
	}
	return nil
}

// Delete removes the payout of the address made at paidAt.
// Fails with sql.ErrNotFound if there is none.
func Delete(db sql.Executor, address types.Address, paidAt time.Time) error {
	rows, err := db.Exec("delete from payouts where address = ?1 and paid_at = ?2 returning address;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, address.String())
			sql.BindTime(stmt, 2, paidAt)
		}, nil)
	if err != nil {
		return fmt.Errorf("delete payout %s: %w", address, err)
	}
	if rows == 0 {
		return fmt.Errorf("payout %s at %v: %w", address, paidAt, sql.ErrNotFound)
	}
	return nil
}

// order of fields - address, principal, reward, staked_at, paid_at.
func decodePayout(stmt *sql.Statement) (*types.Payout, error) {
	p := &types.Payout{
		Participant: types.Address(stmt.ColumnText(0)),
		StakedAt:    sql.ColumnTime(stmt, 3),
		PaidAt:      sql.ColumnTime(stmt, 4),
	}
	var err error
	if p.Principal, err = sql.ColumnBigInt(stmt, 1); err != nil {
		return nil, err
	}
	if p.Reward, err = sql.ColumnBigInt(stmt, 2); err != nil {
		return nil, err
	}
	return p, nil
}

// FilterByAddress returns payouts of the address ordered by payment time.
func FilterByAddress(db sql.Executor, address types.Address) (rst []*types.Payout, err error) {
	if _, err := db.Exec(`select address, principal, reward, staked_at, paid_at from payouts
			where address = ?1 order by paid_at;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, address.String())
		}, func(stmt *sql.Statement) bool {
			var p *types.Payout
			p, err = decodePayout(stmt)
			if err != nil {
				return false
			}
			rst = append(rst, p)
			return true
		},
	); err != nil {
		return nil, fmt.Errorf("payouts of %s: %w", address, err)
	}
	return rst, err
}

// All returns every payout ordered by payment time.
func All(db sql.Executor) (rst []*types.Payout, err error) {
	if _, err := db.Exec(`select address, principal, reward, staked_at, paid_at from payouts
			order by paid_at, address;`, nil,
		func(stmt *sql.Statement) bool {
			var p *types.Payout
			p, err = decodePayout(stmt)
			if err != nil {
				return false
			}
			rst = append(rst, p)
			return true
		},
	); err != nil {
		return nil, fmt.Errorf("all payouts: %w", err)
	}
	return rst, err
}

// Total returns the sum of rewards paid to the address.
func Total(db sql.Executor, address types.Address) (*big.Int, error) {
	all, err := FilterByAddress(db, address)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, p := range all {
		total.Add(total, p.Reward)
	}
	return total, nil
}
