package balances

import (
	"fmt"
	"math/big"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

// Get returns the balance of the address. Unknown addresses hold zero.
func Get(db sql.Executor, address types.Address) (*big.Int, error) {
	var (
		balance = new(big.Int)
		derr    error
	)
	if _, err := db.Exec("select balance from balances where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, address.String())
		}, func(stmt *sql.Statement) bool {
			balance, derr = sql.ColumnBigInt(stmt, 0)
			return false
		}); err != nil {
		return nil, fmt.Errorf("balance of %s: %w", address, err)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode balance of %s: %w", address, derr)
	}
	return balance, nil
}

// Set overwrites the balance of the address. Zero balance removes the record.
func Set(db sql.Executor, address types.Address, balance *big.Int) error {
	if balance.Sign() == 0 {
		if _, err := db.Exec("delete from balances where address = ?1;",
			func(stmt *sql.Statement) {
				stmt.BindText(1, address.String())
			}, nil); err != nil {
			return fmt.Errorf("clear balance of %s: %w", address, err)
		}
		return nil
	}
	if _, err := db.Exec(`insert into balances (address, balance) values (?1, ?2)
			on conflict (address) do update set balance = ?2;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, address.String())
			sql.BindBigInt(stmt, 2, balance)
		}, nil); err != nil {
		return fmt.Errorf("set balance of %s: %w", address, err)
	}
	return nil
}

// Allowance returns the amount spender may transfer from owner.
func Allowance(db sql.Executor, owner, spender types.Address) (*big.Int, error) {
	var (
		amount = new(big.Int)
		derr   error
	)
	if _, err := db.Exec("select amount from allowances where owner = ?1 and spender = ?2;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, owner.String())
			stmt.BindText(2, spender.String())
		}, func(stmt *sql.Statement) bool {
			amount, derr = sql.ColumnBigInt(stmt, 0)
			return false
		}); err != nil {
		return nil, fmt.Errorf("allowance %s/%s: %w", owner, spender, err)
	}
	if derr != nil {
		return nil, fmt.Errorf("decode allowance %s/%s: %w", owner, spender, derr)
	}
	return amount, nil
}

// SetAllowance overwrites the allowance. Zero removes the record.
func SetAllowance(db sql.Executor, owner, spender types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		if _, err := db.Exec("delete from allowances where owner = ?1 and spender = ?2;",
			func(stmt *sql.Statement) {
				stmt.BindText(1, owner.String())
				stmt.BindText(2, spender.String())
			}, nil); err != nil {
			return fmt.Errorf("clear allowance %s/%s: %w", owner, spender, err)
		}
		return nil
	}
	if _, err := db.Exec(`insert into allowances (owner, spender, amount) values (?1, ?2, ?3)
			on conflict (owner, spender) do update set amount = ?3;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, owner.String())
			stmt.BindText(2, spender.String())
			sql.BindBigInt(stmt, 3, amount)
		}, nil); err != nil {
		return fmt.Errorf("set allowance %s/%s: %w", owner, spender, err)
	}
	return nil
}

// Supply returns the sum of all balances and the number of holders.
func Supply(db sql.Executor) (*big.Int, int, error) {
	var (
		total = new(big.Int)
		derr  error
	)
	rows, err := db.Exec("select balance from balances;", nil, func(stmt *sql.Statement) bool {
		var balance *big.Int
		balance, derr = sql.ColumnBigInt(stmt, 0)
		if derr != nil {
			return false
		}
		total.Add(total, balance)
		return true
	})
	if err != nil {
		return nil, 0, fmt.Errorf("supply: %w", err)
	}
	if derr != nil {
		return nil, 0, fmt.Errorf("decode balance: %w", derr)
	}
	return total, rows, nil
}

// Holders calls fn for every non-zero balance ordered by address, until fn returns false.
func Holders(db sql.Executor, fn func(types.Address, *big.Int) bool) error {
	var derr error
	if _, err := db.Exec("select address, balance from balances order by address;", nil,
		func(stmt *sql.Statement) bool {
			var balance *big.Int
			balance, derr = sql.ColumnBigInt(stmt, 1)
			if derr != nil {
				return false
			}
			return fn(types.Address(stmt.ColumnText(0)), balance)
		}); err != nil {
		return fmt.Errorf("iterate holders: %w", err)
	}
	if derr != nil {
		return fmt.Errorf("decode balance: %w", derr)
	}
	return nil
}
