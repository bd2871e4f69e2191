package sql

import (
	"fmt"
	"math/big"
	"time"
)

// BindBigInt binds v as decimal text. Nil is bound as zero.
func BindBigInt(stmt *Statement, col int, v *big.Int) {
	if v == nil {
		stmt.BindText(col, "0")
		return
	}
	stmt.BindText(col, v.String())
}

// ColumnBigInt decodes decimal text written by BindBigInt.
func ColumnBigInt(stmt *Statement, col int) (*big.Int, error) {
	if IsNull(stmt, col) {
		return new(big.Int), nil
	}
	text := stmt.ColumnText(col)
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("column %d: malformed integer %q", col, text)
	}
	return v, nil
}

// BindTime binds t as unix nanoseconds.
func BindTime(stmt *Statement, col int, t time.Time) {
	stmt.BindInt64(col, t.UnixNano())
}

// ColumnTime decodes unix nanoseconds into UTC time. Null is decoded as zero time.
func ColumnTime(stmt *Statement, col int) time.Time {
	if IsNull(stmt, col) {
		return time.Time{}
	}
	return time.Unix(0, stmt.ColumnInt64(col)).UTC()
}
