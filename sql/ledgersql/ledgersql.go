// Package ledgersql opens the database of the reference token ledger.
package ledgersql

import (
	"embed"
	"io/fs"

	"github.com/peocoin/go-peocoin/sql"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns migrations of the ledger database.
func Migrations() (sql.Migrations, error) {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return nil, err
	}
	return sql.SQLMigrations(sub)
}

// Open opens a ledger database.
func Open(uri string, opts ...sql.Opt) (*sql.Database, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}
	opts = append([]sql.Opt{sql.WithMigrations(migrations)}, opts...)
	return sql.Open(uri, opts...)
}

// InMemory opens an in-memory ledger database.
func InMemory(opts ...sql.Opt) *sql.Database {
	migrations, err := Migrations()
	if err != nil {
		panic(err)
	}
	opts = append([]sql.Opt{sql.WithMigrations(migrations)}, opts...)
	return sql.InMemory(opts...)
}
