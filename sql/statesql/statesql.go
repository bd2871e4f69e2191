// Package statesql opens the database with staking, scoring and governance state.
package statesql

import (
	"embed"
	"io/fs"

	"github.com/peocoin/go-peocoin/sql"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns migrations of the state database.
func Migrations() (sql.Migrations, error) {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return nil, err
	}
	return sql.SQLMigrations(sub)
}

// Open opens a state database.
func Open(uri string, opts ...sql.Opt) (*sql.Database, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}
	opts = append([]sql.Opt{sql.WithMigrations(migrations)}, opts...)
	return sql.Open(uri, opts...)
}

// InMemory opens an in-memory state database.
func InMemory(opts ...sql.Opt) *sql.Database {
	migrations, err := Migrations()
	if err != nil {
		panic(err)
	}
	opts = append([]sql.Opt{sql.WithMigrations(migrations)}, opts...)
	return sql.InMemory(opts...)
}
