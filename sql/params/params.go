// Package params stores single-valued records (score weights, governance parameters)
// as json values keyed by name.
package params

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
)

const (
	weightsKey    = "score_weights"
	governanceKey = "governance_params"
)

func setValue(db sql.Executor, key string, value any) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed encoding %s: %w", key, err)
	}
	if _, err := db.Exec(`
		insert into params (id, value) values (?1, ?2)
		on conflict (id) do
		update set value = ?2;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
			stmt.BindBytes(2, buf)
		}, nil); err != nil {
		return fmt.Errorf("failed to insert %s: %w", key, err)
	}
	return nil
}

func getValue(db sql.Executor, key string, value any) error {
	var buf []byte
	if rows, err := db.Exec("select value from params where id = ?1;", func(stmt *sql.Statement) {
		stmt.BindText(1, key)
	}, func(stmt *sql.Statement) bool {
		buf = make([]byte, stmt.ColumnLen(0))
		stmt.ColumnBytes(0, buf)
		return true
	}); err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	} else if rows == 0 {
		return fmt.Errorf("%s: %w", key, sql.ErrNotFound)
	}
	if err := json.Unmarshal(buf, value); err != nil {
		return fmt.Errorf("failed decoding %s: %w", key, err)
	}
	return nil
}

// SetWeights replaces score weights.
func SetWeights(db sql.Executor, w types.ScoreWeights) error {
	return setValue(db, weightsKey, w)
}

// Weights returns score weights or sql.ErrNotFound if they were never set.
func Weights(db sql.Executor) (types.ScoreWeights, error) {
	var w types.ScoreWeights
	if err := getValue(db, weightsKey, &w); err != nil {
		return types.ScoreWeights{}, err
	}
	return w, nil
}

type governance struct {
	VotingPeriod time.Duration `json:"voting_period"`
	Quorum       string        `json:"quorum"`
	Majority     uint64        `json:"majority"`
}

// SetGovernance replaces governance parameters.
func SetGovernance(db sql.Executor, p types.GovernanceParams) error {
	quorum := "0"
	if p.Quorum != nil {
		quorum = p.Quorum.String()
	}
	return setValue(db, governanceKey, governance{
		VotingPeriod: p.VotingPeriod,
		Quorum:       quorum,
		Majority:     p.Majority,
	})
}

// Governance returns governance parameters or sql.ErrNotFound if they were never set.
func Governance(db sql.Executor) (types.GovernanceParams, error) {
	var g governance
	if err := getValue(db, governanceKey, &g); err != nil {
		return types.GovernanceParams{}, err
	}
	quorum, ok := new(big.Int).SetString(g.Quorum, 10)
	if !ok {
		return types.GovernanceParams{}, fmt.Errorf("malformed quorum %q", g.Quorum)
	}
	return types.GovernanceParams{
		VotingPeriod: g.VotingPeriod,
		Quorum:       quorum,
		Majority:     g.Majority,
	}, nil
}
