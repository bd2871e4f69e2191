package ledger

import (
	"context"
	"math/big"

	"github.com/peocoin/go-peocoin/common/types"
)

//go:generate mockgen -typed -package=ledger -destination=./mocks.go -source=./interface.go

// TokenLedger is the balance custody and transfer primitive consumed by the engines.
type TokenLedger interface {
	BalanceOf(ctx context.Context, addr types.Address) (*big.Int, error)
	Transfer(ctx context.Context, from, to types.Address, amount *big.Int) error
	TransferFrom(ctx context.Context, spender, from, to types.Address, amount *big.Int) error
}
