package governance

import (
	"context"
	"math/big"

	"github.com/peocoin/go-peocoin/common/types"
)

//go:generate mockgen -typed -package=governance -destination=./mocks.go -source=./interface.go

type scorer interface {
	Score(ctx context.Context, participant types.Address) (*big.Int, error)
}

type balanceReader interface {
	BalanceOf(ctx context.Context, addr types.Address) (*big.Int, error)
}
