package etherscan

import (
	"context"

	"github.com/poolwatch/poolfee-backend/internal/model"
)

type IEtherscan interface {
	// GetBlockNumberByTimestamp returns the number of the first block mined
	// at or after the given unix timestamp (seconds).
	GetBlockNumberByTimestamp(ctx context.Context, timestamp int64) (int64, error)

	// GetTransactions returns one page of transfer events for the pool's
	// contract within the block range, most recent first. A zero Page or
	// Offset falls back to the defaults (1 and 100).
	GetTransactions(ctx context.Context, q TransactionQuery) ([]model.PoolTransaction, error)

	// GetAllTransactions pages through GetTransactions until an empty page.
	GetAllTransactions(ctx context.Context, startBlock, endBlock int64, pool string) ([]model.PoolTransaction, error)
}
