package pooltransaction

import (
	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/model"
)

// FailedInsert records one transaction that could not be persisted.
type FailedInsert struct {
	Hash   string
	Reason string
}

// BatchResult tallies a best-effort batch insert.
type BatchResult struct {
	Inserted int
	Failed   []FailedInsert
}

type IStore interface {
	// MostRecentTimestamp returns the timestamp of the latest record for the
	// pool, or gorm.ErrRecordNotFound when the pool has no records.
	MostRecentTimestamp(db *gorm.DB, pool string) (int64, error)

	// List returns one page of a pool's records, newest first.
	List(db *gorm.DB, pool string, pageNumber, pageSize int) ([]model.PoolTransaction, error)

	// CreateBatch inserts each record independently; a failed insert does
	// not stop the rest of the batch.
	CreateBatch(db *gorm.DB, txs []model.PoolTransaction) BatchResult
}
