package pooltransaction

import (
	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/model"
)

type store struct{}

func New() IStore {
	return &store{}
}

func (s *store) MostRecentTimestamp(db *gorm.DB, pool string) (int64, error) {
	var tx model.PoolTransaction
	err := db.Where("pool = ?", pool).Order("timestamp desc").First(&tx).Error
	if err != nil {
		return 0, err
	}

	return tx.Timestamp, nil
}

func (s *store) List(db *gorm.DB, pool string, pageNumber, pageSize int) ([]model.PoolTransaction, error) {
	txs := []model.PoolTransaction{}
	err := db.Where("pool = ?", pool).
		Order("timestamp desc").
		Offset(pageOffset(pageNumber, pageSize)).
		Limit(pageSize).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *store) CreateBatch(db *gorm.DB, txs []model.PoolTransaction) BatchResult {
	result := BatchResult{}
	for _, tx := range txs {
		if err := db.Create(&tx).Error; err != nil {
			result.Failed = append(result.Failed, FailedInsert{
				Hash:   tx.Hash,
				Reason: err.Error(),
			})
			continue
		}
		result.Inserted++
	}

	return result
}

func pageOffset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}
