package store

import (
	"github.com/poolwatch/poolfee-backend/internal/store/pooltransaction"
)

type Store struct {
	PoolTransaction pooltransaction.IStore
}

func New() *Store {
	return &Store{
		PoolTransaction: pooltransaction.New(),
	}
}
