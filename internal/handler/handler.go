package handler

import (
	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/binance"
	"github.com/poolwatch/poolfee-backend/internal/controller"
	"github.com/poolwatch/poolfee-backend/internal/handler/transaction"
	"github.com/poolwatch/poolfee-backend/internal/store"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

type Handler struct {
	TransactionHandler transaction.IHandler
}

func New(ctrl controller.IController, binanceClient binance.IBinance, s *store.Store, db *gorm.DB, logger *logger.Logger) *Handler {
	return &Handler{
		TransactionHandler: transaction.New(ctrl, binanceClient, s, db, logger),
	}
}
