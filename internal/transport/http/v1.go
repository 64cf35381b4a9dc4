package http

import (
	"github.com/gin-gonic/gin"

	"github.com/poolwatch/poolfee-backend/internal/handler"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler) {
	v1 := r.Group("/api/v1")

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", h.TransactionHandler.GetTransactionsInRange)
		transactions.GET("/live", h.TransactionHandler.GetLiveTransactions)
		transactions.GET("/price", h.TransactionHandler.GetPrice)
	}

	// health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})
}
