package transaction

import "github.com/gin-gonic/gin"

type IHandler interface {
	GetTransactionsInRange(c *gin.Context)
	GetLiveTransactions(c *gin.Context)
	GetPrice(c *gin.Context)
}
