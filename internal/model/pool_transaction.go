package model

// PoolTransaction is one swap-fee transaction observed for a liquidity pool.
// EthFee is derived from gas used and gas price; UsdtFee is the ETH fee
// converted at the ETHUSDT open price of the second the transaction was mined.
type PoolTransaction struct {
	ID          int     `json:"-" gorm:"primaryKey"`
	Pool        string  `json:"pool"`
	Timestamp   int64   `json:"timestamp"`
	BlockNumber int64   `json:"blockNumber"`
	Hash        string  `json:"hash"`
	EthFee      float64 `json:"ethFee"`
	UsdtFee     float64 `json:"usdtFee"`
	CreatedAt   int64   `json:"-" gorm:"autoCreateTime"`
}

func (PoolTransaction) TableName() string {
	return "pool_transactions"
}
