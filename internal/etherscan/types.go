package etherscan

import "encoding/json"

// TransactionQuery selects one page of transfer events for a pool.
type TransactionQuery struct {
	StartBlock int64
	EndBlock   int64
	Pool       string
	Page       int
	Offset     int
}

type blockNumberResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// tokenTxResponse carries Result as raw JSON: Etherscan returns a list of
// events on success but a plain string (e.g. "No transactions found") when
// status is "0".
type tokenTxResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type tokenTransferEvent struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	Hash        string `json:"hash"`
	GasUsed     string `json:"gasUsed"`
	GasPrice    string `json:"gasPrice"`
}
