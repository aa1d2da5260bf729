package daemon

import (
	"context"
	"fmt"
)

// Transaction is one entry from listtransactions.
type Transaction struct {
	TxID          string  `json:"txid"`
	Address       string  `json:"address"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	BlockTime     int64   `json:"blocktime"`
	Time          int64   `json:"time"`
}

// Unspent is one entry from listunspent.
type Unspent struct {
	TxID          string  `json:"txid"`
	Vout          int     `json:"vout"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
}

// NetworkInfo is the subset of getnetworkinfo ntxmon reports.
type NetworkInfo struct {
	Version     int    `json:"version"`
	Subversion  string `json:"subversion"`
	Connections int    `json:"connections"`
}

// Block is the subset of getblock needed for block recency.
type Block struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
}

// Client is the set of daemon calls the collector depends on.
// Any method may fail with a transport or daemon-side error.
type Client interface {
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListUnspent(ctx context.Context) ([]Unspent, error)
	GetBlockCount(ctx context.Context) (int64, error)
	GetBlockTimestamp(ctx context.Context, height int64) (int64, error)
	GetNetworkInfo(ctx context.Context) (NetworkInfo, error)
	GetBalance(ctx context.Context) (float64, error)
	// Call issues a raw RPC and returns the undecoded result.
	Call(ctx context.Context, method string, params ...interface{}) ([]byte, error)
}

// Wallet reports the on-disk size of a daemon's wallet file.
type Wallet interface {
	Size(ctx context.Context) (int64, error)
}

// RPCError is an error object returned by the daemon itself.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
