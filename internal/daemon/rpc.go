package daemon

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rileyhilliard/ntxmon/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ListTransactionsCount is how many wallet transactions are requested.
// It needs to cover the whole wallet since NUMTX reports the list length.
const ListTransactionsCount = 99999

// DialFunc opens the TCP connection the HTTP transport uses.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// RPCOptions configures an RPCClient.
type RPCOptions struct {
	URL      string
	User     string
	Password string
	Timeout  time.Duration
	// Dial replaces the default dialer, e.g. to tunnel through SSH.
	Dial DialFunc
}

// RPCClient is a JSON-RPC 1.0 client for bitcoin-style daemons.
type RPCClient struct {
	symbol string
	url    string
	user   string
	pass   string
	http   *http.Client
	nextID atomic.Uint64
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *RPCError           `json:"error"`
}

// NewRPCClient creates a client for one coin daemon.
func NewRPCClient(symbol string, opts RPCOptions) *RPCClient {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Dial != nil {
		transport.DialContext = opts.Dial
	}

	return &RPCClient{
		symbol: symbol,
		url:    opts.URL,
		user:   opts.User,
		pass:   opts.Password,
		http:   &http.Client{Timeout: timeout, Transport: transport},
	}
}

// Symbol returns the coin this client talks to.
func (c *RPCClient) Symbol() string {
	return c.symbol
}

// Call sends a single RPC and returns the raw result.
func (c *RPCClient) Call(ctx context.Context, method string, params ...interface{}) ([]byte, error) {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "1.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, c.wrap(method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, c.wrap(method, err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.user != "" || c.pass != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.wrap(method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, c.wrap(method, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, errors.New(errors.ErrRPC,
			fmt.Sprintf("%s daemon rejected the RPC credentials", c.symbol),
			"Check rpcuser/rpcpassword in the daemon .conf or coins."+c.symbol+".rpc")
	}

	// Daemons answer errors with HTTP 500 and a JSON error body.
	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, c.wrap(method, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
		}
		return nil, c.wrap(method, err)
	}
	if out.Error != nil {
		return nil, c.wrap(method, out.Error)
	}
	return out.Result, nil
}

func (c *RPCClient) call(ctx context.Context, dst interface{}, method string, params ...interface{}) error {
	raw, err := c.Call(ctx, method, params...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return c.wrap(method, fmt.Errorf("decode result: %w", err))
	}
	return nil
}

func (c *RPCClient) wrap(method string, err error) error {
	return errors.WrapWithCode(err, errors.ErrRPC,
		fmt.Sprintf("%s %s failed", c.symbol, method),
		fmt.Sprintf("Is the %s daemon running?", c.symbol))
}

// ListTransactions returns the wallet's transactions, oldest first.
func (c *RPCClient) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	err := c.call(ctx, &txs, "listtransactions", "*", ListTransactionsCount)
	return txs, err
}

// ListUnspent returns the wallet's unspent outputs.
func (c *RPCClient) ListUnspent(ctx context.Context) ([]Unspent, error) {
	var utxos []Unspent
	err := c.call(ctx, &utxos, "listunspent")
	return utxos, err
}

// GetBlockCount returns the current chain height.
func (c *RPCClient) GetBlockCount(ctx context.Context) (int64, error) {
	var height int64
	err := c.call(ctx, &height, "getblockcount")
	return height, err
}

// GetBlockTimestamp returns the header time of the block at height.
func (c *RPCClient) GetBlockTimestamp(ctx context.Context, height int64) (int64, error) {
	var hash string
	if err := c.call(ctx, &hash, "getblockhash", height); err != nil {
		return 0, err
	}
	var block Block
	if err := c.call(ctx, &block, "getblock", hash); err != nil {
		return 0, err
	}
	return block.Time, nil
}

// GetNetworkInfo returns peer and version information.
func (c *RPCClient) GetNetworkInfo(ctx context.Context) (NetworkInfo, error) {
	var info NetworkInfo
	err := c.call(ctx, &info, "getnetworkinfo")
	return info, err
}

// GetBalance returns the confirmed wallet balance.
func (c *RPCClient) GetBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := c.call(ctx, &balance, "getbalance")
	return balance, err
}
