package daemon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDaemon answers JSON-RPC calls from a method -> raw result table.
type fakeDaemon struct {
	mu      sync.Mutex
	results map[string]string
	errors  map[string]string
	calls   []rpcRequest
	auth    [2]string
}

func (f *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, pass, _ := r.BasicAuth()

	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.auth = [2]string{user, pass}
	result, okResult := f.results[req.Method]
	errBody, okErr := f.errors[req.Method]
	f.mu.Unlock()

	switch {
	case okErr:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"result":null,"error":`+errBody+`,"id":1}`)
	case okResult:
		_, _ = io.WriteString(w, `{"result":`+result+`,"error":null,"id":1}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":null,"error":{"code":-32601,"message":"Method not found"},"id":1}`)
	}
}

func newTestClient(t *testing.T, f *fakeDaemon) *RPCClient {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewRPCClient("KMD", RPCOptions{URL: srv.URL, User: "notary", Password: "pw", Timeout: 2 * time.Second})
}

func TestRPCClient_Methods(t *testing.T) {
	f := &fakeDaemon{results: map[string]string{
		"listtransactions": `[{"txid":"a","address":"RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA","category":"send","amount":-0.001,"time":1700000000},{"txid":"b","category":"generate","amount":3,"time":1700000100}]`,
		"listunspent":      `[{"txid":"u1","vout":0,"amount":0.0001,"spendable":true},{"txid":"u2","vout":1,"amount":1.5}]`,
		"getblockcount":    `1000000`,
		"getblockhash":     `"00000abc"`,
		"getblock":         `{"hash":"00000abc","height":1000000,"time":1700000500}`,
		"getnetworkinfo":   `{"version":1000150,"subversion":"/MagicBean:1.0.15/","connections":8}`,
		"getbalance":       `5.234`,
	}}
	c := newTestClient(t, f)
	ctx := context.Background()

	txs, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "send", txs[0].Category)
	assert.Equal(t, int64(1700000000), txs[0].Time)

	utxos, err := c.ListUnspent(ctx)
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	assert.Equal(t, 0.0001, utxos[0].Amount)

	height, err := c.GetBlockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), height)

	ts, err := c.GetBlockTimestamp(ctx, height)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000500), ts)

	info, err := c.GetNetworkInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, info.Connections)
	assert.Equal(t, "/MagicBean:1.0.15/", info.Subversion)

	bal, err := c.GetBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5.234, bal, 1e-9)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, [2]string{"notary", "pw"}, f.auth)

	var sawList, sawHash bool
	for _, call := range f.calls {
		assert.Equal(t, "1.0", call.JSONRPC)
		switch call.Method {
		case "listtransactions":
			sawList = true
			require.Len(t, call.Params, 2)
			assert.Equal(t, "*", call.Params[0])
			assert.EqualValues(t, ListTransactionsCount, call.Params[1])
		case "getblockhash":
			sawHash = true
			require.Len(t, call.Params, 1)
			assert.EqualValues(t, 1000000, call.Params[0])
		case "getbalance":
			assert.NotNil(t, call.Params, "params is always an array")
		}
	}
	assert.True(t, sawList)
	assert.True(t, sawHash)
}

func TestRPCClient_Call_Raw(t *testing.T) {
	f := &fakeDaemon{results: map[string]string{"listunspent": `[]`}}
	c := newTestClient(t, f)

	raw, err := c.Call(context.Background(), "listunspent")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
	assert.Equal(t, "KMD", c.Symbol())
}

func TestRPCClient_DaemonError(t *testing.T) {
	f := &fakeDaemon{errors: map[string]string{
		"listunspent": `{"code":-28,"message":"Loading wallet..."}`,
	}}
	c := newTestClient(t, f)

	_, err := c.ListUnspent(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRPC))

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -28, rpcErr.Code)
	assert.Contains(t, err.Error(), "KMD listunspent failed")
}

func TestRPCClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewRPCClient("LTC", RPCOptions{URL: srv.URL})
	_, err := c.GetBalance(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRPC))
	assert.Contains(t, err.Error(), "rejected the RPC credentials")
}

func TestRPCClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "warming up")
	}))
	defer srv.Close()

	c := NewRPCClient("KMD", RPCOptions{URL: srv.URL})
	_, err := c.GetBlockCount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 503: warming up")
}

func TestRPCClient_DecodeError(t *testing.T) {
	f := &fakeDaemon{results: map[string]string{"getbalance": `"not a number"`}}
	c := newTestClient(t, f)

	_, err := c.GetBalance(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRPC))
	assert.Contains(t, err.Error(), "decode result")
}

func TestRPCClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewRPCClient("KMD", RPCOptions{URL: url, Timeout: time.Second})
	_, err := c.GetNetworkInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRPC))
	assert.Contains(t, err.Error(), "Is the KMD daemon running?")
}

func TestRPCClient_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewRPCClient("KMD", RPCOptions{URL: srv.URL, Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.GetBalance(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
