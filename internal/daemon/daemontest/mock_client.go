// Package daemontest provides in-memory daemon clients for tests.
package daemontest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/daemon"
)

// MockClient is a scripted daemon.Client. Set the exported fields to the
// values each call should return, and Errors[method] to make a call fail.
type MockClient struct {
	mu sync.Mutex

	Transactions []daemon.Transaction
	Unspent      []daemon.Unspent
	BlockCount   int64
	BlockTime    int64
	NetworkInfo  daemon.NetworkInfo
	Balance      float64

	// Errors maps an RPC method name to the error it returns.
	Errors map[string]error

	// OnCall runs before every call with the method name. Tests use it to
	// advance a fake clock.
	OnCall func(method string)

	calls []string
}

// NewMockClient creates a healthy client with no wallet activity.
func NewMockClient() *MockClient {
	return &MockClient{Errors: make(map[string]error)}
}

// Fail makes method return err from now on.
func (m *MockClient) Fail(method string, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Errors == nil {
		m.Errors = make(map[string]error)
	}
	m.Errors[method] = err
	return m
}

// Calls returns the RPC methods invoked so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockClient) record(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.calls = append(m.calls, method)
	hook := m.OnCall
	err := m.Errors[method]
	m.mu.Unlock()

	if hook != nil {
		hook(method)
	}
	return err
}

func (m *MockClient) ListTransactions(ctx context.Context) ([]daemon.Transaction, error) {
	if err := m.record(ctx, "listtransactions"); err != nil {
		return nil, err
	}
	return m.Transactions, nil
}

func (m *MockClient) ListUnspent(ctx context.Context) ([]daemon.Unspent, error) {
	if err := m.record(ctx, "listunspent"); err != nil {
		return nil, err
	}
	return m.Unspent, nil
}

func (m *MockClient) GetBlockCount(ctx context.Context) (int64, error) {
	if err := m.record(ctx, "getblockcount"); err != nil {
		return 0, err
	}
	return m.BlockCount, nil
}

func (m *MockClient) GetBlockTimestamp(ctx context.Context, height int64) (int64, error) {
	if err := m.record(ctx, "getblock"); err != nil {
		return 0, err
	}
	if height != m.BlockCount {
		return 0, fmt.Errorf("block %d not found", height)
	}
	return m.BlockTime, nil
}

func (m *MockClient) GetNetworkInfo(ctx context.Context) (daemon.NetworkInfo, error) {
	if err := m.record(ctx, "getnetworkinfo"); err != nil {
		return daemon.NetworkInfo{}, err
	}
	return m.NetworkInfo, nil
}

func (m *MockClient) GetBalance(ctx context.Context) (float64, error) {
	if err := m.record(ctx, "getbalance"); err != nil {
		return 0, err
	}
	return m.Balance, nil
}

// Call records method as "call:<method>" so probes can be told apart from
// typed calls.
func (m *MockClient) Call(ctx context.Context, method string, params ...interface{}) ([]byte, error) {
	if err := m.record(ctx, "call:"+method); err != nil {
		return nil, err
	}
	return []byte("[]"), nil
}

// MockWallet is a daemon.Wallet with a fixed size.
type MockWallet struct {
	Bytes int64
	Err   error
}

// Size returns the configured size or error.
func (w MockWallet) Size(ctx context.Context) (int64, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	return w.Bytes, nil
}

// Endpoint bundles a mock client and wallet.
func Endpoint(symbol string, client *MockClient, wallet MockWallet) daemon.Endpoint {
	return daemon.Endpoint{Symbol: symbol, Client: client, Wallet: wallet}
}

// Clock is a manually advanced time source, safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
