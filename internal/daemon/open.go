package daemon

import (
	"time"

	"github.com/rileyhilliard/ntxmon/internal/config"
)

// Endpoint bundles what the collector needs to query one coin.
type Endpoint struct {
	Symbol string
	Client Client
	Wallet Wallet
}

// Open builds the RPC client and wallet stater for a configured coin.
// Coins with SSH hosts are tunnelled through pool, which must then be non-nil.
func Open(symbol string, coin config.Coin, timeout time.Duration, pool *Pool) (Endpoint, error) {
	rpc, err := config.ResolveRPC(symbol, coin)
	if err != nil {
		return Endpoint{}, err
	}

	opts := RPCOptions{
		URL:      rpc.URL,
		User:     rpc.User,
		Password: rpc.Password,
		Timeout:  timeout,
	}

	var wallet Wallet = LocalWallet{Path: coin.Wallet}
	if len(coin.SSH) > 0 && pool != nil {
		opts.Dial = pool.Dialer(coin.SSH)
		wallet = RemoteWallet{Path: coin.Wallet, Exec: pool.Executor(coin.SSH)}
	}

	return Endpoint{
		Symbol: symbol,
		Client: NewRPCClient(symbol, opts),
		Wallet: wallet,
	}, nil
}

// OpenAll opens every coin in order. Any failure is a startup error.
func OpenAll(cfg *config.Config, order []string, pool *Pool) (map[string]Endpoint, error) {
	out := make(map[string]Endpoint, len(order))
	for _, sym := range order {
		ep, err := Open(sym, cfg.Coins[sym], cfg.RPCTimeout, pool)
		if err != nil {
			return nil, err
		}
		out[sym] = ep
	}
	return out, nil
}
