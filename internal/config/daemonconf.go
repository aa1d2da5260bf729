package config

import (
	"fmt"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/spf13/viper"
)

// DaemonConf is the RPC subset of a bitcoin-style daemon .conf file.
type DaemonConf struct {
	User     string
	Password string
	Port     int
	Bind     string
}

// URL returns the loopback RPC endpoint described by the conf.
func (d DaemonConf) URL() string {
	host := d.Bind
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, d.Port)
}

// ReadDaemonConf reads rpcuser, rpcpassword, rpcport and rpcbind from a
// key=value daemon config.
func ReadDaemonConf(path string) (DaemonConf, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")

	if err := v.ReadInConfig(); err != nil {
		return DaemonConf{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't read daemon config "+path,
			"Point coins.<SYMBOL>.conf at the daemon's .conf file, or set coins.<SYMBOL>.rpc explicitly")
	}

	conf := DaemonConf{
		User:     v.GetString("rpcuser"),
		Password: v.GetString("rpcpassword"),
		Port:     v.GetInt("rpcport"),
		Bind:     v.GetString("rpcbind"),
	}

	if conf.User == "" || conf.Password == "" || conf.Port == 0 {
		return DaemonConf{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Daemon config %s is missing rpcuser, rpcpassword or rpcport", path),
			"Add the missing keys to the daemon config and restart the daemon")
	}
	return conf, nil
}

// ResolveRPC returns the RPC settings for a coin, falling back to its
// daemon .conf when no URL is configured.
func ResolveRPC(symbol string, coin Coin) (RPCConfig, error) {
	if coin.RPC.URL != "" {
		return coin.RPC, nil
	}
	if coin.Conf == "" {
		return RPCConfig{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' has no RPC endpoint", symbol),
			fmt.Sprintf("Set coins.%s.conf or coins.%s.rpc.url", symbol, symbol))
	}
	conf, err := ReadDaemonConf(coin.Conf)
	if err != nil {
		return RPCConfig{}, err
	}
	return RPCConfig{URL: conf.URL(), User: conf.User, Password: conf.Password}, nil
}
