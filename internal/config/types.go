package config

import (
	"sort"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Wallet size policy variants.
const (
	LayoutMain       = "main"
	LayoutThirdParty = "3p"
)

// DefaultNTXAddress is the address notarization transactions pay to on the
// Komodo main chain.
const DefaultNTXAddress = "RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA"

// Config represents the complete .ntxmon.yaml configuration file.
type Config struct {
	Version     int             `yaml:"version" mapstructure:"version"`
	Interval    time.Duration   `yaml:"interval" mapstructure:"interval"`
	RPCTimeout  time.Duration   `yaml:"rpc_timeout" mapstructure:"rpc_timeout"`
	Concurrency int             `yaml:"concurrency" mapstructure:"concurrency"`
	MinedCoin   string          `yaml:"mined_coin" mapstructure:"mined_coin"`
	Layout      string          `yaml:"layout" mapstructure:"layout"`
	Output      OutputConfig    `yaml:"output" mapstructure:"output"`
	Thresholds  ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Coins       map[string]Coin `yaml:"coins" mapstructure:"coins"`
	Order       []string        `yaml:"order,omitempty" mapstructure:"order"`
}

// Coin is the per-entity configuration for one monitored daemon.
type Coin struct {
	// UTXOValue is the denomination of the UTXOs reserved for notarizations.
	UTXOValue float64 `yaml:"utxo_value" mapstructure:"utxo_value"`

	// Conf is the daemon's .conf file, read for rpcuser/rpcpassword/rpcport
	// when RPC.URL is empty.
	Conf string `yaml:"conf,omitempty" mapstructure:"conf"`

	// Wallet is the wallet.dat path whose size is reported.
	Wallet string `yaml:"wallet" mapstructure:"wallet"`

	// NTXAddress identifies notarization sends in listtransactions output.
	NTXAddress string `yaml:"ntx_address,omitempty" mapstructure:"ntx_address"`

	// ThirdParty marks coins hosted on the third-party notary node.
	ThirdParty bool `yaml:"third_party,omitempty" mapstructure:"third_party"`

	RPC RPCConfig `yaml:"rpc,omitempty" mapstructure:"rpc"`

	// SSH hosts tried in order; when set, RPC traffic and the wallet stat go
	// through the SSH connection.
	SSH []string `yaml:"ssh,omitempty" mapstructure:"ssh"`

	// BlockThresholds overrides thresholds.block for coins with a different
	// block interval.
	BlockThresholds *BlockThresholds `yaml:"block_thresholds,omitempty" mapstructure:"block_thresholds"`
}

// RPCConfig holds explicit daemon RPC settings.
type RPCConfig struct {
	URL      string `yaml:"url,omitempty" mapstructure:"url"`
	User     string `yaml:"user,omitempty" mapstructure:"user"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
}

// BlockThresholds bucket time since the last block.
// Up to Normal is healthy, anything past Stale is critical.
type BlockThresholds struct {
	Normal  time.Duration `yaml:"normal" mapstructure:"normal"`
	Warning time.Duration `yaml:"warning" mapstructure:"warning"`
	Stale   time.Duration `yaml:"stale" mapstructure:"stale"`
}

// ThresholdConfig groups the configurable classifier breakpoints.
type ThresholdConfig struct {
	Block BlockThresholds `yaml:"block" mapstructure:"block"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultBlockThresholds matches a one-minute block chain.
func DefaultBlockThresholds() BlockThresholds {
	return BlockThresholds{
		Normal:  10 * time.Minute,
		Warning: 30 * time.Minute,
		Stale:   2 * time.Hour,
	}
}

// DefaultConfig returns a Config with sensible defaults and no coins.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Interval:    5 * time.Minute,
		RPCTimeout:  10 * time.Second,
		Concurrency: 1,
		MinedCoin:   "KMD",
		Layout:      LayoutMain,
		Output: OutputConfig{
			Color: "auto",
		},
		Thresholds: ThresholdConfig{
			Block: DefaultBlockThresholds(),
		},
		Coins: make(map[string]Coin),
	}
}

// BlockThresholdsFor returns the block thresholds that apply to symbol.
func (c *Config) BlockThresholdsFor(symbol string) BlockThresholds {
	if coin, ok := c.Coins[symbol]; ok && coin.BlockThresholds != nil {
		return *coin.BlockThresholds
	}
	return c.Thresholds.Block
}

// CoinOrder returns the display order: the configured order when present,
// otherwise all coins alphabetically.
func (c *Config) CoinOrder() []string {
	if len(c.Order) > 0 {
		out := make([]string, len(c.Order))
		copy(out, c.Order)
		return out
	}
	out := make([]string, 0, len(c.Coins))
	for sym := range c.Coins {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
