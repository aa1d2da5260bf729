package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rileyhilliard/ntxmon/internal/errors"
)

// ValidColorModes are the accepted output.color values.
var ValidColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks the config for errors and returns structured error messages.
// Everything reported here is fatal at startup; nothing is re-checked mid-cycle.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ntxmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade ntxmon or lower the config version.")
	}

	if len(cfg.Coins) == 0 {
		return errors.New(errors.ErrConfig,
			"No coins configured",
			"Add at least one entry under 'coins' in .ntxmon.yaml, or run 'ntxmon init'.")
	}

	if cfg.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("interval must be positive, got %s", cfg.Interval),
			"Try something like 5m or 30s.")
	}

	if cfg.RPCTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("rpc_timeout must be positive, got %s", cfg.RPCTimeout),
			"Try something like 10s.")
	}

	if cfg.Concurrency < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("concurrency must be at least 1, got %d", cfg.Concurrency),
			"Use 1 for sequential collection.")
	}

	if cfg.Layout != LayoutMain && cfg.Layout != LayoutThirdParty {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown layout '%s'", cfg.Layout),
			fmt.Sprintf("Use '%s' or '%s'.", LayoutMain, LayoutThirdParty))
	}

	if !ValidColorModes[cfg.Output.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output.color '%s'", cfg.Output.Color),
			"Use auto, always or never.")
	}

	if err := validateBlockThresholds("thresholds.block", cfg.Thresholds.Block); err != nil {
		return err
	}

	symbols := make([]string, 0, len(cfg.Coins))
	for sym := range cfg.Coins {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		if err := validateCoin(sym, cfg.Coins[sym]); err != nil {
			return err
		}
	}

	return validateOrder(cfg)
}

func validateCoin(sym string, coin Coin) error {
	if strings.ContainsAny(sym, " \t") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin symbol '%s' contains whitespace", sym),
			"Use the ticker symbol, like KMD or LTC.")
	}

	if coin.UTXOValue <= 0 || math.IsNaN(coin.UTXOValue) || math.IsInf(coin.UTXOValue, 0) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' has no usable utxo_value", sym),
			fmt.Sprintf("Set coins.%s.utxo_value to the notarization UTXO size, e.g. 0.0001.", sym))
	}

	if coin.Wallet == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' has no wallet path", sym),
			fmt.Sprintf("Set coins.%s.wallet to the daemon's wallet.dat.", sym))
	}

	if coin.RPC.URL == "" && coin.Conf == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' has no RPC endpoint", sym),
			fmt.Sprintf("Set coins.%s.conf or coins.%s.rpc.url.", sym, sym))
	}

	if len(coin.SSH) > 0 && coin.RPC.URL == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' is reached over SSH but has no rpc.url", sym),
			"Remote daemon .conf files aren't read; set rpc.url, rpc.user and rpc.password.")
	}

	if coin.BlockThresholds != nil {
		if err := validateBlockThresholds("coins."+sym+".block_thresholds", *coin.BlockThresholds); err != nil {
			return err
		}
	}
	return nil
}

func validateBlockThresholds(field string, bt BlockThresholds) error {
	if bt.Normal <= 0 || bt.Warning < bt.Normal || bt.Stale < bt.Warning {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must satisfy 0 < normal <= warning <= stale (got %s, %s, %s)", field, bt.Normal, bt.Warning, bt.Stale),
			"Something like normal: 10m, warning: 30m, stale: 2h works for one-minute chains.")
	}
	return nil
}

func validateOrder(cfg *Config) error {
	seen := make(map[string]bool)
	for _, sym := range cfg.Order {
		if _, ok := cfg.Coins[sym]; !ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("order lists '%s' but there's no such coin", sym),
				"Remove it from 'order' or add it under 'coins'.")
		}
		if seen[sym] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("order lists '%s' twice", sym),
				"Each coin should appear once.")
		}
		seen[sym] = true
	}
	if len(cfg.Order) > 0 && len(cfg.Order) != len(cfg.Coins) {
		var missing []string
		for sym := range cfg.Coins {
			if !seen[sym] {
				missing = append(missing, sym)
			}
		}
		sort.Strings(missing)
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("order is missing: %s", strings.Join(missing, ", ")),
			"List every coin in 'order', or drop 'order' for alphabetical display.")
	}
	return nil
}
