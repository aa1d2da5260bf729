package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".ntxmon.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/ntxmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'ntxmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ntxmon.yaml in current directory
// 3. ~/.config/ntxmon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadFound finds, loads and validates the config. A missing config is a
// CONFIG error since there is nothing to monitor without one.
func LoadFound(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", errors.New(errors.ErrConfig,
			"No ntxmon config found",
			fmt.Sprintf("Run 'ntxmon init' to create %s, or pass --config", ConfigFileName))
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	if err := Validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	normalize(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", "5m")
	v.SetDefault("rpc_timeout", "10s")
	v.SetDefault("concurrency", 1)
	v.SetDefault("mined_coin", "KMD")
	v.SetDefault("layout", LayoutMain)
	v.SetDefault("output.color", "auto")
	v.SetDefault("thresholds.block.normal", "10m")
	v.SetDefault("thresholds.block.warning", "30m")
	v.SetDefault("thresholds.block.stale", "2h")
}

// normalize upper-cases coin symbols (viper lower-cases map keys), fills
// per-coin defaults and expands paths.
func normalize(cfg *Config) {
	coins := make(map[string]Coin, len(cfg.Coins))
	for sym, coin := range cfg.Coins {
		if coin.NTXAddress == "" {
			coin.NTXAddress = DefaultNTXAddress
		}
		coins[strings.ToUpper(sym)] = ExpandCoin(coin)
	}
	cfg.Coins = coins

	for i, sym := range cfg.Order {
		cfg.Order[i] = strings.ToUpper(strings.TrimSpace(sym))
	}
	cfg.MinedCoin = strings.ToUpper(cfg.MinedCoin)
	cfg.Layout = strings.ToLower(cfg.Layout)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
}

// Filter restricts the config to the comma-separated coin list.
// Returns an error when nothing matches.
func (c *Config) Filter(list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	want := make(map[string]bool)
	for _, sym := range strings.Split(list, ",") {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			want[sym] = true
		}
	}

	for sym := range c.Coins {
		if !want[sym] {
			delete(c.Coins, sym)
		}
	}
	if len(c.Coins) == 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("No coins match '%s'", list),
			"Double-check the symbols or try without the --coins filter.")
	}

	if len(c.Order) > 0 {
		order := c.Order[:0]
		for _, sym := range c.Order {
			if want[sym] {
				order = append(order, sym)
			}
		}
		c.Order = order
	}
	return nil
}
