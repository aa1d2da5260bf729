package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"github.com/spf13/cobra"
)

// MinInterval keeps the refresh loop from hammering the daemons.
const MinInterval = time.Second

// Options holds the flags shared by every command that reads the config.
type Options struct {
	ConfigPath  string
	Interval    string
	Coins       string
	Color       string
	Concurrency int
}

// AddGlobalFlags registers --config, --interval, --coins, --color and
// --concurrency as persistent flags on cmd.
func AddGlobalFlags(cmd *cobra.Command, o *Options) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "", "config file (default ./.ntxmon.yaml, then ~/.config/ntxmon/config.yaml)")
	flags.StringVar(&o.Interval, "interval", "", "auto refresh interval (e.g., 30s, 5m)")
	flags.StringVar(&o.Coins, "coins", "", "only show these coins (comma-separated)")
	flags.StringVar(&o.Color, "color", "", "color output: auto, always or never")
	flags.IntVar(&o.Concurrency, "concurrency", 0, "daemons queried at once (1 = sequential)")
}

// ParseInterval parses the --interval flag. Returns zero duration if the
// flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 30s, 5m, or 1h.")
	}
	if d < MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Minimum interval is %s.", MinInterval))
	}
	return d, nil
}

// apply overlays the flags on a loaded config. Zero-valued flags leave the
// config untouched.
func (o Options) apply(cfg *config.Config) error {
	if err := cfg.Filter(o.Coins); err != nil {
		return err
	}

	interval, err := ParseInterval(o.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Interval = interval
	}

	if o.Color != "" {
		mode, err := ui.ParseColorMode(o.Color)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid --color '%s'", o.Color),
				"Use auto, always or never.")
		}
		cfg.Output.Color = string(mode)
	}

	if o.Concurrency < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--concurrency must be at least 1, got %d", o.Concurrency),
			"Use 1 for sequential collection.")
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}
	return nil
}
