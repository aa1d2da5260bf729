package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"github.com/rileyhilliard/ntxmon/pkg/sshutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// DefaultUTXOValue is the usual notarization UTXO size.
const DefaultUTXOValue = "0.0001"

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Answers        initAnswers
}

// initAnswers are the values collected for the first coin.
type initAnswers struct {
	Symbol      string
	UTXOValue   string
	Conf        string
	Wallet      string
	SSHHost     string
	RPCURL      string
	RPCUser     string
	RPCPassword string
	ThirdParty  bool
}

// initFile is the document written by init. Durations are kept as strings
// so the file reads the way people write it by hand.
type initFile struct {
	Version   int                    `yaml:"version"`
	Interval  string                 `yaml:"interval"`
	MinedCoin string                 `yaml:"mined_coin"`
	Layout    string                 `yaml:"layout"`
	Output    config.OutputConfig    `yaml:"output"`
	Coins     map[string]config.Coin `yaml:"coins"`
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ntxmon.yaml configuration",
	Long: `Create a starter config with one coin. Prompts for the coin symbol,
UTXO size and where its daemon runs; SSH aliases from ~/.ssh/config are
offered for daemons on other machines.

Examples:
  ntxmon init
  ntxmon init --coin KMD --non-interactive
  ntxmon init --coin LTC --third-party --ssh 3p-node --rpc-url http://127.0.0.1:9332`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := initOpts
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			o.NonInteractive = true
		}
		return Init(o, cmd.OutOrStdout())
	},
}

func init() {
	f := initCmd.Flags()
	f.StringVar(&initOpts.Path, "file", config.ConfigFileName, "config file to write")
	f.BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	f.BoolVar(&initOpts.NonInteractive, "non-interactive", false, "don't prompt; use flags and defaults")
	f.StringVar(&initOpts.Answers.Symbol, "coin", "", "coin symbol (default KMD)")
	f.StringVar(&initOpts.Answers.UTXOValue, "utxo-value", "", "notarization UTXO size (default "+DefaultUTXOValue+")")
	f.StringVar(&initOpts.Answers.Conf, "conf", "", "daemon .conf file")
	f.StringVar(&initOpts.Answers.Wallet, "wallet", "", "wallet.dat path")
	f.StringVar(&initOpts.Answers.SSHHost, "ssh", "", "SSH host or alias the daemon runs on")
	f.StringVar(&initOpts.Answers.RPCURL, "rpc-url", "", "daemon RPC URL (required with --ssh)")
	f.BoolVar(&initOpts.Answers.ThirdParty, "third-party", false, "coin is hosted on the third-party node")
	rootCmd.AddCommand(initCmd)
}

// Init writes a new config file.
func Init(o InitOptions, out io.Writer) error {
	path := o.Path
	if path == "" {
		path = filepath.Join(".", config.ConfigFileName)
	}

	if _, err := os.Stat(path); err == nil && !o.Overwrite {
		if o.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	answers := o.Answers
	if !o.NonInteractive {
		if err := runInitForm(&answers); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
	}
	answers.fillDefaults()

	file, err := buildConfig(answers)
	if err != nil {
		return err
	}
	data, err := marshalConfig(file)
	if err != nil {
		return err
	}

	// 0600: the file may hold an RPC password.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  ntxmon check   - Make sure the daemon answers")
	fmt.Fprintln(out, "  ntxmon         - Start the dashboard")
	return nil
}

func runInitForm(a *initAnswers) error {
	hosts, err := sshutil.ConfigHosts()
	if err != nil {
		hosts = nil
	}
	sshOptions := []huh.Option[string]{huh.NewOption("This machine (no SSH)", "")}
	for _, h := range hosts {
		sshOptions = append(sshOptions, huh.NewOption(fmt.Sprintf("%s (%s)", h.Alias, h.Description()), h.Alias))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Coin symbol").
				Description("Ticker as the daemon knows it; KMD_3P style names are shown as 'KMD (3P)'").
				Placeholder("KMD").
				Value(&a.Symbol).
				Validate(validateSymbol),
			huh.NewInput().
				Title("Notarization UTXO value").
				Placeholder(DefaultUTXOValue).
				Value(&a.UTXOValue).
				Validate(validateUTXOValue),
			huh.NewConfirm().
				Title("Hosted on the third-party node?").
				Value(&a.ThirdParty),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where does the daemon run?").
				Options(sshOptions...).
				Value(&a.SSHHost),
		).WithHideFunc(func() bool { return len(hosts) == 0 }),
		huh.NewGroup(
			huh.NewInput().
				Title("RPC URL").
				Description("As seen from the SSH host").
				Placeholder("http://127.0.0.1:7771").
				Value(&a.RPCURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("RPC URL is required for remote daemons")
					}
					return nil
				}),
			huh.NewInput().
				Title("RPC user").
				Value(&a.RPCUser),
			huh.NewInput().
				Title("RPC password").
				EchoMode(huh.EchoModePassword).
				Value(&a.RPCPassword),
		).WithHideFunc(func() bool { return a.SSHHost == "" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Daemon .conf file").
				Description("rpcuser, rpcpassword and rpcport are read from it. Leave empty for the default location").
				Value(&a.Conf),
		).WithHideFunc(func() bool { return a.SSHHost != "" }),
		huh.NewGroup(
			huh.NewInput().
				Title("wallet.dat path").
				Description("Leave empty for the default location").
				Value(&a.Wallet),
		),
	)
	return form.Run()
}

func validateSymbol(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Errorf("symbol cannot contain whitespace")
	}
	return nil
}

func validateUTXOValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number like %s", DefaultUTXOValue)
	}
	return nil
}

// defaultPaths follows the komodod layout: the main chain lives in
// ~/.komodo, asset chains in ~/.komodo/<SYMBOL>.
func defaultPaths(symbol string) (conf, wallet string) {
	if symbol == "KMD" {
		return "~/.komodo/komodo.conf", "~/.komodo/wallet.dat"
	}
	dir := "~/.komodo/" + symbol
	return dir + "/" + symbol + ".conf", dir + "/wallet.dat"
}

func (a *initAnswers) fillDefaults() {
	a.Symbol = strings.ToUpper(strings.TrimSpace(a.Symbol))
	if a.Symbol == "" {
		a.Symbol = "KMD"
	}
	a.UTXOValue = strings.TrimSpace(a.UTXOValue)
	if a.UTXOValue == "" {
		a.UTXOValue = DefaultUTXOValue
	}

	base := strings.TrimSuffix(a.Symbol, "_3P")
	conf, wallet := defaultPaths(base)
	if a.Wallet == "" {
		a.Wallet = wallet
	}
	// Remote .conf files are never read.
	if a.SSHHost != "" {
		a.Conf = ""
	} else if a.Conf == "" && a.RPCURL == "" {
		a.Conf = conf
	}
}

// buildConfig turns filled-in answers into the document to write.
func buildConfig(a initAnswers) (*initFile, error) {
	if err := validateSymbol(a.Symbol); err != nil {
		return nil, errors.New(errors.ErrConfig, fmt.Sprintf("Invalid coin symbol '%s'", a.Symbol), "Use the ticker, like KMD.")
	}
	value, err := strconv.ParseFloat(a.UTXOValue, 64)
	if err != nil || value <= 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid UTXO value '%s'", a.UTXOValue),
			"Use a positive number like "+DefaultUTXOValue+".")
	}
	if a.SSHHost != "" && a.RPCURL == "" {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Coin '%s' is reached over SSH but has no RPC URL", a.Symbol),
			"Pass --rpc-url, e.g. http://127.0.0.1:7771")
	}

	coin := config.Coin{
		UTXOValue:  value,
		Conf:       a.Conf,
		Wallet:     a.Wallet,
		NTXAddress: config.DefaultNTXAddress,
		ThirdParty: a.ThirdParty,
		RPC: config.RPCConfig{
			URL:      a.RPCURL,
			User:     a.RPCUser,
			Password: a.RPCPassword,
		},
	}
	if a.SSHHost != "" {
		coin.SSH = []string{a.SSHHost}
	}

	defaults := config.DefaultConfig()
	layout := defaults.Layout
	if a.ThirdParty {
		layout = config.LayoutThirdParty
	}
	return &initFile{
		Version:   config.CurrentConfigVersion,
		Interval:  defaults.Interval.String(),
		MinedCoin: defaults.MinedCoin,
		Layout:    layout,
		Output:    defaults.Output,
		Coins:     map[string]config.Coin{a.Symbol: coin},
	}, nil
}

func marshalConfig(f *initFile) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# ntxmon configuration
# Add more coins under 'coins' and run 'ntxmon check' to test them.

`
	return append([]byte(header), data...), nil
}
