package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/watch"
	"github.com/spf13/cobra"
)

var opts Options

var rootCmd = &cobra.Command{
	Use:   "ntxmon",
	Short: "Notary node dashboard for Komodo and third-party daemons",
	Long: `ntxmon polls each configured coin daemon over RPC and prints a
colour-coded status table: notarization count and recency, UTXO supply,
balance, block height and age, peer count, wallet size and RPC latency.

The table refreshes every --interval. Type r and Enter to refresh early,
q or quit to exit.

Examples:
  ntxmon
  ntxmon --coins KMD,LTC --interval 1m
  ntxmon --config ~/notary/.ntxmon.yaml --color never`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand()
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ntxmon.

Examples:
  ntxmon completion bash > /etc/bash_completion.d/ntxmon
  ntxmon completion zsh > "${fpath[1]}/_ntxmon"
  ntxmon completion fish > ~/.config/fish/completions/ntxmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletion(out)
		}
	},
}

func init() {
	AddGlobalFlags(rootCmd, &opts)
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders structured errors with their suggestion and anything
// else as a single line.
func formatError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Error()
	}
	return fmt.Sprintf("Error: %v\n", err)
}

// watchCommand runs the interactive refresh loop until q or Ctrl-C.
func watchCommand() error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := watch.NewLoop(s.board(os.Stdout), watch.NewLineInput(os.Stdin), os.Stdout, s.cfg.Interval)
	loop.SetLogger(s.log)
	loop.OnState(func(st watch.State) {
		s.log.Debug("refresh loop: %s", st)
	})

	if err := loop.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
