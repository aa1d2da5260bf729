package cli

import (
	"os"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Full-screen status dashboard",
	Long: `Start an interactive full-screen dashboard over the same table.

Keyboard shortcuts:
  r           Refresh now
  e           Show per-coin errors
  up/k        Scroll up
  down/j      Scroll down
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  ntxmon tui
  ntxmon tui --coins KMD --interval 30s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New(errors.ErrConfig,
				"The dashboard needs a terminal",
				"Use 'ntxmon once' when piping output.")
		}

		s, err := openSession(opts)
		if err != nil {
			return err
		}
		defer s.Close()

		// A collection is cut off once the next tick is due.
		return monitor.Run(s.board(os.Stdout), s.cfg.Interval, s.cfg.Interval)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
