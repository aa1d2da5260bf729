package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/ntxmon/internal/watch"
	"github.com/spf13/cobra"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Print the status table once and exit",
	Long: `Collect every coin once, print the table and exit. Useful from cron
or when piping into other tools.

Examples:
  ntxmon once
  ntxmon once --color never > status.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(opts)
		if err != nil {
			return err
		}
		defer s.Close()

		return renderOnce(cmd.Context(), s.board(os.Stdout), cmd.OutOrStdout())
	},
}

// renderOnce writes a single refresh to out.
func renderOnce(ctx context.Context, r watch.Refresher, out io.Writer) error {
	_, err := fmt.Fprint(out, r.Refresh(ctx))
	return err
}

func init() {
	rootCmd.AddCommand(onceCmd)
}
