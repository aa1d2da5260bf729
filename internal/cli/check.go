package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ntxmon/internal/daemon"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/stats"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every coin daemon answers RPC",
	Long: `Call getnetworkinfo and getblockcount on each configured daemon and
report latency, version and height. Exits non-zero when any daemon fails.

Examples:
  ntxmon check
  ntxmon check --coins KMD,LTC`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(opts)
		if err != nil {
			return err
		}
		defer s.Close()

		results := checkEndpoints(cmd.Context(), s.entities, s.endpoints, s.cfg.Concurrency, time.Now)
		return reportCheck(os.Stdout, s.painter(os.Stdout), results)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult is one daemon's answer to the connectivity probe.
type checkResult struct {
	Label   string
	Latency time.Duration
	Info    daemon.NetworkInfo
	Height  int64
	Err     error
}

// checkEndpoints probes each entity, at most concurrency at a time, and
// keeps the entity order.
func checkEndpoints(ctx context.Context, entities []stats.Entity, endpoints map[string]daemon.Endpoint, concurrency int, now func() time.Time) []checkResult {
	results := make([]checkResult, len(entities))

	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))
	for i, e := range entities {
		g.Go(func() error {
			results[i] = checkOne(ctx, e, endpoints, now)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func checkOne(ctx context.Context, e stats.Entity, endpoints map[string]daemon.Endpoint, now func() time.Time) checkResult {
	res := checkResult{Label: e.Label()}

	ep, ok := endpoints[e.Symbol]
	if !ok || ep.Client == nil {
		res.Err = errors.New(errors.ErrConfig, fmt.Sprintf("No endpoint for %s", e.Symbol), "")
		return res
	}

	start := now()
	info, err := ep.Client.GetNetworkInfo(ctx)
	res.Latency = now().Sub(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Info = info

	height, err := ep.Client.GetBlockCount(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	res.Height = height
	return res
}

// reportCheck prints one line per result and returns an RPC error when any
// daemon failed.
func reportCheck(w io.Writer, p *ui.Painter, results []checkResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s %-12s %s\n", p.Paint(ui.SymbolFail, ui.SeverityCritical), r.Label, errorLine(r.Err))
			continue
		}
		fmt.Fprintf(w, "%s %-12s %.4fs  height %s  peers %d  %s (%d)\n",
			p.Paint(ui.SymbolSuccess, ui.SeverityNormal), r.Label,
			r.Latency.Seconds(), humanize.Comma(r.Height), r.Info.Connections,
			r.Info.Subversion, r.Info.Version)
	}

	if failed > 0 {
		return errors.New(errors.ErrRPC,
			fmt.Sprintf("%d of %d daemons did not answer", failed, len(results)),
			"Check the daemons are running and the rpc settings in .ntxmon.yaml.")
	}
	fmt.Fprintf(w, "\nAll %d daemons answered.\n", len(results))
	return nil
}

func errorLine(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Short()
	}
	return err.Error()
}
