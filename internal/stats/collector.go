package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/daemon"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/logger"
	"github.com/rileyhilliard/ntxmon/internal/table"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"golang.org/x/sync/errgroup"
)

// ProbeMethod is the raw call timed for the TIME column.
const ProbeMethod = "listunspent"

// Result is the outcome of collecting one entity.
type Result struct {
	Entity Entity
	// Row always has one cell per column, including on failure.
	Row table.Row
	// Err is set when any collection step failed. Row then holds
	// unavailable markers.
	Err error
	// LastMined is the unix time of the newest block reward for the mined
	// coin, zero otherwise.
	LastMined   int64
	CollectedAt time.Time
}

// OK reports whether the entity was collected successfully.
func (r Result) OK() bool {
	return r.Err == nil
}

// Collector gathers metric rows for configured coins.
type Collector struct {
	cfg         *config.Config
	endpoints   map[string]daemon.Endpoint
	concurrency int
	log         logger.Logger
	now         func() time.Time
}

// NewCollector creates a collector over opened daemon endpoints, keyed by
// coin symbol.
func NewCollector(cfg *config.Config, endpoints map[string]daemon.Endpoint) *Collector {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Collector{
		cfg:         cfg,
		endpoints:   endpoints,
		concurrency: concurrency,
		log:         logger.Noop(),
		now:         time.Now,
	}
}

// SetLogger sets the logger used for per-entity failures.
func (c *Collector) SetLogger(log logger.Logger) {
	c.log = log
}

// SetClock replaces the time source. Latency is measured with it too.
func (c *Collector) SetClock(now func() time.Time) {
	c.now = now
}

// SetConcurrency sets how many entities are collected at once.
func (c *Collector) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	c.concurrency = n
}

// Collect gathers every entity, at most concurrency at a time. Results are
// in the same order as entities regardless of completion order.
func (c *Collector) Collect(ctx context.Context, entities []Entity) []Result {
	results := make([]Result, len(entities))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, e := range entities {
		g.Go(func() error {
			results[i] = c.CollectOne(ctx, e)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CollectOne runs the query sequence for one entity. The first failing step
// aborts the rest and the entity is reported unavailable.
func (c *Collector) CollectOne(ctx context.Context, e Entity) Result {
	now := c.now()
	res := Result{Entity: e, CollectedAt: now}

	row, lastMined, err := c.collect(ctx, e, now)
	if err != nil {
		c.log.Debug("%s unavailable: %v", e.Symbol, err)
		res.Row = UnavailableRow(e)
		res.Err = err
		return res
	}
	res.Row = row
	res.LastMined = lastMined
	return res
}

func (c *Collector) collect(ctx context.Context, e Entity, now time.Time) (table.Row, int64, error) {
	ep, ok := c.endpoints[e.Symbol]
	if !ok || ep.Client == nil {
		return nil, 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("no daemon endpoint for %s", e.Symbol),
			"Check the coins section of your config")
	}
	client := ep.Client

	txs, err := client.ListTransactions(ctx)
	if err != nil {
		return nil, 0, err
	}
	ntx := Notarizations(txs, e.Coin.NTXAddress, e.Symbol == c.cfg.MinedCoin)

	unspent, err := client.ListUnspent(ctx)
	if err != nil {
		return nil, 0, err
	}
	utxos := CountUTXOs(unspent, e.Coin.UTXOValue)

	height, err := client.GetBlockCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	blockTime, err := client.GetBlockTimestamp(ctx, height)
	if err != nil {
		return nil, 0, err
	}

	netInfo, err := client.GetNetworkInfo(ctx)
	if err != nil {
		return nil, 0, err
	}

	if ep.Wallet == nil {
		return nil, 0, errors.New(errors.ErrWallet,
			fmt.Sprintf("no wallet configured for %s", e.Symbol), "")
	}
	walletSize, err := ep.Wallet.Size(ctx)
	if err != nil {
		return nil, 0, err
	}

	numTx := len(txs)

	start := c.now()
	if _, err := client.Call(ctx, ProbeMethod); err != nil {
		return nil, 0, err
	}
	latency := c.now().Sub(start)

	balance, err := client.GetBalance(ctx)
	if err != nil {
		return nil, 0, err
	}

	utxoCell, err := ClassifyUTXO(utxos)
	if err != nil {
		return nil, 0, err
	}
	sizeCell, err := ClassifyWalletSize(walletSize, c.cfg.Layout)
	if err != nil {
		return nil, 0, err
	}
	balanceCell, err := ClassifyBalance(balance)
	if err != nil {
		return nil, 0, err
	}

	row := make(table.Row, numColumns)
	row[ColCoin] = table.Cell{Text: e.Label()}
	row[ColNTX] = table.Cell{Text: strconv.Itoa(ntx.Count)}
	row[ColLastNTX] = ClassifyLastEvent(ntx.Last, now)
	row[ColUTXO] = utxoCell
	row[ColBalance] = balanceCell
	row[ColBlocks] = table.Cell{Text: strconv.FormatInt(height, 10)}
	row[ColLastBlock] = ClassifyBlockAge(blockTime, now, c.cfg.BlockThresholdsFor(e.Symbol))
	row[ColConn] = table.Cell{Text: strconv.Itoa(netInfo.Connections)}
	row[ColSize] = sizeCell
	row[ColNumTx] = table.Cell{Text: strconv.Itoa(numTx)}
	row[ColTime] = table.Cell{Text: FormatLatency(latency)}

	return row, ntx.LastMined, nil
}

// UnavailableRow is the full-arity row shown for an entity that could not
// be collected.
func UnavailableRow(e Entity) table.Row {
	row := make(table.Row, numColumns)
	row[ColCoin] = table.Cell{Text: e.Label()}
	for i := ColCoin + 1; i < numColumns; i++ {
		row[i] = table.Cell{Text: UnavailableText, Severity: ui.SeverityUnavailable}
	}
	return row
}

// Rows extracts the rows from results in order.
func Rows(results []Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = r.Row
	}
	return rows
}

// LastMinedAnnotation returns the footer text for the newest block reward
// among results, or "" when none was found.
func LastMinedAnnotation(results []Result, now time.Time) string {
	var last int64
	for _, r := range results {
		if r.LastMined > last {
			last = r.LastMined
		}
	}
	if last == 0 {
		return ""
	}
	return "Last mined: " + FormatDHMS(Elapsed(last, now))
}
