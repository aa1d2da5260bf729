package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/daemon"
	"github.com/rileyhilliard/ntxmon/internal/table"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_Label(t *testing.T) {
	tests := []struct {
		entity Entity
		want   string
	}{
		{Entity{Symbol: "KMD"}, "KMD"},
		{Entity{Symbol: "KMD_3P"}, "KMD (3P)"},
		{Entity{Symbol: "KMD_3P", ThirdParty: true}, "KMD (3P)"},
		{Entity{Symbol: "VRSC", ThirdParty: true}, "VRSC (3P)"},
		{Entity{Symbol: "_3P"}, "_3P"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.Label())
		})
	}
}

func TestEntitiesFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coins["LTC"] = config.Coin{UTXOValue: 0.0001}
	cfg.Coins["KMD"] = config.Coin{UTXOValue: 0.0001}
	cfg.Coins["VRSC"] = config.Coin{UTXOValue: 0.0001, ThirdParty: true}

	got := EntitiesFromConfig(cfg)
	assert.Equal(t, []string{"KMD", "LTC", "VRSC"}, symbols(got))
	assert.True(t, got[2].ThirdParty)

	cfg.Order = []string{"VRSC", "KMD", "LTC"}
	assert.Equal(t, []string{"VRSC", "KMD", "LTC"}, symbols(EntitiesFromConfig(cfg)))
}

func symbols(es []Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Symbol
	}
	return out
}

func TestColumns(t *testing.T) {
	cols := Columns()
	assert.Len(t, cols, numColumns)
	assert.Equal(t, "COIN", cols[ColCoin].Title)
	assert.Equal(t, "TIME", cols[ColTime].Title)
	for _, c := range cols {
		assert.Positive(t, c.Width, c.Title)
	}
}

func TestNotarizations(t *testing.T) {
	other := "RSomeoneElse"
	txs := []daemon.Transaction{
		{Category: "send", Address: ntxAddr, Time: 100},
		{Category: "send", Address: ntxAddr, Time: 300},
		{Category: "send", Address: other, Time: 900},
		{Category: "receive", Address: ntxAddr, Time: 800},
		{Category: "generate", Time: 500},
		{Category: "immature", Time: 700},
		{Category: "mined", Time: 600},
	}

	st := Notarizations(txs, ntxAddr, true)
	assert.Equal(t, NotaryStats{Count: 2, Last: 300, LastMined: 700}, st)

	st = Notarizations(txs, ntxAddr, false)
	assert.Equal(t, NotaryStats{Count: 2, Last: 300}, st)

	assert.Equal(t, NotaryStats{}, Notarizations(nil, ntxAddr, true))
}

func TestCountUTXOs(t *testing.T) {
	unspent := []daemon.Unspent{
		{Amount: 0.0001},
		{Amount: 0.00010000000000000001},
		{Amount: 0.0000999},
		{Amount: 0.001},
		{Amount: 0.0001},
	}
	assert.Equal(t, 3, CountUTXOs(unspent, 0.0001))
	assert.Equal(t, 1, CountUTXOs(unspent, 0.001))
	assert.Zero(t, CountUTXOs(nil, 0.0001))
}

func TestColumns_LargeValuesKeepTheirDigits(t *testing.T) {
	balance, err := ClassifyBalance(1234567.891)
	require.NoError(t, err)

	row := UnavailableRow(Entity{Symbol: "KMD"})
	for i := ColCoin + 1; i < len(row); i++ {
		row[i] = table.Cell{Text: "0"}
	}
	row[ColBalance] = balance
	row[ColNumTx] = table.Cell{Text: "1234567"}

	r := table.NewRenderer(Columns(), ui.NewPainter(&bytes.Buffer{}, ui.ColorAlways))
	line := r.Row(row)

	assert.Contains(t, line, "1234567.89")
	assert.Contains(t, line, " 1234567 |")
	assert.NotContains(t, line, "…")
	assert.NotContains(t, line, "#")
	assert.Equal(t, lipgloss.Width(r.Header()), lipgloss.Width(line))
	assert.False(t, strings.Contains(line, ","))
}

func TestColumns_OversizedBalanceShowsOverflow(t *testing.T) {
	balance, err := ClassifyBalance(12345678901)
	require.NoError(t, err)

	row := UnavailableRow(Entity{Symbol: "KMD"})
	for i := ColCoin + 1; i < len(row); i++ {
		row[i] = table.Cell{Text: "0"}
	}
	row[ColBalance] = balance

	r := table.NewRenderer(Columns(), nil)
	line := r.Row(row)
	assert.Contains(t, line, table.Overflow(Columns()[ColBalance].Width))
	assert.NotContains(t, line, "1234567890")
}
