package stats

import (
	"strings"

	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/table"
)

const thirdPartySuffix = "_3P"

// Entity is one monitored coin.
type Entity struct {
	Symbol     string
	ThirdParty bool
	Coin       config.Coin
}

// Label is the text shown in the COIN column. Third-party coins get a
// " (3P)" suffix; a symbol like KMD_3P is shown as "KMD (3P)".
func (e Entity) Label() string {
	if base, ok := strings.CutSuffix(e.Symbol, thirdPartySuffix); ok && base != "" {
		return base + " (3P)"
	}
	if e.ThirdParty {
		return e.Symbol + " (3P)"
	}
	return e.Symbol
}

// EntitiesFromConfig lists the configured coins in display order.
func EntitiesFromConfig(cfg *config.Config) []Entity {
	order := cfg.CoinOrder()
	out := make([]Entity, 0, len(order))
	for _, sym := range order {
		coin := cfg.Coins[sym]
		out = append(out, Entity{Symbol: sym, ThirdParty: coin.ThirdParty, Coin: coin})
	}
	return out
}

// Column indexes into the default layout.
const (
	ColCoin = iota
	ColNTX
	ColLastNTX
	ColUTXO
	ColBalance
	ColBlocks
	ColLastBlock
	ColConn
	ColSize
	ColNumTx
	ColTime

	numColumns
)

// Columns returns the default column set.
func Columns() []table.Column {
	return []table.Column{
		ColCoin:      {Title: "COIN", Width: 12},
		ColNTX:       {Title: "NTX", Width: 6},
		ColLastNTX:   {Title: "LASTNTX", Width: 10},
		ColUTXO:      {Title: "UTXO", Width: 6},
		ColBalance:   {Title: "BALANCE", Width: 10},
		ColBlocks:    {Title: "BLOCKS", Width: 10},
		ColLastBlock: {Title: "LASTBLK", Width: 10},
		ColConn:      {Title: "CONN", Width: 6},
		ColSize:      {Title: "SIZE", Width: 8},
		ColNumTx:     {Title: "NUMTX", Width: 8},
		ColTime:      {Title: "TIME", Width: 8},
	}
}
