package stats

import (
	"math"

	"github.com/rileyhilliard/ntxmon/internal/daemon"
)

// Transaction categories reported by listtransactions.
const (
	categorySend     = "send"
	categoryGenerate = "generate"
	categoryImmature = "immature"
	categoryMined    = "mined"
)

// NotaryStats summarizes a wallet's transaction list.
type NotaryStats struct {
	// Count is the number of notarization sends.
	Count int
	// Last is the unix time of the newest notarization, zero if none.
	Last int64
	// LastMined is the unix time of the newest block reward, zero if none.
	LastMined int64
}

// Notarizations scans txs for sends to ntxAddress. Block rewards are only
// tracked when mined is true.
func Notarizations(txs []daemon.Transaction, ntxAddress string, mined bool) NotaryStats {
	var st NotaryStats
	for _, tx := range txs {
		switch tx.Category {
		case categorySend:
			if tx.Address != ntxAddress {
				continue
			}
			st.Count++
			if tx.Time > st.Last {
				st.Last = tx.Time
			}
		case categoryGenerate, categoryImmature, categoryMined:
			if mined && tx.Time > st.LastMined {
				st.LastMined = tx.Time
			}
		}
	}
	return st
}

// CountUTXOs counts unspent outputs of exactly value coins, compared in
// satoshis so float noise from JSON decoding does not matter.
func CountUTXOs(unspent []daemon.Unspent, value float64) int {
	want := satoshis(value)
	n := 0
	for _, u := range unspent {
		if satoshis(u.Amount) == want {
			n++
		}
	}
	return n
}

func satoshis(v float64) int64 {
	return int64(math.Round(v * 1e8))
}
