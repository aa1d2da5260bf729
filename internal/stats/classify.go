package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/table"
	"github.com/rileyhilliard/ntxmon/internal/ui"
)

// NeverText is shown for events that have not happened yet.
const NeverText = "Never"

// UnavailableText fills every metric cell of a coin that could not be collected.
const UnavailableText = "---"

const (
	mib = 1 << 20

	walletCritical     = 10 * mib
	walletWarnMain     = 5 * mib
	walletWarnThirdPty = 3 * mib
	walletSmall        = 1 * mib
)

// Elapsed returns whole seconds between a unix timestamp and now, clamped
// at zero for timestamps in the future.
func Elapsed(unix int64, now time.Time) int64 {
	sec := now.Unix() - unix
	if sec < 0 {
		return 0
	}
	return sec
}

// ClassifyLastEvent renders time since an event. A zero timestamp means the
// event never happened and is critical. Otherwise no severity is attached.
func ClassifyLastEvent(unix int64, now time.Time) table.Cell {
	if unix == 0 {
		return table.Cell{Text: NeverText, Severity: ui.SeverityCritical}
	}
	return table.Cell{Text: FormatDHMS(Elapsed(unix, now))}
}

// ClassifyBlockAge renders time since the last block, bucketed against th.
// Up to th.Normal is normal, up to th.Stale is a warning, beyond is critical.
func ClassifyBlockAge(unix int64, now time.Time, th config.BlockThresholds) table.Cell {
	if unix == 0 {
		return table.Cell{Text: NeverText, Severity: ui.SeverityCritical}
	}
	sec := Elapsed(unix, now)
	age := time.Duration(sec) * time.Second

	sev := ui.SeverityCritical
	switch {
	case age <= th.Normal:
		sev = ui.SeverityNormal
	case age <= th.Warning, age <= th.Stale:
		sev = ui.SeverityWarning
	}
	return table.Cell{Text: FormatDHMS(sec), Severity: sev}
}

// UTXOBucket names the range a notarization UTXO count falls in.
type UTXOBucket int

const (
	UTXODepleted   UTXOBucket = iota // < 5
	UTXOLow                          // 5-9
	UTXOOK                           // 10-40
	UTXOGood                         // 41-100
	UTXOFragmented                   // > 100
)

// BucketUTXO places a non-negative count in exactly one bucket.
func BucketUTXO(count int) UTXOBucket {
	switch {
	case count < 5:
		return UTXODepleted
	case count < 10:
		return UTXOLow
	case count <= 40:
		return UTXOOK
	case count <= 100:
		return UTXOGood
	default:
		return UTXOFragmented
	}
}

// Severity maps a bucket to its display severity.
func (b UTXOBucket) Severity() ui.Severity {
	switch b {
	case UTXOLow:
		return ui.SeverityWarning
	case UTXOOK, UTXOGood:
		return ui.SeverityNormal
	default:
		return ui.SeverityCritical
	}
}

// ClassifyUTXO renders a notarization UTXO count.
func ClassifyUTXO(count int) (table.Cell, error) {
	if count < 0 {
		return table.Cell{}, errors.New(errors.ErrInput,
			fmt.Sprintf("negative UTXO count %d", count), "")
	}
	b := BucketUTXO(count)
	text := fmt.Sprintf("%d", count)
	if b == UTXOFragmented {
		text = "> 100"
	}
	return table.Cell{Text: text, Severity: b.Severity()}, nil
}

// ClassifyWalletSize renders a wallet file size using the policy for layout.
// The main layout flags small wallets as a warning because a freshly reset
// wallet has no notarization history yet.
func ClassifyWalletSize(size int64, layout string) (table.Cell, error) {
	if size < 0 {
		return table.Cell{}, errors.New(errors.ErrInput,
			fmt.Sprintf("negative wallet size %d", size), "")
	}
	human := humanize.IBytes(uint64(size))

	if layout == config.LayoutThirdParty {
		switch {
		case size > walletCritical:
			return table.Cell{Text: "> 10M", Severity: ui.SeverityCritical}, nil
		case size > walletWarnThirdPty:
			return table.Cell{Text: "> 3M", Severity: ui.SeverityWarning}, nil
		case size < walletSmall:
			return table.Cell{Text: human, Severity: ui.SeverityNormal}, nil
		}
		return table.Cell{Text: human}, nil
	}

	switch {
	case size > walletCritical:
		return table.Cell{Text: "> 10M", Severity: ui.SeverityCritical}, nil
	case size > walletWarnMain:
		return table.Cell{Text: "> 5M", Severity: ui.SeverityWarning}, nil
	case size < walletSmall:
		return table.Cell{Text: "< 1M", Severity: ui.SeverityWarning}, nil
	}
	return table.Cell{Text: human}, nil
}

// ClassifyBalance renders a wallet balance to three decimals.
func ClassifyBalance(balance float64) (table.Cell, error) {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return table.Cell{}, errors.New(errors.ErrInput,
			fmt.Sprintf("balance %v is not a number", balance), "")
	}
	sev := ui.SeverityNormal
	if balance < 0.1 {
		sev = ui.SeverityWarning
	}
	return table.Cell{Text: fitDecimal(balance, 3, Columns()[ColBalance].Width), Severity: sev}, nil
}

// fitDecimal formats v with up to prec decimals, dropping decimals until
// it fits width. Integer digits are never dropped; a value whose integer
// part alone is too wide is returned as is and shown as overflow.
func fitDecimal(v float64, prec, width int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	for p := prec - 1; p >= 0 && len(s) > width; p-- {
		s = strconv.FormatFloat(v, 'f', p, 64)
	}
	return s
}

// FormatLatency renders a probe round trip in seconds.
func FormatLatency(d time.Duration) string {
	return fmt.Sprintf("%.4f", d.Seconds())
}
