package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDHMS renders elapsed seconds as M:SS, H:MM:SS or D:HH:MM:SS,
// dropping leading units that are zero. Negative input is treated as zero.
func FormatDHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := seconds / 86400
	h := seconds % 86400 / 3600
	m := seconds % 3600 / 60
	s := seconds % 60

	switch {
	case d > 0:
		return fmt.Sprintf("%d:%02d:%02d:%02d", d, h, m, s)
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	default:
		return fmt.Sprintf("%d:%02d", m, s)
	}
}

// ParseDHMS is the inverse of FormatDHMS.
func ParseDHMS(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return 0, fmt.Errorf("invalid duration %q: want M:SS, H:MM:SS or D:HH:MM:SS", s)
	}

	// Units from the right: seconds, minutes, hours, days.
	units := []int64{1, 60, 3600, 86400}
	var total int64
	for i := 0; i < len(parts); i++ {
		p := parts[len(parts)-1-i]
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q: bad field %q", s, p)
		}
		if i < len(parts)-1 && len(p) != 2 {
			return 0, fmt.Errorf("invalid duration %q: field %q must be two digits", s, p)
		}
		total += n * units[i]
	}
	return total, nil
}
