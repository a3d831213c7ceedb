package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCount renders a stack size for the slot label. Values under 10000
// print verbatim; larger ones pick the first k/M/B/T tier under 1000, with
// one decimal place below 10 (trailing ".0" stripped). Anything past T is
// "INF".
func FormatCount(count int64) string {
	if count < 10000 {
		return strconv.FormatInt(count, 10)
	}

	n := float64(count)
	for _, suffix := range [...]string{"k", "M", "B", "T"} {
		n /= 1000.0
		if n < 1000 {
			if n >= 10 {
				return fmt.Sprintf("%d%s", int64(n), suffix)
			}
			s := fmt.Sprintf("%.1f", n)
			s = strings.TrimSuffix(s, ".0")
			return s + suffix
		}
	}
	return "INF"
}

// FormatShortDate renders a millisecond timestamp as "yy-mm-dd hh:mm", or
// "Never" when the backpack has no recorded access.
func FormatShortDate(millis int64) string {
	if millis == 0 {
		return "Never"
	}
	return time.UnixMilli(millis).Format("06-01-02 15:04")
}
