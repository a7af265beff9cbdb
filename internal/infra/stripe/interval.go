package stripe

import (
	"strings"

	"github.com/manmeet1049/bizzler/internal/domain/duration"
)

// DurationFromInterval maps a Stripe recurring interval onto a plan duration.
// Weeks become seven days. ok is false for anything else.
func DurationFromInterval(interval string, count int64) (n int, unit duration.Unit, ok bool) {
	if count <= 0 {
		count = 1
	}
	switch strings.ToLower(strings.TrimSpace(interval)) {
	case "day":
		return int(count), duration.Day, true
	case "week":
		return int(count) * 7, duration.Day, true
	case "month":
		return int(count), duration.Month, true
	case "year":
		return int(count), duration.Year, true
	default:
		return 0, "", false
	}
}
