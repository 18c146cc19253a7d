package service

import (
	"fmt"
	"time"
)

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatRelativeTime renders the gap between then and now at the coarsest
// whole unit: days, hours, minutes, else "Just now".
func FormatRelativeTime(now, then time.Time) string {
	diff := now.Sub(then)
	if diff < 0 {
		diff = 0
	}
	if days := int(diff / (24 * time.Hour)); days > 0 {
		return plural(days, "day")
	}
	if hours := int(diff / time.Hour); hours > 0 {
		return plural(hours, "hour")
	}
	if minutes := int(diff / time.Minute); minutes > 0 {
		return plural(minutes, "minute")
	}
	return "Just now"
}
