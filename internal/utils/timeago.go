package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders the age of t relative to now, e.g. "3 days ago".
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	days := int(d.Hours() / 24)

	switch {
	case days >= 365:
		return plural(days/365, "year")
	case days >= 30:
		return plural(days/30, "month")
	case days >= 7:
		return plural(days/7, "week")
	case days >= 1:
		return plural(days, "day")
	case d >= time.Hour:
		return plural(int(d.Hours()), "hour")
	case d >= time.Minute:
		return plural(int(d.Minutes()), "minute")
	}
	return "Just now"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
