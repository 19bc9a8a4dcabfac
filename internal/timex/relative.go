package timex

import (
	"fmt"
	"time"
)

// FormatRelative renders a Unix-millisecond timestamp the way page lists
// show dates: "today", "yesterday", "N days ago" up to six days, then a
// short month/day label with the year appended only when it differs from
// the current one.
func FormatRelative(unixMilli int64, now time.Time) string {
	t := time.UnixMilli(unixMilli)
	days := int(now.Sub(t).Hours() / 24)

	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}

	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}
