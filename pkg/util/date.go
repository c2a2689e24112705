package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatDateTpl formats a timestamp in milliseconds since the Unix epoch
// using a template with placeholders.
//
// Supported placeholders:
// - YYYY: 4-digit year
// - YY: 2-digit year
// - MM: 2-digit month (01-12)
// - DD: 2-digit day (01-31)
// - hh: 2-digit hour (00-23)
// - mm: 2-digit minute (00-59)
// - ss: 2-digit second (00-59)
//
// Returns an empty string if ts == 0. Times are rendered in UTC.
//
// Example:
//
//	ts := int64(1699603200000)
//	FormatDateTpl(ts, "YYYY.MM.DD")       // "2023.11.10"
//	FormatDateTpl(ts, "YYYY-MM-DD hh:mm") // "2023-11-10 08:00"
func FormatDateTpl(ts int64, tpl string) string {
	if ts == 0 {
		return ""
	}

	// Longest placeholders first so YYYY is not eaten by YY.
	r := strings.NewReplacer(
		"YYYY", "2006",
		"YY", "06",
		"MM", "01",
		"DD", "02",
		"hh", "15",
		"mm", "04",
		"ss", "05",
	)
	return time.UnixMilli(ts).UTC().Format(r.Replace(tpl))
}

// DiscordTimestamp renders Discord's <t:SECONDS:STYLE> markup from epoch
// milliseconds. Style is one of t, T, d, D, f, F, R.
func DiscordTimestamp(ms int64, style byte) string {
	return fmt.Sprintf("<t:%d:%c>", int64(math.Round(float64(ms)/1000)), style)
}

var timestampMarkup = regexp.MustCompile(`<t:(-?\d+)(?::[tTdDfFR])?>`)

// ExpandTimestamps replaces Discord timestamp markup in s with dates formatted
// by tpl, for surfaces that do not render the markup.
func ExpandTimestamps(s, tpl string) string {
	return timestampMarkup.ReplaceAllStringFunc(s, func(m string) string {
		sec, err := strconv.ParseInt(timestampMarkup.FindStringSubmatch(m)[1], 10, 64)
		if err != nil {
			return m
		}
		return FormatDateTpl(sec*1000, tpl)
	})
}
