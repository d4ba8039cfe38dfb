// Package view maps raw catalog responses into display-ready view models.
// Every function here is pure: the same input always yields the same output.
package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	NotAvailable  = "N/A"
	ToBeAnnounced = "TBA"
)

// FormatRating renders a 0-10 vote average with one decimal.
// Absent, NaN and out-of-range values render as "N/A".
func FormatRating(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > 10 {
		return NotAvailable
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// NormalizeRatingText re-applies FormatRating to an already rendered rating.
func NormalizeRatingText(s string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return NotAvailable
	}
	return FormatRating(&f)
}

// parseDate accepts the API's ISO dates and full RFC 3339 timestamps.
func parseDate(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil && t.Year() > 0 {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReleaseYear renders the four-digit year of an ISO date, or "TBA" when
// missing or invalid.
func ReleaseYear(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ToBeAnnounced
	}
	return fmt.Sprintf("%04d", t.Year())
}

// NormalizeYearText re-applies ReleaseYear to an already rendered year.
func NormalizeYearText(s string) string {
	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil && y > 0 {
			return s
		}
	}
	return ToBeAnnounced
}

// FormatDate renders an ISO date unchanged when valid, "TBA" otherwise.
func FormatDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ToBeAnnounced
	}
	return t.Format("2006-01-02")
}

// FormatMoney renders whole US dollars ("$63,000,000"); zero means unknown.
func FormatMoney(amount int64, noData string) string {
	if amount <= 0 {
		return noData
	}
	return "$" + humanize.Comma(amount)
}

// FormatRuntime renders minutes as "2h 16m" using the locale's hour suffix.
func FormatRuntime(minutes int, msgs Messages) string {
	if minutes <= 0 {
		return msgs.NoData
	}
	return fmt.Sprintf("%d%s %dm", minutes/60, msgs.HourSuffix, minutes%60)
}

// FormatCount renders vote counts with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
