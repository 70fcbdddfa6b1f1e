package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// DateLayout is the canonical date format.
const DateLayout = "2006-01-02"

// Policy holds the tunable heuristics used when a date omits its year.
type Policy struct {
	// YearRolloverAfter: when the year is omitted, the parsed date is already
	// past and the current month is later than this month, the date moves to
	// next year. A "probably what the user meant" guess, not a guarantee.
	YearRolloverAfter time.Month `yaml:"year_rollover_after"`
}

// DefaultPolicy rolls year-less past dates forward only in November and
// December.
func DefaultPolicy() Policy {
	return Policy{YearRolloverAfter: time.October}
}

var fullYearLayouts = []string{
	DateLayout,
	"1/2/2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var yearlessLayouts = []string{
	"1/2",
	"1-2",
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

var (
	ordinalSuffixRe = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	relativeInRe    = regexp.MustCompile(`^in\s+(\d+|an?|one)\s+(day|week|month)s?$`)
	relativeAgoRe   = regexp.MustCompile(`^(\d+|an?|one)\s+(day|week|month)s?\s+ago$`)
)

// Date normalizes s to "YYYY-MM-DD" relative to now. Accepted forms are ISO,
// M/D[/YYYY], M-D[-YYYY], month-name forms and the relative tokens today,
// tomorrow, yesterday, next week, next month, "in N days|weeks|months" and
// "N days|weeks|months ago".
func Date(s string, now time.Time, policy Policy) (string, error) {
	in := strings.TrimSpace(s)
	lower := strings.ToLower(in)
	today := startOfDay(now)

	switch lower {
	case "today":
		return today.Format(DateLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(DateLayout), nil
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(DateLayout), nil
	case "next week":
		return today.AddDate(0, 0, 7).Format(DateLayout), nil
	case "next month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first.AddDate(0, 1, 0).Format(DateLayout), nil
	}

	if m := relativeInRe.FindStringSubmatch(lower); m != nil {
		return shift(today, quantity(m[1]), m[2]).Format(DateLayout), nil
	}
	if m := relativeAgoRe.FindStringSubmatch(lower); m != nil {
		return shift(today, -quantity(m[1]), m[2]).Format(DateLayout), nil
	}

	cleaned := ordinalSuffixRe.ReplaceAllString(in, "$1")

	for _, layout := range fullYearLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, now.Location()); err == nil {
			return t.Format(DateLayout), nil
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, cleaned, now.Location())
		if err != nil {
			continue
		}
		d, ok := withYear(t, today.Year())
		if !ok {
			return "", domain.InvalidInput("Could not parse date: %s", s)
		}
		if d.Before(today) && now.Month() > policy.YearRolloverAfter {
			if next, ok := withYear(t, today.Year()+1); ok {
				d = next
			}
		}
		return d.Format(DateLayout), nil
	}

	return "", domain.InvalidInput("Could not parse date: %s", s)
}

// ParseDate parses a canonical date string at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, domain.InvalidInput("Invalid date format. Please use YYYY-MM-DD format")
	}
	return t, nil
}

// withYear rebuilds t in the given year, rejecting dates that do not exist
// in it (Feb 29 outside leap years).
func withYear(t time.Time, year int) (time.Time, bool) {
	d := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d, d.Month() == t.Month() && d.Day() == t.Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func quantity(s string) int {
	switch s {
	case "a", "an", "one":
		return 1
	}
	n, _ := strconv.Atoi(s)
	return n
}

func shift(t time.Time, n int, unit string) time.Time {
	switch unit {
	case "week":
		return t.AddDate(0, 0, 7*n)
	case "month":
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}
