package normalize

import (
	"strings"

	"github.com/alexanderramin/donna/internal/domain"
)

var dayAliases = map[string]domain.Day{
	"MONDAY": domain.Monday, "TUESDAY": domain.Tuesday, "WEDNESDAY": domain.Wednesday,
	"THURSDAY": domain.Thursday, "FRIDAY": domain.Friday, "SATURDAY": domain.Saturday,
	"SUNDAY": domain.Sunday,
	"MON": domain.Monday, "TUE": domain.Tuesday, "WED": domain.Wednesday, "THU": domain.Thursday,
	"FRI": domain.Friday, "SAT": domain.Saturday, "SUN": domain.Sunday,
	"M": domain.Monday, "T": domain.Tuesday, "W": domain.Wednesday, "TH": domain.Thursday,
	"F": domain.Friday, "SA": domain.Saturday, "SU": domain.Sunday,
}

// Day normalizes a weekday name, three-letter code or one/two-letter
// abbreviation to its canonical code.
func Day(s string) (domain.Day, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, ".")
	if d, ok := dayAliases[key]; ok {
		return d, nil
	}
	return "", domain.InvalidInput("Invalid day: %s", s)
}

// DayAliases returns every accepted alias for the canonical code d.
func DayAliases(d domain.Day) []string {
	var out []string
	for alias, code := range dayAliases {
		if code == d {
			out = append(out, alias)
		}
	}
	return out
}
