// Package normalize converts loosely formatted times, dates and weekday names
// into the canonical forms used by event descriptors.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/donna/internal/domain"
)

// TimeLayout is the canonical time format, e.g. "02:00 PM".
const TimeLayout = "03:04 PM"

var (
	twelveHourRe     = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap])\.?\s*m\.?$`)
	twentyFourHourRe = regexp.MustCompile(`^(\d{1,2}):?(\d{2})$`)
)

// Time normalizes s to "HH:MM AM|PM". It accepts 24-hour input ("17:00",
// "1700"), bare hours with a period ("5pm", "5 PM") and hour:minute with a
// period ("5:30 pm"), plus "noon" and "midnight".
func Time(s string) (string, error) {
	in := strings.TrimSpace(s)
	switch strings.ToLower(in) {
	case "noon", "12 noon":
		return formatClock(12, 0), nil
	case "midnight", "12 midnight":
		return formatClock(0, 0), nil
	}

	if m := twelveHourRe.FindStringSubmatch(in); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 {
			return "", domain.InvalidInput("Invalid hour in time: %s", s)
		}
		if minute > 59 {
			return "", domain.InvalidInput("Invalid minute in time: %s", s)
		}
		pm := strings.EqualFold(m[3], "p")
		switch {
		case pm && hour != 12:
			hour += 12
		case !pm && hour == 12:
			hour = 0
		}
		return formatClock(hour, minute), nil
	}

	if m := twentyFourHourRe.FindStringSubmatch(in); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 {
			return "", domain.InvalidInput("Invalid hour in time: %s", s)
		}
		if minute > 59 {
			return "", domain.InvalidInput("Invalid minute in time: %s", s)
		}
		return formatClock(hour, minute), nil
	}

	return "", domain.InvalidInput("Could not parse time: %s", s)
}

// Clock parses a time string (canonical or any form Time accepts) into a
// 24-hour clock value.
func Clock(s string) (domain.ClockTime, error) {
	canonical, err := Time(s)
	if err != nil {
		return domain.ClockTime{}, err
	}
	hour, _ := strconv.Atoi(canonical[0:2])
	minute, _ := strconv.Atoi(canonical[3:5])
	if canonical[6:] == "PM" && hour != 12 {
		hour += 12
	} else if canonical[6:] == "AM" && hour == 12 {
		hour = 0
	}
	return domain.ClockTime{Hour: hour, Minute: minute}, nil
}

// FormatClock renders a 24-hour clock value canonically.
func FormatClock(c domain.ClockTime) string {
	return formatClock(c.Hour, c.Minute)
}

func formatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, minute, period)
}
