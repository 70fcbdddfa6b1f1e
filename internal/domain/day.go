package domain

import "time"

// Day is a canonical three-letter weekday code.
type Day string

const (
	Monday    Day = "MON"
	Tuesday   Day = "TUE"
	Wednesday Day = "WED"
	Thursday  Day = "THU"
	Friday    Day = "FRI"
	Saturday  Day = "SAT"
	Sunday    Day = "SUN"
)

// AllDays lists the canonical codes Monday first.
var AllDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayWeekdays = map[Day]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Weekday converts the code to a time.Weekday. ok is false for unknown codes.
func (d Day) Weekday() (time.Weekday, bool) {
	wd, ok := dayWeekdays[d]
	return wd, ok
}

// Valid reports whether d is one of the seven canonical codes.
func (d Day) Valid() bool {
	_, ok := dayWeekdays[d]
	return ok
}

// DayOf returns the canonical code for t's weekday.
func DayOf(t time.Time) Day {
	return DayFromWeekday(t.Weekday())
}

// DayFromWeekday returns the canonical code for wd.
func DayFromWeekday(wd time.Weekday) Day {
	// time.Sunday == 0
	return AllDays[(int(wd)+6)%7]
}

// DaysUntil returns how many days ahead of from the next occurrence of d
// falls, in [0,6].
func (d Day) DaysUntil(from time.Weekday) int {
	wd, ok := d.Weekday()
	if !ok {
		return 0
	}
	return (int(wd) - int(from) + 7) % 7
}
