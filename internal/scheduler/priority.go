package scheduler

import (
	"strconv"
	"strings"
)

// DefaultPriority applies when no keyword matches.
const DefaultPriority = 5

// priorityKeywords is checked in order; the first keyword found wins.
var priorityKeywords = []struct {
	keyword  string
	priority int
}{
	{"class", 1},
	{"meeting", 1},
	{"social", 2},
	{"study", 3},
	{"workout", 4},
	{"call", 4},
}

// Priority ranks an event by title keywords, 1 (highest) to 5.
func Priority(title string) int {
	lower := strings.ToLower(title)
	for _, pk := range priorityKeywords {
		if strings.Contains(lower, pk.keyword) {
			return pk.priority
		}
	}
	return DefaultPriority
}

// ColorID maps a priority onto a calendar color ID.
func ColorID(priority int) string {
	if priority < 1 || priority > DefaultPriority {
		priority = DefaultPriority
	}
	return strconv.Itoa(priority)
}
