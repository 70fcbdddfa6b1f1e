package intelligence

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/normalize"
)

// rawDescriptor is the loosely-typed shape models actually emit. Numbers may
// arrive as strings ("45 minutes"), booleans as "yes", clocks as "08:00 AM".
type rawDescriptor struct {
	Action          string          `json:"action"`
	Title           string          `json:"title"`
	OriginalTitle   string          `json:"original_title"`
	NewTitle        string          `json:"new_title"`
	Day             string          `json:"day"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	Duration        flexInt         `json:"duration"`
	TravelTime      flexInt         `json:"travel_time"`
	Recurring       flexBool        `json:"recurring"`
	TimeConstraints *rawConstraints `json:"time_constraints"`
	Description     string          `json:"description"`
	Location        string          `json:"location"`
	Constraints     flexText        `json:"constraints"`
	Clarification   string          `json:"clarification"`

	// decodeErr is set when this element of an array could not be decoded.
	decodeErr error
}

type rawConstraints struct {
	Min *rawClock `json:"min"`
	Max *rawClock `json:"max"`
}

// rawBatch accepts either a single object or an array of objects. Array
// elements decode independently: one that fails keeps its decodeErr and its
// siblings survive.
type rawBatch []rawDescriptor

func (b *rawBatch) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return err
		}
		list := make(rawBatch, 0, len(elems))
		for _, elem := range elems {
			var one rawDescriptor
			if err := json.Unmarshal(elem, &one); err != nil {
				one = rawDescriptor{decodeErr: err}
			}
			list = append(list, one)
		}
		*b = list
		return nil
	}
	var one rawDescriptor
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*b = rawBatch{one}
	return nil
}

// flexInt decodes a JSON number or a string with a leading integer. Anything
// else decodes to zero.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexInt(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) && r != '-' })
	if end == -1 {
		end = len(s)
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "daily", "y":
			*b = true
			return nil
		}
	}
	*b = false
	return nil
}

// flexText decodes a string, or joins an array of strings with "; ".
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = flexText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = flexText(strings.Join(list, "; "))
		return nil
	}
	*t = ""
	return nil
}

// rawClock decodes {"hour":H,"minute":M} or a time string.
type rawClock struct {
	clock domain.ClockTime
	ok    bool
}

func (c *rawClock) UnmarshalJSON(data []byte) error {
	var obj struct {
		Hour   flexInt `json:"hour"`
		Minute flexInt `json:"minute"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		c.clock = domain.ClockTime{Hour: int(obj.Hour), Minute: int(obj.Minute)}
		c.ok = c.clock.Valid()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if clock, err := normalize.Clock(s); err == nil {
			c.clock, c.ok = clock, true
		}
	}
	return nil
}

func (c *rawClock) value() *domain.ClockTime {
	if c == nil || !c.ok {
		return nil
	}
	v := c.clock
	return &v
}
