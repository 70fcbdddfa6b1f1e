package scheduler

import (
	"fmt"

	"github.com/alexanderramin/donna/internal/normalize"
)

// Policy holds the tunable constants of matching, placement and view
// resolution. Zero values are not meaningful; start from DefaultPolicy.
type Policy struct {
	// SimilarityThreshold is the minimum title similarity for a candidate.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	// LookaheadDays bounds the matcher's search window. Events further out
	// are never considered.
	LookaheadDays int `yaml:"lookahead_days"`
	// MaxResults caps how many events the matcher reads from the store.
	MaxResults int `yaml:"max_results"`
	// TimeToleranceMin is the largest start-time difference still scored as
	// a time match.
	TimeToleranceMin int `yaml:"time_tolerance_minutes"`
	// ViewCutoffHour: a VIEW for today's weekday at or after this hour shows
	// next week instead. A product heuristic kept configurable.
	ViewCutoffHour int `yaml:"view_cutoff_hour"`
	// DefaultDurationMin applies to CREATE without a duration.
	DefaultDurationMin int `yaml:"default_duration_minutes"`
	// DefaultStartHour applies to CREATE with a day or date but no time.
	DefaultStartHour int `yaml:"default_start_hour"`
	// RecurringDays is the horizon a recurring CREATE expands over.
	RecurringDays int `yaml:"recurring_days"`

	Date normalize.Policy `yaml:",inline"`
}

// DefaultPolicy returns the standard constants.
func DefaultPolicy() Policy {
	return Policy{
		SimilarityThreshold: 0.6,
		LookaheadDays:       90,
		MaxResults:          100,
		TimeToleranceMin:    15,
		ViewCutoffHour:      18,
		DefaultDurationMin:  30,
		DefaultStartHour:    9,
		RecurringDays:       7,
		Date:                normalize.DefaultPolicy(),
	}
}

// Validate reports the first out-of-range constant.
func (p Policy) Validate() error {
	switch {
	case p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1:
		return fmt.Errorf("similarity_threshold must be in [0,1], got %v", p.SimilarityThreshold)
	case p.LookaheadDays <= 0:
		return fmt.Errorf("lookahead_days must be positive, got %d", p.LookaheadDays)
	case p.MaxResults <= 0:
		return fmt.Errorf("max_results must be positive, got %d", p.MaxResults)
	case p.TimeToleranceMin < 0:
		return fmt.Errorf("time_tolerance_minutes must not be negative, got %d", p.TimeToleranceMin)
	case p.ViewCutoffHour < 0 || p.ViewCutoffHour > 24:
		return fmt.Errorf("view_cutoff_hour must be in [0,24], got %d", p.ViewCutoffHour)
	case p.DefaultDurationMin <= 0:
		return fmt.Errorf("default_duration_minutes must be positive, got %d", p.DefaultDurationMin)
	case p.DefaultStartHour < 0 || p.DefaultStartHour > 23:
		return fmt.Errorf("default_start_hour must be in [0,23], got %d", p.DefaultStartHour)
	case p.RecurringDays <= 0:
		return fmt.Errorf("recurring_days must be positive, got %d", p.RecurringDays)
	case p.Date.YearRolloverAfter < 1 || p.Date.YearRolloverAfter > 12:
		return fmt.Errorf("year_rollover_after must be a month 1-12, got %d", p.Date.YearRolloverAfter)
	}
	return nil
}
