package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefaultPolicy_Valid(t *testing.T) {
	p := DefaultPolicy()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 0.6, p.SimilarityThreshold)
	assert.Equal(t, 18, p.ViewCutoffHour)
	assert.Equal(t, time.October, p.Date.YearRolloverAfter)
}

func TestPolicy_ValidateRejects(t *testing.T) {
	tests := map[string]func(*Policy){
		"threshold":   func(p *Policy) { p.SimilarityThreshold = 1.5 },
		"lookahead":   func(p *Policy) { p.LookaheadDays = 0 },
		"max results": func(p *Policy) { p.MaxResults = -1 },
		"tolerance":   func(p *Policy) { p.TimeToleranceMin = -5 },
		"cutoff":      func(p *Policy) { p.ViewCutoffHour = 25 },
		"duration":    func(p *Policy) { p.DefaultDurationMin = 0 },
		"start hour":  func(p *Policy) { p.DefaultStartHour = 24 },
		"recurring":   func(p *Policy) { p.RecurringDays = 0 },
		"rollover":    func(p *Policy) { p.Date.YearRolloverAfter = 13 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := DefaultPolicy()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestPolicy_YAMLOverlaysDefaults(t *testing.T) {
	p := DefaultPolicy()
	err := yaml.Unmarshal([]byte("view_cutoff_hour: 20\nyear_rollover_after: 11\nsimilarity_threshold: 0.5\n"), &p)
	assert.NoError(t, err)
	assert.Equal(t, 20, p.ViewCutoffHour)
	assert.Equal(t, time.November, p.Date.YearRolloverAfter)
	assert.Equal(t, 0.5, p.SimilarityThreshold)
	assert.Equal(t, 90, p.LookaheadDays)
}
