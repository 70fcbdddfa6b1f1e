package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/llm"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("upstream")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"authentication", domain.Authentication(cause, "token expired"), AuthMessage},
		{"api limit", domain.APILimit(cause, "quota"), APILimitMessage},
		{"parsing", domain.Parsing(cause, "bad json"), ParsingMessage},
		{"invalid input", domain.InvalidInput("Invalid day: %s", "FUNDAY"), "Invalid day: FUNDAY"},
		{"not found", domain.EventNotFound("nothing called %q", "x"), `nothing called "x"`},
		{"interpreter down", fmt.Errorf("llm extract failed: %w", llm.ErrUnavailable), InterpreterMessage},
		{"interpreter timeout", llm.ErrTimeout, InterpreterMessage},
		{"unexpected", errors.New("boom"), "Something went wrong: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestFailureLine(t *testing.T) {
	d := domain.EventDescriptor{Action: domain.ActionDelete, OriginalTitle: "Dentist"}
	assert.Equal(t, "❌ Failed to delete 'Dentist': gone", failureLine(d, domain.EventNotFound("gone")))

	d = domain.EventDescriptor{Action: domain.ActionCreate, Title: "Run"}
	assert.Equal(t, "❌ Failed to schedule 'Run': "+APILimitMessage, failureLine(d, domain.APILimit(nil, "429")))
}

func TestIsFatalStoreError(t *testing.T) {
	assert.True(t, isFatalStoreError(domain.Authentication(nil, "x")))
	assert.True(t, isFatalStoreError(domain.APILimit(nil, "x")))
	assert.False(t, isFatalStoreError(domain.InvalidInput("x")))
	assert.False(t, isFatalStoreError(errors.New("x")))
}
