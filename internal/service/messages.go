package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/llm"
)

// User-facing replies composed by the request orchestrator.
const (
	MultiActionHeader  = "I've processed your request:"
	AuthMessage        = "It looks like your Google Calendar connection needs to be refreshed. Please reconnect your account."
	APILimitMessage    = "We've reached the limit of calendar requests for now. Please try again in a few minutes."
	ParsingMessage     = "I'm having trouble understanding your request. Could you rephrase it?"
	InterpreterMessage = "I can't reach my language service right now. Please try again in a moment."
	EmptyRequestText   = "What would you like to do with your calendar?"
	genericFailure     = "Something went wrong: %s"
)

// ErrorMessage words err for the user, one message per error kind.
func ErrorMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrAuthentication:
		return AuthMessage
	case domain.ErrAPILimit:
		return APILimitMessage
	case domain.ErrParsing:
		return ParsingMessage
	case domain.ErrInvalidInput, domain.ErrEventNotFound:
		return domain.Message(err)
	}
	if isInterpreterError(err) {
		return InterpreterMessage
	}
	return fmt.Sprintf(genericFailure, err.Error())
}

func isInterpreterError(err error) bool {
	return errors.Is(err, llm.ErrUnavailable) ||
		errors.Is(err, llm.ErrTimeout) ||
		errors.Is(err, llm.ErrRetryExhausted) ||
		errors.Is(err, llm.ErrNotConfigured)
}

// failureLine reports one failed descriptor inside a multi-action reply.
func failureLine(d domain.EventDescriptor, err error) string {
	return fmt.Sprintf("❌ Failed to %s '%s': %s", actionVerb(d.Action), d.DisplayTitle(), ErrorMessage(err))
}

// isFatalStoreError reports errors that will fail every further store call.
func isFatalStoreError(err error) bool {
	kind := domain.KindOf(err)
	return kind == domain.ErrAuthentication || kind == domain.ErrAPILimit
}
