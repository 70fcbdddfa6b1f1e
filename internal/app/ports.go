package app

import (
	"context"
	"io"

	"github.com/alexanderramin/donna/internal/domain"
)

// ActionUseCase executes a single validated descriptor.
type ActionUseCase interface {
	Execute(ctx context.Context, sc *SchedulingContext, d domain.EventDescriptor) (*Result, error)
}

// RequestUseCase turns one utterance into a user-facing response. It never
// fails; every error becomes part of the response message.
type RequestUseCase interface {
	Process(ctx context.Context, sc *SchedulingContext, text string) Response
}

// ImportResult counts the outcome of an iCalendar import.
type ImportResult struct {
	Read     int
	Imported int
	Failed   int
}

// TransferUseCase moves events between the calendar and iCalendar files.
type TransferUseCase interface {
	Export(ctx context.Context, sc *SchedulingContext, w io.Writer, days int) (int, error)
	Import(ctx context.Context, sc *SchedulingContext, r io.Reader) (*ImportResult, error)
}
