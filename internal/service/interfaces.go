package service

import (
	"context"
	"io"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
)

// ActionService executes one validated descriptor against the calendar.
// Typed domain errors are returned unchanged so the caller can word them.
type ActionService interface {
	Execute(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error)
}

// RequestService turns a user utterance into a response. It never fails.
type RequestService interface {
	Process(ctx context.Context, sc *app.SchedulingContext, text string) app.Response
}

// TransferService exports and imports iCalendar files.
type TransferService interface {
	Export(ctx context.Context, sc *app.SchedulingContext, w io.Writer, days int) (int, error)
	Import(ctx context.Context, sc *app.SchedulingContext, r io.Reader) (*app.ImportResult, error)
}

var (
	_ app.ActionUseCase   = ActionService(nil)
	_ app.RequestUseCase  = RequestService(nil)
	_ app.TransferUseCase = TransferService(nil)
)
