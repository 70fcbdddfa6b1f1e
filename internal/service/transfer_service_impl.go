package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/calendar"
	"github.com/alexanderramin/donna/internal/logging"
)

// maxImportOccurrences caps how many instances one recurring VEVENT expands to.
const maxImportOccurrences = 200

type transferService struct {
	store    calendar.Store
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewTransferService creates the iCalendar export/import service over store.
func NewTransferService(store calendar.Store, logger *slog.Logger, observers ...UseCaseObserver) TransferService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &transferService{
		store:    store,
		logger:   logging.WithOperation(logger, "transfer"),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export writes the events from the start of today through days ahead.
func (s *transferService) Export(ctx context.Context, sc *app.SchedulingContext, w io.Writer, days int) (n int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"days": days}
	defer func() {
		fields["events"] = n
		observe(ctx, s.observer, "export-ics", startedAt, fields, err)
	}()

	if days <= 0 {
		days = sc.Policy.LookaheadDays
	}
	from := sc.Today()
	events, err := s.store.ListEvents(ctx, from, from.AddDate(0, 0, days), 0)
	if err != nil {
		return 0, err
	}
	if err := calendar.ExportICS(w, events, sc.Now()); err != nil {
		return 0, fmt.Errorf("writing calendar file: %w", err)
	}
	return len(events), nil
}

// Import inserts every VEVENT read from r. Recurring events expand over the
// look-ahead window. Events that fail to insert are counted and skipped,
// except for authentication and limit errors, which stop the import.
func (s *transferService) Import(ctx context.Context, sc *app.SchedulingContext, r io.Reader) (res *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if res != nil {
			fields["read"], fields["imported"], fields["failed"] = res.Read, res.Imported, res.Failed
		}
		observe(ctx, s.observer, "import-ics", startedAt, fields, err)
	}()

	from := sc.Today()
	inputs, err := calendar.ImportICS(r, sc.Location, calendar.ImportWindow{
		From:           from,
		To:             from.AddDate(0, 0, sc.Policy.LookaheadDays),
		MaxOccurrences: maxImportOccurrences,
	}, s.logger)
	if err != nil {
		return nil, err
	}

	res = &app.ImportResult{Read: len(inputs)}
	for _, in := range inputs {
		ev, err := s.store.InsertEvent(ctx, in)
		if err != nil {
			if isFatalStoreError(err) {
				return res, err
			}
			res.Failed++
			s.logger.Warn("import_event_failed", logging.Title(in.Summary), logging.Err(err))
			continue
		}
		res.Imported++
		if !in.AllDay {
			sc.Slots.AddSlot(ev.Start, ev.End, ev.ID)
		}
	}
	return res, nil
}
