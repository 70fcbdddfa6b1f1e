package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/testutil"
)

func TestExport_WritesLookahead(t *testing.T) {
	store := testutil.NewMemoryStore(
		testutil.NewEvent("Team meeting", testutil.At(11, 14, 0), 60, testutil.WithID("m1")),
		testutil.NewEvent("Far away", testutil.At(28, 9, 0), 30, testutil.WithID("f1")),
	)
	svc := NewTransferService(store, nil)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), newSession(testutil.MondayMorning), &buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "SUMMARY:Team meeting")
	assert.NotContains(t, buf.String(), "Far away")

	buf.Reset()
	n, err = svc.Export(context.Background(), newSession(testutil.MondayMorning), &buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "zero days means the default look-ahead")
}

func TestExport_StoreFailure(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Fail["list"] = domain.Authentication(errors.New("401"), "expired")
	_, err := NewTransferService(store, nil).Export(context.Background(), newSession(testutil.MondayMorning), &bytes.Buffer{}, 7)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

const importICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:a\r\n" +
	"SUMMARY:Dentist\r\n" +
	"DTSTART:20240611T190000Z\r\n" +
	"DTEND:20240611T200000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:b\r\n" +
	"SUMMARY:Standup\r\n" +
	"DTSTART:20240611T130000Z\r\n" +
	"DTEND:20240611T131500Z\r\n" +
	"RRULE:FREQ=DAILY;COUNT=3\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport_InsertsAndRecordsSlots(t *testing.T) {
	store := testutil.NewMemoryStore()
	sc := newSession(testutil.MondayMorning)

	res, err := NewTransferService(store, nil).Import(context.Background(), sc, strings.NewReader(importICS))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Read)
	assert.Equal(t, 4, res.Imported)
	assert.Zero(t, res.Failed)

	events := store.Events()
	require.Len(t, events, 4)
	assert.Equal(t, "Standup", events[0].Summary)
	assert.True(t, events[0].Start.Equal(testutil.At(11, 9, 0)))
	assert.Len(t, sc.Slots.Slots(testutil.At(11, 0, 0)), 2)
}

func TestImport_CountsFailuresAndStopsOnAuth(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.FailInsertOn = 2
	store.FailInsert = errors.New("constraint")
	res, err := NewTransferService(store, nil).Import(context.Background(), newSession(testutil.MondayMorning), strings.NewReader(importICS))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 1, res.Failed)

	store = testutil.NewMemoryStore()
	store.Fail["insert"] = domain.Authentication(errors.New("401"), "expired")
	res, err = NewTransferService(store, nil).Import(context.Background(), newSession(testutil.MondayMorning), strings.NewReader(importICS))
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	require.NotNil(t, res)
	assert.Zero(t, res.Imported)
	assert.Equal(t, 1, store.CountCalls("insert"))
}

func TestImport_RejectsGarbage(t *testing.T) {
	_, err := NewTransferService(testutil.NewMemoryStore(), nil).Import(context.Background(),
		newSession(testutil.MondayMorning), strings.NewReader("not a calendar"))
	assert.ErrorIs(t, err, domain.ErrParsing)
}
