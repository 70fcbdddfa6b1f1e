package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/testutil"
)

func meetingStore() *testutil.MemoryStore {
	return testutil.NewMemoryStore(
		testutil.NewEvent("Team meeting", testutil.At(11, 14, 0), 60, testutil.WithID("m1"), testutil.WithLocation("Room 4")),
		testutil.NewEvent("Holiday", testutil.At(12, 0, 0), 0, testutil.WithID("h1"), testutil.AllDay()),
	)
}

func TestEdit_RenamesMatchedEvent(t *testing.T) {
	store := meetingStore()
	res, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "team meeting",
			Date:          "2024-06-11",
			NewTitle:      "Team sync",
		})
	require.NoError(t, err)
	assert.Equal(t, app.OutcomeDone, res.Outcome)
	assert.Equal(t, "I've updated 'Team sync' in your calendar.", res.Message)
	require.NotNil(t, res.Updated)

	ev := store.Events()[0]
	assert.Equal(t, "Team sync", ev.Summary)
	assert.True(t, ev.Start.Equal(testutil.At(11, 14, 0)), "date equal to the current one keeps the time")
	assert.Equal(t, "Room 4", ev.Location)
}

func TestEdit_DayThatMatchesNothingLeavesCalendarUntouched(t *testing.T) {
	store := meetingStore()
	res, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "team meeting",
			Day:           domain.Friday,
			NewTitle:      "Retro",
		})
	require.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Nil(t, res)
	assert.Equal(t, 0, store.CountCalls("update"))
	assert.Equal(t, 1, store.CountCalls("list"))

	got, err := store.GetEvent(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Team meeting", got.Summary)
	assert.True(t, got.Start.Equal(testutil.At(11, 14, 0)))
}

func TestEdit_MovesWithinToleranceToNewTime(t *testing.T) {
	store := meetingStore()
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "Team meeting",
			Date:          "2024-06-11",
			Time:          "02:15 PM",
		})
	require.NoError(t, err)

	got, err := store.GetEvent(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(testutil.At(11, 14, 15)))
	assert.True(t, got.End.Equal(testutil.At(11, 15, 15)))
}

func TestEdit_ChangesDuration(t *testing.T) {
	store := meetingStore()
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "Team meeting",
			Date:          "2024-06-11",
			Duration:      90,
			Description:   "Quarterly planning",
		})
	require.NoError(t, err)

	got, _ := store.GetEvent(context.Background(), "m1")
	assert.True(t, got.Start.Equal(testutil.At(11, 14, 0)))
	assert.Equal(t, 90, got.DurationMinutes())
	assert.Equal(t, "Quarterly planning", got.Description)
}

func TestEdit_AllDayEventGetsDefaultSlot(t *testing.T) {
	store := meetingStore()
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "Holiday",
			Date:          "2024-06-12",
			Duration:      45,
		})
	require.NoError(t, err)

	got, _ := store.GetEvent(context.Background(), "h1")
	assert.False(t, got.AllDay)
	assert.True(t, got.Start.Equal(testutil.At(12, 9, 0)))
	assert.Equal(t, 45, got.DurationMinutes())
}

func TestEdit_TodayWeekdayAfterEventHourMovesAWeek(t *testing.T) {
	store := testutil.NewMemoryStore(testutil.NewEvent("Standup", testutil.At(10, 8, 0), 15, testutil.WithID("s1")))
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "Standup",
			Day:           domain.Monday,
		})
	require.NoError(t, err)

	got, _ := store.GetEvent(context.Background(), "s1")
	assert.True(t, got.Start.Equal(testutil.At(17, 8, 0)))
}

func TestEdit_AmbiguousAsksUser(t *testing.T) {
	store := testutil.NewMemoryStore(
		testutil.NewEvent("Team meeting", testutil.At(11, 14, 0), 60),
		testutil.NewEvent("Team meeting", testutil.At(12, 14, 0), 60),
	)
	res, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{
			Action:        domain.ActionEdit,
			OriginalTitle: "Team meeting",
			Time:          "02:00 PM",
			NewTitle:      "Sync",
		})
	require.NoError(t, err)
	assert.Equal(t, app.OutcomeClarify, res.Outcome)
	assert.False(t, res.Done())
	assert.Len(t, res.Candidates, 2)
	assert.Contains(t, res.Message, "📅 Tuesday, June 11, 2024")
	assert.Contains(t, res.Message, "Please specify which event you want to update by providing more specific details.")
	assert.Equal(t, 0, store.CountCalls("update"))
}

func TestEdit_NotFound(t *testing.T) {
	store := meetingStore()
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{Action: domain.ActionEdit, OriginalTitle: "Dentist", Date: "2024-06-11"})
	require.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Equal(t, "I couldn't find an event matching 'Dentist'. Could you provide more details?", domain.Message(err))
}

func TestEdit_RequiresIdentifyingField(t *testing.T) {
	_, err := NewActionService(meetingStore(), nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{Action: domain.ActionEdit, OriginalTitle: "Team meeting", NewTitle: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_RemovesMatchedEvent(t *testing.T) {
	store := meetingStore()
	res, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{Action: domain.ActionDelete, OriginalTitle: "team meeting", Date: "2024-06-11"})
	require.NoError(t, err)
	assert.Equal(t, "I've deleted 'Team meeting' from your calendar.", res.Message)
	assert.Len(t, store.Events(), 1)
}

func TestDelete_DoesNotRetryOnTitleAlone(t *testing.T) {
	store := meetingStore()
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{Action: domain.ActionDelete, OriginalTitle: "Team meeting", Day: domain.Thursday})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Len(t, store.Events(), 2)
	assert.Equal(t, 1, store.CountCalls("list"))
}

func TestDelete_StoreFailure(t *testing.T) {
	store := meetingStore()
	store.Fail["list"] = domain.Authentication(errors.New("401"), "token expired")
	_, err := NewActionService(store, nil).Execute(context.Background(), newSession(testutil.MondayMorning),
		domain.EventDescriptor{Action: domain.ActionDelete, OriginalTitle: "Team meeting", Date: "2024-06-11"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}
