package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/testutil"
)

func newEventRepo(t *testing.T) *SQLiteEventRepo {
	t.Helper()
	return NewSQLiteEventRepo(testutil.NewTestDB(t), testutil.NewYork)
}

func TestEventRepo_CreateAndGet(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	e := testutil.NewEvent("Dentist", testutil.At(11, 14, 0), 45,
		testutil.WithID("e1"), testutil.WithLocation("Main St"), testutil.WithDescription("checkup"))
	e.ColorID = "5"
	require.NoError(t, repo.Create(ctx, &e))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", got.Summary)
	assert.True(t, got.Start.Equal(e.Start))
	assert.True(t, got.End.Equal(e.End))
	assert.Equal(t, testutil.NewYork, got.Start.Location())
	assert.Equal(t, "Main St", got.Location)
	assert.Equal(t, "checkup", got.Description)
	assert.Equal(t, "5", got.ColorID)
	assert.False(t, got.AllDay)
}

func TestEventRepo_GetMissing(t *testing.T) {
	_, err := newEventRepo(t).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_ListRangeOverlap(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	for _, e := range []domain.CalendarEvent{
		testutil.NewEvent("Before", testutil.At(10, 8, 0), 60, testutil.WithID("a")),
		testutil.NewEvent("Straddles", testutil.At(10, 23, 30), 60, testutil.WithID("b")),
		testutil.NewEvent("Inside", testutil.At(11, 9, 0), 30, testutil.WithID("c")),
		testutil.NewEvent("Holiday", testutil.At(11, 0, 0), 0, testutil.WithID("d"), testutil.AllDay()),
		testutil.NewEvent("After", testutil.At(12, 0, 0), 30, testutil.WithID("e")),
	} {
		require.NoError(t, repo.Create(ctx, &e))
	}

	from, to := testutil.At(11, 0, 0), testutil.At(12, 0, 0)
	got, err := repo.ListRange(ctx, from, to, 0)
	require.NoError(t, err)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"b", "d", "c"}, ids)
	assert.True(t, got[1].AllDay)

	limited, err := repo.ListRange(ctx, from, to, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEventRepo_Update(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	e := testutil.NewEvent("Gym", testutil.At(11, 7, 0), 60, testutil.WithID("g"))
	require.NoError(t, repo.Create(ctx, &e))

	e.Summary = "Workout"
	e.Start = e.Start.Add(time.Hour)
	e.End = e.End.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, &e))

	got, err := repo.GetByID(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "Workout", got.Summary)
	assert.True(t, got.Start.Equal(testutil.At(11, 8, 0)))

	missing := testutil.NewEvent("Ghost", testutil.At(11, 7, 0), 30, testutil.WithID("ghost"))
	assert.ErrorIs(t, repo.Update(ctx, &missing), ErrNotFound)
}

func TestEventRepo_Delete(t *testing.T) {
	repo := newEventRepo(t)
	ctx := context.Background()

	e := testutil.NewEvent("Gym", testutil.At(11, 7, 0), 60, testutil.WithID("g"))
	require.NoError(t, repo.Create(ctx, &e))
	require.NoError(t, repo.Delete(ctx, "g"))

	_, err := repo.GetByID(ctx, "g")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "g"), ErrNotFound)
}
