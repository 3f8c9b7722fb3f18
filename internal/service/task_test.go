package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ZhuneIDS/apitareas/internal/mocks"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/repository/jsonfile"
	"github.com/ZhuneIDS/apitareas/internal/storage/local"
	"github.com/ZhuneIDS/apitareas/internal/testutil"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestIDSequence_StrictlyIncreasing(t *testing.T) {
	seq := &idSequence{now: fixedClock(1000)}

	assert.Equal(t, int64(1000), seq.next())
	assert.Equal(t, int64(1001), seq.next())
	assert.Equal(t, int64(1002), seq.next())

	seq.now = fixedClock(5000)
	assert.Equal(t, int64(5000), seq.next())

	seq.now = fixedClock(10)
	assert.Equal(t, int64(5001), seq.next(), "clock going backwards must not repeat ids")
}

func TestIDSequence_Concurrent(t *testing.T) {
	seq := &idSequence{now: fixedClock(1)}

	const n = 100
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- seq.next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestTask_Create(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())
	s.ids.now = fixedClock(1700000000000)

	want := model.Task{ID: 1700000000000, Title: "Buy milk", Description: "2%"}
	store.On("List", mock.Anything).Return([]model.Task{}, nil).Once()
	store.On("Create", mock.Anything, want).Return(want, nil)

	got, err := s.Create(context.Background(), "Buy milk", "2%")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Positive(t, got.ID)
}

func TestTask_Create_RedrawsIDOnCollision(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())
	s.ids.now = fixedClock(100)

	store.On("List", mock.Anything).Return([]model.Task{}, nil).Once()
	store.On("Create", mock.Anything, model.Task{ID: 100, Title: "a", Description: "b"}).Return(model.Task{}, model.ErrAlreadyExists).Once()
	store.On("Create", mock.Anything, model.Task{ID: 101, Title: "a", Description: "b"}).Return(model.Task{ID: 101, Title: "a", Description: "b"}, nil).Once()

	got, err := s.Create(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(101), got.ID)
}

func TestTask_Create_GivesUpAfterMaxAttempts(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())

	store.On("List", mock.Anything).Return([]model.Task{}, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Task{}, model.ErrAlreadyExists).Times(maxIDAttempts)

	_, err := s.Create(context.Background(), "a", "b")
	require.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestTask_Create_SeedsIDsFromStore(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())
	// Clock is behind ids persisted by an earlier run.
	s.ids.now = fixedClock(500)

	store.On("List", mock.Anything).Return([]model.Task{{ID: 900}, {ID: 2000}, {ID: 1500}}, nil).Once()
	store.On("Create", mock.Anything, model.Task{ID: 2001, Title: "a", Description: "b"}).
		Return(model.Task{ID: 2001, Title: "a", Description: "b"}, nil).Once()
	store.On("Create", mock.Anything, model.Task{ID: 2002, Title: "c", Description: "d"}).
		Return(model.Task{ID: 2002, Title: "c", Description: "d"}, nil).Once()

	got, err := s.Create(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2001), got.ID)

	got, err = s.Create(context.Background(), "c", "d")
	require.NoError(t, err)
	assert.Equal(t, int64(2002), got.ID)
}

func TestTask_Create_SeedFailure(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())
	s.ids.now = fixedClock(100)

	store.On("List", mock.Anything).Return(nil, assert.AnError).Once()
	_, err := s.Create(context.Background(), "a", "b")
	require.ErrorIs(t, err, assert.AnError)

	store.On("List", mock.Anything).Return([]model.Task{}, nil).Once()
	store.On("Create", mock.Anything, model.Task{ID: 100, Title: "a", Description: "b"}).
		Return(model.Task{ID: 100, Title: "a", Description: "b"}, nil).Once()
	got, err := s.Create(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)
}

func TestTask_Create_AfterRestartStaysAbovePersistedIDs(t *testing.T) {
	ctx := context.Background()
	disk, err := local.NewDisk(t.TempDir())
	require.NoError(t, err)
	tasks, err := jsonfile.NewCollection[model.Task](ctx, disk, "tareas.json")
	require.NoError(t, err)
	repo := jsonfile.NewTaskRepository(tasks)

	first := NewTask(repo, testutil.MakeNoopLogger())
	first.ids.now = fixedClock(10_000)
	before, err := first.Create(ctx, "a", "b")
	require.NoError(t, err)

	restarted := NewTask(repo, testutil.MakeNoopLogger())
	restarted.ids.now = fixedClock(5_000)
	after, err := restarted.Create(ctx, "c", "d")
	require.NoError(t, err)
	assert.Greater(t, after.ID, before.ID)
}

func TestTask_Create_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
	}{
		{name: "empty title", title: "", description: "d"},
		{name: "empty description", title: "t", description: ""},
		{name: "blank title", title: "   ", description: "d"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := NewTask(mocks.NewTaskStore(t), testutil.MakeNoopLogger())
			_, err := s.Create(context.Background(), tt.title, tt.description)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTask_Update(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())

	store.On("Update", mock.Anything, model.Task{ID: 7, Title: "new", Description: "desc"}).
		Return(model.Task{ID: 7, Title: "new", Description: "desc"}, nil)
	store.On("Update", mock.Anything, model.Task{ID: 8, Title: "new", Description: "desc"}).
		Return(model.Task{}, model.ErrNotFound)

	got, err := s.Update(context.Background(), 7, "new", "desc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	_, err = s.Update(context.Background(), 8, "new", "desc")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Update(context.Background(), 7, "", "desc")
	require.ErrorIs(t, err, ErrValidation)
}

func TestTask_StoreErrors(t *testing.T) {
	store := mocks.NewTaskStore(t)
	s := NewTask(store, testutil.MakeNoopLogger())

	store.On("List", mock.Anything).Return(nil, assert.AnError)
	store.On("Delete", mock.Anything, int64(1)).Return(assert.AnError)

	_, err := s.List(context.Background())
	require.ErrorIs(t, err, assert.AnError)

	err = s.Delete(context.Background(), 1)
	require.ErrorIs(t, err, assert.AnError)
}

func TestTask_EndToEnd(t *testing.T) {
	ctx := context.Background()
	disk, err := local.NewDisk(t.TempDir())
	require.NoError(t, err)
	tasks, err := jsonfile.NewCollection[model.Task](ctx, disk, "tareas.json")
	require.NoError(t, err)
	s := NewTask(jsonfile.NewTaskRepository(tasks), testutil.MakeNoopLogger())

	created, err := s.Create(ctx, "Buy milk", "2%")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	other, err := s.Create(ctx, "Walk", "dog")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, created)

	updated, err := s.Update(ctx, created.ID, "Buy oat milk", "1L")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy oat milk", updated.Title)

	_, err = s.Update(ctx, 42, "x", "y")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Delete(ctx, other.ID))
	require.NoError(t, s.Delete(ctx, other.ID))

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{updated}, list)
}
