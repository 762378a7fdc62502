package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/sdvig/pkg/model"
)

type fixture struct {
	p       Persistence
	primary Backend
	legacy  Backend
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	primary, err := OpenSQLite(filepath.Join(dir, dbFile))
	require.NoError(t, err)
	legacy := OpenDiskv(filepath.Join(dir, legacyDir))
	p := New(primary, legacy, nil)
	t.Cleanup(func() { _ = p.Close() })
	return fixture{p: p, primary: primary, legacy: legacy}
}

func sampleState() *model.AppState {
	s := model.InitialState()
	s.Tasks = []model.Task{
		{ID: "t1", Title: "Write report", Priority: model.PriorityImportant, Date: "2024-06-12", CreatedAt: "2024-06-10T08:00:00.000Z"},
		{ID: "t2", Title: "Outline", ParentID: "t1", Completed: true, CompletedAt: "2024-06-11T09:00:00.000Z"},
	}
	s.Habits = []model.Habit{{ID: "h1", Title: "Read", Frequency: model.Specific(model.Monday, model.Thursday), CompletedDates: []string{"2024-06-10"}}}
	s.Routines = []model.Routine{{ID: "r1", Title: "Stretch", Completed: map[string]bool{"2024-06-10": true}}}
	s.Wallets = []model.Wallet{{ID: "w1", Name: "Cash", Balance: decimal.RequireFromString("42.50"), Currency: "EUR"}}
	s.Transactions = []model.Transaction{{ID: "x1", WalletID: "w1", Type: model.Expense, Amount: decimal.RequireFromString("7.50"), Category: "food"}}
	s.DayTasks = map[string][]model.DayTask{"2024-06-12": {{ID: "d1", Title: "Water plants"}}}
	s.Profile = model.Profile{Name: "Ann"}
	s.Settings.Theme = model.ThemeDark
	return s
}

func TestLoadEmptyStore(t *testing.T) {
	f := newFixture(t)
	s, err := f.p.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(model.InitialState(), s); diff != "" {
		t.Errorf("unexpected state (-want +got):\n%s", diff)
	}
	// Nothing is written until the first save.
	_, err = f.primary.Get(context.Background(), StateKey)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	want := sampleState()
	require.NoError(t, f.p.Save(ctx, want))

	got, err := f.p.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.primary.Put(ctx, StateKey, []byte(`{"tasks":[{"id":"a","title":"A"}],"categories":null,"unknown":1}`)))

	s, err := f.p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, model.DefaultCategories, s.Categories)
	assert.Equal(t, model.ThemeLight, s.Settings.Theme)
	assert.NotNil(t, s.Habits)
	assert.NotNil(t, s.DayTasks)
}

func TestLoadCorruptState(t *testing.T) {
	ctx := context.Background()
	tests := map[string]struct {
		payload string
		corrupt bool
	}{
		"not json":      {payload: `{"tasks": [`, corrupt: true},
		"not an object": {payload: `[1,2]`, corrupt: true},
		"wrong shape":   {payload: `{"tasks": "many"}`, corrupt: true},
		"duplicate ids": {payload: `{"tasks":[{"id":"a"},{"id":"a"}]}`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.primary.Put(ctx, StateKey, []byte(tc.payload)))

			s, err := f.p.Load(ctx)
			var le *LoadError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, tc.corrupt, errors.Is(err, ErrCorruptState))
			if diff := cmp.Diff(model.InitialState(), s); diff != "" {
				t.Errorf("fallback state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMigrateLegacyBlob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.legacy.Put(ctx, StateKey, []byte(`{"ideas":[{"id":"i1","text":"Garden"}]}`)))
	require.NoError(t, f.legacy.Put(ctx, "unrelated", []byte(`x`)))

	s, err := f.p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, s.Ideas, 1)

	_, err = f.primary.Get(ctx, StateKey)
	assert.NoError(t, err, "migration writes the primary key")
	keys, err := f.legacy.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"unrelated"}, keys)
}

func TestMigrateLegacyFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.legacy.Put(ctx, "tasks", []byte(`[{"id":"a","title":"A"}]`)))
	require.NoError(t, f.legacy.Put(ctx, "settings", []byte(`{"theme":"dark"}`)))
	require.NoError(t, f.legacy.Put(ctx, "habits", []byte(`[{"id":"h","title":"Run","frequency":{"type":"specific","days":["пн","ср"]},"completedDates":[]}]`)))

	s, err := f.p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, model.ThemeDark, s.Settings.Theme)
	assert.Equal(t, []model.Weekday{model.Monday, model.Wednesday}, s.Habits[0].Frequency.Days)

	keys, err := f.legacy.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	// A second load reads the migrated primary copy.
	again, err := f.p.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(s, again); diff != "" {
		t.Errorf("second load (-want +got):\n%s", diff)
	}
}

func TestMigrateCorruptLegacyKeepsData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.legacy.Put(ctx, "tasks", []byte(`[{"id":`)))

	_, err := f.p.Load(ctx)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "legacy", le.Source)

	keys, err := f.legacy.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks"}, keys)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.p.Save(ctx, sampleState()))
	require.NoError(t, f.p.Clear(ctx))

	keys, err := f.primary.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestOpenFromConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := Open(NewConfig(dir, 0), nil)
	require.NoError(t, err)
	require.NoError(t, p.Save(ctx, sampleState()))
	require.NoError(t, p.Close())

	p, err = Open(NewConfig(dir, 0), nil)
	require.NoError(t, err)
	defer p.Close()
	s, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", s.Profile.Name)
	assert.FileExists(t, filepath.Join(dir, dbFile))

	_, err = Open(NewConfig("", 0), nil)
	assert.Error(t, err)
}
