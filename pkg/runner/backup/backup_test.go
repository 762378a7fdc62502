package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/store"
)

func openStore(t *testing.T) *app.Store {
	t.Helper()
	s, err := app.Open(context.Background(), store.NewConfig(t.TempDir(), time.Millisecond), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := openStore(t)
	src.Dispatch(state.AddTask{Task: model.Task{ID: "t1", Title: "Backup me", Priority: model.PriorityNormal}})
	src.Dispatch(state.SetTheme{Theme: model.ThemeDark})

	dir := t.TempDir()
	var out bytes.Buffer
	now := func() time.Time { return time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, (&Export{Dir: dir, Store: src, Out: &out, Now: now}).Do(ctx))
	path := filepath.Join(dir, "sdvig-backup-2024-06-12.json")
	assert.Contains(t, out.String(), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, store.StateKey)

	dst := openStore(t)
	err = (&Import{File: path, Store: dst, Out: &out}).Do(ctx)
	assert.True(t, errors.Is(err, ErrNotConfirmed))
	assert.Empty(t, dst.State().Tasks)

	require.NoError(t, (&Import{File: path, Confirm: true, Store: dst, Out: &out}).Do(ctx))
	assert.Equal(t, "Backup me", dst.State().Tasks[0].Title)
	assert.Equal(t, model.ThemeDark, dst.State().Settings.Theme)
}

func TestExportToWriter(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	var out bytes.Buffer
	require.NoError(t, (&Export{Dir: "-", Store: s, Out: &out}).Do(ctx))
	assert.True(t, json.Valid(out.Bytes()))
}

func TestImportRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	s.Dispatch(state.AddIdea{Idea: model.Idea{ID: "i1", Text: "keep"}})

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sdvig-app-state": 7}`), 0o600))
	err := (&Import{File: path, Confirm: true, Store: s, Out: &bytes.Buffer{}}).Do(ctx)
	assert.True(t, errors.Is(err, store.ErrInvalidBackup), "err = %v", err)
	assert.Len(t, s.State().Ideas, 1)

	err = (&Import{File: filepath.Join(t.TempDir(), "missing.json"), Confirm: true, Store: s}).Do(ctx)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	s.Dispatch(state.AddIdea{Idea: model.Idea{ID: "i1", Text: "gone"}})

	assert.ErrorIs(t, (&Reset{Store: s}).Do(ctx), ErrNotConfirmed)
	require.NoError(t, (&Reset{Confirm: true, Store: s, Out: &bytes.Buffer{}}).Do(ctx))
	assert.Empty(t, s.State().Ideas)
}
