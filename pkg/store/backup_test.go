package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/sdvig/pkg/model"
)

func TestBackupFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "sdvig-backup-2024-03-09.json", BackupFileName(now))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newFixture(t)
	want := sampleState()
	require.NoError(t, src.p.Save(ctx, want))
	require.NoError(t, src.primary.Put(ctx, "sdvig-onboarding", []byte("done")))

	var buf bytes.Buffer
	require.NoError(t, src.p.Export(ctx, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \""), "export is indented:\n%s", buf.String())

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.JSONEq(t, `"done"`, string(doc["sdvig-onboarding"]))

	dst := newFixture(t)
	got, err := dst.p.Import(ctx, &buf)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("import(export(s)) (-want +got):\n%s", diff)
	}

	loaded, err := dst.p.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("load after import (-want +got):\n%s", diff)
	}
	raw, err := dst.primary.Get(ctx, "sdvig-onboarding")
	require.NoError(t, err)
	assert.Equal(t, "done", string(raw))
}

func TestImportReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.primary.Put(ctx, "stale", []byte("1")))
	require.NoError(t, f.p.Save(ctx, sampleState()))

	s, err := f.p.Import(ctx, strings.NewReader(`{"other": {"a": 1}}`))
	require.NoError(t, err)
	if diff := cmp.Diff(model.InitialState(), s); diff != "" {
		t.Errorf("state without a state key (-want +got):\n%s", diff)
	}
	keys, err := f.primary.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, keys)
	v, err := f.primary.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(v))
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	ctx := context.Background()
	tests := map[string]string{
		"truncated":     `{"sdvig-app-state": {`,
		"array":         `[]`,
		"null":          `null`,
		"corrupt state": `{"sdvig-app-state": {"tasks": 3}}`,
		"invalid state": `{"sdvig-app-state": {"settings": {"theme": "neon"}}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			before := sampleState()
			require.NoError(t, f.p.Save(ctx, before))

			_, err := f.p.Import(ctx, strings.NewReader(doc))
			assert.True(t, errors.Is(err, ErrInvalidBackup), "got %v", err)

			after, err := f.p.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("store changed by rejected import (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportStringEncodedState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s, err := f.p.Import(ctx, strings.NewReader(`{"sdvig-app-state": "{\"ideas\":[{\"id\":\"i\",\"text\":\"x\"}]}"}`))
	require.NoError(t, err)
	require.Len(t, s.Ideas, 1)
}
