package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/sdvig/pkg/model"
)

// ErrInvalidBackup is returned by Import for a document that cannot be
// restored. The store is left untouched.
var ErrInvalidBackup = errors.New("store: invalid backup")

// BackupFileName is the suggested export file name for the day of now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("sdvig-backup-%s.json", now.Format("2006-01-02"))
}

// Export writes every primary key as one indented JSON object. Values that
// hold JSON are embedded as-is; anything else becomes a string.
func (p *persistence) Export(ctx context.Context, w io.Writer) error {
	keys, err := p.primary.Keys(ctx)
	if err != nil {
		return err
	}
	doc := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		v, err := p.primary.Get(ctx, k)
		if err != nil {
			return err
		}
		if json.Valid(v) {
			doc[k] = json.RawMessage(v)
			continue
		}
		str, err := json.Marshal(string(v))
		if err != nil {
			return fmt.Errorf("store: export %s: %w", k, err)
		}
		doc[k] = str
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: export: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("store: export: %w", err)
	}
	p.log.Debug("store: exported", zap.Int("keys", len(keys)))
	return nil
}

// Import replaces the primary store with the keys of a backup document and
// returns the restored state. The document and its state payload are checked
// before anything is written.
func (p *persistence) Import(ctx context.Context, r io.Reader) (*model.AppState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: read backup: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidBackup)
	}

	entries := make(map[string][]byte, len(doc))
	for k, raw := range doc {
		v, err := storedValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: key %s: %w", ErrInvalidBackup, k, err)
		}
		entries[k] = v
	}

	s := model.InitialState()
	if blob, ok := entries[StateKey]; ok {
		if s, err = decodeState(blob); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
		}
	}

	if err := p.primary.Replace(ctx, entries); err != nil {
		return nil, err
	}
	p.log.Info("store: imported backup", zap.Int("keys", len(entries)))
	return s, nil
}

// storedValue is the inverse of the export encoding: JSON strings are stored
// raw, everything else as compact JSON.
func storedValue(raw json.RawMessage) ([]byte, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return []byte(str), nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
