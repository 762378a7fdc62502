// Package backup provides the export, import and reset runners.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"go.uber.org/multierr"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/store"
)

var (
	errNoStore = errors.New("backup: no store")
	// ErrNotConfirmed is returned when a destructive runner is not confirmed.
	ErrNotConfirmed = errors.New("backup: refusing to replace data without confirmation")
)

// Export writes a dated backup document into Dir, or to Out when Dir is "-".
type Export struct {
	Dir string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Export) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	out := output(n.Out)
	if n.Dir == "-" {
		return n.Store.Export(ctx, out)
	}
	dir := n.Dir
	if dir == "" {
		dir = "."
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	path := filepath.Join(dir, store.BackupFileName(now))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	err = n.Store.Export(ctx, f)
	err = multierr.Append(err, f.Close())
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	_, _ = fmt.Fprintf(out, "exported to %s\n", path)
	return nil
}

// Import replaces all data with the contents of File.
type Import struct {
	File    string
	Confirm bool

	Store *app.Store
	Out   io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if !n.Confirm {
		return ErrNotConfirmed
	}
	f, err := os.Open(n.File)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	defer f.Close()

	st, err := n.Store.Import(ctx, f)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(n.Out), "imported %d tasks, %d habits, %d wallets, %d transactions from %s\n",
		len(st.Tasks), len(st.Habits), len(st.Wallets), len(st.Transactions), n.File)
	return nil
}

// Reset erases all data.
type Reset struct {
	Confirm bool

	Store *app.Store
	Out   io.Writer
}

func (n *Reset) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if !n.Confirm {
		return ErrNotConfirmed
	}
	if err := n.Store.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(output(n.Out), "all data erased")
	return nil
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
