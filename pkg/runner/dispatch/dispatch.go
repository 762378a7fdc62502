// Package dispatch applies raw actions to the store.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/state"
)

var errNoStore = errors.New("dispatch: no store")

// Dispatch decodes a {"type","payload"} envelope and applies it.
type Dispatch struct {
	Envelope []byte
	// Print writes the resulting state as JSON.
	Print bool

	Store *app.Store
	Out   io.Writer
}

func (n *Dispatch) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	a, err := state.Decode(n.Envelope)
	if err != nil {
		return err
	}
	before := n.Store.State()
	after := n.Store.Dispatch(a)

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Print {
		b, err := json.MarshalIndent(after, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}
	if after == before {
		_, _ = color.New(color.Faint).Fprintf(out, "%s: no change\n", a.Type())
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s: applied\n", a.Type())
	return nil
}

// Theme switches the color theme, or prints it when Theme is empty.
type Theme struct {
	Theme string

	Store *app.Store
	Out   io.Writer
}

func (n *Theme) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Theme != "" {
		t := model.Theme(n.Theme)
		if !t.Valid() {
			return fmt.Errorf("dispatch: unknown theme %q, want %q or %q", n.Theme, model.ThemeLight, model.ThemeDark)
		}
		n.Store.Dispatch(state.SetTheme{Theme: t})
	}
	_, _ = fmt.Fprintln(out, n.Store.State().Settings.Theme)
	return nil
}
