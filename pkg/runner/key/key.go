// Package key provides CLI helpers to display the glyph legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/sdvig/pkg/glyph"
)

// Key prints a glyph legend describing bullets and markers.
type Key struct {
	Out io.Writer
}

// Do renders the bullet and marker keys.
func (k *Key) Do(ctx context.Context) error {
	w := k.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, "")

	var bullets, markers []glyph.Glyph
	for _, g := range glyph.DefaultGlyphs() {
		if g.Marker {
			markers = append(markers, g)
		} else {
			bullets = append(bullets, g)
		}
	}

	_, _ = fmt.Fprintln(w, k.Key(ctx, bullets, "   Bullets"))
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, k.Key(ctx, markers, "   Markers"))
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Key renders a glyph table under the given heading.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, heading string) *uitable.Table {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(heading), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		if v.Symbol == " " {
			continue
		}
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)
	return tbl
}
