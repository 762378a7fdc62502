package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKey(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	k := &Key{Out: &out}
	if err := k.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Bullets", "Markers", "● ", "task completed", "✷", "overdue"} {
		if !strings.Contains(got, want) {
			t.Errorf("legend missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "none") {
		t.Errorf("blank marker should not be listed:\n%s", got)
	}
}
