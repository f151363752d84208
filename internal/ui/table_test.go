package ui

import (
	"strings"
	"testing"
)

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable([]string{"A", "B"}, nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}
}

func TestRenderTableContainsCells(t *testing.T) {
	out := RenderTable(
		[]string{"PATH", "BRANCH"},
		[][]string{
			{"/src/bios", "main"},
			{"/src/wt1", "feature/x"},
		},
	)

	for _, want := range []string{"PATH", "BRANCH", "/src/bios", "main", "feature/x"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("table should end with a newline")
	}
}
