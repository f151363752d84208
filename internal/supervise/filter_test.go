package supervise

import (
	"path/filepath"
	"testing"
)

func TestEmptyFilterSetPassesEverything(t *testing.T) {
	var fs FilterSet
	for _, line := range []string{"", "anything", "error: boom"} {
		if !fs.Keep(line) {
			t.Errorf("empty set dropped %q", line)
		}
	}
}

func TestParseFiltersOrderMatters(t *testing.T) {
	fs, err := ParseFilters(`
[[rule]]
match = "^Note: important"
action = "keep"

[[rule]]
match = "^Note:"
action = "drop"
`)
	if err != nil {
		t.Fatalf("ParseFilters = %v", err)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}

	tests := []struct {
		line string
		want bool
	}{
		{line: "Note: important thing", want: true},
		{line: "Note: boilerplate", want: false},
		{line: "unrelated output", want: true},
	}
	for _, tt := range tests {
		if got := fs.Keep(tt.line); got != tt.want {
			t.Errorf("Keep(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseFiltersRejectsBadRules(t *testing.T) {
	if _, err := ParseFilters("[[rule]]\nmatch = \"(\"\naction = \"drop\"\n"); err == nil {
		t.Error("bad regexp accepted")
	}
	if _, err := ParseFilters("[[rule]]\nmatch = \"x\"\naction = \"zap\"\n"); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestLoadFiltersMissingFile(t *testing.T) {
	fs, err := LoadFilters(filepath.Join(t.TempDir(), "filters.toml"))
	if err != nil {
		t.Fatalf("LoadFilters = %v", err)
	}
	if fs.Len() != 0 || !fs.Keep("anything") {
		t.Error("missing file should yield the pass-everything set")
	}
}
