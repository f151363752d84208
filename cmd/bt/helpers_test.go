package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/LowellDennis/bt/internal/config"
)

// setupGlobals points the package state at a throwaway global config.
func setupGlobals(t *testing.T) {
	t.Helper()
	globalPath = filepath.Join(t.TempDir(), ".bt", "global.cfg")
	var err error
	store, err = config.Load(globalPath, "")
	if err != nil {
		t.Fatal(err)
	}
}

func TestWorktreeTracking(t *testing.T) {
	setupGlobals(t)

	if got := knownWorktrees(); got != nil {
		t.Fatalf("knownWorktrees = %v, want none", got)
	}

	for _, p := range []string{"/src/wt-u66", "/src/wt-u67", "/src/wt-u66"} {
		if err := trackWorktree(p); err != nil {
			t.Fatal(err)
		}
	}
	if got := knownWorktrees(); len(got) != 2 {
		t.Errorf("knownWorktrees = %v, want 2 entries without duplicates", got)
	}

	if err := untrackWorktree("/src/wt-u67"); err != nil {
		t.Fatal(err)
	}
	got := knownWorktrees()
	if len(got) != 1 || got[0] != "/src/wt-u66" {
		t.Errorf("knownWorktrees = %v", got)
	}
}

func TestMatchWorktree(t *testing.T) {
	setupGlobals(t)
	for _, p := range []string{"/src/wt-u66", "/src/wt-u67"} {
		if err := trackWorktree(p); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("unique partial", func(t *testing.T) {
		got, err := matchWorktree("u66")
		if err != nil || got != "/src/wt-u66" {
			t.Errorf("matchWorktree = (%q, %v)", got, err)
		}
	})

	t.Run("ambiguous partial", func(t *testing.T) {
		if _, err := matchWorktree("wt-u6"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
			t.Errorf("matchWorktree = %v, want ambiguous error", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := matchWorktree("nope"); err == nil {
			t.Error("matchWorktree = nil error for unknown path")
		}
	})
}

func TestRecordLastUsed(t *testing.T) {
	setupGlobals(t)

	if err := recordLastUsed("/src/wt-u66"); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(config.Global, "last")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/src, wt-u66" {
		t.Errorf("last = %q, want %q", got, "/src, wt-u66")
	}
}
