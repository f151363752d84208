package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LowellDennis/bt/internal/registry"
)

func TestAttachFromSubdirectory(t *testing.T) {
	setupGlobals(t)
	reg = registry.New(store)

	repo := filepath.Join(t.TempDir(), "repo")
	sub := filepath.Join(repo, "src", "platform")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	root, err := attachRoot(sub)
	if err != nil {
		t.Fatalf("attachRoot(%q) = %v", sub, err)
	}
	if root != repo {
		t.Errorf("attachRoot(%q) = %q, want %q", sub, root, repo)
	}

	if err := reg.Attach(root); err != nil {
		t.Fatalf("Attach(%q) = %v", root, err)
	}
	if got := reg.Current(); got != repo {
		t.Errorf("Current = %q, want %q", got, repo)
	}
}

func TestAttachRootOutsideAnyRepository(t *testing.T) {
	if _, err := attachRoot(t.TempDir()); err == nil {
		t.Error("attachRoot = nil error outside a repository")
	}
}
