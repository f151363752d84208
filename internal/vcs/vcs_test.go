package vcs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Run("git directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
			t.Fatal(err)
		}
		kind, err := Detect(root)
		if err != nil || kind != KindGit {
			t.Errorf("Detect = (%v, %v), want (git, nil)", kind, err)
		}
	})

	t.Run("git file marks linked worktree", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: /repo/.git/worktrees/x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		kind, err := Detect(root)
		if err != nil || kind != KindGit {
			t.Errorf("Detect = (%v, %v), want (git, nil)", kind, err)
		}
	})

	t.Run("svn directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, ".svn"), 0o755); err != nil {
			t.Fatal(err)
		}
		kind, err := Detect(root)
		if err != nil || kind != KindSVN {
			t.Errorf("Detect = (%v, %v), want (svn, nil)", kind, err)
		}
	})

	t.Run("no marker", func(t *testing.T) {
		_, err := Detect(t.TempDir())
		if !errors.Is(err, ErrUnsupportedVCS) {
			t.Errorf("Detect = %v, want ErrUnsupportedVCS", err)
		}
	})
}

func TestNewUnsupported(t *testing.T) {
	if _, err := New(KindNone, "/x"); !errors.Is(err, ErrUnsupportedVCS) {
		t.Errorf("New(KindNone) error = %v, want ErrUnsupportedVCS", err)
	}
}

func TestCheckTargetEmpty(t *testing.T) {
	t.Run("missing path is fine", func(t *testing.T) {
		if err := checkTargetEmpty(filepath.Join(t.TempDir(), "nope")); err != nil {
			t.Errorf("checkTargetEmpty = %v", err)
		}
	})

	t.Run("empty dir is fine", func(t *testing.T) {
		if err := checkTargetEmpty(t.TempDir()); err != nil {
			t.Errorf("checkTargetEmpty = %v", err)
		}
	})

	t.Run("occupied dir fails", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		err := checkTargetEmpty(dir)
		var pneErr *PathNotEmptyError
		if !errors.As(err, &pneErr) {
			t.Errorf("checkTargetEmpty = %v, want PathNotEmptyError", err)
		}
	})
}

func TestParseWorktreePorcelain(t *testing.T) {
	out := `worktree /src/bios
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /src/wt1
HEAD 2222222222222222222222222222222222222222
branch refs/heads/feature/x

worktree /src/wt2
HEAD 3333333333333333333333333333333333333333
detached
`

	worktrees := parseWorktreePorcelain(out, "/src/wt1")
	if len(worktrees) != 3 {
		t.Fatalf("parsed %d worktrees, want 3", len(worktrees))
	}

	if worktrees[0].Path != "/src/bios" || worktrees[0].Branch != "main" || worktrees[0].IsCurrent {
		t.Errorf("worktree[0] = %+v", worktrees[0])
	}
	if worktrees[1].Branch != "feature/x" || !worktrees[1].IsCurrent {
		t.Errorf("worktree[1] = %+v", worktrees[1])
	}
	if worktrees[2].Branch != "(detached)" || worktrees[2].Commit == "" {
		t.Errorf("worktree[2] = %+v", worktrees[2])
	}
}

func TestFilterStatusLines(t *testing.T) {
	raw := " M src/main.c\n?? build/tmp.obj\nA  src/new.c\n\n?? scratch/\n"

	t.Run("default hides unversioned", func(t *testing.T) {
		got := filterStatusLines(raw, false, "??")
		want := " M src/main.c\nA  src/new.c\n"
		if got != want {
			t.Errorf("filtered = %q, want %q", got, want)
		}
	})

	t.Run("includeUnversioned keeps them", func(t *testing.T) {
		got := filterStatusLines(raw, true, "??")
		want := " M src/main.c\n?? build/tmp.obj\nA  src/new.c\n?? scratch/\n"
		if got != want {
			t.Errorf("filtered = %q, want %q", got, want)
		}
	})
}
