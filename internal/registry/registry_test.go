package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/vcs"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	globalPath := filepath.Join(t.TempDir(), ".bt", "global.cfg")
	store, err := config.Load(globalPath, "")
	if err != nil {
		t.Fatal(err)
	}
	return New(store)
}

func mkRepo(t *testing.T, marker string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, marker), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestAttachSelectsRepo(t *testing.T) {
	r := testRegistry(t)
	repo := mkRepo(t, ".git")

	if err := r.Attach(repo); err != nil {
		t.Fatalf("Attach = %v", err)
	}
	if got := r.Current(); got != repo {
		t.Errorf("Current = %q, want %q", got, repo)
	}
	if paths := r.Paths(); len(paths) != 1 || paths[0] != repo {
		t.Errorf("Paths = %v", paths)
	}
}

func TestAttachRejectsNonRepo(t *testing.T) {
	r := testRegistry(t)
	if err := r.Attach(t.TempDir()); !errors.Is(err, vcs.ErrUnsupportedVCS) {
		t.Errorf("Attach = %v, want ErrUnsupportedVCS", err)
	}
}

func TestAttachIsIdempotent(t *testing.T) {
	r := testRegistry(t)
	first := mkRepo(t, ".git")
	second := mkRepo(t, ".svn")

	for _, repo := range []string{first, second, first} {
		if err := r.Attach(repo); err != nil {
			t.Fatalf("Attach(%s) = %v", repo, err)
		}
	}

	if paths := r.Paths(); len(paths) != 2 {
		t.Errorf("Paths = %v, want 2 entries", paths)
	}
	if got := r.Current(); got != first {
		t.Errorf("Current = %q, want %q (re-attach selects)", got, first)
	}
}

func TestDetachMovesSelection(t *testing.T) {
	r := testRegistry(t)
	first := mkRepo(t, ".git")
	second := mkRepo(t, ".git")
	for _, repo := range []string{first, second} {
		if err := r.Attach(repo); err != nil {
			t.Fatal(err)
		}
	}

	// second is current; detaching it falls back to first.
	if err := r.Detach(second); err != nil {
		t.Fatalf("Detach = %v", err)
	}
	if got := r.Current(); got != first {
		t.Errorf("Current = %q, want %q", got, first)
	}

	if err := r.Detach(first); err != nil {
		t.Fatalf("Detach = %v", err)
	}
	if got := r.Current(); got != "" {
		t.Errorf("Current = %q, want empty", got)
	}
}

func TestMatchPartialPath(t *testing.T) {
	r := testRegistry(t)
	base := t.TempDir()
	bios := filepath.Join(base, "bios-main")
	tools := filepath.Join(base, "fw-tools")
	for _, p := range []string{bios, tools} {
		if err := os.MkdirAll(filepath.Join(p, ".git"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := r.Attach(p); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("unique substring", func(t *testing.T) {
		got, err := r.Match("bios")
		if err != nil || got != bios {
			t.Errorf("Match = (%q, %v), want %q", got, err, bios)
		}
	})

	t.Run("ambiguous substring", func(t *testing.T) {
		_, err := r.Match(filepath.Base(base))
		var ambErr *AmbiguousRepositoryError
		if !errors.As(err, &ambErr) {
			t.Errorf("Match = %v, want AmbiguousRepositoryError", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := r.Match("nonesuch")
		var nrErr *NotRegisteredError
		if !errors.As(err, &nrErr) {
			t.Errorf("Match = %v, want NotRegisteredError", err)
		}
	})
}

func TestListFlagsCurrent(t *testing.T) {
	r := testRegistry(t)
	git := mkRepo(t, ".git")
	svn := mkRepo(t, ".svn")
	for _, repo := range []string{git, svn} {
		if err := r.Attach(repo); err != nil {
			t.Fatal(err)
		}
	}

	repos := r.List()
	if len(repos) != 2 {
		t.Fatalf("List = %d entries, want 2", len(repos))
	}
	if repos[0].Kind != vcs.KindGit || repos[0].Current {
		t.Errorf("repos[0] = %+v", repos[0])
	}
	if repos[1].Kind != vcs.KindSVN || !repos[1].Current {
		t.Errorf("repos[1] = %+v", repos[1])
	}
}
