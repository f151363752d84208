package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/vcs"
)

// ErrNoRepositoryFound indicates no VCS marker was found walking up and
// no repository is selected in global configuration.
var ErrNoRepositoryFound = errors.New("no repository found (run inside a repository or 'bt select' one)")

// NotARepositoryError indicates a path that was expected to be a
// repository root carries no VCS marker.
type NotARepositoryError struct {
	Path string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("not a repository: %s", e.Path)
}

// Context is the resolved execution context of a command.
type Context struct {
	// StartDir is the directory resolution began from.
	StartDir string
	// Root is the worktree (or checkout) root, the directory holding
	// the VCS marker.
	Root string
	// RepoRoot is the primary repository root. Equal to Root except for
	// linked Git worktrees.
	RepoRoot string
	Kind     vcs.Kind
	// Uninitialized is set when Root has no .bt/local.cfg yet.
	Uninitialized bool
}

// LocalConfigPath returns where this context's local config lives.
func (c *Context) LocalConfigPath() string {
	return config.LocalPath(c.Root)
}

// Resolve walks up from startDir to find the enclosing worktree. When
// nothing encloses startDir, fallbackRepo (the global `repo` value, may
// be empty) is tried as the root instead.
func Resolve(startDir, fallbackRepo string) (*Context, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	dir := start
	for {
		if kind, root, repoRoot, ok := probe(dir); ok {
			return newContext(start, root, repoRoot, kind), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if fallbackRepo == "" {
		return nil, ErrNoRepositoryFound
	}
	kind, root, repoRoot, ok := probe(fallbackRepo)
	if !ok {
		return nil, &NotARepositoryError{Path: fallbackRepo}
	}
	return newContext(start, root, repoRoot, kind), nil
}

func newContext(start, root, repoRoot string, kind vcs.Kind) *Context {
	_, err := os.Stat(config.LocalPath(root))
	return &Context{
		StartDir:      start,
		Root:          root,
		RepoRoot:      repoRoot,
		Kind:          kind,
		Uninitialized: err != nil,
	}
}

// probe checks a single directory for a VCS marker. For a linked Git
// worktree it follows the gitdir reference to the owning repository.
func probe(dir string) (kind vcs.Kind, root, repoRoot string, ok bool) {
	gitPath := filepath.Join(dir, ".git")
	if info, err := os.Stat(gitPath); err == nil {
		if info.IsDir() {
			return vcs.KindGit, dir, dir, true
		}
		repoRoot, err := readGitdirRepo(gitPath)
		if err != nil {
			// Unreadable or malformed .git file: treat the directory
			// itself as the repository rather than failing resolution.
			repoRoot = dir
		}
		return vcs.KindGit, dir, repoRoot, true
	}
	if info, err := os.Stat(filepath.Join(dir, ".svn")); err == nil && info.IsDir() {
		return vcs.KindSVN, dir, dir, true
	}
	return vcs.KindNone, "", "", false
}

// readGitdirRepo parses a linked worktree's .git file. The referenced
// path has the form <repo>/.git/worktrees/<name>; the repository root is
// three levels up.
func readGitdirRepo(gitFile string) (string, error) {
	data, err := os.ReadFile(gitFile)
	if err != nil {
		return "", err
	}
	ref, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("malformed .git file: %s", gitFile)
	}
	ref = strings.TrimSpace(ref)
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(filepath.Dir(gitFile), ref)
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(ref))), nil
}
