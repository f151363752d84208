// Package vcs presents one interface over the two supported version
// control backends, Git and SVN. The backend is selected once per context
// resolution by marker detection and threaded explicitly through calls.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Kind identifies a version control backend.
type Kind int

const (
	KindNone Kind = iota
	KindGit
	KindSVN
)

// String returns the backend name.
func (k Kind) String() string {
	switch k {
	case KindGit:
		return "git"
	case KindSVN:
		return "svn"
	}
	return "none"
}

// ErrUnsupportedVCS indicates the resolved root carries neither a Git nor
// an SVN marker.
var ErrUnsupportedVCS = errors.New("unsupported or missing version control system (expected .git or .svn)")

// PathNotEmptyError indicates a worktree creation target already exists
// and is not empty.
type PathNotEmptyError struct {
	Path string
}

func (e *PathNotEmptyError) Error() string {
	return fmt.Sprintf("path already exists and is not empty: %s", e.Path)
}

// Worktree describes one checked-out working directory.
type Worktree struct {
	Path      string
	Branch    string
	Commit    string
	IsCurrent bool
}

// VCS is the capability-polymorphic adapter interface. Operations that
// shell out take a context for cancellation.
type VCS interface {
	Kind() Kind

	// Status returns working-tree status narrowed to meaningful changes.
	// Unversioned files are included only when includeUnversioned is set.
	Status(ctx context.Context, includeUnversioned bool) (string, error)

	Fetch(ctx context.Context) error
	Push(ctx context.Context) error

	// Merge integrates changes; fromUpstream merges the current branch's
	// upstream, otherwise the default branch is merged.
	Merge(ctx context.Context, fromUpstream bool) error

	// WorktreeCreate checks out branch at path. An empty commitish
	// defaults to the tip of the currently checked-out branch.
	WorktreeCreate(ctx context.Context, branch, path, commitish string) error
	WorktreeList(ctx context.Context) ([]Worktree, error)
	WorktreeMove(ctx context.Context, oldPath, newPath string) error
	WorktreeRemove(ctx context.Context, path string) error

	CurrentBranch(ctx context.Context) (string, error)
	IsRepoRoot(path string) bool
}

// Detect inspects a directory for VCS markers.
func Detect(root string) (Kind, error) {
	// .git is a directory for primary repositories and a file for linked
	// worktrees; both mean Git.
	if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
		return KindGit, nil
	}
	if info, err := os.Stat(filepath.Join(root, ".svn")); err == nil && info.IsDir() {
		return KindSVN, nil
	}
	return KindNone, ErrUnsupportedVCS
}

// New returns the adapter for a resolved root of the given kind.
func New(kind Kind, root string) (VCS, error) {
	switch kind {
	case KindGit:
		return &gitVCS{root: root}, nil
	case KindSVN:
		return &svnVCS{root: root}, nil
	}
	return nil, ErrUnsupportedVCS
}

// checkTargetEmpty returns PathNotEmptyError if path exists with contents.
func checkTargetEmpty(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return &PathNotEmptyError{Path: path}
	}
	return nil
}
