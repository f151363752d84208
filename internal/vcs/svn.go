package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LowellDennis/bt/internal/cmd"
)

// svnVCS adapts an SVN checkout rooted at root. SVN has no linked
// worktrees; every checkout is its own degenerate worktree of one, so the
// worktree operations map onto plain checkouts.
type svnVCS struct {
	root string
}

func (s *svnVCS) Kind() Kind { return KindSVN }

func (s *svnVCS) run(ctx context.Context, args ...string) error {
	return cmd.RunContext(ctx, s.root, "svn", args...)
}

func (s *svnVCS) output(ctx context.Context, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, s.root, "svn", args...)
}

// Status drops unversioned (?) and ignored (I) entries unless asked for.
func (s *svnVCS) Status(ctx context.Context, includeUnversioned bool) (string, error) {
	args := []string{"status"}
	if includeUnversioned {
		args = append(args, "--no-ignore")
	}
	out, err := s.output(ctx, args...)
	if err != nil {
		return "", err
	}
	return filterStatusLines(string(out), includeUnversioned, "?", "I"), nil
}

// Fetch maps to update: SVN has no local/remote split to fetch into.
func (s *svnVCS) Fetch(ctx context.Context) error {
	return s.run(ctx, "update")
}

// Push has no SVN equivalent; commits publish directly.
func (s *svnVCS) Push(ctx context.Context) error {
	return fmt.Errorf("push is not supported for SVN checkouts (svn commit publishes directly)")
}

func (s *svnVCS) Merge(ctx context.Context, fromUpstream bool) error {
	if fromUpstream {
		return s.run(ctx, "update")
	}
	return s.run(ctx, "merge", "^/trunk")
}

// WorktreeCreate produces an independent checkout of the same repository
// at path. Branched checkouts come from ^/branches/<branch>; an empty
// branch checks out the same URL as the source.
func (s *svnVCS) WorktreeCreate(ctx context.Context, branch, path, commitish string) error {
	if err := checkTargetEmpty(path); err != nil {
		return err
	}

	url, err := s.repoURL(ctx)
	if err != nil {
		return err
	}
	if branch != "" {
		rootURL, err := s.output(ctx, "info", "--show-item", "repos-root-url")
		if err != nil {
			return err
		}
		url = strings.TrimSpace(string(rootURL)) + "/branches/" + branch
	}

	args := []string{"checkout"}
	if commitish != "" {
		args = append(args, "-r", commitish)
	}
	args = append(args, url, path)
	return cmd.RunContext(ctx, "", "svn", args...)
}

// WorktreeList returns this checkout as the single entry.
func (s *svnVCS) WorktreeList(ctx context.Context) ([]Worktree, error) {
	branch, err := s.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	rev, _ := s.output(ctx, "info", "--show-item", "revision")
	return []Worktree{{
		Path:      s.root,
		Branch:    branch,
		Commit:    strings.TrimSpace(string(rev)),
		IsCurrent: true,
	}}, nil
}

// WorktreeMove is a plain directory rename; SVN checkouts are relocatable.
func (s *svnVCS) WorktreeMove(ctx context.Context, oldPath, newPath string) error {
	if err := checkTargetEmpty(newPath); err != nil {
		return err
	}
	return os.Rename(oldPath, newPath)
}

// WorktreeRemove deletes the checkout from disk.
func (s *svnVCS) WorktreeRemove(ctx context.Context, path string) error {
	if !s.IsRepoRoot(path) {
		return fmt.Errorf("not an SVN checkout: %s", path)
	}
	return os.RemoveAll(path)
}

// CurrentBranch derives the branch from the relative repository URL:
// ^/trunk -> trunk, ^/branches/foo -> foo.
func (s *svnVCS) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.output(ctx, "info", "--show-item", "relative-url")
	if err != nil {
		return "", fmt.Errorf("get current branch: %w", err)
	}
	rel := strings.TrimPrefix(strings.TrimSpace(string(out)), "^/")
	if name, ok := strings.CutPrefix(rel, "branches/"); ok {
		if idx := strings.Index(name, "/"); idx >= 0 {
			name = name[:idx]
		}
		return name, nil
	}
	if rel == "" {
		return "trunk", nil
	}
	if idx := strings.Index(rel, "/"); idx >= 0 {
		rel = rel[:idx]
	}
	return rel, nil
}

func (s *svnVCS) IsRepoRoot(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".svn"))
	return err == nil && info.IsDir()
}

func (s *svnVCS) repoURL(ctx context.Context) (string, error) {
	out, err := s.output(ctx, "info", "--show-item", "url")
	if err != nil {
		return "", fmt.Errorf("get checkout URL: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
