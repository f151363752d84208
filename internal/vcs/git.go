package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LowellDennis/bt/internal/cmd"
)

// gitVCS adapts a Git repository (or linked worktree) rooted at root.
type gitVCS struct {
	root string
}

func (g *gitVCS) Kind() Kind { return KindGit }

func (g *gitVCS) run(ctx context.Context, args ...string) error {
	return cmd.RunContext(ctx, g.root, "git", args...)
}

func (g *gitVCS) output(ctx context.Context, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, g.root, "git", args...)
}

// Status uses porcelain output. Git already suppresses ignored build
// artifacts; untracked (??) entries are dropped unless requested so the
// default view shows only meaningful changes.
func (g *gitVCS) Status(ctx context.Context, includeUnversioned bool) (string, error) {
	out, err := g.output(ctx, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	return filterStatusLines(string(out), includeUnversioned, "??"), nil
}

func (g *gitVCS) Fetch(ctx context.Context) error {
	return g.run(ctx, "fetch", "--prune")
}

func (g *gitVCS) Push(ctx context.Context) error {
	return g.run(ctx, "push")
}

func (g *gitVCS) Merge(ctx context.Context, fromUpstream bool) error {
	if fromUpstream {
		if err := g.run(ctx, "fetch"); err != nil {
			return err
		}
		return g.run(ctx, "merge", "@{upstream}")
	}
	return g.run(ctx, "merge", "origin/"+g.defaultBranch(ctx))
}

// defaultBranch resolves the remote default branch, falling back through
// origin/main and origin/master.
func (g *gitVCS) defaultBranch(ctx context.Context) string {
	if out, err := g.output(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		ref := strings.TrimSpace(string(out))
		if parts := strings.Split(ref, "/"); len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	if g.run(ctx, "rev-parse", "--verify", "origin/main") == nil {
		return "main"
	}
	if g.run(ctx, "rev-parse", "--verify", "origin/master") == nil {
		return "master"
	}
	return "main"
}

func (g *gitVCS) WorktreeCreate(ctx context.Context, branch, path, commitish string) error {
	if err := checkTargetEmpty(path); err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Omitted commitish means the tip of the currently checked-out branch.
	if commitish == "" {
		commitish = "HEAD"
	}

	// Reuse an existing branch, create it otherwise.
	if g.run(ctx, "rev-parse", "--verify", "refs/heads/"+branch) == nil {
		return g.run(ctx, "worktree", "add", absPath, branch)
	}
	return g.run(ctx, "worktree", "add", absPath, "-b", branch, commitish)
}

func (g *gitVCS) WorktreeList(ctx context.Context) ([]Worktree, error) {
	out, err := g.output(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}
	return parseWorktreePorcelain(string(out), g.root), nil
}

func (g *gitVCS) WorktreeMove(ctx context.Context, oldPath, newPath string) error {
	return g.run(ctx, "worktree", "move", oldPath, newPath)
}

func (g *gitVCS) WorktreeRemove(ctx context.Context, path string) error {
	return g.run(ctx, "worktree", "remove", path)
}

// CurrentBranch returns the checked-out branch, or "(detached)" when HEAD
// is not on a branch.
func (g *gitVCS) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("get current branch: %w", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

func (g *gitVCS) IsRepoRoot(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// parseWorktreePorcelain parses `git worktree list --porcelain` output.
// Records are blank-line separated: worktree <path> / HEAD <sha> /
// branch refs/heads/<name> (or "detached").
func parseWorktreePorcelain(out, currentRoot string) []Worktree {
	var worktrees []Worktree
	var cur Worktree

	flush := func() {
		if cur.Path != "" {
			cur.IsCurrent = cur.Path == currentRoot
			worktrees = append(worktrees, cur)
		}
		cur = Worktree{}
	}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			cur.Commit = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			cur.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "detached":
			cur.Branch = "(detached)"
		}
	}
	flush()

	return worktrees
}

// filterStatusLines narrows raw status output. Lines whose status marker
// matches one of the unversioned markers are dropped unless
// includeUnversioned is set; blank lines are always dropped.
func filterStatusLines(raw string, includeUnversioned bool, unversionedMarkers ...string) string {
	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !includeUnversioned && hasMarker(line, unversionedMarkers) {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func hasMarker(line string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
