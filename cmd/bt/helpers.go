package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/dispatch"
	"github.com/LowellDennis/bt/internal/notify"
	"github.com/LowellDennis/bt/internal/supervise"
	"github.com/LowellDennis/bt/internal/vcs"
)

// requiresVCS marks a command as needing a resolved repository context.
var requiresVCS = map[string]string{dispatch.AnnotationRequiresVCS: "true"}

// currentVCS returns the adapter for the resolved worktree.
func currentVCS() (vcs.VCS, error) {
	if wctx == nil {
		return nil, fmt.Errorf("no repository context")
	}
	return vcs.New(wctx.Kind, wctx.Root)
}

// recordLastUsed writes the `last` pointer in `dir, base` form.
func recordLastUsed(root string) error {
	value := fmt.Sprintf("%s, %s", filepath.Dir(root), filepath.Base(root))
	return store.SetSystem(config.Global, "last", value)
}

// knownWorktrees returns the tracked worktree paths from the global
// `worktrees` key.
func knownWorktrees() []string {
	raw, _ := store.Get(config.Global, "worktrees")
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(raw, ";") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func saveWorktrees(paths []string) error {
	return store.SetSystem(config.Global, "worktrees", strings.Join(paths, ";"))
}

func trackWorktree(path string) error {
	paths := knownWorktrees()
	for _, p := range paths {
		if p == path {
			return nil
		}
	}
	return saveWorktrees(append(paths, path))
}

func untrackWorktree(path string) error {
	var paths []string
	for _, p := range knownWorktrees() {
		if p != path {
			paths = append(paths, p)
		}
	}
	return saveWorktrees(paths)
}

// matchWorktree resolves a partial path to a unique tracked worktree.
func matchWorktree(ref string) (string, error) {
	paths := knownWorktrees()

	if abs, err := filepath.Abs(ref); err == nil {
		for _, p := range paths {
			if p == abs {
				return p, nil
			}
		}
	}

	var candidates []string
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p), strings.ToLower(ref)) {
			candidates = append(candidates, p)
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no known worktree matches %q (see 'bt worktrees')", ref)
	case 1:
		return candidates[0], nil
	}
	return "", fmt.Errorf("ambiguous worktree %q: matches %s", ref, strings.Join(candidates, ", "))
}

// globalDir returns ~/.bt, the per-user state directory.
func globalDir() string {
	return filepath.Dir(globalPath)
}

// buildLogPath returns a fresh timestamped artifact path under
// ~/.bt/logs, creating the directory.
func buildLogPath(command string) (string, error) {
	dir := filepath.Join(globalDir(), "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	name := fmt.Sprintf("%s-%s.log", command, time.Now().Format("20060102-150405"))
	return filepath.Join(dir, name), nil
}

// loadFilterTable loads the optional ~/.bt/filters.toml suppression
// rules. Missing file means no filtering.
func loadFilterTable() (*supervise.FilterSet, error) {
	return supervise.LoadFilters(filepath.Join(globalDir(), "filters.toml"))
}

// buildNotifier returns the mail notifier when the local `alert` setting
// is on and a global `email` address is configured, nil otherwise.
func buildNotifier() (supervise.Notifier, error) {
	if !store.Alert() {
		return nil, nil
	}
	email, err := store.GetExpanded(config.Global, "email")
	if err != nil {
		return nil, err
	}
	mailer, err := notify.ParseEmail(email)
	if err != nil {
		return nil, err
	}
	if mailer == nil {
		return nil, nil
	}
	return mailer, nil
}
