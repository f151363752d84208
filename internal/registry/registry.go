// Package registry manages the global list of known repositories.
//
// The list itself lives in global configuration: the `repositories` key
// holds the registered roots in attach order (`;`-separated) and `repo`
// points at the currently selected one. All mutation goes through the
// config store so persistence stays atomic and in one place.
package registry

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/vcs"
)

const (
	reposKey   = "repositories"
	currentKey = "repo"

	pathSeparator = ";"
)

// Repository is one registered repository root.
type Repository struct {
	Path    string
	Kind    vcs.Kind
	Current bool
}

// AmbiguousRepositoryError indicates a partial path matched more than one
// registered repository.
type AmbiguousRepositoryError struct {
	Ref        string
	Candidates []string
}

func (e *AmbiguousRepositoryError) Error() string {
	return fmt.Sprintf("ambiguous repository %q: matches %s", e.Ref, strings.Join(e.Candidates, ", "))
}

// NotRegisteredError indicates no registered repository matched.
type NotRegisteredError struct {
	Ref string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("repository not registered: %s (see 'bt attach')", e.Ref)
}

// Registry reads and mutates the repository list through a config store.
type Registry struct {
	store *config.Store
}

func New(store *config.Store) *Registry {
	return &Registry{store: store}
}

// Paths returns the registered roots in attach order.
func (r *Registry) Paths() []string {
	raw, _ := r.store.Get(config.Global, reposKey)
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(raw, pathSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Current returns the selected repository root, or "" when none is.
func (r *Registry) Current() string {
	cur, _ := r.store.Get(config.Global, currentKey)
	return cur
}

// List returns all registered repositories with detected kind and the
// current flag. A root whose marker has vanished keeps KindNone.
func (r *Registry) List() []Repository {
	cur := r.Current()
	var repos []Repository
	for _, path := range r.Paths() {
		kind, _ := vcs.Detect(path)
		repos = append(repos, Repository{
			Path:    path,
			Kind:    kind,
			Current: path == cur,
		})
	}
	return repos
}

// Attach registers a repository root and makes it current. The path must
// carry a VCS marker; attaching an already-registered root just selects
// it.
func (r *Registry) Attach(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := vcs.Detect(abs); err != nil {
		return err
	}

	paths := r.Paths()
	if !slices.Contains(paths, abs) {
		paths = append(paths, abs)
		if err := r.setPaths(paths); err != nil {
			return err
		}
	}
	return r.store.SetSystem(config.Global, currentKey, abs)
}

// Detach unregisters a repository; the working copy on disk is untouched.
// When the current repository is detached the selection moves to the
// first remaining one (or clears).
func (r *Registry) Detach(ref string) error {
	path, err := r.Match(ref)
	if err != nil {
		return err
	}

	paths := slices.DeleteFunc(r.Paths(), func(p string) bool { return p == path })
	if err := r.setPaths(paths); err != nil {
		return err
	}

	if r.Current() == path {
		next := ""
		if len(paths) > 0 {
			next = paths[0]
		}
		return r.store.SetSystem(config.Global, currentKey, next)
	}
	return nil
}

// Select makes a registered repository current and returns its path.
func (r *Registry) Select(ref string) (string, error) {
	path, err := r.Match(ref)
	if err != nil {
		return "", err
	}
	return path, r.store.SetSystem(config.Global, currentKey, path)
}

// Match resolves a full path or unique partial path to a registered
// root. Exact matches win over substring matches.
func (r *Registry) Match(ref string) (string, error) {
	paths := r.Paths()

	if abs, err := filepath.Abs(ref); err == nil && slices.Contains(paths, abs) {
		return abs, nil
	}

	var candidates []string
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p), strings.ToLower(ref)) {
			candidates = append(candidates, p)
		}
	}
	switch len(candidates) {
	case 0:
		return "", &NotRegisteredError{Ref: ref}
	case 1:
		return candidates[0], nil
	}
	return "", &AmbiguousRepositoryError{Ref: ref, Candidates: candidates}
}

func (r *Registry) setPaths(paths []string) error {
	return r.store.SetSystem(config.Global, reposKey, strings.Join(paths, pathSeparator))
}
