// Package config implements the hierarchical bt configuration store.
//
// There are two scopes: Global (one per user, ~/.bt/global.cfg) and Local
// (one per worktree, <root>/.bt/local.cfg). Each scope is a flat mapping
// from a fixed set of keys to string values. Keys are case-insensitive and
// may be given as unambiguous prefixes. Values may reference other keys
// with ${NAME}, expanded recursively.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LowellDennis/bt/internal/abbrev"
)

const (
	// GlobalDirName is the per-user state directory under $HOME.
	GlobalDirName = ".bt"
	// GlobalFileName is the global config file inside GlobalDirName.
	GlobalFileName = "global.cfg"
	// LocalDirName is the per-worktree state directory at the repo root.
	LocalDirName = ".bt"
	// LocalFileName is the local config file inside LocalDirName.
	LocalFileName = "local.cfg"
)

// NotFoundError indicates the key (or prefix) matches no recognized key.
type NotFoundError struct {
	Key   string
	Scope Scope
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such %s setting: %q", e.Scope, e.Key)
}

// AmbiguousKeyError indicates a prefix matched more than one key.
type AmbiguousKeyError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("ambiguous setting %q: matches %s", e.Prefix, strings.Join(e.Candidates, ", "))
}

// ReadOnlyKeyError indicates a write attempt on a system-maintained key.
type ReadOnlyKeyError struct {
	Key string
}

func (e *ReadOnlyKeyError) Error() string {
	return fmt.Sprintf("setting %q is maintained by bt and cannot be set", e.Key)
}

// Store holds the loaded configuration for both scopes.
// A Store without a local scope (no worktree context) has localPath == "".
type Store struct {
	globalPath string
	localPath  string

	global map[string]string
	local  map[string]string
}

// GlobalPath returns the path of the global config file for the given home
// directory, defaulting to the current user's home when home is empty.
func GlobalPath(home string) (string, error) {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
	}
	return filepath.Join(home, GlobalDirName, GlobalFileName), nil
}

// LocalPath returns the path of the local config file for a worktree root.
func LocalPath(root string) string {
	return filepath.Join(root, LocalDirName, LocalFileName)
}

// Load reads the global config and, if root is non-empty, the local config
// for that worktree root. Missing files yield empty scopes, not errors.
func Load(globalPath, root string) (*Store, error) {
	s := &Store{
		globalPath: globalPath,
		global:     map[string]string{},
		local:      map[string]string{},
	}

	if err := readScopeFile(globalPath, Global, s.global); err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	if root != "" {
		s.localPath = LocalPath(root)
		if err := readScopeFile(s.localPath, Local, s.local); err != nil {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	return s, nil
}

// HasLocal reports whether a local scope is attached to this store.
func (s *Store) HasLocal() bool {
	return s.localPath != ""
}

// AttachLocal binds the local scope to a worktree root, loading the local
// config file if present. Used by commands (init) that create the local
// scope after resolution.
func (s *Store) AttachLocal(root string) error {
	s.localPath = LocalPath(root)
	s.local = map[string]string{}
	return readScopeFile(s.localPath, Local, s.local)
}

// resolveKey maps a possibly-abbreviated key to its full name within scope.
func resolveKey(scope Scope, key string) (string, error) {
	name, err := abbrev.Resolve(key, KeyNames(scope))
	if err != nil {
		var ambErr *abbrev.AmbiguousError
		if errors.As(err, &ambErr) {
			return "", &AmbiguousKeyError{Prefix: key, Candidates: ambErr.Candidates}
		}
		return "", &NotFoundError{Key: key, Scope: scope}
	}
	return name, nil
}

// ResolveKey exposes abbreviation resolution for callers that need the
// canonical key name (e.g. the config command deciding which scope a
// user-supplied key belongs to).
func ResolveKey(scope Scope, key string) (string, error) {
	return resolveKey(scope, key)
}

// Get returns the value for a key, which may be an unambiguous prefix.
// Unset keys return the empty string without error.
func (s *Store) Get(scope Scope, key string) (string, error) {
	name, err := resolveKey(scope, key)
	if err != nil {
		return "", err
	}
	return s.values(scope)[name], nil
}

// Set validates that key names a configurable (not read-only) key, updates
// it, and durably persists the scope file before returning.
func (s *Store) Set(scope Scope, key, value string) error {
	name, err := resolveKey(scope, key)
	if err != nil {
		return err
	}
	if isReadOnly(scope, name) {
		return &ReadOnlyKeyError{Key: name}
	}
	s.values(scope)[name] = value
	return s.save(scope)
}

// SetSystem updates a system-maintained (read-only) key. This is the only
// mutation path for keys like repo, repositories, last and branch; it is
// not reachable from the config command.
func (s *Store) SetSystem(scope Scope, key, value string) error {
	name, err := resolveKey(scope, key)
	if err != nil {
		return err
	}
	s.values(scope)[name] = value
	return s.save(scope)
}

// ResetToDefault restores a configurable key to its default value.
func (s *Store) ResetToDefault(scope Scope, key string) error {
	name, err := resolveKey(scope, key)
	if err != nil {
		return err
	}
	return s.Set(scope, name, defaultFor(name))
}

// Entry is one key/value pair as reported by ListAll.
type Entry struct {
	Key      string
	Value    string
	ReadOnly bool
}

// ListAll returns every recognized key for a scope in declaration order,
// with current values and the read-only flag.
func (s *Store) ListAll(scope Scope) []Entry {
	defs := keysFor(scope)
	vals := s.values(scope)
	entries := make([]Entry, len(defs))
	for i, d := range defs {
		entries[i] = Entry{Key: d.name, Value: vals[d.name], ReadOnly: d.readOnly}
	}
	return entries
}

func (s *Store) values(scope Scope) map[string]string {
	if scope == Global {
		return s.global
	}
	return s.local
}

// lookup finds a key's value by exact name, Local scope first, then
// Global, then empty. Used by expansion.
func (s *Store) lookup(name string) string {
	name = strings.ToLower(name)
	if v, ok := s.local[name]; ok && v != "" {
		return v
	}
	return s.global[name]
}

// save atomically rewrites the backing file for one scope: write to a
// temp file, then rename, so an interrupted write never truncates the
// previous contents.
func (s *Store) save(scope Scope) error {
	path := s.globalPath
	if scope == Local {
		path = s.localPath
	}
	if path == "" {
		return fmt.Errorf("no %s config path (not inside an initialized worktree?)", scope)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data := formatScopeFile(scope, s.values(scope))

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
