package config

// Scope identifies a configuration namespace.
type Scope int

const (
	// Global settings apply to all worktrees on a machine (~/.bt/global.cfg).
	Global Scope = iota
	// Local settings apply to exactly one worktree (<root>/.bt/local.cfg).
	Local
)

// String returns the scope name for error messages.
func (s Scope) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

// keyDef describes one recognized configuration key.
// Read-only keys are system-maintained and rejected by Set.
type keyDef struct {
	name     string
	readOnly bool
}

// The key sets are fixed enumerations. Unknown keys found in a config file
// are ignored on load and dropped on the next save.
var (
	globalKeys = []keyDef{
		{name: "email"},
		{name: "last", readOnly: true},
		{name: "repo", readOnly: true},
		{name: "repositories", readOnly: true},
		{name: "worktree", readOnly: true},
		{name: "worktrees", readOnly: true},
	}

	localKeys = []keyDef{
		{name: "alert"},
		{name: "bmc"},
		{name: "release"},
		{name: "warnings"},
		{name: "branch", readOnly: true},
		{name: "cpu", readOnly: true},
		{name: "name", readOnly: true},
		{name: "platform", readOnly: true},
		{name: "vendor", readOnly: true},
	}
)

func keysFor(scope Scope) []keyDef {
	if scope == Global {
		return globalKeys
	}
	return localKeys
}

// KeyNames returns all recognized key names for a scope, in declaration
// order (configurable first, then read-only).
func KeyNames(scope Scope) []string {
	defs := keysFor(scope)
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.name
	}
	return names
}

func isReadOnly(scope Scope, key string) bool {
	for _, d := range keysFor(scope) {
		if d.name == key {
			return d.readOnly
		}
	}
	return false
}

// defaultFor returns the reset value for a key. Every key defaults to the
// empty string; unset and empty are indistinguishable.
func defaultFor(string) string { return "" }
