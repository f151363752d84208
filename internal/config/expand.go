package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// CycleError indicates circular ${} references between keys.
type CycleError struct {
	Keys []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular reference between settings: %s", strings.Join(e.Keys, " -> "))
}

var refPattern = regexp.MustCompile(`\$\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Expand replaces every ${NAME} occurrence with the value of NAME, looked
// up in the Local scope first, falling back to Global, falling back to the
// empty string. Substitution is applied recursively; a key that directly
// or transitively references itself yields a CycleError naming the
// participants.
func (s *Store) Expand(value string) (string, error) {
	return s.expand(value, nil)
}

func (s *Store) expand(value string, active []string) (string, error) {
	var expandErr error

	result := refPattern.ReplaceAllStringFunc(value, func(ref string) string {
		if expandErr != nil {
			return ref
		}
		name := strings.ToLower(ref[2 : len(ref)-1])
		if slices.Contains(active, name) {
			expandErr = &CycleError{Keys: append(slices.Clone(active), name)}
			return ref
		}
		inner, err := s.expand(s.lookup(name), append(active, name))
		if err != nil {
			expandErr = err
			return ref
		}
		return inner
	})

	if expandErr != nil {
		return "", expandErr
	}
	return result, nil
}

// GetExpanded returns the value of key with all ${} references resolved.
func (s *Store) GetExpanded(scope Scope, key string) (string, error) {
	raw, err := s.Get(scope, key)
	if err != nil {
		return "", err
	}
	return s.Expand(raw)
}
