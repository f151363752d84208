// Package abbrev resolves user-supplied prefixes against a set of known
// names. Config keys and command names share the same rules: matching is
// case-insensitive, a prefix must match exactly one name, and an exact
// match always wins even when it is also a prefix of another name.
package abbrev

import (
	"fmt"
	"slices"
	"strings"
)

// AmbiguousError is returned when a prefix matches more than one name and
// is not itself an exact name.
type AmbiguousError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous abbreviation %q: matches %s", e.Prefix, strings.Join(e.Candidates, ", "))
}

// NotFoundError is returned when a prefix matches no known name.
type NotFoundError struct {
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown name: %q", e.Prefix)
}

// Resolve maps prefix to the single name it abbreviates.
// Returns *NotFoundError or *AmbiguousError on failure.
func Resolve(prefix string, names []string) (string, error) {
	lower := strings.ToLower(prefix)

	var matches []string
	for _, name := range names {
		ln := strings.ToLower(name)
		if ln == lower {
			// Exact match wins regardless of other names sharing the prefix.
			return name, nil
		}
		if strings.HasPrefix(ln, lower) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Prefix: prefix}
	case 1:
		return matches[0], nil
	default:
		slices.Sort(matches)
		return "", &AmbiguousError{Prefix: prefix, Candidates: matches}
	}
}
