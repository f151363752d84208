package supervise

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Rule is one entry of the filter table. Rules apply in file order; the
// first rule whose pattern matches a line decides it.
type Rule struct {
	// Match is an RE2 pattern tried against the whole line.
	Match string `toml:"match"`
	// Action is "drop" or "keep".
	Action string `toml:"action"`
}

type filterFile struct {
	Rule []Rule `toml:"rule"`
}

type compiledRule struct {
	re   *regexp.Regexp
	drop bool
}

// FilterSet applies ordered suppression rules to output lines.
// The zero value (and an empty table) keeps every line.
type FilterSet struct {
	rules []compiledRule
}

// LoadFilters reads a TOML rule table. A missing file yields an empty
// set, not an error.
func LoadFilters(path string) (*FilterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FilterSet{}, nil
		}
		return nil, fmt.Errorf("read filter table: %w", err)
	}
	return ParseFilters(string(data))
}

// ParseFilters compiles a TOML rule table.
func ParseFilters(data string) (*FilterSet, error) {
	var file filterFile
	if err := toml.Unmarshal([]byte(data), &file); err != nil {
		return nil, fmt.Errorf("parse filter table: %w", err)
	}

	fs := &FilterSet{}
	for i, r := range file.Rule {
		re, err := regexp.Compile(r.Match)
		if err != nil {
			return nil, fmt.Errorf("filter rule %d: %w", i+1, err)
		}
		switch r.Action {
		case "drop", "keep":
		default:
			return nil, fmt.Errorf("filter rule %d: unknown action %q (want drop or keep)", i+1, r.Action)
		}
		fs.rules = append(fs.rules, compiledRule{re: re, drop: r.Action == "drop"})
	}
	return fs, nil
}

// Keep reports whether a line survives the rules. Lines no rule matches
// pass through.
func (f *FilterSet) Keep(line string) bool {
	for _, r := range f.rules {
		if r.re.MatchString(line) {
			return !r.drop
		}
	}
	return true
}

// Len returns the number of loaded rules.
func (f *FilterSet) Len() int {
	return len(f.rules)
}
