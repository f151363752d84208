package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Scope files are line-oriented and human-editable. Configurable settings
// use `key = "value"`; system-maintained entries use `key, value`. The two
// sections are separated by comment markers so users can see at a glance
// which half they own. External front-ends parse this format, so the shape
// is a compatibility contract.
const (
	settingsHeader = "# --- settings ---"
	managedHeader  = "# --- managed by bt ---"
)

var assignPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*=\s*"(.*)"\s*$`)

// readScopeFile parses one scope file into dst. A missing file is not an
// error: the scope is simply empty. Unknown keys are skipped.
func readScopeFile(path string, scope Scope, dst map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	known := make(map[string]bool, len(keysFor(scope)))
	for _, d := range keysFor(scope) {
		known[d.name] = true
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if m := assignPattern.FindStringSubmatch(line); m != nil {
			key, value = m[1], m[2]
		} else if idx := strings.Index(line, ","); idx >= 0 {
			key = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		} else {
			continue
		}

		key = strings.ToLower(key)
		if known[key] {
			dst[key] = value
		}
	}
	return scanner.Err()
}

// formatScopeFile renders a scope to its file form. Only keys with values
// are written; the fixed key tables, not the file, define what exists.
func formatScopeFile(scope Scope, values map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# bt %s configuration\n", scope)
	b.WriteString(settingsHeader + "\n")
	for _, d := range keysFor(scope) {
		if d.readOnly {
			continue
		}
		if v, ok := values[d.name]; ok && v != "" {
			fmt.Fprintf(&b, "%s = %q\n", d.name, v)
		}
	}

	b.WriteString(managedHeader + "\n")
	for _, d := range keysFor(scope) {
		if !d.readOnly {
			continue
		}
		if v, ok := values[d.name]; ok && v != "" {
			fmt.Fprintf(&b, "%s, %s\n", d.name, v)
		}
	}

	return b.String()
}
