// Package dispatch layers command-name abbreviation over the cobra
// command tree.
//
// The registry is built once at startup from the root command. Before
// cobra parses anything, the first positional argument is rewritten to
// the canonical command name, so `bt stat`, `bt st` and `bt status` all
// dispatch identically as long as the prefix is unambiguous. Exact names
// always win over longer candidates sharing the prefix.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/abbrev"
)

// AnnotationRequiresVCS marks commands that need a resolved repository
// context before running.
const AnnotationRequiresVCS = "requires-vcs"

// UnknownCommandError indicates no command matched the given name.
// Suggestions carries close matches for "did you mean" output.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// AmbiguousCommandError indicates a prefix matched several commands.
type AmbiguousCommandError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousCommandError) Error() string {
	return fmt.Sprintf("ambiguous command %q: matches %s", e.Prefix, strings.Join(e.Candidates, ", "))
}

// Descriptor describes one dispatchable command.
type Descriptor struct {
	Name        string
	Terse       string
	RequiresVCS bool
}

// Registry holds the dispatchable commands in declaration order.
type Registry struct {
	descriptors []Descriptor
	names       []string
}

// Build walks the cobra tree and registers every runnable subcommand.
// Cobra's own service commands (help, completion) stay dispatchable but
// hidden commands are skipped.
func Build(root *cobra.Command) *Registry {
	r := &Registry{}
	for _, c := range root.Commands() {
		if c.Hidden {
			continue
		}
		r.descriptors = append(r.descriptors, Descriptor{
			Name:        c.Name(),
			Terse:       c.Short,
			RequiresVCS: c.Annotations[AnnotationRequiresVCS] == "true",
		})
		r.names = append(r.names, c.Name())
	}
	return r
}

// Names returns the canonical command names in registration order.
func (r *Registry) Names() []string {
	return r.names
}

// Resolve maps a possibly-abbreviated command name to its descriptor.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	full, err := abbrev.Resolve(name, r.names)
	if err != nil {
		var ambErr *abbrev.AmbiguousError
		if errors.As(err, &ambErr) {
			return nil, &AmbiguousCommandError{Prefix: name, Candidates: ambErr.Candidates}
		}
		return nil, &UnknownCommandError{Name: name, Suggestions: r.suggest(name)}
	}
	for i := range r.descriptors {
		if r.descriptors[i].Name == full {
			return &r.descriptors[i], nil
		}
	}
	return nil, &UnknownCommandError{Name: name}
}

// Rewrite replaces the first positional argument with its canonical
// command name. Flags before the command (global -v, --help) pass
// through untouched; an args slice with no positional argument is
// returned as-is so cobra can print help.
func (r *Registry) Rewrite(args []string) ([]string, *Descriptor, error) {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		// Cobra's internal commands (__complete) bypass abbreviation.
		if strings.HasPrefix(arg, "__") {
			return args, nil, nil
		}
		desc, err := r.Resolve(arg)
		if err != nil {
			return nil, nil, err
		}
		rewritten := make([]string, len(args))
		copy(rewritten, args)
		rewritten[i] = desc.Name
		return rewritten, desc, nil
	}
	return args, nil, nil
}

// suggest returns up to three fuzzy matches for an unknown name.
func (r *Registry) suggest(name string) []string {
	matches := fuzzy.Find(name, r.names)
	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}
