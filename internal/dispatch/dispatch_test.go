package dispatch

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	root := &cobra.Command{Use: "bt"}
	add := func(name string, requiresVCS bool) {
		c := &cobra.Command{
			Use:  name,
			RunE: func(*cobra.Command, []string) error { return nil },
		}
		if requiresVCS {
			c.Annotations = map[string]string{AnnotationRequiresVCS: "true"}
		}
		root.AddCommand(c)
	}
	add("build", true)
	add("config", false)
	add("create", true)
	add("status", true)
	add("select", false)
	add("use", true)
	add("user-info", false) // exact-match-wins probe for "use"
	return Build(root)
}

func TestResolveAbbreviations(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		input string
		want  string
	}{
		{input: "status", want: "status"},
		{input: "stat", want: "status"},
		{input: "st", want: "status"},
		{input: "ST", want: "status"},
		{input: "b", want: "build"},
		{input: "use", want: "use"}, // exact beats user-info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			desc, err := r.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) = %v", tt.input, err)
			}
			if desc.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, desc.Name, tt.want)
			}
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Resolve("c")
	var ambErr *AmbiguousCommandError
	if !errors.As(err, &ambErr) {
		t.Fatalf("Resolve(c) = %v, want AmbiguousCommandError", err)
	}
	want := []string{"config", "create"}
	if !slices.Equal(ambErr.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", ambErr.Candidates, want)
	}
}

func TestResolveUnknownSuggests(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Resolve("statsu")
	var unkErr *UnknownCommandError
	if !errors.As(err, &unkErr) {
		t.Fatalf("Resolve(statsu) = %v, want UnknownCommandError", err)
	}
	if !slices.Contains(unkErr.Suggestions, "status") {
		t.Errorf("Suggestions = %v, want to include status", unkErr.Suggestions)
	}
}

func TestRequiresVCSFlag(t *testing.T) {
	r := testRegistry(t)

	build, err := r.Resolve("build")
	if err != nil {
		t.Fatal(err)
	}
	if !build.RequiresVCS {
		t.Error("build should require a repository context")
	}

	sel, err := r.Resolve("select")
	if err != nil {
		t.Fatal(err)
	}
	if sel.RequiresVCS {
		t.Error("select should not require a repository context")
	}
}

func TestRewrite(t *testing.T) {
	r := testRegistry(t)

	t.Run("rewrites first positional", func(t *testing.T) {
		args, desc, err := r.Rewrite([]string{"-v", "stat", "--all"})
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"-v", "status", "--all"}
		if !slices.Equal(args, want) {
			t.Errorf("Rewrite = %v, want %v", args, want)
		}
		if desc == nil || desc.Name != "status" {
			t.Errorf("desc = %+v", desc)
		}
	})

	t.Run("no positional passes through", func(t *testing.T) {
		in := []string{"-v", "--help"}
		args, desc, err := r.Rewrite(in)
		if err != nil || desc != nil || !slices.Equal(args, in) {
			t.Errorf("Rewrite = (%v, %+v, %v)", args, desc, err)
		}
	})

	t.Run("unknown command errors", func(t *testing.T) {
		_, _, err := r.Rewrite([]string{"frobnicate"})
		var unkErr *UnknownCommandError
		if !errors.As(err, &unkErr) {
			t.Errorf("Rewrite = %v, want UnknownCommandError", err)
		}
	})
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("ExitCode(plain) = %d", got)
	}
	wrapped := fmt.Errorf("build: %w", &ExitCodeError{Code: 42})
	if got := ExitCode(wrapped); got != 42 {
		t.Errorf("ExitCode(wrapped) = %d", got)
	}
}
