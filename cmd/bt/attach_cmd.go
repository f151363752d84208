package main

import (
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/resolve"
)

func newAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "attach [path]",
		Short:   "Register a repository and make it current",
		GroupID: GroupRepository,
		Args:    cobra.MaximumNArgs(1),
		Long: `Register a repository in the global repository list and select it
as the current one. With no path, the enclosing repository of the working
directory is attached. Attaching an already-registered repository just
selects it; the working copy on disk is never modified.`,
		Example: `  bt attach               # attach the repo enclosing the current directory
  bt attach ~/src/bios     # attach an explicit path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			path := workDir
			if len(args) == 1 {
				path = args[0]
			}

			root, err := attachRoot(path)
			if err != nil {
				return err
			}
			if err := reg.Attach(root); err != nil {
				return err
			}

			current := reg.Current()
			log.FromContext(ctx).Debug("attached repository", "path", current)
			out.Printf("Attached %s (now current)\n", current)
			return nil
		},
	}
}

// attachRoot resolves the primary repository root enclosing path, so
// attach works from any subdirectory of a working copy.
func attachRoot(path string) (string, error) {
	resolved, err := resolve.Resolve(path, "")
	if err != nil {
		return "", err
	}
	return resolved.RepoRoot, nil
}
