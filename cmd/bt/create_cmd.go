package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "create <branch> <path> [commitish]",
		Short:       "Create a worktree",
		GroupID:     GroupWorktree,
		Args:        cobra.RangeArgs(2, 3),
		Annotations: requiresVCS,
		Long: `Create a worktree of the current repository at path, checked out on
branch. The branch is created from commitish (default: the tip of the
currently checked-out branch) unless it already exists, in which case it
is reused. The target path must be empty or absent.

Run 'bt init <platform>' inside the new worktree to initialize it.`,
		Example: `  bt create feature/x ../wt1
  bt create feature/x ../wt1 origin/release-2026.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			branch, path := args[0], args[1]
			commitish := ""
			if len(args) == 3 {
				commitish = args[2]
			}

			v, err := currentVCS()
			if err != nil {
				return err
			}
			if err := v.WorktreeCreate(cmd.Context(), branch, path, commitish); err != nil {
				return err
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if err := trackWorktree(abs); err != nil {
				return err
			}

			out.Printf("Created worktree %s on branch %s\n", abs, branch)
			return nil
		},
	}
}
