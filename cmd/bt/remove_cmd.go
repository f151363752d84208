package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "remove <path>",
		Short:       "Remove a worktree",
		GroupID:     GroupWorktree,
		Args:        cobra.ExactArgs(1),
		Annotations: requiresVCS,
		Long: `Remove a worktree from disk and from the known worktree list.
On a terminal a confirmation is asked first; --force skips it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			if !force && isatty.IsTerminal(os.Stderr.Fd()) {
				result, err := ui.Confirm(fmt.Sprintf("Remove worktree %s?", path))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					return nil
				}
			}

			v, err := currentVCS()
			if err != nil {
				return err
			}
			if err := v.WorktreeRemove(cmd.Context(), path); err != nil {
				return err
			}
			if err := untrackWorktree(path); err != nil {
				return err
			}

			out.Printf("Removed %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")
	return cmd
}
