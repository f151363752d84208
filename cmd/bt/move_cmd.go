package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
)

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "move <new-path>",
		Short:       "Move the current worktree",
		GroupID:     GroupWorktree,
		Args:        cobra.ExactArgs(1),
		Annotations: requiresVCS,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			newPath, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			v, err := currentVCS()
			if err != nil {
				return err
			}
			oldPath := wctx.Root
			if err := v.WorktreeMove(cmd.Context(), oldPath, newPath); err != nil {
				return err
			}

			if err := untrackWorktree(oldPath); err != nil {
				return err
			}
			if err := trackWorktree(newPath); err != nil {
				return err
			}

			out.Printf("Moved %s to %s\n", oldPath, newPath)
			return nil
		},
	}
}
