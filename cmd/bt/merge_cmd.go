package main

import (
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var upstream bool

	cmd := &cobra.Command{
		Use:         "merge",
		Short:       "Merge the default branch (or upstream) into the worktree",
		GroupID:     GroupBuild,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		Long: `Merge the remote default branch into the current branch. With
--upstream, fetch and merge the current branch's own upstream instead.
For SVN checkouts, --upstream maps to update and the default merges from
trunk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := currentVCS()
			if err != nil {
				return err
			}
			return v.Merge(cmd.Context(), upstream)
		},
	}

	cmd.Flags().BoolVarP(&upstream, "upstream", "u", false, "Merge from the branch's upstream")
	return cmd
}
