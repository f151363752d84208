package main

import (
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/config"
	"github.com/LowellDennis/bt/internal/output"
)

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use <worktree>",
		Short:   "Switch the current worktree",
		GroupID: GroupWorktree,
		Args:    cobra.ExactArgs(1),
		Long: `Make a known worktree current. The worktree may be given as a full
path or any unique partial path; the resolved path is printed so shell
wrappers can cd into it:

  cd $(bt use u66)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := matchWorktree(args[0])
			if err != nil {
				return err
			}
			if err := store.SetSystem(config.Global, "worktree", path); err != nil {
				return err
			}
			if err := recordLastUsed(path); err != nil {
				return err
			}

			out.Println(path)
			return nil
		},
	}
}
