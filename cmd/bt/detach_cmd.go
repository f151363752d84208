package main

import (
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
)

func newDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "detach <repo>",
		Short:   "Unregister a repository (disk untouched)",
		GroupID: GroupRepository,
		Args:    cobra.ExactArgs(1),
		Long: `Remove a repository from the global list. The repository may be
given as a full path or any unique partial path. Files on disk are not
touched. If the detached repository was current, the selection moves to
the first remaining one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := reg.Match(args[0])
			if err != nil {
				return err
			}
			if err := reg.Detach(path); err != nil {
				return err
			}

			out.Printf("Detached %s\n", path)
			if current := reg.Current(); current != "" {
				out.Printf("Current repository is now %s\n", current)
			}
			return nil
		},
	}
}
