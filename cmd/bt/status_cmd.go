package main

import (
	"github.com/spf13/cobra"

	"github.com/LowellDennis/bt/internal/output"
)

func newStatusCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:         "status",
		Short:       "Show filtered working-tree status",
		GroupID:     GroupBuild,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		Long: `Show the working-tree status narrowed to meaningful changes:
unversioned files and build artifacts are hidden unless --all is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			v, err := currentVCS()
			if err != nil {
				return err
			}
			status, err := v.Status(cmd.Context(), all)
			if err != nil {
				return err
			}
			if status == "" {
				out.Println("clean")
				return nil
			}
			out.Print(status)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include unversioned files")
	return cmd
}
