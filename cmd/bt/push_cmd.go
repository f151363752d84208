package main

import (
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "push",
		Short:       "Push the current branch",
		GroupID:     GroupBuild,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := currentVCS()
			if err != nil {
				return err
			}
			return v.Push(cmd.Context())
		},
	}
}
