package main

import (
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "fetch",
		Short:       "Fetch from the remote (SVN: update)",
		GroupID:     GroupBuild,
		Args:        cobra.NoArgs,
		Annotations: requiresVCS,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := currentVCS()
			if err != nil {
				return err
			}
			return v.Fetch(cmd.Context())
		},
	}
}
