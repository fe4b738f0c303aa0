// File: cpp-workspace-gen/fetch.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cpp-workspace-gen/pkg/config"
	"cpp-workspace-gen/pkg/externals"
)

func newFetchCmd(a *app) *cobra.Command {
	f := &externals.Fetcher{}

	cmd := &cobra.Command{
		Use:   "fetch <workspace.json>",
		Short: "Clone or update every external listed in a generated workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := config.LoadWorkspace(a.fs, args[0])
			if err != nil {
				return err
			}

			f.Fs = a.fs
			f.Progress = cmd.ErrOrStderr()
			results, err := f.Fetch(cmd.Context(), ws)
			if err != nil {
				return err
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s (%s)\n", r.Action, r.Path, r.Dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Dir, "dir", "d", "external", "directory the externals are checked out into")
	cmd.Flags().BoolVarP(&f.Update, "update", "u", false, "pull externals that are already checked out")
	cmd.Flags().BoolVarP(&f.DryRun, "dry-run", "n", false, "only print what would be done")
	return cmd
}
