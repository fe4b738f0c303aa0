// File: cpp-workspace-gen/deps.go
package main

import (
	"github.com/spf13/cobra"

	"cpp-workspace-gen/pkg/config"
)

func newDepsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Print the module dependency table in effect as YAML",
		Long: `Prints the dependency table used by generate. Without --deps-file this is the
built-in Boost table; the output can be edited and passed back with --deps-file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(a.v, a.configFile); err != nil {
				return err
			}

			s := config.Settings{DepsFile: a.v.GetString("deps_file")}
			table, err := s.DepsTable(a.fs)
			if err != nil {
				return err
			}

			data, err := config.EncodeDepsTable(table)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
