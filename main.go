// File: cpp-workspace-gen/main.go
package main

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cpp-workspace-gen/pkg/config"
	"cpp-workspace-gen/pkg/logging"
)

// app carries what every command shares: the merged settings, the
// filesystem and the persistent flag values.
type app struct {
	v          *viper.Viper
	fs         afero.Fs
	configFile string
	verbose    bool
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{v: config.NewViper(), fs: fs}

	rootCmd := &cobra.Command{
		Use:   "wsgen",
		Short: "Generates jbuild WORKSPACE externals for a multi-module C++ library",
		Long: `wsgen scans a local checkout of a library laid out as libs/<module>/{include,src}
(Boost, for example) and prints the "external" section of a WORKSPACE file with one
c++/library target per module.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), a.verbose)
			cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "YAML settings file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "print debug messages")
	flags.String("deps-file", "", "YAML module dependency table (default: built-in Boost table)")
	cobra.CheckErr(a.v.BindPFlag("deps_file", flags.Lookup("deps-file")))

	rootCmd.AddCommand(newGenerateCmd(a), newDepsCmd(a), newFetchCmd(a))
	return rootCmd
}

func main() {
	cobra.CheckErr(newRootCmd(afero.NewOsFs()).ExecuteContext(context.Background()))
}
