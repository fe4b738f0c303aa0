// File: cpp-workspace-gen/generate.go
package main

import (
	"github.com/spf13/cobra"

	"cpp-workspace-gen/pkg/config"
	"cpp-workspace-gen/pkg/generator"
	"cpp-workspace-gen/pkg/logging"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan the library checkout and print the WORKSPACE externals as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleGenerate(cmd)
		},
	}

	defaults := config.DefaultSettings()
	flags := cmd.Flags()
	flags.StringP("root", "r", "", "library checkout containing libs/<module> (env WSGEN_ROOT)")
	flags.StringP("output", "o", defaults.Output, "output file, - for stdout")
	flags.String("ext-path", defaults.ExtPath, "external path template")
	flags.String("url-template", defaults.URLTemplate, "repository URL template")
	flags.String("branch-template", defaults.BranchTemplate, "branch template applied to --version")
	flags.String("version", defaults.Version, "library version")
	flags.StringSlice("src-ext", defaults.SrcExts, "source file extensions")
	flags.StringSlice("linux-flag", defaults.LinuxFlags, "linux compile flags")
	flags.StringSlice("windows-flag", defaults.WindowsFlags, "windows compile flags")

	bindings := map[string]string{
		"root":            "root",
		"output":          "output",
		"ext_path":        "ext-path",
		"url_template":    "url-template",
		"branch_template": "branch-template",
		"version":         "version",
		"src_exts":        "src-ext",
		"linux_flags":     "linux-flag",
		"windows_flags":   "windows-flag",
	}
	for key, flag := range bindings {
		cobra.CheckErr(a.v.BindPFlag(key, flags.Lookup(flag)))
	}
	return cmd
}

func (a *app) handleGenerate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logging.From(ctx)

	s, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	table, err := s.DepsTable(a.fs)
	if err != nil {
		return err
	}

	log.Debug().Msgf("Scanning %s (branch %s)", s.Root, s.Branch())
	ws, err := generator.New(a.fs, s, table).Generate(ctx)
	if err != nil {
		return err
	}

	if err := config.WriteWorkspace(a.fs, cmd.OutOrStdout(), s.Output, ws); err != nil {
		return err
	}
	if s.Output != config.Stdout {
		log.Info().Msgf("Wrote %s", s.Output)
	}
	return nil
}
