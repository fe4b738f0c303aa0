// File: cpp-workspace-gen/pkg/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"cpp-workspace-gen/pkg/utils"
)

const (
	// LibsDir is the directory below the library root that holds one
	// subdirectory per module.
	LibsDir = "libs"
	// SrcDir is the per-module directory scanned for source files.
	SrcDir = "src"
	// TargetType is the jbuild target type of every generated module.
	TargetType = "c++/library"
	// IncludeDir is the include directory of every module.
	IncludeDir = "include"
	// DefaultBranch is what jbuild assumes when an external has no branch.
	DefaultBranch = "master"
	// Stdout selects standard output as the output destination.
	Stdout = "-"
	// EnvPrefix is the prefix of environment variables overriding settings.
	EnvPrefix = "WSGEN"
)

// HeaderGlobs are the header patterns attached to every module.
var HeaderGlobs = []string{"glob:include/**/*.hpp", "glob:include/**/*.h"}

// Settings controls a single generator run.
type Settings struct {
	Root           string   `mapstructure:"root"`
	Output         string   `mapstructure:"output"`
	ExtPath        string   `mapstructure:"ext_path"`
	URLTemplate    string   `mapstructure:"url_template"`
	BranchTemplate string   `mapstructure:"branch_template"`
	Version        string   `mapstructure:"version"`
	SrcExts        []string `mapstructure:"src_exts"`
	LinuxFlags     []string `mapstructure:"linux_flags"`
	WindowsFlags   []string `mapstructure:"windows_flags"`
	DepsFile       string   `mapstructure:"deps_file"`

	version *semver.Version
}

// DefaultSettings returns the settings used to generate the Boost workspace.
func DefaultSettings() Settings {
	return Settings{
		Output:         Stdout,
		ExtPath:        "//third_party/boost/%s",
		URLTemplate:    "https://github.com/boostorg/%s",
		BranchTemplate: "boost-%s",
		Version:        "1.62.0",
		SrcExts:        []string{"c", "cpp", "cc"},
		LinuxFlags:     []string{"-std=c++11"},
		WindowsFlags:   []string{"-DBOOST_ALL_NO_LIB"},
	}
}

// NewViper returns a viper instance with every default registered and
// environment overrides (WSGEN_ROOT, WSGEN_VERSION, ...) enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("ext_path", defaults.ExtPath)
	v.SetDefault("url_template", defaults.URLTemplate)
	v.SetDefault("branch_template", defaults.BranchTemplate)
	v.SetDefault("version", defaults.Version)
	v.SetDefault("src_exts", defaults.SrcExts)
	v.SetDefault("linux_flags", defaults.LinuxFlags)
	v.SetDefault("windows_flags", defaults.WindowsFlags)
	v.SetDefault("deps_file", defaults.DepsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges the YAML settings file at path into v. An empty path is
// a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return eris.Wrapf(err, "failed to read settings file %s", path)
	}
	return nil
}

// Load reads the optional YAML settings file into v, unmarshals the merged
// result and validates it.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if err := ReadFile(v, configFile); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrap(err, "failed to parse settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings and caches the parsed library version.
func (s *Settings) Validate() error {
	if s.Root == "" {
		return eris.New("no library root given, pass --root or set WSGEN_ROOT")
	}
	if s.Output == "" {
		s.Output = Stdout
	}

	templates := []struct{ name, value string }{
		{"ext_path", s.ExtPath},
		{"url_template", s.URLTemplate},
		{"branch_template", s.BranchTemplate},
	}
	for _, tmpl := range templates {
		if !utils.HasSingleVerb(tmpl.value) {
			return eris.Errorf("%s %q must contain exactly one %%s", tmpl.name, tmpl.value)
		}
	}

	if len(s.SrcExts) == 0 {
		return eris.New("src_exts must list at least one extension")
	}

	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return eris.Wrapf(err, "library version %q is not a valid semver", s.Version)
	}
	s.version = v
	return nil
}

// Branch returns the branch or tag checked out for every module, e.g.
// 'boost-1.62.0'.
func (s *Settings) Branch() string {
	version := s.Version
	if s.version != nil {
		version = s.version.Original()
	}
	return fmt.Sprintf(s.BranchTemplate, version)
}
