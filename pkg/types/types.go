// File: cpp-workspace-gen/pkg/types/types.go
package types

// Fields are declared in JSON key order so encoded documents come out with
// sorted keys without going through a generic map.

// Workspace matches the structure of the generated WORKSPACE document.
type Workspace struct {
	External map[string]ExternalRepo `json:"external"`
}

// ExternalRepo describes where an external library lives and how to build it.
type ExternalRepo struct {
	Branch string                 `json:"branch"`
	Build  map[string]BuildTarget `json:"build"`
	URL    string                 `json:"url"`
}

// BuildTarget is a single c++/library target inside an external repo.
type BuildTarget struct {
	Deps     []string         `json:"deps,omitempty"`
	Hdrs     []string         `json:"hdrs"`
	Includes []string         `json:"includes"`
	Linux    PlatformOverride `json:"linux"`
	Srcs     []string         `json:"srcs,omitempty"`
	Type     string           `json:"type"`
	Windows  PlatformOverride `json:"windows"`
}

// PlatformOverride holds per-platform flags and sources.
type PlatformOverride struct {
	CompileFlags []string `json:"compile_flags"`
	Srcs         []string `json:"srcs,omitempty"`
}

// DepsTable maps a module name to the modules it depends on.
type DepsTable map[string][]string
