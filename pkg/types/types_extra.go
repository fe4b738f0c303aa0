// File: cpp-workspace-gen/pkg/types/types_extra.go
package types

// SourceSet is the result of classifying a module's src tree. Paths are
// relative to the module root and use forward slashes.
type SourceSet struct {
	Generic []string
	Linux   []string
	Windows []string
}

// Empty reports whether no source file was found at all.
func (s SourceSet) Empty() bool {
	return len(s.Generic) == 0 && len(s.Linux) == 0 && len(s.Windows) == 0
}
