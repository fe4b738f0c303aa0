// File: cpp-workspace-gen/pkg/generator/sources/platform.go
package sources

import "strings"

// Platform is the bucket a source file is compiled for.
type Platform int

const (
	Generic Platform = iota
	Linux
	Windows
)

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	default:
		return "generic"
	}
}

// Classify maps a module-relative path to its platform. "windows" wins over
// "linux" and "posix"; matching is a plain substring test on the whole path.
func Classify(relPath string) Platform {
	switch {
	case strings.Contains(relPath, "windows"):
		return Windows
	case strings.Contains(relPath, "linux"), strings.Contains(relPath, "posix"):
		return Linux
	default:
		return Generic
	}
}
