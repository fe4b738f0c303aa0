// File: cpp-workspace-gen/pkg/utils/utils.go
package utils

import (
	"fmt"
	"strings"
)

// Expand applies a single-verb template such as '//third_party/boost/%s'
// to a module name.
func Expand(template, module string) string {
	return fmt.Sprintf(template, module)
}

// CheckoutDir turns an external path into a directory name relative to the
// externals root, e.g. '//third_party/boost/system' -> 'third_party/boost/system'.
func CheckoutDir(externalPath string) string {
	return strings.Trim(externalPath, "/")
}

// HasSingleVerb reports whether a template contains exactly one '%s' and no
// other formatting verbs.
func HasSingleVerb(template string) bool {
	return strings.Count(template, "%") == 1 && strings.Count(template, "%s") == 1
}
