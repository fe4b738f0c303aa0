// File: cpp-workspace-gen/pkg/generator/deps/attach.go
package deps

import (
	"sort"

	"cpp-workspace-gen/pkg/types"
	"cpp-workspace-gen/pkg/utils"
)

// Attach returns the sorted external paths of module's dependencies, or nil
// when the table has none. The table itself is left untouched.
func Attach(table types.DepsTable, module, extPath string) []string {
	names := table[module]
	if len(names) == 0 {
		return nil
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	paths := make([]string, len(sorted))
	for i, name := range sorted {
		paths[i] = utils.Expand(extPath, name)
	}
	return paths
}

// Dangling lists, per module, the dependencies that are not among modules.
// Only modules that are themselves present are checked.
func Dangling(table types.DepsTable, modules []string) map[string][]string {
	present := make(map[string]bool, len(modules))
	for _, m := range modules {
		present[m] = true
	}

	missing := make(map[string][]string)
	for module, names := range table {
		if !present[module] {
			continue
		}
		for _, name := range names {
			if !present[name] {
				missing[module] = append(missing[module], name)
			}
		}
		if len(missing[module]) > 0 {
			sort.Strings(missing[module])
		}
	}
	return missing
}
