// File: cpp-workspace-gen/pkg/config/deps.go
package config

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"cpp-workspace-gen/pkg/types"
)

// DefaultDepsTable returns the hand-maintained Boost module dependencies.
// A fresh copy is returned on every call.
func DefaultDepsTable() types.DepsTable {
	return types.DepsTable{
		"filesystem": {"config", "system", "type_traits", "detail", "iterator", "smart_ptr", "io", "functional", "range"},
		"system":     {"config", "predef", "assert", "core"},
		"iterator":   {"mpl", "static_assert"},
		"mpl":        {"preprocessor"},
		"smart_ptr":  {"throw_exception"},
		"range":      {"concept_check", "utility"},
		"algorithm":  {"function"},
	}
}

// LoadDepsTable reads a YAML dependency table of the form
//
//	filesystem: [config, system]
//	mpl: [preprocessor]
func LoadDepsTable(fs afero.Fs, path string) (types.DepsTable, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, eris.Wrapf(err, "could not open deps file %s", path)
	}

	table := make(types.DepsTable)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, eris.Wrapf(err, "failed to parse deps file %s", path)
	}
	for module, deps := range table {
		for _, dep := range deps {
			if dep == "" {
				return nil, eris.Errorf("deps file %s: empty dependency name for %s", path, module)
			}
		}
	}
	return table, nil
}

// DepsTable returns the table named by DepsFile, or the built-in one.
func (s *Settings) DepsTable(fs afero.Fs) (types.DepsTable, error) {
	if s.DepsFile == "" {
		return DefaultDepsTable(), nil
	}
	return LoadDepsTable(fs, s.DepsFile)
}

// EncodeDepsTable renders a table as YAML, the format LoadDepsTable reads.
func EncodeDepsTable(table types.DepsTable) ([]byte, error) {
	data, err := yaml.Marshal(map[string][]string(table))
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode deps table")
	}
	return data, nil
}
