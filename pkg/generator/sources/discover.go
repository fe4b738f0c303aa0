// File: cpp-workspace-gen/pkg/generator/sources/discover.go
package sources

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"cpp-workspace-gen/pkg/config"
	"cpp-workspace-gen/pkg/types"
)

// ListModules returns the module directories below <root>/libs, sorted.
// Entries whose name contains a dot are not modules. Symlinked modules are
// listed when the link points at a directory.
func ListModules(fs afero.Fs, root string) ([]string, error) {
	libsDir := filepath.Join(root, config.LibsDir)
	entries, err := afero.ReadDir(fs, libsDir)
	if err != nil {
		return nil, eris.Wrapf(err, "could not list modules in %s", libsDir)
	}

	modules := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".") {
			continue
		}
		isDir, err := resolvesToDir(fs, filepath.Join(libsDir, entry.Name()), entry)
		if err != nil {
			return nil, err
		}
		if isDir {
			modules = append(modules, entry.Name())
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// ModuleRoot returns the directory of a module inside the library root.
func ModuleRoot(root, module string) string {
	return filepath.Join(root, config.LibsDir, module)
}

// ClassifySources walks <moduleRoot>/src and sorts every source file into
// the windows, linux or generic bucket by looking at its path relative to
// the module root. A missing src directory yields an empty set.
func ClassifySources(fs afero.Fs, moduleRoot string, exts []string) (types.SourceSet, error) {
	var set types.SourceSet

	srcDir := filepath.Join(moduleRoot, config.SrcDir)
	info, err := fs.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return set, eris.Wrapf(err, "could not stat %s", srcDir)
	}
	if !info.IsDir() {
		return set, nil
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[ext] = true
	}

	// The trailing separator makes Walk resolve a symlinked src itself.
	err = afero.Walk(fs, srcDir+string(filepath.Separator), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !allowed[extension(info.Name())] {
			return nil
		}
		// links to directories below src are not descended into, and are not files either
		isDir, err := resolvesToDir(fs, path, info)
		if err != nil {
			return err
		}
		if isDir {
			return nil
		}

		relPath, err := filepath.Rel(moduleRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		switch Classify(relPath) {
		case Windows:
			set.Windows = append(set.Windows, relPath)
		case Linux:
			set.Linux = append(set.Linux, relPath)
		default:
			set.Generic = append(set.Generic, relPath)
		}
		return nil
	})
	if err != nil {
		return types.SourceSet{}, eris.Wrapf(err, "failed to scan %s", srcDir)
	}

	sort.Strings(set.Generic)
	sort.Strings(set.Linux)
	sort.Strings(set.Windows)
	return set, nil
}

// resolvesToDir reports whether info, as returned by an lstat, is a
// directory or a symlink to one. Dangling links are not directories.
func resolvesToDir(fs afero.Fs, path string, info os.FileInfo) (bool, error) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.IsDir(), nil
	}
	target, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, eris.Wrapf(err, "could not resolve %s", path)
	}
	return target.IsDir(), nil
}

// extension returns the text after the last dot of name, or the whole name
// when it has no dot.
func extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
