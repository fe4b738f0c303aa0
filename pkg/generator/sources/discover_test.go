package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultExts = []string{"c", "cpp", "cc"}

func writeFiles(t *testing.T, fs afero.Fs, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte("// "+f), 0644))
	}
}

func TestListModules(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"system", "filesystem", "mpl", ".git", "config.v2"} {
		require.NoError(t, fs.MkdirAll(filepath.Join("/boost/libs", dir), 0755))
	}
	writeFiles(t, fs, "/boost/libs", "index.html", "Jamfile")

	modules, err := ListModules(fs, "/boost")
	require.NoError(t, err)
	assert.Equal(t, []string{"filesystem", "mpl", "system"}, modules)
}

func TestListModulesFollowsLinks(t *testing.T) {
	fs := afero.NewOsFs()
	root := t.TempDir()
	writeFiles(t, fs, root, "checkout/system/src/error_code.cpp", "libs/filesystem/src/path.cpp", "libs/README")

	libs := filepath.Join(root, "libs")
	require.NoError(t, os.Symlink(filepath.Join(root, "checkout", "system"), filepath.Join(libs, "system")))
	require.NoError(t, os.Symlink(filepath.Join(root, "libs", "README"), filepath.Join(libs, "notes")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(libs, "dangling")))

	modules, err := ListModules(fs, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"filesystem", "system"}, modules)
}

func TestListModulesMissingRoot(t *testing.T) {
	_, err := ListModules(afero.NewMemMapFs(), "/nowhere")
	assert.Error(t, err)
}

func TestListModulesEmptyLibs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/boost/libs", 0755))

	modules, err := ListModules(fs, "/boost")
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestClassifySources(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/boost/libs/filesystem"
	writeFiles(t, fs, root,
		"src/path.cpp",
		"src/operations.cpp",
		"src/codecvt.c",
		"src/windows_file_codecvt.cpp",
		"src/windows/handle.cc",
		"src/posix/api.cpp",
		"src/detail/linux_stat.cpp",
		"src/windows_posix_shim.cpp",
		"src/readme.txt",
		"src/path.hpp",
		"include/boost/filesystem.cpp",
	)

	set, err := ClassifySources(fs, root, defaultExts)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/codecvt.c", "src/operations.cpp", "src/path.cpp"}, set.Generic)
	assert.Equal(t, []string{"src/detail/linux_stat.cpp", "src/posix/api.cpp"}, set.Linux)
	assert.Equal(t, []string{"src/windows/handle.cc", "src/windows_file_codecvt.cpp", "src/windows_posix_shim.cpp"}, set.Windows)
}

func TestClassifySourcesNoSrcDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/boost/libs/alpha", "include/alpha.hpp")

	set, err := ClassifySources(fs, "/boost/libs/alpha", defaultExts)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestClassifySourcesSrcIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/boost/libs/alpha", "src")

	set, err := ClassifySources(fs, "/boost/libs/alpha", defaultExts)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestClassifySourcesCustomExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/lib/libs/beta"
	writeFiles(t, fs, root, "src/a.cxx", "src/b.cpp", "src/c.S")

	set, err := ClassifySources(fs, root, []string{"cxx", "S"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.cxx", "src/c.S"}, set.Generic)
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"path.cpp", "cpp"},
		{"archive.tar.gz", "gz"},
		{"cpp", "cpp"},
		{".cc", "cc"},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extension(tt.name), tt.name)
	}
}

func TestClassifySourcesLinkedSrcDir(t *testing.T) {
	fs := afero.NewOsFs()
	root := t.TempDir()
	writeFiles(t, fs, root,
		"shared/path.cpp",
		"shared/windows/handle.cpp",
		"shared/more/extra.cpp",
		"libs/system/include/boost/system.hpp",
	)
	moduleRoot := filepath.Join(root, "libs", "system")
	require.NoError(t, os.Symlink(filepath.Join(root, "shared"), filepath.Join(moduleRoot, "src")))
	// linked directories below src are not descended into
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "more"), filepath.Join(root, "shared", "linked.cpp")))

	set, err := ClassifySources(fs, moduleRoot, defaultExts)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/more/extra.cpp", "src/path.cpp"}, set.Generic)
	assert.Equal(t, []string{"src/windows/handle.cpp"}, set.Windows)
	assert.Empty(t, set.Linux)
}
