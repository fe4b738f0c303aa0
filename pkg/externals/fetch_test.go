package externals

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpp-workspace-gen/pkg/types"
)

type fakeGit struct {
	fs     afero.Fs
	clones []string
	pulls  []string
	refs   map[string]string
	fail   bool
}

func (g *fakeGit) Clone(url, branch, dest string, progress io.Writer) error {
	if g.fail {
		return errors.New("clone failed")
	}
	g.clones = append(g.clones, url+"@"+branch+" -> "+dest)
	return g.fs.MkdirAll(dest, 0755)
}

func (g *fakeGit) Pull(repoPath, branch string, progress io.Writer) error {
	g.pulls = append(g.pulls, repoPath+"@"+branch)
	return nil
}

func (g *fakeGit) CurrentRef(repoPath string) (string, error) {
	return g.refs[repoPath], nil
}

func workspace() *types.Workspace {
	return &types.Workspace{External: map[string]types.ExternalRepo{
		"//third_party/boost/system": {URL: "https://github.com/boostorg/system", Branch: "boost-1.62.0"},
		"//third_party/boost/config": {URL: "https://github.com/boostorg/config", Branch: "boost-1.62.0"},
	}}
}

func TestFetchClonesMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := &fakeGit{fs: fs}
	f := &Fetcher{Fs: fs, Dir: "/ext", Git: g}

	results, err := f.Fetch(context.Background(), workspace())
	require.NoError(t, err)

	configDir := filepath.Join("/ext", "third_party", "boost", "config")
	systemDir := filepath.Join("/ext", "third_party", "boost", "system")
	assert.Equal(t, []Result{
		{Path: "//third_party/boost/config", Dir: configDir, Action: ActionCloned},
		{Path: "//third_party/boost/system", Dir: systemDir, Action: ActionCloned},
	}, results)
	assert.Equal(t, []string{
		"https://github.com/boostorg/config@boost-1.62.0 -> " + configDir,
		"https://github.com/boostorg/system@boost-1.62.0 -> " + systemDir,
	}, g.clones)
}

func TestFetchSkipsAndUpdates(t *testing.T) {
	fs := afero.NewMemMapFs()
	systemDir := filepath.Join("/ext", "third_party", "boost", "system")
	require.NoError(t, fs.MkdirAll(systemDir, 0755))

	g := &fakeGit{fs: fs, refs: map[string]string{systemDir: "boost-1.62.0"}}
	f := &Fetcher{Fs: fs, Dir: "/ext", Git: g}

	results, err := f.Fetch(context.Background(), workspace())
	require.NoError(t, err)
	assert.Equal(t, ActionCloned, results[0].Action)
	assert.Equal(t, ActionSkipped, results[1].Action)
	assert.Empty(t, g.pulls)

	f.Update = true
	results, err = f.Fetch(context.Background(), workspace())
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, results[0].Action)
	assert.Equal(t, ActionUpdated, results[1].Action)
	assert.Len(t, g.pulls, 2)
}

func TestFetchDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := &fakeGit{fs: fs}
	f := &Fetcher{Fs: fs, Dir: "/ext", Git: g, DryRun: true}

	results, err := f.Fetch(context.Background(), workspace())
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Empty(t, g.clones)

	exists, err := afero.DirExists(fs, "/ext")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchStopsOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := &Fetcher{Fs: fs, Dir: "/ext", Git: &fakeGit{fs: fs, fail: true}}

	results, err := f.Fetch(context.Background(), workspace())
	assert.Error(t, err)
	assert.Empty(t, results)
}

func TestFetchCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Fetcher{Fs: fs, Dir: "/ext", Git: &fakeGit{fs: fs}}).Fetch(ctx, workspace())
	assert.Error(t, err)
}

func TestFetchRejectsUnsafeExternals(t *testing.T) {
	tests := []struct {
		name string
		path string
		repo types.ExternalRepo
	}{
		{"escapes dir", "//../../etc", types.ExternalRepo{URL: "https://github.com/boostorg/system", Branch: "master"}},
		{"dir itself", "//", types.ExternalRepo{URL: "https://github.com/boostorg/system", Branch: "master"}},
		{"url option", "//third_party/x", types.ExternalRepo{URL: "--upload-pack=touch /tmp/owned", Branch: "master"}},
		{"branch option", "//third_party/x", types.ExternalRepo{URL: "https://github.com/boostorg/system", Branch: "-q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			g := &fakeGit{fs: fs}
			f := &Fetcher{Fs: fs, Dir: "/ext", Git: g}
			ws := &types.Workspace{External: map[string]types.ExternalRepo{tt.path: tt.repo}}

			_, err := f.Fetch(context.Background(), ws)
			assert.Error(t, err)
			assert.Empty(t, g.clones)
		})
	}
}

func TestCheckoutDir(t *testing.T) {
	dir, err := checkoutDir("external", "//third_party/boost/system")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("external", "third_party", "boost", "system"), dir)

	// dot-dot inside the path is fine as long as it stays below the root
	dir, err = checkoutDir("external", "//third_party/../boost")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("external", "boost"), dir)

	_, err = checkoutDir("external", "//..")
	assert.Error(t, err)
	_, err = checkoutDir("/ext", "//../../etc")
	assert.Error(t, err)
}
