// File: cpp-workspace-gen/pkg/externals/fetch.go
package externals

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"cpp-workspace-gen/pkg/git"
	"cpp-workspace-gen/pkg/logging"
	"cpp-workspace-gen/pkg/types"
	"cpp-workspace-gen/pkg/utils"
)

// Git is the subset of git operations the fetcher needs.
type Git interface {
	Clone(url, branch, dest string, progress io.Writer) error
	Pull(repoPath, branch string, progress io.Writer) error
	CurrentRef(repoPath string) (string, error)
}

// Fetcher materialises the externals of a workspace as git checkouts below
// Dir, laid out the same way jbuild expects them.
type Fetcher struct {
	Fs       afero.Fs
	Dir      string
	Update   bool
	DryRun   bool
	Progress io.Writer
	Git      Git
}

// Result says what happened to a single external.
type Result struct {
	Path   string
	Dir    string
	Action string
}

const (
	ActionCloned  = "cloned"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)

// Fetch clones missing externals and, with Update set, pulls existing ones.
// Externals are processed in path order; the first failure stops the run.
func (f *Fetcher) Fetch(ctx context.Context, ws *types.Workspace) ([]Result, error) {
	log := logging.From(ctx)
	if f.Git == nil {
		f.Git = git.CLI{}
	}

	paths := make([]string, 0, len(ws.External))
	for path := range ws.External {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, eris.Wrap(err, "fetch cancelled")
		}

		repo := ws.External[path]
		if strings.HasPrefix(repo.URL, "-") || strings.HasPrefix(repo.Branch, "-") {
			return results, eris.Errorf("external %s: url and branch must not start with '-'", path)
		}
		dir, err := checkoutDir(f.Dir, path)
		if err != nil {
			return results, err
		}
		result := Result{Path: path, Dir: dir}

		exists, err := afero.DirExists(f.Fs, dir)
		if err != nil {
			return results, eris.Wrapf(err, "could not check %s", dir)
		}

		switch {
		case !exists:
			result.Action = ActionCloned
			log.Info().Msgf("Cloning %s@%s into %s", repo.URL, repo.Branch, dir)
			if !f.DryRun {
				if err := f.Fs.MkdirAll(filepath.Dir(dir), os.ModePerm); err != nil {
					return results, eris.Wrapf(err, "could not create %s", filepath.Dir(dir))
				}
				if err := f.Git.Clone(repo.URL, repo.Branch, dir, f.Progress); err != nil {
					return results, eris.Wrapf(err, "failed to clone %s", path)
				}
			}
		case f.Update:
			result.Action = ActionUpdated
			log.Info().Msgf("Updating %s from %s", dir, repo.Branch)
			if !f.DryRun {
				if err := f.Git.Pull(dir, repo.Branch, f.Progress); err != nil {
					return results, eris.Wrapf(err, "failed to update %s", path)
				}
			}
		default:
			result.Action = ActionSkipped
			log.Debug().Msgf("%s already checked out", dir)
			if f.DryRun {
				break
			}
			ref, err := f.Git.CurrentRef(dir)
			if err != nil {
				log.Warn().Err(err).Msgf("Could not determine the checked out ref of %s", dir)
			} else if ref != repo.Branch {
				log.Warn().Msgf("%s is at %s, expected %s; run with --update", dir, ref, repo.Branch)
			}
		}

		results = append(results, result)
	}
	return results, nil
}

// checkoutDir returns where the external at path is checked out. Paths that
// would land outside root, or on root itself, are rejected.
func checkoutDir(root, path string) (string, error) {
	dir := filepath.Join(root, filepath.FromSlash(utils.CheckoutDir(path)))
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", eris.Wrapf(err, "external %s", path)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", eris.Errorf("external %s does not name a directory below %s", path, root)
	}
	return dir, nil
}
