// File: cpp-workspace-gen/pkg/git/git.go
package git

import (
	"io"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// runCommand executes a git command. Swapped out in tests.
var runCommand = runGitCommand

// runGitCommand executes a git command. If progress is not nil, it streams
// stdout and stderr to it. Otherwise, it returns the combined output.
func runGitCommand(dir string, progress io.Writer, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	if progress != nil {
		cmd.Stdout = progress
		cmd.Stderr = progress
		if err := cmd.Run(); err != nil {
			return "", eris.Wrapf(err, "git %s failed", strings.Join(args, " "))
		}
		return "", nil
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", eris.Wrapf(err, "git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// Clone clones branch (or tag) of url into dest, including submodules.
func Clone(url, branch, dest string, progress io.Writer) error {
	_, err := runCommand("", progress, "clone", "--recurse-submodules", "-b", branch, "--", url, dest)
	return err
}

// Pull updates the checkout at repoPath from origin's branch.
func Pull(repoPath, branch string, progress io.Writer) error {
	_, err := runCommand(repoPath, progress, "pull", "origin", branch)
	return err
}

// CurrentRef returns the branch name checked out at repoPath, or the tag or
// commit for a detached head.
func CurrentRef(repoPath string) (string, error) {
	ref, err := runCommand(repoPath, nil, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if ref != "HEAD" {
		return ref, nil
	}
	tag, err := runCommand(repoPath, nil, "describe", "--tags", "--exact-match")
	if err == nil && tag != "" {
		return tag, nil
	}
	return runCommand(repoPath, nil, "rev-parse", "HEAD")
}

// CLI runs the git binary found on PATH.
type CLI struct{}

func (CLI) Clone(url, branch, dest string, progress io.Writer) error {
	return Clone(url, branch, dest, progress)
}

func (CLI) Pull(repoPath, branch string, progress io.Writer) error {
	return Pull(repoPath, branch, progress)
}

func (CLI) CurrentRef(repoPath string) (string, error) {
	return CurrentRef(repoPath)
}
