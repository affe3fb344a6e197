// Package vcs commits the artifacts of a run when they live in a git worktree.
package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned when the files are not inside a git worktree.
var ErrNotRepository = errors.New("not a git repository")

// Author identifies the commit author.
type Author struct {
	Name  string
	Email string
}

// Commit stages files and commits them with msg.
//
// The repository is found from the directory of the first file. Files that do
// not exist or lie outside the worktree are ignored. It returns the commit
// hash, or "" when none of the files changed.
func Commit(files []string, msg string, author Author) (string, error) {
	if len(files) == 0 {
		return "", nil
	}
	start, err := filepath.Abs(filepath.Dir(files[0]))
	if err != nil {
		return "", err
	}
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return "", ErrNotRepository
	}
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	w, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	root, err := filepath.EvalSymlinks(w.Filesystem.Root())
	if err != nil {
		return "", err
	}

	var staged []string
	for _, f := range files {
		rel, ok := relTo(root, f)
		if !ok {
			continue
		}
		if _, err := w.Add(rel); err != nil {
			return "", fmt.Errorf("failed to stage %s: %w", rel, err)
		}
		staged = append(staged, rel)
	}

	status, err := w.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree status: %w", err)
	}
	changed := false
	for _, rel := range staged {
		if fs, ok := status[rel]; ok && fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			changed = true
			break
		}
	}
	if !changed {
		return "", nil
	}

	hash, err := w.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// relTo returns f relative to root in slash form, if f exists inside root.
func relTo(root, f string) (string, bool) {
	abs, err := filepath.Abs(f)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(abs); err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
