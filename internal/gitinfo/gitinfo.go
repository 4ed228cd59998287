// Package gitinfo answers history questions about documentation pages.
package gitinfo

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repo wraps the git repository enclosing a project, if any.
type Repo struct {
	projectRoot string
	repoRoot    string
	repo        *git.Repository

	mu    sync.Mutex
	cache map[string]lastUpdated
}

type lastUpdated struct {
	when time.Time
	ok   bool
}

// Open finds the repository containing projectRoot, walking up parent
// directories. A project outside any repository yields a Repo whose
// lookups all report ok=false.
func Open(projectRoot string) (*Repo, error) {
	root, err := resolve(projectRoot)
	if err != nil {
		return nil, err
	}
	r := &Repo{projectRoot: root, cache: map[string]lastUpdated{}}

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to date.
		return r, nil //nolint:nilerr
	}
	repoRoot, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	r.repo = repo
	r.repoRoot = repoRoot
	return r, nil
}

// IsRepository reports whether the project lives in a git worktree.
func (r *Repo) IsRepository() bool { return r.repo != nil }

// LastUpdated returns the committer time of the latest commit reachable from
// HEAD that touched relPath (relative to the project root). ok is false when
// there is no repository, no HEAD yet, or the file was never committed.
func (r *Repo) LastUpdated(relPath string) (time.Time, bool, error) {
	if r.repo == nil {
		return time.Time{}, false, nil
	}
	repoPath, err := filepath.Rel(r.repoRoot, filepath.Join(r.projectRoot, relPath))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("relative path for %s: %w", relPath, err)
	}
	repoPath = filepath.ToSlash(repoPath)

	r.mu.Lock()
	defer r.mu.Unlock()
	if hit, ok := r.cache[repoPath]; ok {
		return hit.when, hit.ok, nil
	}

	when, ok, err := r.lookup(repoPath)
	if err != nil {
		return time.Time{}, false, err
	}
	r.cache[repoPath] = lastUpdated{when: when, ok: ok}
	return when, ok, nil
}

func (r *Repo) lookup(repoPath string) (time.Time, bool, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), FileName: &repoPath})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("log %s: %w", repoPath, err)
	}
	defer iter.Close()

	c, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("log %s: %w", repoPath, err)
	}
	return c.Committer.When, true, nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("absolute path for %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
