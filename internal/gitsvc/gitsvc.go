// Package gitsvc versions the task files with go-git. The todo directory
// may itself be the repository or live anywhere inside one.
package gitsvc

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/gofrs/flock"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
)

// DefaultRemote is the remote sync talks to.
const DefaultRemote = "origin"

// syncLockName serializes concurrent syncs against the git index. The task
// files themselves are never locked.
const syncLockName = ".sync.lock"

// Fallback commit identity when the repository has no user configured.
const (
	fallbackName  = "todo"
	fallbackEmail = "todo@localhost"
)

// Service wraps the repository that contains the todo directory.
type Service struct {
	dir  string
	repo *git.Repository
}

// Open finds the repository containing dir, walking up parent directories
// the way git itself does.
func Open(dir string) (*Service, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, clierr.Newf(clierr.NotARepository, "not a git repository: %s", dir)
		}
		return nil, clierr.Wrap(clierr.GitError, err, "opening repository at "+dir)
	}
	return &Service{dir: dir, repo: repo}, nil
}

// Init creates a repository in dir. If dir already sits inside a repository
// that one is reused and created reports false.
func Init(dir string) (*Service, bool, error) {
	if svc, err := Open(dir); err == nil {
		return svc, false, nil
	}
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, false, clierr.Wrap(clierr.GitError, err, "initializing repository in "+dir)
	}
	return &Service{dir: dir, repo: repo}, true, nil
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// Dir returns the todo directory the service was opened with.
func (s *Service) Dir() string {
	return s.dir
}

// AddRemote configures name to point at url, replacing an existing remote
// of the same name. It reports whether an existing remote was replaced.
func (s *Service) AddRemote(name, url string) (bool, error) {
	_, err := s.repo.Remote(name)
	switch {
	case err == nil:
		if err := s.repo.DeleteRemote(name); err != nil {
			return false, clierr.Wrap(clierr.GitError, err, "replacing remote "+name)
		}
		if err := s.createRemote(name, url); err != nil {
			return false, err
		}
		return true, nil
	case errors.Is(err, git.ErrRemoteNotFound):
		if err := s.createRemote(name, url); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, clierr.Wrap(clierr.GitError, err, "inspecting remote "+name)
	}
}

func (s *Service) createRemote(name, url string) error {
	_, err := s.repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		return clierr.Wrap(clierr.GitError, err, "adding remote "+name)
	}
	return nil
}

// HasRemote reports whether a remote with the given name is configured.
func (s *Service) HasRemote(name string) bool {
	_, err := s.repo.Remote(name)
	return err == nil
}

// CommitPaths stages the given files and commits them. Paths that did not
// change leave the index untouched; when nothing ends up staged no commit
// is created and committed reports false.
func (s *Service) CommitPaths(paths []string, msg string) (bool, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return false, clierr.Wrap(clierr.GitError, err, "opening worktree")
	}
	root := wt.Filesystem.Root()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		// The done file does not exist until the first archive; staging a
		// path that is neither on disk nor in the index is an error.
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		rel, err := relToRoot(root, p)
		if err != nil {
			return false, err
		}
		if _, err := wt.Add(rel); err != nil {
			return false, clierr.Wrap(clierr.GitError, err, "staging "+rel)
		}
		rels = append(rels, rel)
	}
	status, err := wt.Status()
	if err != nil {
		return false, clierr.Wrap(clierr.GitError, err, "reading worktree status")
	}
	if !anyStaged(status, rels) {
		return false, nil
	}
	sig := s.signature()
	if _, err := wt.Commit(msg, &git.CommitOptions{Author: &sig}); err != nil {
		return false, clierr.Wrap(clierr.GitError, err, "committing")
	}
	return true, nil
}

// Pull fast-forwards the current branch from the remote. An up-to-date
// branch and an empty remote both count as success.
func (s *Service) Pull(remote string) error {
	wt, err := s.repo.Worktree()
	if err != nil {
		return clierr.Wrap(clierr.GitError, err, "opening worktree")
	}
	err = wt.Pull(&git.PullOptions{RemoteName: remote})
	switch {
	case err == nil,
		errors.Is(err, git.NoErrAlreadyUpToDate),
		errors.Is(err, transport.ErrEmptyRemoteRepository):
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return clierr.Newf(clierr.RemoteNotFound, "remote %q is not configured", remote)
	}
	return clierr.Wrap(clierr.GitError, err, "pulling from "+remote)
}

// Push publishes the current branch. An up-to-date remote counts as success.
func (s *Service) Push(remote string) error {
	err := s.repo.Push(&git.PushOptions{RemoteName: remote})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return clierr.Newf(clierr.RemoteNotFound, "remote %q is not configured", remote)
	}
	return clierr.Wrap(clierr.GitError, err, "pushing to "+remote)
}

// Sync commits the given files, then pulls and pushes when the default
// remote is configured. A file lock in the todo directory keeps two syncs
// from racing the git index.
func (s *Service) Sync(paths []string, msg string) (bool, error) {
	lock := flock.New(filepath.Join(s.dir, syncLockName))
	if err := lock.Lock(); err != nil {
		return false, clierr.Wrap(clierr.GitError, err, "acquiring sync lock")
	}
	defer func() { _ = lock.Unlock() }()

	committed, err := s.CommitPaths(paths, msg)
	if err != nil {
		return false, err
	}
	if !s.HasRemote(DefaultRemote) {
		return committed, nil
	}
	if err := s.Pull(DefaultRemote); err != nil {
		return committed, err
	}
	if err := s.Push(DefaultRemote); err != nil {
		return committed, err
	}
	return committed, nil
}

// signature builds the commit identity from the repository configuration,
// falling back to a generic identity when none is set.
func (s *Service) signature() object.Signature {
	name, email := fallbackName, fallbackEmail
	if cfg, err := s.repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return object.Signature{Name: name, Email: email, When: time.Now()}
}

// relToRoot rewrites p relative to the worktree root, in the slash form
// the git index stores.
func relToRoot(root, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", clierr.Wrap(clierr.GitError, err, "resolving "+p)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", clierr.Wrap(clierr.GitError, err, "resolving "+p)
	}
	return filepath.ToSlash(rel), nil
}

func anyStaged(status git.Status, rels []string) bool {
	for _, rel := range rels {
		fs := status.File(rel)
		if fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			return true
		}
	}
	return false
}
