package driver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Revision identifies the commit a source file was built from.
type Revision struct {
	Hash  string
	Dirty bool
}

func (r Revision) String() string {
	if r.Hash == "" {
		return "unversioned"
	}
	short := r.Hash
	if len(short) > 12 {
		short = short[:12]
	}
	if r.Dirty {
		return short + "-dirty"
	}
	return short
}

// DescribeRevision reports the HEAD commit of the repository containing
// path. Files outside any repository get a zero Revision and no error.
func DescribeRevision(path string) (Revision, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Revision{}, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Revision{}, nil
		}
		return Revision{}, fmt.Errorf("driver: open repository for %s: %w", path, err)
	}
	head, err := repo.Head()
	if err != nil {
		// A repository without commits has no HEAD yet.
		return Revision{}, nil
	}
	rev := Revision{Hash: head.Hash().String()}
	worktree, err := repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := worktree.Status()
	if err != nil {
		return rev, fmt.Errorf("driver: worktree status: %w", err)
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}

// BuildHeader returns the comment lines stamped on generated assembly.
func BuildHeader(program *Program) []string {
	lines := []string{"generated by lx from " + filepath.Base(program.Path)}
	if rev, err := DescribeRevision(program.Path); err == nil && rev.Hash != "" {
		lines = append(lines, "revision "+rev.String())
	}
	return lines
}
