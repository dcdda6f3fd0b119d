// Package vcs initializes a git repository for a freshly generated project.
//
// It uses go-git, so no git executable is required.
package vcs

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitialCommitMessage is the message of the first commit in every generated repository.
const InitialCommitMessage = "Initial commit from DevGenesis"

// fallbackEmail is used when no git identity is configured.
const fallbackEmail = "devgenesis@localhost"

// Signature identifies the author of the initial commit
type Signature struct {
	Name  string
	Email string
}

// DefaultSignature returns the user's global git identity, or name with a
// placeholder address when none is configured.
func DefaultSignature(name string) Signature {
	cfg, err := config.LoadConfig(config.GlobalScope)
	if err == nil && cfg.User.Name != "" && cfg.User.Email != "" {
		return Signature{Name: cfg.User.Name, Email: cfg.User.Email}
	}
	return Signature{Name: name, Email: fallbackEmail}
}

// Init creates a repository in root, stages every file and records the
// initial commit. It returns the commit hash.
func Init(root string, author Signature, when time.Time) (string, error) {
	repo, err := git.PlainInit(root, false)
	if err != nil {
		return "", fmt.Errorf("git init failed: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("git add failed: %w", err)
	}

	hash, err := wt.Commit(InitialCommitMessage, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  when,
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("git commit failed: %w", err)
	}

	return hash.String(), nil
}
