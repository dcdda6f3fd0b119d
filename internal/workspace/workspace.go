// Package workspace stages a project next to its final destination and moves
// it into place in one rename.
//
//	ws, err := workspace.Open(dest)
//	if err != nil {
//	    return err
//	}
//	// ... write into ws.Root() ...
//	if err := ws.Commit(dest); err != nil {
//	    ws.Abort()
//	    return err
//	}
//
// The staging root lives in the destination's parent directory, so it is on
// the same volume and the final move is a rename rather than a copy.
// Until Commit returns, the destination is untouched.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StagingPrefix is the name prefix of every staging root.
const StagingPrefix = ".devgenesis-"

// ErrClosed is returned when a workspace is used after Commit or Abort.
var ErrClosed = errors.New("workspace already committed or aborted")

// Workspace is a staging area owned by a single generation run
type Workspace struct {
	staging string // staging root, sibling of the destination
	root    string // staged project directory inside staging
	closed  bool

	cleanupErr error
}

// Open creates the destination's parent if needed, then a uniquely named
// staging root inside it holding a directory with the destination's name.
func Open(destination string) (*Workspace, error) {
	dest, err := filepath.Abs(destination)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination %s: %w", destination, err)
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", parent, err)
	}

	staging := filepath.Join(parent, StagingPrefix+uuid.NewString())
	if err := os.Mkdir(staging, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", staging, err)
	}

	root := filepath.Join(staging, filepath.Base(dest))
	if err := os.Mkdir(root, 0755); err != nil {
		os.RemoveAll(staging) // Best effort, ignore errors
		return nil, fmt.Errorf("failed to create staging directory %s: %w", root, err)
	}

	return &Workspace{staging: staging, root: root}, nil
}

// Root returns the staged project directory. Everything the run produces goes here.
func (w *Workspace) Root() string {
	return w.root
}

// StagingDir returns the staging root that contains Root.
func (w *Workspace) StagingDir() string {
	return w.staging
}

// Commit moves the staged project to destination and removes the staging root.
//
// An existing destination must be an empty directory. The rename replaces it
// where the platform allows; elsewhere it is removed with os.Remove, which
// refuses to delete anything with content, and recreated if the move still
// fails. If Commit returns an error the destination is as it was and the
// workspace is still open, so the caller should Abort.
func (w *Workspace) Commit(destination string) error {
	if w.closed {
		return ErrClosed
	}

	dest, err := filepath.Abs(destination)
	if err != nil {
		return fmt.Errorf("failed to resolve destination %s: %w", destination, err)
	}

	if err := os.Rename(w.root, dest); err != nil {
		if err := w.replaceEmptyDir(dest, err); err != nil {
			return err
		}
	}

	w.closed = true

	// The project is in place; a leftover empty staging root is only clutter.
	if err := os.RemoveAll(w.staging); err != nil {
		w.cleanupErr = fmt.Errorf("staging directory %s was not removed: %w", w.staging, err)
	}
	return nil
}

// replaceEmptyDir retries a failed rename after removing an empty directory
// at dest, restoring the directory when the retry fails too.
func (w *Workspace) replaceEmptyDir(dest string, renameErr error) error {
	info, err := os.Lstat(dest)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("failed to move project into %s: %w", dest, renameErr)
	}

	if err := os.Remove(dest); err != nil {
		return fmt.Errorf("failed to clear destination %s: %w", dest, err)
	}
	if err := os.Rename(w.root, dest); err != nil {
		if mkErr := os.Mkdir(dest, info.Mode().Perm()); mkErr != nil {
			return fmt.Errorf("failed to move project into %s: %w (destination not restored: %v)", dest, err, mkErr)
		}
		return fmt.Errorf("failed to move project into %s: %w", dest, err)
	}
	return nil
}

// CleanupErr reports a staging root that could not be removed after a
// successful Commit. The project itself is complete when this is non-nil.
func (w *Workspace) CleanupErr() error {
	return w.cleanupErr
}

// Abort deletes the staging root and everything in it. It is safe to call
// more than once and after a failed Commit. The returned error is for
// reporting only; nothing further can be done with the workspace.
func (w *Workspace) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := os.RemoveAll(w.staging); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", w.staging, err)
	}
	return nil
}
