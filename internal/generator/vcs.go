package generator

import (
	"context"
	"fmt"

	"github.com/simonhull/devgenesis/internal/vcs"
)

// initRepository creates a git repository in the workspace and commits everything in it
func initRepository(_ context.Context, r *run) error {
	if !r.req.InitVCS {
		return nil
	}

	r.emit(SeverityInfo, "Initializing git repository")

	sig := vcs.DefaultSignature(r.renderer.Context().Author)
	hash, err := vcs.Init(r.root, sig, r.now)
	if err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	r.log.Debug().Str("commit", hash).Msg("created initial commit")
	r.emit(SeveritySuccess, "Initialized git repository with initial commit")
	return nil
}
