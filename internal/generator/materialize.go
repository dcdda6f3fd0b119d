package generator

import (
	"context"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// materialize creates the rendered directories and files in the workspace
func materialize(_ context.Context, r *run) error {
	l, err := buildLayout(r.req, r.renderer)
	if err != nil {
		return err
	}

	for _, dir := range l.Dirs {
		if err := os.MkdirAll(filepath.Join(r.root, filepath.FromSlash(dir)), dirPerm); err != nil {
			return &Error{Kind: KindFilesystem, Op: "create " + dir, Err: err}
		}
		r.emit(SeveritySuccess, "Created directory: %s", dir)
	}

	for _, f := range l.Files {
		target := filepath.Join(r.root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
			return &Error{Kind: KindFilesystem, Op: "create " + filepath.Dir(f.Path), Err: err}
		}
		if err := os.WriteFile(target, []byte(f.Content), filePerm); err != nil {
			return &Error{Kind: KindFilesystem, Op: "write " + f.Path, Err: err}
		}
		r.emit(SeveritySuccess, "Created file: %s", f.Path)
	}

	r.log.Debug().Int("dirs", len(l.Dirs)).Int("files", len(l.Files)).Msg("materialized layout")
	return nil
}
