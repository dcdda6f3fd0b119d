package generator

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/simonhull/devgenesis/internal/render"
)

// plannedFile is a file with its final path and content
type plannedFile struct {
	Path    string
	Content string
}

// layout is everything a request writes under the project root.
// Preview and Generate both build it, so they always agree.
type layout struct {
	Dirs  []string // Every directory created, parents first, slash-separated
	Files []plannedFile
}

// buildLayout renders every path and template body of req. Directories
// implied by nested paths are included. A file declared twice keeps its
// first position and its last content. A path used both as a file and as a
// directory is rejected.
func buildLayout(req Request, renderer *render.Renderer) (*layout, error) {
	l := &layout{}
	seenDirs := make(map[string]bool)
	fileIndex := make(map[string]int)

	addDir := func(dir string) {
		for _, d := range ancestors(dir) {
			if !seenDirs[d] {
				seenDirs[d] = true
				l.Dirs = append(l.Dirs, d)
			}
		}
	}

	for _, entry := range req.Structure {
		rendered, err := renderer.Render(entry, entry)
		if err != nil {
			return nil, &Error{Kind: KindTemplate, Op: "render directory " + entry, Err: err}
		}
		dir, err := cleanRelPath(rendered)
		if err != nil {
			return nil, &Error{Kind: KindFilesystem, Op: "directory " + entry, Err: err}
		}
		if dir == "." {
			continue
		}
		addDir(dir)
	}

	for _, spec := range req.Files {
		rendered, err := renderer.Render(spec.Path, spec.Path)
		if err != nil {
			return nil, &Error{Kind: KindTemplate, Op: "render path " + spec.Path, Err: err}
		}
		file, err := cleanRelPath(rendered)
		if err != nil {
			return nil, &Error{Kind: KindFilesystem, Op: "file " + spec.Path, Err: err}
		}
		if file == "." {
			return nil, &Error{Kind: KindFilesystem, Op: "file " + spec.Path, Err: errors.New("path names the project root")}
		}

		content := spec.Content
		if spec.IsTemplate {
			content, err = renderer.Render(file, spec.Content)
			if err != nil {
				return nil, &Error{Kind: KindTemplate, Op: "render " + file, Err: err}
			}
		}

		if dir := path.Dir(file); dir != "." {
			addDir(dir)
		}
		if i, ok := fileIndex[file]; ok {
			l.Files[i].Content = content
			continue
		}
		fileIndex[file] = len(l.Files)
		l.Files = append(l.Files, plannedFile{Path: file, Content: content})
	}

	for _, f := range l.Files {
		if seenDirs[f.Path] {
			return nil, &Error{Kind: KindFilesystem, Op: "file " + f.Path, Err: errors.New("path is also a directory")}
		}
	}

	return l, nil
}

// cleanRelPath normalizes a rendered path and rejects anything that would
// land outside the project root.
func cleanRelPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" {
		return "", errors.New("path is empty")
	}
	if path.IsAbs(p) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", fmt.Errorf("path %q is absolute", p)
	}

	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path %q escapes the project root", p)
	}
	return cleaned, nil
}

// ancestors returns dir and its parents, outermost first: "a/b" -> ["a", "a/b"]
func ancestors(dir string) []string {
	parts := strings.Split(dir, "/")
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, strings.Join(parts[:i+1], "/"))
	}
	return out
}
