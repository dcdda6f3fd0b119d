package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/simonhull/devgenesis/internal/fsutil"
)

// Validate checks req and reports every problem found, in check order.
// It never mutates the filesystem.
func Validate(req Request, opts Options) (bool, []string) {
	err := validate(req, opts.withDefaults())
	if err == nil {
		return true, nil
	}
	return false, err.Messages()
}

// ValidateRequest is Validate as an error. The returned *Error has
// KindValidation and wraps ValidationErrors.
func ValidateRequest(req Request, opts Options) error {
	if err := validate(req, opts.withDefaults()); err != nil {
		return &Error{Kind: KindValidation, Err: err}
	}
	return nil
}

func validate(req Request, opts Options) ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(req.Name) == "" {
		add("name", "Project name cannot be empty")
	}
	if strings.TrimSpace(req.ProjectType) == "" {
		add("project_type", "Project type must be selected")
	}
	if strings.TrimSpace(req.Path) == "" {
		add("path", "Project path cannot be empty")
	}
	if len(req.Technologies) == 0 {
		add("technologies", "At least one technology must be selected")
	}

	if strings.TrimSpace(req.Path) == "" {
		return errs
	}

	dest, err := filepath.Abs(req.Path)
	if err != nil {
		add("path", "Invalid project path %s: %v", req.Path, err)
		return errs
	}

	parent := filepath.Dir(dest)
	target, ok := checkParent(parent, req.CreateParents, add)
	if ok {
		if err := fsutil.Writable(target); err != nil && !errors.Is(err, fsutil.ErrUnsupported) {
			add("path", "No write permission for %s", target)
		}
		if free, err := fsutil.FreeSpace(target); err == nil && free < opts.MinFreeSpace {
			add("path", "Insufficient disk space on %s: %s available, %s required",
				target, humanize.IBytes(free), humanize.IBytes(opts.MinFreeSpace))
		}
	}

	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			add("path", "Path %s already exists and is not a directory", dest)
		} else if entries, err := os.ReadDir(dest); err != nil {
			add("path", "Cannot read %s: %v", dest, err)
		} else if len(entries) > 0 {
			add("path", "Directory %s already exists and is not empty", dest)
		}
	}

	return errs
}

// checkParent verifies the destination's parent directory. It returns the
// directory whose permissions and free space apply to the new project.
func checkParent(parent string, createParents bool, add func(field, format string, args ...any)) (string, bool) {
	info, err := os.Stat(parent)
	switch {
	case err == nil && !info.IsDir():
		add("path", "Parent path %s is not a directory", parent)
		return "", false
	case err == nil:
		return parent, true
	case !os.IsNotExist(err):
		add("path", "Cannot access %s: %v", parent, err)
		return "", false
	case !createParents:
		add("path", "Parent directory does not exist: %s", parent)
		return "", false
	}

	ancestor, err := nearestDir(parent)
	if err != nil {
		add("path", "Cannot create parent directory %s: %v", parent, err)
		return "", false
	}
	return ancestor, true
}

// nearestDir returns the closest existing ancestor of path
func nearestDir(path string) (string, error) {
	for {
		info, err := os.Stat(path)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", path)
			}
			return path, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		next := filepath.Dir(path)
		if next == path {
			return "", fmt.Errorf("no existing ancestor of %s", path)
		}
		path = next
	}
}
