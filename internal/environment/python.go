package environment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/simonhull/devgenesis/internal/exec"
)

// maxRelocateSize skips files too large to be scripts or config.
const maxRelocateSize = 1 << 20

// Python provisions a venv directory with the standard library venv module.
type Python struct {
	dir          string
	interpreters []string
	goos         string
}

// NewPython returns the Python provisioner using "venv" as the environment directory.
func NewPython() *Python {
	return &Python{
		dir:          "venv",
		interpreters: []string{"python", "python3"},
		goos:         runtime.GOOS,
	}
}

func (p *Python) Language() string { return "python" }

func (p *Python) Dir() string { return p.dir }

func (p *Python) Command() string {
	return "python -m venv " + p.dir
}

// Provision runs "<interpreter> -m venv venv" in root, trying each known
// interpreter name in turn. If none is installed the error wraps ErrToolUnavailable.
func (p *Python) Provision(ctx context.Context, executor *exec.Executor, root string) error {
	run := executor.WithDir(root)

	for _, interpreter := range p.interpreters {
		_, err := run.Run(ctx, interpreter, "-m", "venv", p.dir)
		if err == nil {
			return nil
		}

		var notFound *exec.NotFoundError
		if errors.As(err, &notFound) {
			continue
		}
		return fmt.Errorf("failed to create virtual environment: %w", err)
	}

	return fmt.Errorf("%w: no Python interpreter found (tried %s)",
		ErrToolUnavailable, strings.Join(p.interpreters, ", "))
}

// binDir is venv/bin, or venv\Scripts on Windows
func (p *Python) binDir(root string) string {
	if p.goos == "windows" {
		return filepath.Join(root, p.dir, "Scripts")
	}
	return filepath.Join(root, p.dir, "bin")
}

// Resolve maps python, python3, pip and pip3 to the venv's binaries.
// A versioned name falls back to the unversioned binary when the venv
// does not ship it (Windows venvs only have python.exe).
func (p *Python) Resolve(root, executable string) (string, bool) {
	var candidates []string
	switch executable {
	case "python", "pip":
		candidates = []string{executable}
	case "python3":
		candidates = []string{"python3", "python"}
	case "pip3":
		candidates = []string{"pip3", "pip"}
	default:
		return "", false
	}

	bin := p.binDir(root)
	for _, name := range candidates {
		if p.goos == "windows" {
			name += ".exe"
		}
		path := filepath.Join(bin, name)
		if exists(path) {
			return path, true
		}
	}
	return "", false
}

// Env activates the venv the way its activate script would.
func (p *Python) Env(root string) []string {
	return []string{
		"VIRTUAL_ENV=" + filepath.Join(root, p.dir),
		"PATH=" + p.binDir(root) + string(os.PathListSeparator) + os.Getenv("PATH"),
	}
}

// Relocate rewrites the absolute project path embedded in the venv's scripts
// and pyvenv.cfg after the project moved from one root to another.
func (p *Python) Relocate(from, to string) error {
	venv := filepath.Join(to, p.dir)
	if !exists(venv) {
		return nil
	}

	oldPrefix := []byte(filepath.Join(from, p.dir))
	newPrefix := []byte(venv)

	targets := []string{filepath.Join(venv, "pyvenv.cfg")}
	err := filepath.WalkDir(p.binDir(to), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			targets = append(targets, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", p.binDir(to), err)
	}

	for _, path := range targets {
		if err := rewriteFile(path, oldPrefix, newPrefix); err != nil {
			return err
		}
	}
	return nil
}

// rewriteFile replaces old with new in a small text file, keeping its mode.
func rewriteFile(path string, old, new []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() > maxRelocateSize {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if bytes.IndexByte(content, 0) >= 0 || !bytes.Contains(content, old) {
		return nil
	}

	updated := bytes.ReplaceAll(content, old, new)
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}
