package environment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dgexec "github.com/simonhull/devgenesis/internal/exec"
)

// TestHelperProcess fakes "python -m venv <dir>" by creating the venv layout
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	if len(args) == 4 && args[1] == "-m" && args[2] == "venv" {
		bin := filepath.Join(args[3], "bin")
		if err := os.MkdirAll(bin, 0755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, name := range []string{"python", "pip"} {
			_ = os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"), 0755)
		}
		fmt.Println("created with " + args[0])
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "unexpected: %s\n", strings.Join(args, " "))
	os.Exit(2)
}

// mockPython fakes interpreters; names listed in missing are not installed
func mockPython(missing ...string) dgexec.CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		for _, m := range missing {
			if m == name {
				return exec.CommandContext(ctx, "devgenesis-missing-"+name, args...)
			}
		}
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
}

// customProvisioner reuses the Python behavior under another language name
type customProvisioner struct {
	*Python
}

func (customProvisioner) Language() string { return "custom" }

func fakeVenv(t *testing.T, root string, binaries ...string) {
	t.Helper()
	bin := filepath.Join(root, "venv", "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	for _, b := range binaries {
		require.NoError(t, os.WriteFile(filepath.Join(bin, b), []byte("#!/bin/sh\n"), 0755))
	}
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	require.NoError(t, reg.Register(NewPython()))
	assert.Error(t, reg.Register(NewPython()), "duplicate registration")
	assert.Error(t, reg.Register(nil))

	p, ok := reg.Get("Python")
	require.True(t, ok)
	assert.Equal(t, "python", p.Language())
	assert.True(t, reg.Has(" PYTHON "))
	assert.False(t, reg.Has("rust"))
	assert.Equal(t, []string{"python"}, reg.List())
}

func TestDefaultRegistry_IsIndependent(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()

	require.NoError(t, a.Register(customProvisioner{Python: NewPython()}))
	assert.True(t, a.Has("custom"))
	assert.False(t, b.Has("custom"))
}

func TestRegistry_Match(t *testing.T) {
	reg := DefaultRegistry()

	assert.Len(t, reg.Match([]string{"FastAPI", "Python", "python", "Docker"}), 1)
	assert.Empty(t, reg.Match([]string{"React", "Vite"}))
}

func TestPython_Resolve(t *testing.T) {
	root := t.TempDir()
	p := NewPython()
	p.goos = "linux"

	_, ok := p.Resolve(root, "pip")
	assert.False(t, ok, "no venv yet")

	fakeVenv(t, root, "python", "pip", "pip3")

	tests := []struct {
		executable string
		want       string
		ok         bool
	}{
		{"pip", filepath.Join(root, "venv", "bin", "pip"), true},
		{"pip3", filepath.Join(root, "venv", "bin", "pip3"), true},
		{"python", filepath.Join(root, "venv", "bin", "python"), true},
		{"python3", filepath.Join(root, "venv", "bin", "python"), true},
		{"npm", "", false},
		{"pipenv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.executable, func(t *testing.T) {
			got, ok := p.Resolve(root, tt.executable)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPython_ResolveWindowsLayout(t *testing.T) {
	root := t.TempDir()
	scripts := filepath.Join(root, "venv", "Scripts")
	require.NoError(t, os.MkdirAll(scripts, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "pip.exe"), nil, 0755))

	p := NewPython()
	p.goos = "windows"

	got, ok := p.Resolve(root, "pip3")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(scripts, "pip.exe"), got)
}

func TestResolveCommand(t *testing.T) {
	root := t.TempDir()
	p := NewPython()
	p.goos = "linux"
	provisioners := []Provisioner{p}

	argv, env := ResolveCommand(root, provisioners, []string{"pip", "install", "rich"})
	assert.Equal(t, []string{"pip", "install", "rich"}, argv, "no environment, no rewrite")
	assert.Empty(t, env)

	fakeVenv(t, root, "python", "pip")

	argv, env = ResolveCommand(root, provisioners, []string{"pip", "install", "rich"})
	assert.Equal(t, []string{filepath.Join(root, "venv", "bin", "pip"), "install", "rich"}, argv)
	assert.Contains(t, env, "VIRTUAL_ENV="+filepath.Join(root, "venv"))

	argv, _ = ResolveCommand(root, provisioners, []string{"npm", "install"})
	assert.Equal(t, []string{"npm", "install"}, argv)
}

func TestPython_Provision(t *testing.T) {
	root := t.TempDir()
	executor := dgexec.NewExecutor(nil).WithCommandFunc(mockPython())

	require.NoError(t, NewPython().Provision(context.Background(), executor, root))
	assert.FileExists(t, filepath.Join(root, "venv", "bin", "pip"))
}

func TestPython_ProvisionFallsBackToPython3(t *testing.T) {
	root := t.TempDir()
	executor := dgexec.NewExecutor(nil).WithCommandFunc(mockPython("python"))

	require.NoError(t, NewPython().Provision(context.Background(), executor, root))
	assert.DirExists(t, filepath.Join(root, "venv"))
}

func TestPython_ProvisionToolUnavailable(t *testing.T) {
	executor := dgexec.NewExecutor(nil).WithCommandFunc(mockPython("python", "python3"))

	err := NewPython().Provision(context.Background(), executor, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolUnavailable))
}

func TestPython_Relocate(t *testing.T) {
	from := filepath.Join(t.TempDir(), "staging", "app")
	to := t.TempDir()

	bin := filepath.Join(to, "venv", "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))

	oldVenv := filepath.Join(from, "venv")
	script := "#!" + filepath.Join(oldVenv, "bin", "python") + "\nimport pip\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pip"), []byte(script), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "blob"), []byte("x\x00"+oldVenv), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(to, "venv", "pyvenv.cfg"),
		[]byte("command = python -m venv "+oldVenv+"\n"), 0644))

	p := NewPython()
	p.goos = "linux"
	require.NoError(t, p.Relocate(from, to))

	content, err := os.ReadFile(filepath.Join(bin, "pip"))
	require.NoError(t, err)
	assert.Equal(t, "#!"+filepath.Join(to, "venv", "bin", "python")+"\nimport pip\n", string(content))

	info, err := os.Stat(filepath.Join(bin, "pip"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	cfg, err := os.ReadFile(filepath.Join(to, "venv", "pyvenv.cfg"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), filepath.Join(to, "venv"))

	blob, err := os.ReadFile(filepath.Join(bin, "blob"))
	require.NoError(t, err)
	assert.Contains(t, string(blob), oldVenv, "binary files are left alone")
}
