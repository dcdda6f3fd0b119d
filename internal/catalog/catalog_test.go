package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/devgenesis/internal/generator"
)

const userTemplate = `name: Team API
project_type: api_backend
technologies:
  - name: Go
structure:
  - cmd
files:
  - path: README.md
    content: "# {{ project_name }}"
    is_template: true
commands:
  - go mod tidy
`

func boolPtr(b bool) *bool { return &b }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestList_Builtin(t *testing.T) {
	templates, err := New("", zerolog.Nop()).List()
	require.NoError(t, err)

	var ids []string
	for _, tmpl := range templates {
		ids = append(ids, tmpl.ID)
		assert.Equal(t, SourceBuiltin, tmpl.Source)
		assert.NoError(t, tmpl.Validate(), tmpl.ID)
	}
	assert.Equal(t, []string{"fastapi-docker", "go-service", "python-cli", "react-vite"}, ids)
}

func TestBuiltinTemplates_Preview(t *testing.T) {
	templates, err := New("", zerolog.Nop()).List()
	require.NoError(t, err)

	for _, tmpl := range templates {
		t.Run(tmpl.ID, func(t *testing.T) {
			req := tmpl.Request(Overrides{Name: "Sample App", Path: filepath.Join(t.TempDir(), "sample")})
			_, err := generator.Preview(req, generator.Options{MinFreeSpace: 1})
			assert.NoError(t, err)
		})
	}
}

func TestList_UserTemplatesOverrideBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "team-api.yaml"), userTemplate)
	writeFile(t, filepath.Join(dir, "nested", "json-one.json"),
		`{"name": "JSON One", "project_type": "cli_tool", "technologies": [{"name": "Rust"}]}`)
	writeFile(t, filepath.Join(dir, "go-service.yml"), userTemplate)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: [unclosed")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	templates, err := New(dir, zerolog.Nop()).List()
	require.NoError(t, err)

	byID := map[string]*Template{}
	for _, tmpl := range templates {
		byID[tmpl.ID] = tmpl
	}

	assert.Contains(t, byID, "team-api")
	assert.Contains(t, byID, "nested/json-one")
	assert.NotContains(t, byID, "broken")
	assert.Equal(t, "Team API", byID["go-service"].Name)
	assert.Equal(t, filepath.Join(dir, "go-service.yml"), byID["go-service"].Source)
}

func TestGet(t *testing.T) {
	c := New("", zerolog.Nop())

	tmpl, err := c.Get("python-cli")
	require.NoError(t, err)
	assert.Equal(t, "Python CLI + Rich", tmpl.Name)

	tmpl, err = c.Get("python cli + rich")
	require.NoError(t, err)
	assert.Equal(t, "python-cli", tmpl.ID)

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	src := filepath.Join(t.TempDir(), "My Template.json")
	writeFile(t, src, `{
  "name": "Imported",
  "project_type": "custom",
  "technologies": [{"name": "Node.js", "version": "20"}],
  "files": [{"path": "index.js", "content": "console.log('{{ project_name }}')", "is_template": true}],
  "commands": ["npm install"],
  "options": {"git_init": true, "install_deps": false}
}`)

	c := New(dir, zerolog.Nop())
	tmpl, err := c.Import(src, "")
	require.NoError(t, err)
	assert.Equal(t, "My Template", tmpl.ID)
	assert.FileExists(t, filepath.Join(dir, "My Template.yaml"))

	got, err := c.Get("My Template")
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Name)
	assert.Equal(t, tmpl.Files, got.Files)
	require.NotNil(t, got.Options)
	assert.False(t, *got.Options.InstallDeps)

	renamed, err := c.Import(src, "renamed")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "renamed.yaml"), renamed.Source)
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "team-api.yaml"), userTemplate)
	c := New(dir, zerolog.Nop())

	tests := []struct {
		query string
		want  []string
	}{
		{"DOCKER", []string{"fastapi-docker"}},
		{"health endpoint", []string{"go-service"}},
		{"team", []string{"team-api"}},
		{"  vite ", []string{"react-vite"}},
		{"cobol", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, err := c.Search(tt.query)
			require.NoError(t, err)

			var ids []string
			for _, tmpl := range found {
				ids = append(ids, tmpl.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	all, err := c.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestExport(t *testing.T) {
	c := New(t.TempDir(), zerolog.Nop())
	out := t.TempDir()

	for _, name := range []string{"python-cli.json", "python-cli.yml"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(out, name)
			_, err := c.Export("python-cli", file)
			require.NoError(t, err)

			data, err := os.ReadFile(file)
			require.NoError(t, err)
			decoded, err := Decode(file, data)
			require.NoError(t, err)

			original, err := c.Get("python-cli")
			require.NoError(t, err)
			assert.Equal(t, original.Name, decoded.Name)
			assert.Equal(t, original.Files, decoded.Files)
			assert.Equal(t, original.Commands, decoded.Commands)
		})
	}

	_, err := c.Export("python-cli", filepath.Join(out, "python-cli.toml"))
	assert.ErrorContains(t, err, "unsupported template format")

	_, err = c.Export("nope", filepath.Join(out, "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "team-api.yaml"), userTemplate)
	writeFile(t, filepath.Join(dir, "go-service.yaml"), userTemplate)
	c := New(dir, zerolog.Nop())

	deleted, err := c.Delete("team-api")
	require.NoError(t, err)
	assert.Equal(t, "team-api", deleted.ID)
	assert.NoFileExists(t, filepath.Join(dir, "team-api.yaml"))
	_, err = c.Get("team-api")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Delete("go-service")
	require.NoError(t, err)
	restored, err := c.Get("go-service")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, restored.Source, "built-in is visible again")

	_, err = c.Delete("go-service")
	assert.ErrorIs(t, err, ErrBuiltin)
	_, err = c.Delete("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImport_Rejects(t *testing.T) {
	dir := t.TempDir()
	c := New(filepath.Join(dir, "templates"), zerolog.Nop())

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "name: \"\"\nproject_type: x\n")
	_, err := c.Import(invalid, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template name is required")
	assert.Contains(t, err.Error(), "at least one technology is required")

	unsupported := filepath.Join(dir, "template.toml")
	writeFile(t, unsupported, "name = 'x'")
	_, err = c.Import(unsupported, "")
	assert.ErrorContains(t, err, "unsupported template format")

	valid := filepath.Join(dir, "valid.yaml")
	writeFile(t, valid, userTemplate)
	_, err = c.Import(valid, "../escape")
	assert.ErrorContains(t, err, "invalid template id")

	_, err = New("", zerolog.Nop()).Import(valid, "")
	assert.Error(t, err)
}

func TestTemplate_Request(t *testing.T) {
	tmpl, err := Decode("t.yaml", []byte(userTemplate))
	require.NoError(t, err)

	req := tmpl.Request(Overrides{
		Name:     "svc",
		Path:     "/tmp/svc",
		Defaults: Defaults{GitInit: true, CreateEnv: true, RunCommands: false},
	})
	assert.Equal(t, "svc", req.Name)
	assert.Equal(t, "api_backend", req.ProjectType)
	assert.Equal(t, "/tmp/svc", req.Path)
	assert.True(t, req.InitVCS)
	assert.True(t, req.CreateEnv)
	assert.False(t, req.RunCommands)
	assert.Equal(t, []string{"go mod tidy"}, req.Commands)

	req.Files[0].Content = "changed"
	assert.Equal(t, "# {{ project_name }}", tmpl.Files[0].Content, "request must not share slices with the template")
}

func TestTemplate_RequestPrecedence(t *testing.T) {
	tmpl := &Template{
		Name:         "T",
		Description:  "template description",
		ProjectType:  "x",
		Technologies: []generator.Technology{{Name: "Go"}},
		Options:      &Options{GitInit: boolPtr(false), InstallDeps: boolPtr(true)},
	}

	req := tmpl.Request(Overrides{Defaults: Defaults{GitInit: true}})
	assert.Equal(t, "T", req.Name)
	assert.Equal(t, "template description", req.Description)
	assert.False(t, req.InitVCS, "template option beats default")
	assert.True(t, req.RunCommands, "install_deps is read as run_commands")

	req = tmpl.Request(Overrides{Description: "mine", InitVCS: boolPtr(true), RunCommands: boolPtr(false)})
	assert.Equal(t, "mine", req.Description)
	assert.True(t, req.InitVCS, "override beats template option")
	assert.False(t, req.RunCommands)
}

func TestTemplate_TechnologyList(t *testing.T) {
	tmpl := &Template{Technologies: []generator.Technology{{Name: "Python", Version: "3.12"}, {Name: "Click"}}}
	assert.Equal(t, "Python 3.12, Click", tmpl.TechnologyList())
}

func TestEncode_RoundTrip(t *testing.T) {
	tmpl, err := Decode("t.yaml", []byte(userTemplate))
	require.NoError(t, err)

	data, err := Encode(tmpl)
	require.NoError(t, err)

	again, err := Decode("t.yml", data)
	require.NoError(t, err)
	assert.Equal(t, tmpl, again)
}
