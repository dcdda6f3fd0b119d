package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// SourceBuiltin marks templates shipped with the binary
const SourceBuiltin = "builtin"

// templatePattern matches template files anywhere under a directory
const templatePattern = "**/*.{yaml,yml,json}"

// ErrNotFound is returned by Get for unknown templates
var ErrNotFound = errors.New("template not found")

// ErrBuiltin is returned when deleting a template shipped with the binary
var ErrBuiltin = errors.New("built-in templates cannot be deleted")

// Catalog lists built-in templates and those in a user directory.
// A user template replaces a built-in one with the same ID.
type Catalog struct {
	dir string
	log zerolog.Logger
}

// New returns a catalog reading user templates from dir. An empty dir
// means built-in templates only.
func New(dir string, log zerolog.Logger) *Catalog {
	return &Catalog{dir: dir, log: log}
}

// Dir returns the user template directory
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns every template sorted by ID. Unreadable or invalid user
// templates are logged and skipped.
func (c *Catalog) List() ([]*Template, error) {
	byID := make(map[string]*Template)

	builtin, err := load(builtinFS, "builtin", SourceBuiltin)
	if err != nil {
		return nil, fmt.Errorf("load built-in templates: %w", err)
	}
	for _, t := range builtin {
		byID[t.ID] = t
	}

	if c.dir != "" {
		if _, err := os.Stat(c.dir); err == nil {
			user, err := load(os.DirFS(c.dir), ".", c.dir)
			if err != nil {
				c.log.Warn().Err(err).Str("dir", c.dir).Msg("failed to read user templates")
			}
			for _, t := range user {
				byID[t.ID] = t
			}
		}
	}

	templates := make([]*Template, 0, len(byID))
	for _, t := range byID {
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

// Get finds a template by ID, or by display name ignoring case
func (c *Catalog) Get(name string) (*Template, error) {
	templates, err := c.List()
	if err != nil {
		return nil, err
	}

	for _, t := range templates {
		if t.ID == name {
			return t, nil
		}
	}
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Search returns the templates whose ID, name or description contains
// query, ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) ([]*Template, error) {
	templates, err := c.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return templates, nil
	}

	var matched []*Template
	for _, t := range templates {
		for _, field := range []string{t.ID, t.Name, t.Description} {
			if strings.Contains(strings.ToLower(field), query) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched, nil
}

// Export writes a template to file, as JSON or YAML depending on its extension
func (c *Catalog) Export(name, file string) (*Template, error) {
	t, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	data, err := EncodeFile(file, t)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}

	c.log.Info().Str("id", t.ID).Str("file", file).Msg("exported template")
	return t, nil
}

// Delete removes a user template file. A built-in template overridden by the
// deleted one becomes visible again.
func (c *Catalog) Delete(name string) (*Template, error) {
	t, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	if t.Source == SourceBuiltin {
		return nil, fmt.Errorf("%w: %s", ErrBuiltin, t.ID)
	}

	if err := os.Remove(t.Source); err != nil {
		return nil, fmt.Errorf("delete template: %w", err)
	}

	c.log.Info().Str("id", t.ID).Str("file", t.Source).Msg("deleted template")
	return t, nil
}

// Import validates a template file and stores it in the user directory as
// <id>.yaml, replacing any template with that ID. The ID defaults to the
// file name without its extension.
func (c *Catalog) Import(file, id string) (*Template, error) {
	if c.dir == "" {
		return nil, errors.New("no user template directory configured")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	t, err := Decode(file, data)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", file, err)
	}

	if id == "" {
		id = idFromPath(filepath.Base(file))
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	out, err := Encode(t)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template directory: %w", err)
	}

	target := filepath.Join(c.dir, id+".yaml")
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}

	t.ID = id
	t.Source = target
	c.log.Info().Str("id", id).Str("file", target).Msg("imported template")
	return t, nil
}

// load decodes every template file under root in fsys
func load(fsys fs.FS, root, source string) ([]*Template, error) {
	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(sub, templatePattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var templates []*Template
	var errs []error
	for _, match := range matches {
		data, err := fs.ReadFile(sub, match)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		t, err := Decode(match, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", match, err))
			continue
		}

		t.ID = idFromPath(match)
		t.Source = source
		if source != SourceBuiltin {
			t.Source = filepath.Join(source, filepath.FromSlash(match))
		}
		templates = append(templates, t)
	}

	return templates, errors.Join(errs...)
}

// idFromPath turns "team/api.yaml" into "team/api"
func idFromPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid template id %q", id)
	}
	return nil
}
