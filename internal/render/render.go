package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Error reports a template that could not be parsed or executed,
// most often because it references an unknown variable.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to render template '%s': %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Renderer renders template text against one Context.
// Parsed templates are cached, and a Renderer is safe for concurrent use.
type Renderer struct {
	ctx     Context
	vars    map[string]any
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// New creates a renderer bound to ctx
func New(ctx Context) *Renderer {
	funcMap := defaultFuncMap()

	// Variables are callable by name so "{{ project_name }}" works without a dot.
	funcMap[VarProjectName] = func() string { return ctx.ProjectName }
	funcMap[VarProjectNameSnake] = func() string { return ctx.ProjectNameSnake }
	funcMap[VarDescription] = func() string { return ctx.Description }
	funcMap[VarAuthor] = func() string { return ctx.Author }
	funcMap[VarYear] = func() int { return ctx.Year }

	return &Renderer{
		ctx:     ctx,
		vars:    ctx.Vars(),
		funcMap: funcMap,
		cache:   make(map[string]*template.Template),
	}
}

// Context returns the variables this renderer substitutes.
func (r *Renderer) Context() Context {
	return r.ctx
}

// Render substitutes variables in text. The name is used in error messages.
// Text without any "{{" is returned as-is.
func (r *Renderer) Render(name, text string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	// Check cache with read lock
	r.mu.RLock()
	tmpl, ok := r.cache[text]
	r.mu.RUnlock()

	if !ok {
		parsed, err := template.New(name).
			Funcs(r.funcMap).
			Option("missingkey=error").
			Parse(text)
		if err != nil {
			return "", &Error{Name: name, Err: err}
		}

		// Cache with write lock
		r.mu.Lock()
		r.cache[text] = parsed
		r.mu.Unlock()
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.vars); err != nil {
		return "", &Error{Name: name, Err: err}
	}
	return buf.String(), nil
}

// defaultFuncMap returns the helper functions available in template pipelines
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": PascalCase, // user_name → UserName
		"camelCase":  CamelCase,  // user_name → userName
		"snakeCase":  SnakeCase,  // UserName → user_name
		"snakeName":  SnakeName,  // My App! → my_app

		// String manipulation
		"quote":   Quote, // test → "test"
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"title":   Title,
		"trim":    strings.TrimSpace,
		"replace": strings.ReplaceAll,

		// Utilities
		"default": Default, // Provide default value if empty
	}
}
