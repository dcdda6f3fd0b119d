package render

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	return Context{
		ProjectName:      "My Cool App",
		ProjectNameSnake: "my_cool_app",
		Description:      "A demo",
		Author:           "ada",
		Year:             2024,
	}
}

func TestRender(t *testing.T) {
	r := New(testContext())

	tests := []struct {
		name        string
		text        string
		expected    string
		wantErr     bool
		errContains string
	}{
		{
			name:     "plain text is untouched",
			text:     "Hello World",
			expected: "Hello World",
		},
		{
			name:     "bare variable",
			text:     "# {{project_name}}",
			expected: "# My Cool App",
		},
		{
			name:     "bare variable with spaces",
			text:     "src/{{ project_name_snake }}/__init__.py",
			expected: "src/my_cool_app/__init__.py",
		},
		{
			name:     "dotted variable",
			text:     "{{ .author }} {{ .year }}",
			expected: "ada 2024",
		},
		{
			name:     "integer variable",
			text:     "Copyright (c) {{ year }} {{ author }}",
			expected: "Copyright (c) 2024 ada",
		},
		{
			name:     "pipeline with helper",
			text:     "{{ project_name | upper }}",
			expected: "MY COOL APP",
		},
		{
			name:     "default helper",
			text:     `{{ "" | default description }}`,
			expected: "A demo",
		},
		{
			name:        "unknown bare variable",
			text:        "{{ unknown_var }}",
			wantErr:     true,
			errContains: `function "unknown_var" not defined`,
		},
		{
			name:        "unknown dotted variable",
			text:        "{{ .unknown_var }}",
			wantErr:     true,
			errContains: "unknown_var",
		},
		{
			name:        "syntax error",
			text:        "{{ project_name }",
			wantErr:     true,
			errContains: "failed to render template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.name, tt.text)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				var renderErr *Error
				assert.True(t, errors.As(err, &renderErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_CachesParsedTemplates(t *testing.T) {
	r := New(testContext())

	_, err := r.Render("a", "{{ project_name }}")
	require.NoError(t, err)
	_, err = r.Render("b", "{{ project_name }}")
	require.NoError(t, err)

	assert.Len(t, r.cache, 1)
}

func TestRender_Concurrent(t *testing.T) {
	r := New(testContext())

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("{{ project_name_snake }}-%d", i%5)
			out, err := r.Render("concurrent", text)
			if err != nil {
				errs <- err
				return
			}
			if out != fmt.Sprintf("my_cool_app-%d", i%5) {
				errs <- fmt.Errorf("unexpected output %q", out)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestSnakeName(t *testing.T) {
	tests := map[string]string{
		"My Cool App!":     "my_cool_app",
		"data-pipeline v2": "data_pipeline_v2",
		"already_snake":    "already_snake",
		"Multi   Space--X": "multi_space_x",
		"Café Crème":       "café_crème",
		"":                 "",
	}

	for in, want := range tests {
		assert.Equal(t, want, SnakeName(in), "SnakeName(%q)", in)
	}
}

func TestNewContext(t *testing.T) {
	t.Setenv("USER", "grace")

	ctx := NewContext("My Cool App!", "desc", time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "My Cool App!", ctx.ProjectName)
	assert.Equal(t, "my_cool_app", ctx.ProjectNameSnake)
	assert.Equal(t, "desc", ctx.Description)
	assert.Equal(t, "grace", ctx.Author)
	assert.Equal(t, 2031, ctx.Year)

	assert.Equal(t, "override", ctx.WithAuthor("override").Author)
	assert.Equal(t, "grace", ctx.WithAuthor("").Author)
}

func TestAuthor_Fallback(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")

	assert.Equal(t, DefaultAuthor, Author())
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, "UserName", PascalCase("user_name"))
	assert.Equal(t, "APIClient", PascalCase("api_client"))
	assert.Equal(t, "userName", CamelCase("user_name"))
	assert.Equal(t, "userName", CamelCase("UserName"))
	assert.Equal(t, "http_server", SnakeCase("HTTPServer"))
	assert.Equal(t, "user_name", SnakeCase("userName"))
	assert.Equal(t, "Hello World", Title("hello WORLD"))
	assert.Equal(t, `"x"`, Quote("x"))
	assert.Equal(t, "fallback", Default("fallback", ""))
	assert.Equal(t, "v", Default("fallback", "v"))
}
