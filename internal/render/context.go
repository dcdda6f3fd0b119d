package render

import (
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAuthor is used when the environment does not identify the user.
const DefaultAuthor = "DevGenesis User"

// Variable names exposed to templates.
const (
	VarProjectName      = "project_name"
	VarProjectNameSnake = "project_name_snake"
	VarDescription      = "description"
	VarAuthor           = "author"
	VarYear             = "year"
)

var (
	nonWordChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
	lowerCaser    = cases.Lower(language.Und)
)

// Context is the read-only set of variables available to one generation run.
type Context struct {
	ProjectName      string
	ProjectNameSnake string
	Description      string
	Author           string
	Year             int
}

// NewContext derives a Context from the project name and description.
// The author comes from the environment (see Author) and the year from now.
func NewContext(projectName, description string, now time.Time) Context {
	return Context{
		ProjectName:      projectName,
		ProjectNameSnake: SnakeName(projectName),
		Description:      description,
		Author:           Author(),
		Year:             now.Year(),
	}
}

// WithAuthor returns a copy of c with the author replaced when author is non-empty.
func (c Context) WithAuthor(author string) Context {
	if author != "" {
		c.Author = author
	}
	return c
}

// Vars returns the context as a map keyed by variable name.
func (c Context) Vars() map[string]any {
	return map[string]any{
		VarProjectName:      c.ProjectName,
		VarProjectNameSnake: c.ProjectNameSnake,
		VarDescription:      c.Description,
		VarAuthor:           c.Author,
		VarYear:             c.Year,
	}
}

// SnakeName converts a free-form project name into a filesystem-safe identifier.
// Characters other than letters, digits, underscores, whitespace and hyphens are
// dropped, runs of whitespace and hyphens become a single underscore, and the
// result is lowercased.
//
// Examples: "My Cool App!" → "my_cool_app", "data-pipeline v2" → "data_pipeline_v2"
func SnakeName(name string) string {
	s := nonWordChars.ReplaceAllString(name, "")
	s = separatorRuns.ReplaceAllString(s, "_")
	return lowerCaser.String(s)
}

// Author returns the invoking user's name from $USER or $USERNAME,
// falling back to DefaultAuthor.
func Author() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultAuthor
}
