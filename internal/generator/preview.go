package generator

import (
	"path"
	"strings"

	"github.com/simonhull/devgenesis/internal/render"
	"github.com/simonhull/devgenesis/internal/vcs"
)

// truncationSuffix marks a shortened file preview
const truncationSuffix = "..."

// FilePreview is a file as it would be written, content possibly truncated
type FilePreview struct {
	Path    string `json:"path"`
	Preview string `json:"preview"`
}

// Plan is what Generate would do for a request
type Plan struct {
	Directories []string      `json:"directories"`
	Files       []FilePreview `json:"files"`
	Commands    []string      `json:"commands"`
	Readme      *string       `json:"readme"`    // Full rendered README, if declared
	Gitignore   *string       `json:"gitignore"` // Full rendered .gitignore, if declared
}

// Preview renders req without touching the filesystem. It fails with a
// KindValidation error when Validate would, and with the same template and
// path errors Generate would hit.
func Preview(req Request, opts Options) (*Plan, error) {
	opts = opts.withDefaults()

	if err := ValidateRequest(req, opts); err != nil {
		return nil, err
	}

	renderer := newRenderer(req, opts)
	l, err := buildLayout(req, renderer)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Directories: append([]string{}, l.Dirs...),
		Files:       make([]FilePreview, 0, len(l.Files)),
		Commands:    plannedCommands(req, opts),
	}

	for _, f := range l.Files {
		plan.Files = append(plan.Files, FilePreview{
			Path:    f.Path,
			Preview: truncate(f.Content, opts.PreviewLength),
		})

		content := f.Content
		switch strings.ToLower(path.Base(f.Path)) {
		case "readme.md":
			plan.Readme = &content
		case ".gitignore":
			plan.Gitignore = &content
		}
	}

	return plan, nil
}

// plannedCommands lists the commands Generate would run, in order
func plannedCommands(req Request, opts Options) []string {
	commands := []string{}

	if req.InitVCS {
		commands = append(commands,
			`git init && git add . && git commit -m "`+vcs.InitialCommitMessage+`"`)
	}
	if req.CreateEnv {
		for _, p := range opts.Registry.Match(req.TechnologyNames()) {
			commands = append(commands, p.Command())
		}
	}
	if req.RunCommands {
		commands = append(commands, req.Commands...)
	}

	return commands
}

func newRenderer(req Request, opts Options) *render.Renderer {
	ctx := render.NewContext(req.Name, req.Description, opts.Now()).WithAuthor(opts.Author)
	return render.New(ctx)
}

// truncate keeps the first n characters of s, appending a marker when it cut anything
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + truncationSuffix
}
