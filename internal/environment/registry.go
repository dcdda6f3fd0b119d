package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry manages provisioners keyed by lowercase language name
type Registry struct {
	mu           sync.RWMutex
	provisioners map[string]Provisioner
}

// NewRegistry creates a registry holding the given provisioners
func NewRegistry(provisioners ...Provisioner) (*Registry, error) {
	r := &Registry{provisioners: make(map[string]Provisioner)}
	for _, p := range provisioners {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a new registry with the built-in provisioners
func DefaultRegistry() *Registry {
	return &Registry{
		provisioners: map[string]Provisioner{
			"python": NewPython(),
		},
	}
}

// Register adds a provisioner to the registry
func (r *Registry) Register(p Provisioner) error {
	if p == nil {
		return fmt.Errorf("cannot register nil provisioner")
	}

	key := strings.ToLower(strings.TrimSpace(p.Language()))
	if key == "" {
		return fmt.Errorf("cannot register provisioner with empty language")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.provisioners[key]; exists {
		return fmt.Errorf("provisioner for '%s' is already registered", key)
	}

	r.provisioners[key] = p
	return nil
}

// Get retrieves a provisioner by language name (case-insensitive)
func (r *Registry) Get(language string) (Provisioner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.provisioners[strings.ToLower(strings.TrimSpace(language))]
	return p, ok
}

// Has checks if a provisioner is registered for language
func (r *Registry) Has(language string) bool {
	_, ok := r.Get(language)
	return ok
}

// List returns all registered language names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.provisioners))
	for name := range r.provisioners {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Match returns the provisioners enabled by the given technology names,
// in technology order and without duplicates.
func (r *Registry) Match(technologies []string) []Provisioner {
	var matched []Provisioner
	seen := make(map[string]bool)

	for _, tech := range technologies {
		key := strings.ToLower(strings.TrimSpace(tech))
		if seen[key] {
			continue
		}
		if p, ok := r.Get(key); ok {
			matched = append(matched, p)
			seen[key] = true
		}
	}
	return matched
}

// ResolveCommand rewrites argv[0] to the binary of the first provisioned
// environment under root that provides it, and returns the environment
// variables of every environment that exists under root.
func ResolveCommand(root string, provisioners []Provisioner, argv []string) ([]string, []string) {
	if len(argv) == 0 {
		return argv, nil
	}

	resolved := append([]string(nil), argv...)
	var env []string
	rewritten := false

	for _, p := range provisioners {
		if !exists(filepath.Join(root, p.Dir())) {
			continue
		}
		env = append(env, p.Env(root)...)

		if rewritten {
			continue
		}
		if path, ok := p.Resolve(root, argv[0]); ok {
			resolved[0] = path
			rewritten = true
		}
	}

	return resolved, env
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
