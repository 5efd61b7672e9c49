package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML form of a grammar or a grammar overlay.
type File struct {
	Version string `yaml:"version"`
	// Root is the kind schema compilation starts from.
	Root string `yaml:"root,omitempty"`
	// Nodes replace entries of the same kind or add new ones.
	Nodes []Entry `yaml:"nodes,omitempty"`
	// Groups are aliases over kinds and other groups.
	Groups map[string][]string `yaml:"groups,omitempty"`
	// Remove lists kinds dropped from the base grammar.
	Remove []string `yaml:"remove,omitempty"`
}

// LoadFile loads and parses a YAML grammar file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grammar YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Root == "" {
		f.Root = DocumentKind
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Export renders a registry as a File, with group memberships kept on the
// entries.
func Export(r *Registry) *File {
	return &File{Version: "1", Root: DocumentKind, Nodes: r.Entries()}
}

// Overlay builds a new registry from base with f applied: entries in f
// replace base entries of the same kind in place, new kinds are appended,
// removed kinds are dropped and f's groups become aliases.
func Overlay(base *Registry, f *File) (*Registry, error) {
	if f == nil {
		return base, nil
	}

	removed := map[string]bool{}
	for _, k := range f.Remove {
		removed[k] = true
	}

	replace := make(map[string]int, len(f.Nodes))
	for i, e := range f.Nodes {
		replace[e.Kind] = i
	}

	var entries []Entry

	used := map[string]bool{}

	for _, e := range base.Entries() {
		if removed[e.Kind] {
			continue
		}

		if i, ok := replace[e.Kind]; ok {
			e = f.Nodes[i]
			used[e.Kind] = true
		}

		entries = append(entries, e)
	}

	for _, e := range f.Nodes {
		if used[e.Kind] || removed[e.Kind] {
			continue
		}

		entries = append(entries, e)
	}

	r, err := New(entries, f.Groups)
	if err != nil {
		return nil, fmt.Errorf("failed to apply grammar overlay: %w", err)
	}

	return r, nil
}
