package forms

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data/forms.toml
var embeddedForms embed.FS

// registrySize is the number of forms the embedded registry must hold.
const registrySize = 6

// Form is one supported creative-writing form and its one-line guidance.
type Form struct {
	Name     string `toml:"name"`
	Guidance string `toml:"guidance"`
}

type registryFile struct {
	Forms []Form `toml:"form"`
}

// Populated once at package init and never written again.
var (
	ordered []Form
	byName  map[string]Form
)

func init() {
	data, err := embeddedForms.ReadFile("data/forms.toml")
	if err != nil {
		panic(fmt.Sprintf("forms: read embedded registry: %v", err))
	}
	list, err := parseRegistry(data)
	if err != nil {
		panic(fmt.Sprintf("forms: %v", err))
	}
	ordered = list
	byName = make(map[string]Form, len(list))
	for _, f := range list {
		byName[f.Name] = f
	}
}

func parseRegistry(data []byte) ([]Form, error) {
	var rf registryFile
	if _, err := toml.Decode(string(data), &rf); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if len(rf.Forms) != registrySize {
		return nil, fmt.Errorf("registry holds %d forms, want %d", len(rf.Forms), registrySize)
	}

	seen := make(map[string]bool, len(rf.Forms))
	for _, f := range rf.Forms {
		if f.Name == "" || f.Guidance == "" {
			return nil, fmt.Errorf("registry entry %q is incomplete", f.Name)
		}
		if f.Name != Normalize(f.Name) {
			return nil, fmt.Errorf("registry name %q is not normalized", f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate registry name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return rf.Forms, nil
}

// Normalize trims surrounding whitespace and lowercases a form name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a form by name, ignoring case and surrounding whitespace.
func Lookup(name string) (Form, bool) {
	f, ok := byName[Normalize(name)]
	return f, ok
}

// IsSupported reports whether name resolves to a registered form.
func IsSupported(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns the registered form names in registry order.
// The returned slice is a copy.
func Names() []string {
	names := make([]string, len(ordered))
	for i, f := range ordered {
		names[i] = f.Name
	}
	return names
}

// All returns every registered form in registry order.
func All() []Form {
	out := make([]Form, len(ordered))
	copy(out, ordered)
	return out
}
