// Package templates loads board templates: YAML documents describing the
// lists, labels, and seed cards a new Trello board starts with. Built-in
// templates are embedded in the binary; a user template directory can add
// to or override them by name.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template describes one board layout.
type Template struct {
	Name        string         `yaml:"name"`
	DisplayName string         `yaml:"display_name,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Labels      []LabelSpec    `yaml:"labels,omitempty"`
	Lists       []ListSpec     `yaml:"lists"`
	Source      string         `yaml:"-"`
}

// LabelSpec is a board label to create.
type LabelSpec struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

// ListSpec is a list to create, with optional seed cards.
type ListSpec struct {
	Name  string     `yaml:"name"`
	Cards []CardSpec `yaml:"cards,omitempty"`
}

// CardSpec is a seed card. Labels reference LabelSpec names on the same
// template.
type CardSpec struct {
	Name   string   `yaml:"name"`
	Desc   string   `yaml:"desc,omitempty"`
	Labels []string `yaml:"labels,omitempty"`
}

// Load parses and validates a template from YAML bytes.
func Load(source string, data []byte) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", source, err)
	}
	tpl.Source = source

	if err := validate(&tpl); err != nil {
		return nil, fmt.Errorf("validate template %s: %w", source, err)
	}
	return &tpl, nil
}

func validate(tpl *Template) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return fmt.Errorf("missing name")
	}
	if len(tpl.Lists) == 0 {
		return fmt.Errorf("template %q has no lists", tpl.Name)
	}

	labels := make(map[string]bool, len(tpl.Labels))
	for _, label := range tpl.Labels {
		if strings.TrimSpace(label.Name) == "" {
			return fmt.Errorf("template %q has an unnamed label", tpl.Name)
		}
		labels[label.Name] = true
	}

	for _, list := range tpl.Lists {
		if strings.TrimSpace(list.Name) == "" {
			return fmt.Errorf("template %q has an unnamed list", tpl.Name)
		}
		for _, card := range list.Cards {
			if strings.TrimSpace(card.Name) == "" {
				return fmt.Errorf("template %q list %q has an unnamed card", tpl.Name, list.Name)
			}
			for _, ref := range card.Labels {
				if !labels[ref] {
					return fmt.Errorf("template %q card %q references unknown label %q", tpl.Name, card.Name, ref)
				}
			}
		}
	}
	return nil
}

// Registry holds templates keyed by name.
type Registry map[string]*Template

// LoadRegistry builds the template set: embedded defaults first, then the
// optional user directory on top. A missing or empty dir is not an error.
func LoadRegistry(dir string) (Registry, error) {
	registry, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(dir) == "" {
		return registry, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- template dir is operator-provided
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		tpl, err := Load(path, data)
		if err != nil {
			return nil, err
		}
		registry[tpl.Name] = tpl
	}

	return registry, nil
}

// Get returns the named template.
func (r Registry) Get(name string) (*Template, error) {
	tpl, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown board template %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return tpl, nil
}

// Names returns the registered template names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
