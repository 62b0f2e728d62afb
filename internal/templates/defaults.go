package templates

import (
	"embed"
	"fmt"
)

//go:embed boards/*.yaml
var defaultTemplatesFS embed.FS

// loadDefaults loads the embedded template set.
func loadDefaults() (Registry, error) {
	entries, err := defaultTemplatesFS.ReadDir("boards")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	registry := make(Registry, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := defaultTemplatesFS.ReadFile("boards/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		tpl, err := Load(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		registry[tpl.Name] = tpl
	}
	return registry, nil
}
