package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a taxonomy override file. An empty path yields the built-in
// default, so callers can pass the config value straight through.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %s defines no categories", path)
	}

	for i, cat := range doc.Categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("taxonomy file %s: category %d has empty id", path, i)
		}
		if len(cat.Subtypes) == 0 {
			return nil, fmt.Errorf("taxonomy file %s: category %s has no subtypes", path, cat.ID)
		}
	}

	return New(doc.Categories), nil
}
