package permissions

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Entry is one named permission level in the catalog.
type Entry struct {
	Name        string `yaml:"name" json:"name"`
	Value       Value  `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

// Catalog maps named permission levels to values and human-readable labels.
// It is loaded once at startup from the embedded YAML file and is read-only
// afterwards, so it is safe to share across all request handlers without
// locking.
type Catalog struct {
	entries []Entry
	byName  map[string]Entry
}

type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}

// NewCatalog loads the embedded permission catalog. Declaration order in the
// YAML file is preserved and drives label ordering.
func NewCatalog() (*Catalog, error) {
	data, err := configFiles.ReadFile("config/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read permission catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal permission catalog: %w", err)
	}

	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("permission catalog is empty")
	}

	byName := make(map[string]Entry, len(file.Entries))
	for _, e := range file.Entries {
		if e.Name == "" || e.Label == "" {
			return nil, fmt.Errorf("permission catalog entry missing name or label: %+v", e)
		}
		if _, dup := byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate permission catalog entry: %s", e.Name)
		}
		byName[e.Name] = e
	}

	return &Catalog{
		entries: file.Entries,
		byName:  byName,
	}, nil
}

// Entries returns all catalog entries in declaration order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// ByName looks up a catalog entry by its level name (read, write, manage).
func (c *Catalog) ByName(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// LabelsFor returns the labels of every entry contained in v, in declaration
// order. The same value always renders the same label sequence. The owner
// sentinel contains every entry, so it yields the full label list - owner is
// not special-cased here.
func (c *Catalog) LabelsFor(v Value) []string {
	labels := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if v.Contains(e.Value) {
			labels = append(labels, e.Label)
		}
	}
	return labels
}
