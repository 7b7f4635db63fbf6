package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of an external skill catalog.
type catalogFile struct {
	Skills       []skillDef       `yaml:"skills"`
	Combinations []combinationDef `yaml:"combinations"`
}

// ParseCatalog builds a Catalog from YAML bytes.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("parsing catalog: no skills defined")
	}
	return buildCatalog(f.Skills, f.Combinations)
}

// LoadCatalogFile reads and validates a YAML skill catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	slog.Info("loaded skill catalog", "path", path, "skills", c.SkillCount(), "combinations", c.CombinationCount())
	return c, nil
}

// MustLoadCatalog is LoadCatalogFile that panics on error.
// An empty path returns the built-in catalog.
func MustLoadCatalog(path string) *Catalog {
	if path == "" {
		return DefaultCatalog()
	}
	c, err := LoadCatalogFile(path)
	if err != nil {
		panic(err)
	}
	return c
}
