package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// StaticSource serves a catalog built in code
type StaticSource struct {
	Catalog *Catalog
}

// Load returns the wrapped catalog
func (s StaticSource) Load(context.Context) (*Catalog, error) {
	if s.Catalog == nil {
		return Default(), nil
	}
	return s.Catalog, nil
}

// FileSource reads a catalog from a JSON file with the same shape as Catalog
type FileSource struct {
	Path string
}

// Load reads and checks the file
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", s.Path, err)
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", s.Path, err)
	}
	return &c, nil
}

// Check reports the first brand, model or region key that points nowhere
func (c *Catalog) Check() error {
	if len(c.Brands) == 0 {
		return fmt.Errorf("no brands")
	}
	for brand := range c.Models {
		if !c.HasBrand(brand) {
			return fmt.Errorf("models listed for unknown brand %q", brand)
		}
	}
	for region := range c.Cities {
		if !c.HasRegion(region) {
			return fmt.Errorf("cities listed for unknown region %q", region)
		}
	}
	return nil
}
