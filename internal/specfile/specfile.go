// Package specfile decodes JSON and YAML documents by file extension.
package specfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"api-dispatcher-service/internal/core/domain"
)

// Load reads and decodes a .json, .yml or .yaml file into a generic map.
func Load(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSpecNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]any
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	return doc, nil
}
