package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseOverrides decodes a --config file into a flat map of template data overrides.
// The format is chosen by extension: .yaml/.yml or .toml, and JSON for .json or any
// other extension. The top level must be an object.
func ParseOverrides(name string, data []byte) (map[string]any, error) {
	out := make(map[string]any)

	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	case ".toml":
		err = toml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", name, err)
	}

	return out, nil
}
