package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// aliasFile is the YAML shape of a subject alias override file:
//
//	aliases:
//	  pe: HPE
//	  health: HPE
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads subject alias overrides from the configured file.
// A missing path is not an error; it just means no overrides.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}
	return f.Aliases, nil
}
