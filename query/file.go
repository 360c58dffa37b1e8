package query

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads a YAML spec file.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("cannot read spec %s: %w", path, err)
	}
	s, err := ParseSpec(data)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSpec decodes a YAML spec document.
func ParseSpec(data []byte) (Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("cannot parse spec: %w", err)
	}
	for i, p := range s.Filters {
		if p.Column == "" {
			return Spec{}, fmt.Errorf("filter %d: missing column", i)
		}
	}
	if s.Order.IsSet() {
		dir, err := ParseDirection(string(s.Order.Dir))
		if err != nil {
			return Spec{}, fmt.Errorf("order: %w", err)
		}
		s.Order.Dir = dir
	}
	if s.Select == nil {
		s.Select = []string{}
	}
	return s, nil
}

// EncodeSpec renders s as a YAML document.
func EncodeSpec(s Spec) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cannot encode spec: %w", err)
	}
	return out, nil
}
