package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromYAML reads a knowledge base document from path.
//
// Expected format:
//
//	entries:
//	  - key: herramientas
//	    name: Herramientas
//	    primary: [martillo, desarmador]
//	    secondary: [truper]
//	    patterns: ['\bmartillo\b']
//	    weight: 0.9
//	broad:
//	  - id: ferreteria-general
//	    name: Ferretería General
//	    keywords: [ferreteria]
//	variants:
//	  - [electricidad, electrico, electrical]
func LoadFromYAML(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a knowledge base document.
func ParseYAML(data []byte) (*Base, error) {
	var b Base
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return &b, nil
}

// Load compiles the built-in knowledge base, merged with the YAML file at
// path when path is not empty.
func Load(path string) (*Compiled, error) {
	base := Default()
	if path != "" {
		override, err := LoadFromYAML(path)
		if err != nil {
			return nil, err
		}
		base = Merge(base, override)
	}
	return Compile(base)
}
