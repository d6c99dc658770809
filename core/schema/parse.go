package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile parses a model definition from a YAML file.
func ParseFile(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("read file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return Model{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses a model definition from YAML bytes and validates it.
func Parse(data []byte) (Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Model{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := ValidateModel(m); err != nil {
		return Model{}, err
	}

	return m, nil
}

// ParseDir parses all model definitions from a directory, including
// subdirectories. Files are visited in lexical order so the result is
// stable across processes.
func ParseDir(dir string) ([]Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var models []Model
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := ParseDir(path)
			if err != nil {
				return nil, err
			}
			models = append(models, sub...)
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		m, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	return models, nil
}
