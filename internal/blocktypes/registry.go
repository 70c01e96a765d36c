// Package blocktypes loads the set of block types the content service
// accepts. The list is embedded at build time and read-only afterwards.
package blocktypes

import (
	"embed"
	"fmt"

	"notebook/internal/domain/models/docsystem"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

const configFile = "config/block_types.yaml"

// Registry holds the accepted block types in declaration order
type Registry struct {
	definitions []Definition
	byName      map[docsystem.BlockType]*Definition
}

// NewRegistry creates a registry from the embedded YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML bytes
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block types: %w", err)
	}
	if len(file.BlockTypes) == 0 {
		return nil, fmt.Errorf("no block types defined")
	}

	r := &Registry{
		definitions: file.BlockTypes,
		byName:      make(map[docsystem.BlockType]*Definition, len(file.BlockTypes)),
	}
	for i := range r.definitions {
		def := &r.definitions[i]
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate block type %q", def.Name)
		}
		r.byName[def.Name] = def
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for wiring code; the embedded file is part
// of the binary so a failure is a build defect
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// IsValid reports whether t is a registered block type
func (r *Registry) IsValid(t docsystem.BlockType) bool {
	_, ok := r.byName[t]
	return ok
}

// Get returns the definition of t
func (r *Registry) Get(t docsystem.BlockType) (Definition, bool) {
	def, ok := r.byName[t]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

// List returns all definitions in declaration order
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.definitions))
	copy(out, r.definitions)
	return out
}

// Names returns the registered block type names in declaration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.definitions))
	for i, def := range r.definitions {
		names[i] = string(def.Name)
	}
	return names
}
