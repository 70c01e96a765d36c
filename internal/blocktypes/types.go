package blocktypes

import (
	"fmt"

	"notebook/internal/domain/models/docsystem"

	"gopkg.in/yaml.v3"
)

// Category groups block types for display
type Category string

const (
	CategoryText   Category = "text"
	CategoryList   Category = "list"
	CategoryMedia  Category = "media"
	CategoryLayout Category = "layout"
)

// Definition describes one block type
type Definition struct {
	// Name is the block_type value (set from the YAML key)
	Name docsystem.BlockType `yaml:"-" json:"name"`

	DisplayName string   `yaml:"display_name" json:"display_name"`
	Description string   `yaml:"description" json:"description"`
	Category    Category `yaml:"category" json:"category"`

	// RawContent marks types whose content is not rich text (code, URLs, JSON)
	// and must be stored without HTML sanitization
	RawContent bool `yaml:"raw_content" json:"raw_content"`
}

// registryFile is the shape of block_types.yaml
type registryFile struct {
	BlockTypes []Definition `yaml:"block_types"`
}

// UnmarshalYAML reads block_types as an ordered mapping, keeping file order
// and copying each key into Definition.Name
func (f *registryFile) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BlockTypes yaml.Node `yaml:"block_types"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	node := raw.BlockTypes
	if node.Kind != 0 && node.Kind != yaml.MappingNode {
		return fmt.Errorf("block_types must be a mapping (line %d)", node.Line)
	}
	f.BlockTypes = make([]Definition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var def Definition
		if err := node.Content[i+1].Decode(&def); err != nil {
			return err
		}
		def.Name = docsystem.BlockType(node.Content[i].Value)
		f.BlockTypes = append(f.BlockTypes, def)
	}
	return nil
}
