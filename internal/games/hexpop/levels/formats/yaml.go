package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     Size              `yaml:"size"`
	Colors   int               `yaml:"colors,omitempty"`
	Grid     string            `yaml:"grid,omitempty"` // One text line per row, see core.RenderASCII
	Cells    []Cell            `yaml:"cells,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	return document{
		ID:       yl.ID,
		Name:     yl.Name,
		Size:     yl.Size,
		Colors:   yl.Colors,
		Grid:     yl.Grid,
		Cells:    yl.Cells,
		Metadata: yl.Metadata,
	}.build()
}
