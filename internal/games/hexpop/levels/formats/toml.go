package formats

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLLevel represents the TOML structure for a level file.
type TOMLLevel struct {
	ID       string            `toml:"id"`
	Name     string            `toml:"name"`
	Size     Size              `toml:"size"`
	Colors   int               `toml:"colors"`
	Grid     string            `toml:"grid"`
	Cells    []Cell            `toml:"cells"`
	Metadata map[string]string `toml:"metadata"`
}

// ParseTOML parses a TOML level file. Unknown keys are rejected so typos in
// hand-written levels surface early.
func ParseTOML(data []byte) (Level, error) {
	var tl TOMLLevel
	md, err := toml.Decode(string(data), &tl)
	if err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Level{}, fmt.Errorf("toml decode: unknown keys: %s", strings.Join(keys, ", "))
	}

	return document{
		ID:       tl.ID,
		Name:     tl.Name,
		Size:     tl.Size,
		Colors:   tl.Colors,
		Grid:     tl.Grid,
		Cells:    tl.Cells,
		Metadata: tl.Metadata,
	}.build()
}
