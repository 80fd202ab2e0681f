package core

import "strings"

// RenderASCII draws the grid one row per line. Each cell is two characters
// wide and odd rows are indented by one, so neighbors line up visually.
// Empty cells show as '.'.
func RenderASCII(g *HexGrid) string {
	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		if row&1 == 1 {
			sb.WriteByte(' ')
		}
		for col := 0; col < g.Cols(); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if p := g.At(H(row, col)); p != nil {
				sb.WriteRune(p.Color.Char())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseASCII builds cell colors from RenderASCII-style text. Indentation and
// spaces are ignored; '.' marks an empty cell. Unknown characters are
// reported as ok=false.
func ParseASCII(text string) (cells map[Hex]Color, rows, cols int, ok bool) {
	cells = make(map[Hex]Color)
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for row, line := range lines {
		col := 0
		for _, r := range line {
			switch r {
			case ' ', '\t':
				continue
			case '.':
			default:
				c, valid := ParseColor(string(r))
				if !valid {
					return nil, 0, 0, false
				}
				cells[H(row, col)] = c
			}
			col++
		}
		if col > cols {
			cols = col
		}
	}
	return cells, len(lines), cols, true
}
