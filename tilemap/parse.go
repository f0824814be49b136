package tilemap

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Parse builds a map from rows of runes. The legend maps wall runes (as
// one-character strings) to material ids; '.' and ' ' are empty, 'P' marks
// the player spawn and reads as empty. Unknown runes are an error so a level
// typo fails at load instead of rendering as a hole.
func Parse(rows []string, legend map[string]int) (*Map, cp.Vector, error) {
	if len(rows) == 0 {
		return nil, cp.Vector{}, fmt.Errorf("tilemap: no rows")
	}

	width := len([]rune(rows[0]))
	height := len(rows)
	cells := make([]Cell, 0, width*height)
	var spawn cp.Vector
	foundSpawn := false

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, cp.Vector{}, fmt.Errorf("tilemap: row %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			switch r {
			case '.', ' ':
				cells = append(cells, Cell{})
			case 'P':
				if foundSpawn {
					return nil, cp.Vector{}, fmt.Errorf("tilemap: multiple player spawns")
				}
				foundSpawn = true
				spawn = cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				cells = append(cells, Cell{})
			default:
				mat, ok := legend[string(r)]
				if !ok {
					return nil, cp.Vector{}, fmt.Errorf("tilemap: unknown rune %q at %d,%d", r, x, y)
				}
				cells = append(cells, Cell{Wall: true, Material: Material(mat)})
			}
		}
	}

	if !foundSpawn {
		return nil, cp.Vector{}, fmt.Errorf("tilemap: no player spawn")
	}

	m, err := New(width, height, cells)
	if err != nil {
		return nil, cp.Vector{}, err
	}
	return m, spawn, nil
}
