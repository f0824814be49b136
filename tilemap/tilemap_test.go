package tilemap

import (
	"testing"
)

func gridFromRows(t *testing.T, rows []string) *Map {
	t.Helper()
	cells := make([]Cell, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		for _, r := range row {
			if r == '#' {
				cells = append(cells, Cell{Wall: true, Material: 1})
			} else {
				cells = append(cells, Cell{})
			}
		}
	}
	m, err := New(len(rows[0]), len(rows), cells)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		cells  int
	}{
		{"zero_width", 0, 3, 0},
		{"negative_height", 3, -1, 9},
		{"cell_count_mismatch", 3, 3, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.width, c.height, make([]Cell, c.cells)); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}

func TestCellAtOutOfRangeIsBoundaryWall(t *testing.T) {
	m := gridFromRows(t, []string{
		"###",
		"#.#",
		"###",
	})

	cases := []struct {
		name string
		x, y int
	}{
		{"negative_x", -1, 1},
		{"negative_y", 1, -1},
		{"past_width", 3, 1},
		{"past_height", 1, 3},
		{"far_out", 100, -100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cell := m.CellAt(c.x, c.y)
			if !cell.Wall || cell.Material != MaterialBoundary {
				t.Fatalf("out-of-range cell must be a boundary wall, got %+v", cell)
			}
		})
	}

	if m.IsWall(1, 1) {
		t.Fatalf("interior cell should be empty")
	}
	if !m.IsWall(0, 0) {
		t.Fatalf("corner should be a wall")
	}
}

func TestIsWallAtUsesCellContainingPoint(t *testing.T) {
	m := gridFromRows(t, []string{
		"###",
		"#.#",
		"###",
	})
	if m.IsWallAt(1.5, 1.5) {
		t.Fatalf("point inside open cell should not be a wall")
	}
	if !m.IsWallAt(0.99, 1.5) {
		t.Fatalf("point just inside wall cell should be a wall")
	}
	if !m.IsWallAt(-0.5, 1.5) {
		t.Fatalf("point outside the grid should read as wall")
	}
}

func TestParse(t *testing.T) {
	legend := map[string]int{"#": 1, "=": 2}

	t.Run("spawn_and_materials", func(t *testing.T) {
		m, spawn, err := Parse([]string{
			"####",
			"#P=#",
			"####",
		}, legend)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if spawn.X != 1.5 || spawn.Y != 1.5 {
			t.Fatalf("spawn should be cell center, got %v", spawn)
		}
		if m.IsWall(1, 1) {
			t.Fatalf("spawn cell must be empty")
		}
		if got := m.CellAt(2, 1); !got.Wall || got.Material != 2 {
			t.Fatalf("legend material not applied, got %+v", got)
		}
	})

	errCases := []struct {
		name string
		rows []string
	}{
		{"no_rows", nil},
		{"ragged", []string{"####", "#P#", "####"}},
		{"unknown_rune", []string{"####", "#P?#", "####"}},
		{"no_spawn", []string{"####", "#..#", "####"}},
		{"two_spawns", []string{"####", "#PP#", "####"}},
	}
	for _, c := range errCases {
		t.Run(c.name, func(t *testing.T) {
			if _, _, err := Parse(c.rows, legend); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}
