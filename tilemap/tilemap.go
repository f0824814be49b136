// Package tilemap is the static grid the whole simulation reads. A Map never
// mutates after load, so the raycaster, collision resolver, and AI all read
// it without synchronization.
package tilemap

import (
	"fmt"
	"math"
)

// Material identifies a wall surface for shading/texturing.
type Material int

const (
	// MaterialBoundary is the implicit solid material returned for
	// out-of-range queries, so rays can never escape the grid.
	MaterialBoundary Material = 0
)

// Cell is one grid square: empty, or a wall with a material.
type Cell struct {
	Wall     bool
	Material Material
}

// Map is an immutable row-major cell grid.
type Map struct {
	width  int
	height int
	cells  []Cell
}

// New builds a map from row-major cells. Rows must be rectangular.
func New(width, height int, cells []Cell) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tilemap: invalid size %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("tilemap: got %d cells for %dx%d grid", len(cells), width, height)
	}
	copied := append([]Cell(nil), cells...)
	return &Map{width: width, height: height, cells: copied}, nil
}

// Width returns the grid width in cells.
func (m *Map) Width() int {
	if m == nil {
		return 0
	}
	return m.width
}

// Height returns the grid height in cells.
func (m *Map) Height() int {
	if m == nil {
		return 0
	}
	return m.height
}

// CellAt returns the cell at integer coordinates. Out-of-range coordinates
// return a boundary wall, never an error.
func (m *Map) CellAt(x, y int) Cell {
	if m == nil || x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Cell{Wall: true, Material: MaterialBoundary}
	}
	return m.cells[y*m.width+x]
}

// IsWall reports whether the cell at integer coordinates is solid.
func (m *Map) IsWall(x, y int) bool {
	return m.CellAt(x, y).Wall
}

// IsWallAt reports whether the cell containing the world point is solid.
func (m *Map) IsWallAt(x, y float64) bool {
	return m.IsWall(int(math.Floor(x)), int(math.Floor(y)))
}

// Diagonal returns the map diagonal in cells, the natural bound for ray
// traversal step counts.
func (m *Map) Diagonal() float64 {
	if m == nil {
		return 0
	}
	return math.Hypot(float64(m.width), float64(m.height))
}
