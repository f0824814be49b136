package render

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/raycast"
	"github.com/milk9111/corridor/tilemap"
)

// MarkKind classifies a minimap entity marker.
type MarkKind uint8

const (
	MarkPlayer MarkKind = iota
	MarkEnemy
	MarkProjectile
)

// MinimapCell is one wall cell on the overview map.
type MinimapCell struct {
	X        int
	Y        int
	Material tilemap.Material
}

// MinimapMark is one entity marker on the overview map.
type MinimapMark struct {
	Pos  cp.Vector
	Kind MarkKind
}

// Minimap is the top-down debug overlay draw data: wall cells, entity
// markers, and the current frame's ray fan endpoints.
type Minimap struct {
	Width  int
	Height int
	Cells  []MinimapCell
	Marks  []MinimapMark
	Origin cp.Vector
	Rays   []cp.Vector
}

// BuildMinimap collects the overlay data for one frame. Rays are thinned to
// keep the fan readable.
func BuildMinimap(level *tilemap.Map, marks []MinimapMark, camPos cp.Vector, hits []raycast.Hit) Minimap {
	mm := Minimap{
		Width:  level.Width(),
		Height: level.Height(),
		Marks:  marks,
		Origin: camPos,
	}
	for y := 0; y < level.Height(); y++ {
		for x := 0; x < level.Width(); x++ {
			if cell := level.CellAt(x, y); cell.Wall {
				mm.Cells = append(mm.Cells, MinimapCell{X: x, Y: y, Material: cell.Material})
			}
		}
	}
	const rayStride = 8
	for i := 0; i < len(hits); i += rayStride {
		mm.Rays = append(mm.Rays, hits[i].Pos)
	}
	return mm
}
