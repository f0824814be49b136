// Package raycast walks rays through the grid one cell boundary at a time
// (DDA) and reports what they hit. It backs both the per-column wall pass
// and the AI line-of-sight queries.
package raycast

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/tilemap"
)

// Side reports which cell boundary a ray crossed when it hit.
type Side uint8

const (
	SideX Side = iota // vertical boundary, constant x
	SideY             // horizontal boundary, constant y
)

// Hit is one wall intersection. Dist is the raw distance along the ray, not
// the camera-plane projection: the projection path keeps its fisheye on
// purpose, and line-of-sight comparisons want true geometric distance anyway.
type Hit struct {
	Dist     float64
	Side     Side
	Material tilemap.Material
	// WallFrac is the fractional position along the wall face, used by the
	// compositor for texture column selection.
	WallFrac float64
	Pos      cp.Vector
	CellX    int
	CellY    int
}

// Caster casts rays against one map. Stateless per frame: column results are
// recomputed from scratch every frame since the camera moves continuously.
type Caster struct {
	level    *tilemap.Map
	fov      float64
	maxSteps int
}

// NewCaster builds a caster for the map. The step cap is derived from the
// map diagonal; it is a loop guard, not an error surface.
func NewCaster(m *tilemap.Map, fov float64) *Caster {
	steps := int(math.Ceil(m.Diagonal())) * 2
	if steps < 4 {
		steps = 4
	}
	return &Caster{level: m, fov: fov, maxSteps: steps}
}

// FOV returns the horizontal field of view in radians.
func (c *Caster) FOV() float64 {
	if c == nil {
		return 0
	}
	return c.fov
}

// ColumnAngle returns the world angle of screen column i out of w, sweeping
// left to right across the field of view.
func ColumnAngle(facing, fov float64, i, w int) float64 {
	return facing + fov/2 - (float64(i)/float64(w))*fov
}

// CastColumns casts one ray per screen column and returns hits indexed
// 0..w-1. Every column hits something: out-of-range cells read as boundary
// walls, so the worst case is a hit on the map edge.
func (c *Caster) CastColumns(origin cp.Vector, facing float64, w int) []Hit {
	if c == nil || w <= 0 {
		return nil
	}
	hits := make([]Hit, w)
	for i := 0; i < w; i++ {
		angle := ColumnAngle(facing, c.fov, i, w)
		hit, ok := c.CastSingle(origin, cp.ForAngle(angle))
		if !ok {
			// step cap exhausted; terminate the column at max range
			hit.Dist = c.level.Diagonal()
			hit.Pos = origin.Add(cp.ForAngle(angle).Mult(hit.Dist))
		}
		hits[i] = hit
	}
	return hits
}

// CastSingle walks a single ray from origin along dir until it enters a wall
// cell. Returns false for degenerate directions or when the step cap runs
// out before a wall (the ray then silently ends at max range).
func (c *Caster) CastSingle(origin, dir cp.Vector) (Hit, bool) {
	if c == nil || (dir.X == 0 && dir.Y == 0) {
		return Hit{}, false
	}

	deltaX := math.Abs(1 / dir.X) // +Inf for axis-aligned rays, which is fine
	deltaY := math.Abs(1 / dir.Y)

	cellX := int(math.Floor(origin.X))
	cellY := int(math.Floor(origin.Y))

	stepX, stepY := 1, 1
	var sideX, sideY float64
	if dir.X < 0 {
		stepX = -1
		sideX = (origin.X - float64(cellX)) * deltaX
	} else {
		sideX = (float64(cellX) + 1 - origin.X) * deltaX
	}
	if dir.Y < 0 {
		stepY = -1
		sideY = (origin.Y - float64(cellY)) * deltaY
	} else {
		sideY = (float64(cellY) + 1 - origin.Y) * deltaY
	}

	for i := 0; i < c.maxSteps; i++ {
		var side Side
		var dist float64
		if sideX < sideY {
			side = SideX
			cellX += stepX
			dist = sideX
			sideX += deltaX
		} else {
			side = SideY
			cellY += stepY
			dist = sideY
			sideY += deltaY
		}

		cell := c.level.CellAt(cellX, cellY)
		if !cell.Wall {
			continue
		}

		pos := origin.Add(dir.Mult(dist))
		var frac float64
		if side == SideX {
			frac = pos.Y - math.Floor(pos.Y)
		} else {
			frac = pos.X - math.Floor(pos.X)
		}
		return Hit{
			Dist:     dist,
			Side:     side,
			Material: cell.Material,
			WallFrac: frac,
			Pos:      pos,
			CellX:    cellX,
			CellY:    cellY,
		}, true
	}
	return Hit{}, false
}

// LineOfSight reports whether no wall intervenes between the two points. The
// cast succeeds only if the first wall hit lies at or beyond the target
// distance.
func (c *Caster) LineOfSight(from, to cp.Vector) bool {
	d := from.Distance(to)
	if d == 0 {
		return true
	}
	dir := to.Sub(from).Mult(1 / d)
	hit, ok := c.CastSingle(from, dir)
	if !ok {
		return true
	}
	return hit.Dist >= d-1e-9
}
