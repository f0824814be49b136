// Package collision moves bounding circles against the grid with
// axis-separated sliding. Rejecting each axis independently lets entities
// slide along walls, at the documented cost of briefly sticking in concave
// diagonal junctions: the entity oscillates near the corner until one axis
// test succeeds, never ending up inside a wall. That tradeoff is kept from
// the original design rather than replaced with swept collision.
package collision

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/tilemap"
)

// Resolver resolves movement requests against one map.
type Resolver struct {
	level *tilemap.Map
}

func NewResolver(m *tilemap.Map) *Resolver {
	return &Resolver{level: m}
}

// Resolve returns the portion of delta that keeps a circle of the given
// radius out of wall cells. It is a total function: it never fails, and a
// zero request always returns zero.
func (r *Resolver) Resolve(pos cp.Vector, radius float64, delta cp.Vector) cp.Vector {
	if r == nil || (delta.X == 0 && delta.Y == 0) {
		return cp.Vector{}
	}

	// The result carries the original delta components for the accepted
	// axes, so an unobstructed move passes through bit-exact.
	var out cp.Vector
	next := pos

	if delta.X != 0 {
		tryX := cp.Vector{X: next.X + delta.X, Y: next.Y}
		if !r.blocked(tryX, radius) {
			next = tryX
			out.X = delta.X
		}
	}
	if delta.Y != 0 {
		tryY := cp.Vector{X: next.X, Y: next.Y + delta.Y}
		if !r.blocked(tryY, radius) {
			out.Y = delta.Y
		}
	}

	return out
}

// Blocked reports whether a circle at pos overlaps any wall cell.
func (r *Resolver) Blocked(pos cp.Vector, radius float64) bool {
	return r.blocked(pos, radius)
}

func (r *Resolver) blocked(pos cp.Vector, radius float64) bool {
	minX := int(math.Floor(pos.X - radius))
	maxX := int(math.Floor(pos.X + radius))
	minY := int(math.Floor(pos.Y - radius))
	maxY := int(math.Floor(pos.Y + radius))

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if !r.level.IsWall(cx, cy) {
				continue
			}
			if circleOverlapsCell(pos, radius, cx, cy) {
				return true
			}
		}
	}
	return false
}

// circleOverlapsCell tests the circle against the unit cell [cx,cx+1)x[cy,cy+1)
// via the nearest point on the cell to the circle center. Touching exactly at
// the boundary does not count as overlap.
func circleOverlapsCell(pos cp.Vector, radius float64, cx, cy int) bool {
	nearestX := clamp(pos.X, float64(cx), float64(cx)+1)
	nearestY := clamp(pos.Y, float64(cy), float64(cy)+1)
	dx := pos.X - nearestX
	dy := pos.Y - nearestY
	return dx*dx+dy*dy < radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
