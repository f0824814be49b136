// Package render turns raycast output and entity state into an ordered draw
// list. The list is pure data: the ebiten collaborator rasterizes it, and the
// core never issues a graphics call.
package render

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/raycast"
	"github.com/milk9111/corridor/tilemap"
)

// WallQuad is a single shaded screen-column slice of wall.
type WallQuad struct {
	Column   int
	Top      float64
	Height   float64
	Shade    float64
	Material tilemap.Material
	WallFrac float64
	Dist     float64
}

// SpriteRun is a horizontal span of billboard columns that survived wall
// occlusion, drawn as one quad.
type SpriteRun struct {
	Texture int
	Row     int
	Frame   int
	X0      int // inclusive
	X1      int // inclusive
	Top     float64
	Height  float64
	Shade   float64
	Dist    float64
}

// Billboard is a world-space sprite to project. Scale multiplies the square
// sprite footprint.
type Billboard struct {
	Pos     cp.Vector
	Texture int
	Row     int
	Frame   int
	Scale   float64
}

// DrawList is the frame output, ordered for painter's-algorithm drawing:
// walls first, then sprite runs farthest to nearest.
type DrawList struct {
	Walls   []WallQuad
	Sprites []SpriteRun
}

// Compositor projects wall hits and billboards into screen space.
type Compositor struct {
	screenW int
	screenH int
	fov     float64
	maxDim  float64
}

func NewCompositor(screenW, screenH int, fov float64, level *tilemap.Map) *Compositor {
	maxDim := float64(level.Width())
	if h := float64(level.Height()); h > maxDim {
		maxDim = h
	}
	return &Compositor{screenW: screenW, screenH: screenH, fov: fov, maxDim: maxDim}
}

// Compose builds the frame's draw list. hits must hold one entry per screen
// column. Billboards behind walls are culled per column; overlap between
// sprites resolves by far-to-near order, not a depth buffer.
func (c *Compositor) Compose(hits []raycast.Hit, bills []Billboard, camPos cp.Vector, camAngle float64) DrawList {
	var dl DrawList
	if c == nil || len(hits) == 0 {
		return dl
	}

	dl.Walls = make([]WallQuad, 0, len(hits))
	for i, hit := range hits {
		height := c.sliceHeight(hit.Dist, 1)
		shade := c.shade(hit.Dist)
		if hit.Side == raycast.SideY {
			shade *= 0.8
		}
		dl.Walls = append(dl.Walls, WallQuad{
			Column:   i,
			Top:      (float64(c.screenH) - height) / 2,
			Height:   height,
			Shade:    shade,
			Material: hit.Material,
			WallFrac: hit.WallFrac,
			Dist:     hit.Dist,
		})
	}

	ordered := append([]Billboard(nil), bills...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return camPos.Distance(ordered[i].Pos) > camPos.Distance(ordered[j].Pos)
	})

	for _, b := range ordered {
		dl.Sprites = append(dl.Sprites, c.projectBillboard(hits, b, camPos, camAngle)...)
	}
	return dl
}

// projectBillboard maps one billboard into visible column runs.
func (c *Compositor) projectBillboard(hits []raycast.Hit, b Billboard, camPos cp.Vector, camAngle float64) []SpriteRun {
	rel := b.Pos.Sub(camPos)
	dist := rel.Length()
	if dist < 1e-6 {
		return nil
	}

	theta := normalizeAngle(rel.ToAngle() - camAngle)
	if math.Abs(theta) > c.fov/2+math.Pi/4 {
		return nil
	}

	// invert the column angle mapping: angle(i) = cam + fov/2 - (i/W)*fov
	centerCol := (0.5 - theta/c.fov) * float64(c.screenW)

	scale := b.Scale
	if scale <= 0 {
		scale = 1
	}
	height := c.sliceHeight(dist, 1.5)
	halfW := height * scale / 2
	x0 := int(math.Floor(centerCol - halfW))
	x1 := int(math.Ceil(centerCol + halfW))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > c.screenW-1 {
		x1 = c.screenW - 1
	}
	if x1 < x0 {
		return nil
	}

	top := (float64(c.screenH) - height) / 2
	shade := c.shade(dist)

	var runs []SpriteRun
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		runs = append(runs, SpriteRun{
			Texture: b.Texture,
			Row:     b.Row,
			Frame:   b.Frame,
			X0:      runStart,
			X1:      end,
			Top:     top,
			Height:  height,
			Shade:   shade,
			Dist:    dist,
		})
		runStart = -1
	}
	for x := x0; x <= x1; x++ {
		if hits[x].Dist < dist {
			flush(x - 1)
			continue
		}
		if runStart < 0 {
			runStart = x
		}
	}
	flush(x1)
	return runs
}

// sliceHeight is the original renderer's projection: screenH/(d*k - 0.5),
// clamped to the screen. No perpendicular-distance correction: the fisheye
// is a deliberate stylistic choice.
func (c *Compositor) sliceHeight(dist, k float64) float64 {
	denom := dist*k - 0.5
	if denom < 1e-6 {
		return float64(c.screenH)
	}
	h := float64(c.screenH) / denom
	if h > float64(c.screenH) {
		return float64(c.screenH)
	}
	return h
}

// shade is linear darkening with distance across the larger map dimension.
func (c *Compositor) shade(dist float64) float64 {
	if c.maxDim <= 0 {
		return 1
	}
	s := 1 - dist/c.maxDim
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
