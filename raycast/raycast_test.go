package raycast

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/tilemap"
)

func gridFromRows(t *testing.T, rows []string) *tilemap.Map {
	t.Helper()
	cells := make([]tilemap.Cell, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		for _, r := range row {
			if r == '#' {
				cells = append(cells, tilemap.Cell{Wall: true, Material: 1})
			} else {
				cells = append(cells, tilemap.Cell{})
			}
		}
	}
	m, err := tilemap.New(len(rows[0]), len(rows), cells)
	if err != nil {
		t.Fatalf("tilemap.New failed: %v", err)
	}
	return m
}

func openRoom(t *testing.T) *tilemap.Map {
	t.Helper()
	return gridFromRows(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	})
}

func TestCastSingleFaceDistance(t *testing.T) {
	caster := NewCaster(openRoom(t), math.Pi/3)

	cases := []struct {
		name     string
		origin   cp.Vector
		dir      cp.Vector
		wantDist float64
		wantSide Side
		wantCell [2]int
	}{
		{"east_to_far_wall", cp.Vector{X: 2.0, Y: 2.5}, cp.Vector{X: 1}, 2.0, SideX, [2]int{4, 2}},
		{"west_to_near_wall", cp.Vector{X: 2.5, Y: 2.5}, cp.Vector{X: -1}, 1.5, SideX, [2]int{1, 2}},
		{"south_down_rows", cp.Vector{X: 2.5, Y: 2.0}, cp.Vector{Y: 1}, 2.0, SideY, [2]int{2, 4}},
		{"north_up_rows", cp.Vector{X: 2.5, Y: 2.5}, cp.Vector{Y: -1}, 1.5, SideY, [2]int{2, 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := caster.CastSingle(c.origin, c.dir)
			if !ok {
				t.Fatalf("expected a hit")
			}
			if math.Abs(hit.Dist-c.wantDist) > 1e-9 {
				t.Fatalf("distance to wall face: want %v, got %v", c.wantDist, hit.Dist)
			}
			if hit.Side != c.wantSide {
				t.Fatalf("want side %v, got %v", c.wantSide, hit.Side)
			}
			if hit.CellX != c.wantCell[0] || hit.CellY != c.wantCell[1] {
				t.Fatalf("want cell %v, got %d,%d", c.wantCell, hit.CellX, hit.CellY)
			}
		})
	}
}

func TestCastSingleDiagonal(t *testing.T) {
	caster := NewCaster(openRoom(t), math.Pi/3)
	// 45 degrees from the room center: both boundary chains advance in
	// lockstep and the ray leaves through a corner-adjacent face.
	hit, ok := caster.CastSingle(cp.Vector{X: 2.5, Y: 2.5}, cp.ForAngle(math.Pi/4))
	if !ok {
		t.Fatalf("expected a hit")
	}
	want := 1.5 * math.Sqrt2
	if math.Abs(hit.Dist-want) > 1e-9 {
		t.Fatalf("want dist %v, got %v", want, hit.Dist)
	}
}

func TestCastSingleWallFrac(t *testing.T) {
	caster := NewCaster(openRoom(t), math.Pi/3)
	hit, ok := caster.CastSingle(cp.Vector{X: 2.5, Y: 2.25}, cp.Vector{X: 1})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if math.Abs(hit.WallFrac-0.25) > 1e-9 {
		t.Fatalf("want wall fraction 0.25, got %v", hit.WallFrac)
	}
}

func TestCastSingleDegenerateDirection(t *testing.T) {
	caster := NewCaster(openRoom(t), math.Pi/3)
	if _, ok := caster.CastSingle(cp.Vector{X: 2.5, Y: 2.5}, cp.Vector{}); ok {
		t.Fatalf("zero direction must not report a hit")
	}
}

func TestColumnAngleSweep(t *testing.T) {
	const w = 320
	fov := math.Pi / 3
	facing := 1.0

	if got := ColumnAngle(facing, fov, 0, w); math.Abs(got-(facing+fov/2)) > 1e-9 {
		t.Fatalf("leftmost column should be facing+fov/2, got %v", got)
	}
	if got := ColumnAngle(facing, fov, w, w); math.Abs(got-(facing-fov/2)) > 1e-9 {
		t.Fatalf("rightmost edge should be facing-fov/2, got %v", got)
	}
	prev := math.Inf(1)
	for i := 0; i < w; i++ {
		a := ColumnAngle(facing, fov, i, w)
		if a >= prev {
			t.Fatalf("column angles must strictly decrease left to right, broke at %d", i)
		}
		prev = a
	}
}

func TestCastColumnsAlwaysTerminates(t *testing.T) {
	caster := NewCaster(openRoom(t), math.Pi/3)
	const w = 160
	hits := caster.CastColumns(cp.Vector{X: 2.5, Y: 2.5}, 0.7, w)
	if len(hits) != w {
		t.Fatalf("want %d hits, got %d", w, len(hits))
	}
	for i, hit := range hits {
		if hit.Dist <= 0 {
			t.Fatalf("column %d has non-positive distance %v", i, hit.Dist)
		}
		if hit.Dist > openRoom(t).Diagonal() {
			t.Fatalf("column %d overshoots the map: %v", i, hit.Dist)
		}
	}
}

func TestLineOfSight(t *testing.T) {
	divided := gridFromRows(t, []string{
		"#######",
		"#..#..#",
		"#..#..#",
		"#.....#",
		"#######",
	})
	caster := NewCaster(divided, math.Pi/3)

	cases := []struct {
		name string
		from cp.Vector
		to   cp.Vector
		want bool
	}{
		{"same_point", cp.Vector{X: 1.5, Y: 1.5}, cp.Vector{X: 1.5, Y: 1.5}, true},
		{"open_row", cp.Vector{X: 1.5, Y: 3.5}, cp.Vector{X: 5.5, Y: 3.5}, true},
		{"through_divider", cp.Vector{X: 1.5, Y: 1.5}, cp.Vector{X: 5.5, Y: 1.5}, false},
		{"around_is_still_blocked", cp.Vector{X: 2.5, Y: 1.5}, cp.Vector{X: 4.5, Y: 2.5}, false},
		{"down_the_gap", cp.Vector{X: 1.5, Y: 1.5}, cp.Vector{X: 1.5, Y: 3.5}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := caster.LineOfSight(c.from, c.to); got != c.want {
				t.Fatalf("LineOfSight(%v, %v): want %v, got %v", c.from, c.to, c.want, got)
			}
		})
	}
}
