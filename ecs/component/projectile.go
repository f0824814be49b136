package component

import "github.com/jakecoffman/cp"

// Projectile travels in a straight line until it hits a wall, hits a target,
// or exceeds MaxRange.
type Projectile struct {
	Vel      cp.Vector
	MaxRange float64
	Traveled float64
	Damage   int
}

var ProjectileComponent = NewComponent[Projectile]()
