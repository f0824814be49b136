package component

import "github.com/jakecoffman/cp"

// AI is per-enemy tuning loaded from the enemy spec. Distances are in map
// units, times in seconds.
type AI struct {
	MoveSpeed    float64
	DetectRadius float64
	AttackRadius float64
	ArriveRadius float64

	IdleTime       float64
	GraceTime      float64
	AttackCooldown float64
	DespawnTime    float64

	ContactDamage    int
	ProjectileSpeed  float64
	ProjectileDamage int
	ProjectileRange  float64

	// Script names an optional tengo behavior that replaces the built-in
	// transition function for this enemy kind.
	Script string

	Waypoints []cp.Vector
}

var AIComponent = NewComponent[AI]()
