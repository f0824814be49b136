package component

// PlayerTag marks the single player/camera entity.
type PlayerTag struct{}

// EnemyTag marks AI-driven enemies.
type EnemyTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
var EnemyTagComponent = NewComponent[EnemyTag]()
