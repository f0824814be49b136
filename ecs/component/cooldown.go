package component

// Cooldown gates an entity's trigger actions (player shooting, interaction)
// for Seconds.
type Cooldown struct {
	Seconds float64
}

// Invulnerable is a post-hit damage immunity window.
type Invulnerable struct {
	Seconds float64
}

var CooldownComponent = NewComponent[Cooldown]()
var InvulnerableComponent = NewComponent[Invulnerable]()
