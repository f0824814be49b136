package component

// TTL destroys the entity when it reaches zero. Used for corpse despawn so
// death animations get to finish before removal.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
