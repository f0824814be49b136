package component

// Intent is the per-frame input delivered by the input collaborator. The
// simulation reads only this, never raw device state. Forward and Strafe are
// in the player's local frame, -1..1.
type Intent struct {
	Forward  float64
	Strafe   float64
	Turn     float64
	Shoot    bool
	Interact bool
}

var IntentComponent = NewComponent[Intent]()
