package component

// Clip describes one animation strip on an entity's sheet.
type Clip struct {
	Name   string
	Row    int
	Frames int
	FPS    float64
	Loop   bool
}

// Animator is derived presentation state: which clip is playing and where.
// It is safe to recompute from AI state at any time and is never
// authoritative for the simulation.
type Animator struct {
	Clips   map[string]Clip
	Current string
	Frame   int
	Timer   float64
	Playing bool
}

// Play switches to the named clip, restarting it if it differs from the
// current one.
func (a *Animator) Play(name string) {
	if a == nil || a.Current == name {
		return
	}
	if _, ok := a.Clips[name]; !ok {
		return
	}
	a.Current = name
	a.Frame = 0
	a.Timer = 0
	a.Playing = true
}

var AnimatorComponent = NewComponent[Animator]()
