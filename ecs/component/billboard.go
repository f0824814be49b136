package component

// Billboard is a camera-facing sprite consumed by the frame compositor.
// Texture and Row/Frame index into the render collaborator's atlas; the core
// never touches image data.
type Billboard struct {
	Texture int
	Row     int
	Frame   int
	Scale   float64
}

var BillboardComponent = NewComponent[Billboard]()
