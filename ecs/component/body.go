package component

// Body is a collision bounding circle.
type Body struct {
	Radius float64
}

var BodyComponent = NewComponent[Body]()
