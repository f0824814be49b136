package component

import "github.com/jakecoffman/cp"

// Pose is an entity's position in map units and facing angle in radians.
type Pose struct {
	Pos   cp.Vector
	Angle float64
}

var PoseComponent = NewComponent[Pose]()
