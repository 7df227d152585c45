package component

// Body marks an entity as owning a circle body in the PhysicsWorld.
type Body struct {
	Radius float64
	Tag    Tag
}

var BodyComponent = NewComponent[Body]()
