package ecs

// UpdateFrame is handed to every system on each scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(world),
		World:     world,
	}
}

// NewUpdateFrame builds a frame outside of a Scheduler, mainly for driving a single system.
func NewUpdateFrame(dt float64, world *World) *UpdateFrame {
	return newUpdateFrame(dt, world)
}
