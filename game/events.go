package game

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/lilypad/ecs"
)

// EventKind identifies something that happened during one frame.
type EventKind uint8

const (
	EventHop EventKind = iota + 1
	EventCarried
	EventSafe
	EventSplash
	EventHitHazard
	EventTimerExpired
	EventCollectedStar
	EventReachedGoal
	EventRespawned
	EventWinComplete
)

var eventNames = map[EventKind]string{
	EventHop:           "hop",
	EventCarried:       "carried",
	EventSafe:          "safe",
	EventSplash:        "splash",
	EventHitHazard:     "hit-hazard",
	EventTimerExpired:  "timer-expired",
	EventCollectedStar: "collected-star",
	EventReachedGoal:   "reached-goal",
	EventRespawned:     "respawned",
	EventWinComplete:   "win-complete",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "event(?)"
}

// Event is one entry of the per-frame event list. Entity is the other party
// (the log, car or star) and Delta the displacement applied to the frog, when relevant.
type Event struct {
	Kind   EventKind
	Entity ecs.EntityId
	Delta  mgl32.Vec3
}

// Events is the ordered list of events produced by the stages of one frame.
type Events []Event

func (e *Events) Add(kind EventKind, entity ecs.EntityId) {
	*e = append(*e, Event{Kind: kind, Entity: entity})
}

func (e *Events) AddMove(kind EventKind, entity ecs.EntityId, delta mgl32.Vec3) {
	*e = append(*e, Event{Kind: kind, Entity: entity, Delta: delta})
}

// Has reports whether an event of the kind was recorded.
func (e Events) Has(kind EventKind) bool {
	for _, ev := range e {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// Of iterates the events of one kind in order.
func (e Events) Of(kind EventKind) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, ev := range e {
			if ev.Kind == kind && !yield(ev) {
				return
			}
		}
	}
}

// Kinds returns the kinds in recording order.
func (e Events) Kinds() []EventKind {
	kinds := make([]EventKind, len(e))
	for i, ev := range e {
		kinds[i] = ev.Kind
	}
	return kinds
}
