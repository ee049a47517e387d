package ecs

import (
	"github.com/phanxgames/treemorph"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for treemorph scene events.
var SceneEventType = events.NewEventType[treemorph.Event]()

// ModeComponent mirrors the latest classified mode on an entity so systems
// can query it without subscribing to events.
var ModeComponent = donburi.NewComponentType[treemorph.Mode]()

type donburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType and can be consumed with events.Subscribe and
// ProcessEvents. The store also creates one entity carrying ModeComponent
// and keeps it in sync with mode changes.
func NewDonburiStore(world donburi.World) treemorph.EventSink {
	e := world.Create(ModeComponent)
	ModeComponent.SetValue(world.Entry(e), treemorph.DefaultMode)
	return &donburiStore{world: world, entity: e}
}

func (s *donburiStore) EmitEvent(event treemorph.Event) {
	if event.Type == treemorph.EventModeChange && s.world.Valid(s.entity) {
		ModeComponent.SetValue(s.world.Entry(s.entity), event.Mode)
	}
	SceneEventType.Publish(s.world, event)
}

// Mode returns the mode mirrored on the store's entity, or DefaultMode if
// there is none.
func Mode(world donburi.World) treemorph.Mode {
	entry, ok := ModeComponent.First(world)
	if !ok {
		return treemorph.DefaultMode
	}
	return *ModeComponent.Get(entry)
}
