// Package ecs provides ECS adapters for treemorph scene events.
//
// The primary adapter is [NewDonburiStore], which bridges treemorph events
// (mode changes, hand found/lost, theme switches) into a [Donburi] world as
// typed events. Subscribe to [SceneEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
