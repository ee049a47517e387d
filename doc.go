// Package treemorph is a gesture-driven particle engine that morphs a 3D
// point cloud between a tree, a flattened spiral galaxy and a heart.
//
// The engine has four parts that run once per frame:
//
//   - a [Generator] that builds three particle [Group]s (canopy, ground and
//     ornaments) for a [Theme], each particle carrying a base (tree)
//     position and optional scatter and heart targets;
//   - an [Interpolator] that moves every particle toward the target of the
//     active [Mode] with exponential smoothing;
//   - a [Classifier] that turns a hand-landmark [HandFrame] into a hand
//     position and a mode;
//   - a [RotationController] that accumulates the scene orientation.
//
// The classifier and the rotation controller share a [State]. Gesture
// snapshots are swapped atomically, so the classifier may run on the
// detector's goroutine (see [Tracker] and [HandFeed]) while the render loop
// reads the latest value.
//
// # Quick start
//
// [Scene] wires everything together and plugs into an [ebiten.Game]:
//
//	scene, err := treemorph.NewScene(treemorph.Config{Theme: "frost"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	renderer := treemorph.NewRenderer()
//
//	func (g *Game) Update() error        { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.renderer.Draw(s, g.scene) }
//
// Feed detections from another goroutine with a tracker:
//
//	feed := treemorph.NewHandFeed()
//	go scene.NewTracker().Run(ctx, feed)
//	feed.Publish(frame) // from the detector callback
//
// Losing the hand, closing the feed or cancelling ctx returns the scene
// to [DefaultMode].
//
// # Gestures
//
// A pinch (thumb and index tips closer than 0.05) selects [ModeHeart]. A
// closed hand (mean fingertip-to-wrist distance below 0.30) selects
// [ModeTree] and an open one (above 0.35) selects [ModeScatter]. Between
// 0.30 and 0.35 the previous mode is held. In ModeScatter, moving the hand
// toward a frame edge spins the scene.
//
// # Themes
//
// [Scene.SetTheme] regenerates every group from scratch under the new
// palette and fades the ambient tint (via [gween]).
//
// ECS integration is available through [Donburi] in treemorph/ecs.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package treemorph
