// Package parallax is a small retained-mode 3D scene graph and the demo that
// drives it: four floors rendered side by side with diffuse-only shading,
// normal mapping, simple parallax mapping and parallax occlusion mapping.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree that is traversed once per
// frame with a [Context]. Each node kind contributes one piece of rendering
// state to its subtree and restores it on the way back up:
//
//	root := parallax.NewShaderNode("default", program,
//		parallax.NewTransformNode("floor", parallax.Transform{
//			Translate: mgl32.Vec3{1, 1, -1},
//			RotateX:   -90,
//		}.Matrix(),
//			parallax.NewMaterialNode("floor.material", material,
//				parallax.NewTextureNode("floor.diffuse", diffuse, 0, "u_diffuseTex",
//					parallax.NewRenderNode("floor.mesh", buffer),
//				),
//			),
//		),
//	)
//	err := root.Render(parallax.NewContext(device))
//
// Create nodes with the typed constructors: [NewGroup], [NewShaderNode],
// [NewTransformNode], [NewMaterialNode], [NewTextureNode], [NewLightNode],
// [NewUniformNode] and [NewRenderNode]. A node is owned by exactly one parent.
//
// # Devices
//
// Nodes never talk to a graphics API directly. They call a [Device], which
// compiles programs, uploads textures and buffers, and executes [DrawCall]s.
// The ebitendev package provides a Device on top of [Ebitengine]; the
// parallaxtest package provides a recording Device for tests.
//
// # Demo
//
// [BuildComparisonScene] assembles the four-floor scene, [App] drives it one
// frame at a time and [InteractionHandler] turns pointer drags into camera
// orbit angles.
//
// [Ebitengine]: https://ebitengine.org
package parallax
