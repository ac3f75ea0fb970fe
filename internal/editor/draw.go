package editor

import (
	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorSelectionWire = rl.Yellow
	colorGrid          = rl.NewColor(60, 60, 75, 255)
)

// Draw renders the scene, helpers, selection outline and gizmo, then the UI.
// Call between BeginDrawing and EndDrawing.
func (e *Editor) Draw() {
	cam := e.Camera.Camera3D()
	aspect := float32(1)
	if e.Picker.Height > 0 {
		aspect = e.Picker.Width / e.Picker.Height
	}
	frustum := ExtractFrustum(cam, aspect)

	rl.BeginMode3D(cam)
	rl.DrawGrid(20, 1)
	for _, root := range e.Scene.Entities {
		e.drawEntity(root, &frustum)
	}
	e.drawSelection()
	e.Gizmo.Draw()
	rl.EndMode3D()

	e.DrawUI()
}

func (e *Editor) drawEntity(ent *engine.Entity, frustum *Frustum) {
	if !ent.Active {
		return
	}
	world := ent.WorldMatrix()
	for _, c := range ent.Components() {
		d, ok := c.(engine.Drawer)
		if !ok {
			continue
		}
		if pk, ok := c.(components.Pickable); ok && !visible(pk.Shape(), world, frustum) {
			continue
		}
		d.Draw(world)
	}
	for _, child := range ent.Children {
		e.drawEntity(child, frustum)
	}
}

// visible culls by the bounding sphere of a shape's world box.
func visible(s raycast.Shape, world rl.Matrix, frustum *Frustum) bool {
	if s == nil {
		return true
	}
	box := raycast.EmptyAABB()
	for _, c := range corners(s.Bounds()) {
		box = box.Grow(rl.Vector3Transform(c, world))
	}
	radius := rl.Vector3Length(box.Size()) / 2
	return frustum.ContainsSphere(box.Center(), radius)
}

func (e *Editor) drawSelection() {
	root := e.Selection.Current().Root
	if root == nil {
		return
	}
	if e.Registry.IsLight(root) {
		// The helper already draws the light; ring it instead of boxing it
		pos := root.WorldPosition()
		rl.DrawSphereWires(pos, 0.45, 8, 8, colorSelectionWire)
		return
	}
	if b, ok := WorldBounds(root); ok {
		rl.DrawBoundingBox(rl.BoundingBox{Min: b.Min, Max: b.Max}, colorSelectionWire)
	}
}
