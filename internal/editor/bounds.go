package editor

import (
	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WorldBounds is the world-space box around every pickable shape in root's
// active subtree.
func WorldBounds(root *engine.Entity) (raycast.AABB, bool) {
	box := raycast.EmptyAABB()
	found := false
	root.Walk(func(e *engine.Entity) bool {
		if !e.Active {
			return false
		}
		world := e.WorldMatrix()
		for _, c := range e.Components() {
			pk, ok := c.(components.Pickable)
			if !ok || pk.Shape() == nil {
				continue
			}
			local := pk.Shape().Bounds()
			for _, corner := range corners(local) {
				box = box.Grow(rl.Vector3Transform(corner, world))
			}
			found = true
		}
		return true
	})
	return box, found
}

func corners(b raycast.AABB) [8]rl.Vector3 {
	return [8]rl.Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}
