package gizmo

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw renders the handles on top of the scene. Call inside BeginMode3D/EndMode3D.
func (g *Gizmo) Draw() {
	if g.target == nil {
		return
	}

	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	defer func() {
		rl.DrawRenderBatchActive()
		rl.EnableDepthTest()
	}()

	center := g.target.WorldPosition()
	for i, axis := range axes {
		color := axisColors[i]
		if (g.dragging && g.dragAxisIdx == i) || (!g.dragging && g.HoveredAxis == i) {
			color = rl.Yellow
		}
		end := rl.Vector3Add(center, rl.Vector3Scale(axis, Length))

		switch g.Mode {
		case Translate:
			rl.DrawCylinderEx(center, end, thickness, thickness, 8, color)
			rl.DrawCubeV(end, rl.Vector3{X: tipSize, Y: tipSize, Z: tipSize}, color)
		case Rotate:
			drawRing(center, i, color)
		case Scale:
			rl.DrawCylinderEx(center, end, thickness, thickness, 8, color)
			cube := rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}
			rl.DrawCubeV(end, cube, color)
			rl.DrawCubeWiresV(end, cube, color)
		}
	}
}

// drawRing draws the rotation ring perpendicular to axis i as thick segments.
func drawRing(center rl.Vector3, i int, color rl.Color) {
	const segments = 16
	radius := Length * 0.8
	point := func(a float32) rl.Vector3 {
		c, s := radius*math32.Cos(a), radius*math32.Sin(a)
		switch i {
		case 0: // YZ plane
			return rl.Vector3{X: center.X, Y: center.Y + c, Z: center.Z + s}
		case 1: // XZ plane
			return rl.Vector3{X: center.X + c, Y: center.Y, Z: center.Z + s}
		default: // XY plane
			return rl.Vector3{X: center.X + c, Y: center.Y + s, Z: center.Z}
		}
	}
	for s := range segments {
		a0 := float32(s) / segments * 2 * math32.Pi
		a1 := float32(s+1) / segments * 2 * math32.Pi
		rl.DrawCylinderEx(point(a0), point(a1), thickness*0.7, thickness*0.7, 6, color)
	}
}
