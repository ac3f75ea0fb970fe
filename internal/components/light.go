package components

import (
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Light is implemented by every light marker payload.
type Light interface {
	engine.Component
	LightColor() rl.Color
	SetLightColor(c rl.Color)
}

// LightOf returns the light payload on a marker entity, or nil.
func LightOf(marker *engine.Entity) Light {
	if marker == nil {
		return nil
	}
	return engine.GetComponent[Light](marker)
}

const lightHelperRadius float32 = 0.3

// LightHelper is the visible, clickable proxy of a light marker. Light is a
// non-owning back-reference; the helper never parents or frees it.
type LightHelper struct {
	engine.BaseComponent
	Light  *engine.Entity
	Radius float32
}

func NewLightHelper(light *engine.Entity) *LightHelper {
	return &LightHelper{Light: light, Radius: lightHelperRadius}
}

func (h *LightHelper) Shape() raycast.Shape {
	return raycast.Sphere{Radius: h.Radius}
}

// Sync moves the helper onto its light.
func (h *LightHelper) Sync() {
	e := h.GetEntity()
	if e == nil || h.Light == nil {
		return
	}
	e.Transform.Position = h.Light.WorldPosition()
}

func (h *LightHelper) Draw(world rl.Matrix) {
	light := LightOf(h.Light)
	if light == nil {
		return
	}
	pos := rl.Vector3Transform(rl.Vector3Zero(), world)
	color := light.LightColor()
	rl.DrawSphere(pos, h.Radius, color)

	switch l := light.(type) {
	case *PointLight:
		rl.DrawSphereWires(pos, l.Radius, 8, 8, rl.Fade(color, 0.3))
	case *SpotLight:
		end, spread := l.Cone()
		rl.DrawCylinderWiresEx(pos, end, 0, spread, 12, rl.Fade(color, 0.5))
	}
}
