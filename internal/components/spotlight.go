package components

import (
	"tokenstage/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpotLight shines along its entity's local -Y axis, so rotating the marker
// aims the cone.
type SpotLight struct {
	engine.BaseComponent
	Color     rl.Color
	Intensity float32
	Range     float32 // cone length in world units
	Angle     float32 // cone half-angle in degrees
}

func NewSpotLight() *SpotLight {
	return &SpotLight{
		Color:     rl.White,
		Intensity: 1.0,
		Range:     15.0,
		Angle:     30.0,
	}
}

func (s *SpotLight) LightColor() rl.Color {
	return s.Color
}

func (s *SpotLight) SetLightColor(c rl.Color) {
	s.Color = c
}

// Direction returns the world-space unit vector the cone points along.
func (s *SpotLight) Direction() rl.Vector3 {
	e := s.GetEntity()
	if e == nil {
		return rl.Vector3{Y: -1}
	}
	world := e.WorldMatrix()
	origin := rl.Vector3Transform(rl.Vector3Zero(), world)
	tip := rl.Vector3Transform(rl.Vector3{Y: -1}, world)
	return rl.Vector3Normalize(rl.Vector3Subtract(tip, origin))
}

// Cone returns the world-space centre of the cone's far cap and its radius,
// from the marker position along Direction for Range units.
func (s *SpotLight) Cone() (end rl.Vector3, radius float32) {
	origin := rl.Vector3Zero()
	if e := s.GetEntity(); e != nil {
		origin = e.WorldPosition()
	}
	end = rl.Vector3Add(origin, rl.Vector3Scale(s.Direction(), s.Range))
	return end, s.Range * math32.Tan(s.Angle*rl.Deg2rad)
}
