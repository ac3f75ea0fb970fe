package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FocusDuration is how long Focus takes to glide to a new target, in seconds.
const FocusDuration float32 = 0.3

// OrbitInput is one frame of navigation input.
type OrbitInput struct {
	Rotate rl.Vector2 // mouse delta with the orbit button held
	Pan    rl.Vector2 // mouse delta with the pan button held
	Zoom   float32    // wheel movement, positive zooms in
}

// focusAnim holds the target X/Y/Z and distance tweens of an active Focus.
type focusAnim struct {
	tweens [4]*gween.Tween
	done   [4]bool
}

// Orbit circles Target at Distance. Yaw and Pitch are in degrees; yaw 0
// puts the camera on +Z looking toward -Z.
type Orbit struct {
	Target   rl.Vector3
	Yaw      float32
	Pitch    float32
	Distance float32
	Fovy     float32

	// Enabled gates user navigation. Focus animations still run while disabled.
	Enabled bool

	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32

	focus *focusAnim
}

func New(target rl.Vector3, distance float32) *Orbit {
	return &Orbit{
		Target:      target,
		Yaw:         30,
		Pitch:       25,
		Distance:    distance,
		Fovy:        45,
		Enabled:     true,
		RotateSpeed: 0.3,
		PanSpeed:    0.0015,
		ZoomSpeed:   0.1,
		MinDistance: 1,
		MaxDistance: 200,
	}
}

// Update advances any focus animation, then applies input when enabled.
func (c *Orbit) Update(dt float32, in OrbitInput) {
	c.advanceFocus(dt)
	if !c.Enabled {
		return
	}

	c.Yaw -= in.Rotate.X * c.RotateSpeed
	c.Pitch += in.Rotate.Y * c.RotateSpeed
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	if in.Pan.X != 0 || in.Pan.Y != 0 {
		right, up := c.basis()
		scale := c.Distance * c.PanSpeed
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(right, -in.Pan.X*scale))
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(up, in.Pan.Y*scale))
		c.focus = nil
	}

	if in.Zoom != 0 {
		c.Distance *= 1 - in.Zoom*c.ZoomSpeed
		c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
		c.focus = nil
	}
}

// Position is the camera eye in world space.
func (c *Orbit) Position() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	offset := rl.Vector3{
		X: c.Distance * math32.Cos(pitch) * math32.Sin(yaw),
		Y: c.Distance * math32.Sin(pitch),
		Z: c.Distance * math32.Cos(pitch) * math32.Cos(yaw),
	}
	return rl.Vector3Add(c.Target, offset)
}

func (c *Orbit) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Focus glides Target to target and Distance to distance over
// FocusDuration. A non-positive distance keeps the current one.
func (c *Orbit) Focus(target rl.Vector3, distance float32) {
	if distance <= 0 {
		distance = c.Distance
	}
	distance = min(max(distance, c.MinDistance), c.MaxDistance)
	c.focus = &focusAnim{tweens: [4]*gween.Tween{
		gween.New(c.Target.X, target.X, FocusDuration, ease.OutCubic),
		gween.New(c.Target.Y, target.Y, FocusDuration, ease.OutCubic),
		gween.New(c.Target.Z, target.Z, FocusDuration, ease.OutCubic),
		gween.New(c.Distance, distance, FocusDuration, ease.OutCubic),
	}}
}

// Focusing reports whether a Focus animation is still running.
func (c *Orbit) Focusing() bool {
	return c.focus != nil
}

func (c *Orbit) advanceFocus(dt float32) {
	if c.focus == nil {
		return
	}
	vals := [4]*float32{&c.Target.X, &c.Target.Y, &c.Target.Z, &c.Distance}
	for i, tw := range c.focus.tweens {
		if c.focus.done[i] {
			continue
		}
		v, done := tw.Update(dt)
		*vals[i] = v
		c.focus.done[i] = done
	}
	if c.focus.done == [4]bool{true, true, true, true} {
		c.focus = nil
	}
}

// basis returns the camera right and up vectors.
func (c *Orbit) basis() (right, up rl.Vector3) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position()))
	right = rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1}))
	up = rl.Vector3CrossProduct(right, forward)
	return right, up
}

// PollInput reads orbit input from the mouse: right button orbits, middle
// button pans, the wheel zooms.
func PollInput() OrbitInput {
	var in OrbitInput
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.Rotate = delta
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		in.Pan = delta
	}
	in.Zoom = rl.GetMouseWheelMove()
	return in
}
