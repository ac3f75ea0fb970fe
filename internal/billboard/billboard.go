// Package billboard turns image tokens about Y so they face the camera.
package billboard

import (
	"tokenstage/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source lists the entities to orient.
type Source interface {
	Billboards() []*engine.Entity
}

// Authority tells the engine which entity the user is rotating by hand.
type Authority interface {
	IsEntityUnderManualRotation(e *engine.Entity) bool
}

// Yaw returns the rotation about Y, in radians within [0, 2Pi), that turns a
// token's visible face toward camera. Tokens show their image on local -Z, so
// the heading toward the camera is offset by a half turn. Only the XZ
// components are used; a camera straight above the token yields Pi.
func Yaw(camera, token rl.Vector3) float32 {
	dx := camera.X - token.X
	dz := camera.Z - token.Z
	yaw := math32.Atan2(dx, dz) + math32.Pi
	if yaw >= 2*math32.Pi {
		yaw -= 2 * math32.Pi
	}
	return yaw
}

type Engine struct {
	source    Source
	authority Authority
}

// New creates an engine. authority may be nil, in which case nothing is
// ever suppressed.
func New(source Source, authority Authority) *Engine {
	return &Engine{source: source, authority: authority}
}

// Update writes the facing yaw, in degrees, into Rotation.Y of every
// billboard not currently under manual rotation. X and Z rotation are left
// alone. It returns how many entities were written.
func (e *Engine) Update(cameraPos rl.Vector3) int {
	written := 0
	for _, b := range e.source.Billboards() {
		if e.authority != nil && e.authority.IsEntityUnderManualRotation(b) {
			continue
		}
		b.Transform.Rotation.Y = Yaw(cameraPos, b.WorldPosition()) * rl.Rad2deg
		written++
	}
	return written
}
