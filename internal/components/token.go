package components

import (
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Token is a flat image quad in the local XY plane. Its image is shown on the
// -Z side; the billboard engine turns it about Y to put that side toward the
// camera.
type Token struct {
	engine.BaseComponent
	Texture rl.Texture2D
	Width   float32
	Height  float32
	Tint    rl.Color

	model  rl.Model
	loaded bool
}

// NewToken sizes the quad to height world units, keeping the texture aspect.
func NewToken(texture rl.Texture2D, height float32) *Token {
	width := height
	if texture.Height > 0 {
		width = height * float32(texture.Width) / float32(texture.Height)
	}
	return &Token{Texture: texture, Width: width, Height: height, Tint: rl.White}
}

func (t *Token) Shape() raycast.Shape {
	return raycast.Quad{Width: t.Width, Height: t.Height}
}

func (t *Token) ensureModel() {
	if t.loaded {
		return
	}
	t.model = rl.LoadModelFromMesh(rl.GenMeshPlane(t.Width, t.Height, 1, 1))
	t.model.Materials.Maps.Texture = t.Texture
	t.loaded = true
}

func (t *Token) Draw(world rl.Matrix) {
	t.ensureModel()

	// GenMeshPlane lies in XZ facing +Y. Stand it up facing +Z, then turn it
	// to -Z so the image reads upright and unmirrored from that side.
	stand := rl.MatrixMultiply(rl.MatrixRotateX(90*rl.Deg2rad), rl.MatrixRotateY(180*rl.Deg2rad))
	t.model.Transform = rl.MatrixMultiply(stand, world)
	rl.DisableBackfaceCulling()
	rl.DrawModel(t.model, rl.Vector3Zero(), 1.0, t.Tint)
	rl.EnableBackfaceCulling()
}

func (t *Token) Unload() {
	if t.loaded {
		rl.UnloadModel(t.model)
		t.loaded = false
	}
	rl.UnloadTexture(t.Texture)
}
