package components

import (
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pickable is implemented by components carrying hit-test geometry in the
// owning entity's local space.
type Pickable interface {
	engine.Component
	Shape() raycast.Shape
}

type PrimitiveKind int

const (
	PrimitiveCube PrimitiveKind = iota
	PrimitiveSphere
	PrimitivePlane
	PrimitiveCylinder
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveCube:
		return "cube"
	case PrimitiveSphere:
		return "sphere"
	case PrimitivePlane:
		return "plane"
	case PrimitiveCylinder:
		return "cylinder"
	}
	return "unknown"
}

// Primitive is a generated mesh. Size is the full extent of the shape: for a
// sphere X is the diameter, for a cylinder X is the diameter and Y the height,
// for a plane Y is ignored.
type Primitive struct {
	engine.BaseComponent
	Kind  PrimitiveKind
	Color rl.Color
	Size  rl.Vector3

	model  rl.Model
	loaded bool
}

func NewPrimitive(kind PrimitiveKind, color rl.Color) *Primitive {
	size := rl.Vector3{X: 1, Y: 1, Z: 1}
	if kind == PrimitivePlane {
		size = rl.Vector3{X: 2, Z: 2}
	}
	return &Primitive{Kind: kind, Color: color, Size: size}
}

func (p *Primitive) Shape() raycast.Shape {
	switch p.Kind {
	case PrimitiveSphere:
		return raycast.Sphere{Radius: p.Size.X / 2}
	case PrimitivePlane:
		return raycast.Box{Size: rl.Vector3{X: p.Size.X, Z: p.Size.Z}}
	case PrimitiveCylinder:
		return raycast.Cylinder{Radius: p.Size.X / 2, Height: p.Size.Y}
	default:
		return raycast.Box{Size: p.Size}
	}
}

// ensureModel generates the GPU mesh on first draw, after the GL context exists.
func (p *Primitive) ensureModel() {
	if p.loaded {
		return
	}
	var mesh rl.Mesh
	switch p.Kind {
	case PrimitiveSphere:
		mesh = rl.GenMeshSphere(p.Size.X/2, 16, 16)
	case PrimitivePlane:
		mesh = rl.GenMeshPlane(p.Size.X, p.Size.Z, 1, 1)
	case PrimitiveCylinder:
		mesh = rl.GenMeshCylinder(p.Size.X/2, p.Size.Y, 16)
	default:
		mesh = rl.GenMeshCube(p.Size.X, p.Size.Y, p.Size.Z)
	}
	p.model = rl.LoadModelFromMesh(mesh)
	p.loaded = true
}

func (p *Primitive) Draw(world rl.Matrix) {
	p.ensureModel()
	p.model.Materials.Maps.Color = p.Color

	// raylib cylinders grow up from their base; recenter to match Shape.
	if p.Kind == PrimitiveCylinder {
		world = rl.MatrixMultiply(rl.MatrixTranslate(0, -p.Size.Y/2, 0), world)
	}
	p.model.Transform = world
	if p.Kind == PrimitivePlane {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	rl.DrawModel(p.model, rl.Vector3Zero(), 1.0, rl.White)
}

func (p *Primitive) Unload() {
	if p.loaded {
		rl.UnloadModel(p.model)
		p.loaded = false
	}
}
