package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees, applied X then Y then Z
	Scale    rl.Vector3
}

// Entity is a node in the scene graph. Its UID is the identity every
// registry and lookup keys on; names are for display only.
type Entity struct {
	UID        uint64
	Name       string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *Entity
	Children   []*Entity
	components []Component
}

func NewEntity(name string) *Entity {
	return &Entity{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*Entity, 0),
	}
}

func (e *Entity) AddComponent(c Component) {
	c.SetEntity(e)
	e.components = append(e.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T any](e *Entity) T {
	var zero T
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (e *Entity) Components() []Component {
	return e.components
}

func (e *Entity) AddChild(child *Entity) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	child.Scene = e.Scene
	e.Children = append(e.Children, child)
}

func (e *Entity) RemoveChild(child *Entity) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// IsActiveInHierarchy reports whether the entity and all of its ancestors are active.
func (e *Entity) IsActiveInHierarchy() bool {
	for n := e; n != nil; n = n.Parent {
		if !n.Active {
			return false
		}
	}
	return true
}

// Walk visits e and every descendant depth first. Returning false from fn
// skips that entity's children.
func (e *Entity) Walk(fn func(*Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// LocalMatrix combines scale -> rotate (X, Y, Z) -> translate.
func (e *Entity) LocalMatrix() rl.Matrix {
	t := e.Transform
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rotX := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

func (e *Entity) WorldMatrix() rl.Matrix {
	m := e.LocalMatrix()
	for p := e.Parent; p != nil; p = p.Parent {
		m = rl.MatrixMultiply(m, p.LocalMatrix())
	}
	return m
}

func (e *Entity) WorldPosition() rl.Vector3 {
	if e.Parent == nil {
		return e.Transform.Position
	}
	return rl.Vector3Transform(e.Transform.Position, e.Parent.WorldMatrix())
}

func (e *Entity) WorldScale() rl.Vector3 {
	s := e.Transform.Scale
	for p := e.Parent; p != nil; p = p.Parent {
		s = rl.Vector3Multiply(s, p.Transform.Scale)
	}
	return s
}

// Root returns the top-most ancestor.
func (e *Entity) Root() *Entity {
	n := e
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
