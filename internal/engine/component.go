package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Component interface {
	SetEntity(e *Entity)
	GetEntity() *Entity
}

// Drawer is implemented by components with a render payload. world is the
// owning entity's world matrix.
type Drawer interface {
	Draw(world rl.Matrix)
}

// Unloader is implemented by components holding GPU resources.
type Unloader interface {
	Unload()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	entity *Entity
}

func (b *BaseComponent) SetEntity(e *Entity) {
	b.entity = e
}

func (b *BaseComponent) GetEntity() *Entity {
	return b.entity
}
