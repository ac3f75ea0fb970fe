// Package selection binds the gizmo to at most one selectable root and runs
// the pointer picking protocol.
package selection

import (
	"log"

	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/gizmo"
	"tokenstage/internal/picker"
	"tokenstage/internal/registry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind mirrors the registry classification of the current selection.
type Kind = registry.Kind

const (
	None   = registry.KindNone
	Object = registry.KindObject
	Light  = registry.KindLight
)

// Selection is either None (Root nil) or a selected root of Kind Object or Light.
type Selection struct {
	Kind Kind
	Root *engine.Entity
}

// Is reports whether e is the selected root.
func (s Selection) Is(e *engine.Entity) bool {
	return s.Kind != None && s.Root == e
}

// CameraSource supplies the camera the pick ray is cast from.
type CameraSource interface {
	Camera3D() rl.Camera3D
}

// Controller owns the current selection. All methods run on the frame thread.
type Controller struct {
	registry *registry.Registry
	picker   *picker.Picker
	gizmo    *gizmo.Gizmo
	camera   CameraSource

	current Selection

	// Changed fires after every attach or detach with the new selection.
	Changed engine.EventWithArg[Selection]
}

func New(reg *registry.Registry, pk *picker.Picker, gz *gizmo.Gizmo, camera CameraSource) *Controller {
	return &Controller{
		registry: reg,
		picker:   pk,
		gizmo:    gz,
		camera:   camera,
	}
}

func (c *Controller) Current() Selection { return c.current }

func (c *Controller) Gizmo() *gizmo.Gizmo { return c.gizmo }

// Attach replaces any current selection with root. A root the registry does
// not know is treated as an object; nil detaches.
func (c *Controller) Attach(root *engine.Entity) {
	if root == nil {
		c.Detach()
		return
	}
	kind := c.registry.KindOf(root)
	if kind == registry.KindNone {
		kind = registry.KindObject
	}
	c.current = Selection{Kind: kind, Root: root}
	c.gizmo.SetTarget(root)
	c.Changed.Invoke(c.current)
}

// Detach clears the selection and hides the gizmo.
func (c *Controller) Detach() {
	c.current = Selection{}
	c.gizmo.ClearTarget()
	c.Changed.Invoke(c.current)
}

// HandlePointerDown picks under the pointer: light helpers first, then
// objects, otherwise the selection is cleared. Nothing happens mid-drag.
func (c *Controller) HandlePointerDown(screenX, screenY float32) {
	if c.gizmo.Dragging() {
		return
	}
	cam := c.camera.Camera3D()

	if hits := c.picker.Pick(screenX, screenY, cam, true, c.registry.Candidates(registry.LightHelpers)); len(hits) > 0 {
		if root, ok := c.registry.ResolveRoot(hits[0].Entity, registry.LightHelpers); ok {
			c.Attach(root)
		} else {
			log.Printf("selection: helper %q has no registered light", hits[0].Entity.Name)
		}
		return
	}

	if hits := c.picker.Pick(screenX, screenY, cam, true, c.registry.Candidates(registry.Objects)); len(hits) > 0 {
		if root, ok := c.registry.ResolveRoot(hits[0].Entity, registry.Objects); ok {
			c.Attach(root)
		} else {
			log.Printf("selection: %q resolves to no registered root", hits[0].Entity.Name)
		}
		return
	}

	c.Detach()
}

// PointerDown starts a gizmo drag when a handle is under the pointer, and
// otherwise falls through to picking.
func (c *Controller) PointerDown(screenX, screenY float32) {
	if c.gizmo.Dragging() {
		return
	}
	if c.gizmo.Visible() {
		cam := c.camera.Camera3D()
		ray := c.picker.Ray(screenX, screenY, cam)
		if axis := c.gizmo.PickAxis(ray); axis >= 0 {
			c.gizmo.BeginDrag(axis, ray, cam.Position)
			return
		}
	}
	c.HandlePointerDown(screenX, screenY)
}

// PointerMove drives an active drag, or updates the hovered handle.
func (c *Controller) PointerMove(screenX, screenY float32) {
	if !c.gizmo.Visible() {
		return
	}
	ray := c.picker.Ray(screenX, screenY, c.camera.Camera3D())
	if c.gizmo.Dragging() {
		c.gizmo.UpdateDrag(ray)
		return
	}
	c.gizmo.Hover(ray)
}

// PointerUp finishes an active drag.
func (c *Controller) PointerUp() {
	c.gizmo.EndDrag()
}

func (c *Controller) IsDragging() bool {
	return c.gizmo.Dragging()
}

func (c *Controller) SetGizmoMode(m gizmo.Mode) {
	c.gizmo.SetMode(m)
}

func (c *Controller) GizmoMode() gizmo.Mode {
	return c.gizmo.Mode
}

func (c *Controller) GetCurrentSelectionKind() Kind {
	return c.current.Kind
}

// GetCurrentSelectionColor returns the selected light's colour. ok is false
// when the selection is not a light.
func (c *Controller) GetCurrentSelectionColor() (rl.Color, bool) {
	light := c.selectedLight()
	if light == nil {
		return rl.Color{}, false
	}
	return light.LightColor(), true
}

// SetCurrentSelectionColor writes col onto the selected light. It reports
// false and changes nothing when no light is selected.
func (c *Controller) SetCurrentSelectionColor(col rl.Color) bool {
	light := c.selectedLight()
	if light == nil {
		return false
	}
	light.SetLightColor(col)
	return true
}

func (c *Controller) selectedLight() components.Light {
	if c.current.Kind != Light {
		return nil
	}
	return components.LightOf(c.current.Root)
}

// IsEntityUnderManualRotation reports whether e is being rotated by a gizmo
// drag right now.
func (c *Controller) IsEntityUnderManualRotation(e *engine.Entity) bool {
	return e != nil &&
		c.gizmo.Dragging() &&
		c.gizmo.Target() == e &&
		c.gizmo.Mode == gizmo.Rotate
}
