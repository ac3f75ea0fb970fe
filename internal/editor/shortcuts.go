package editor

import (
	"tokenstage/internal/components"
	"tokenstage/internal/gizmo"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shortcut binds a key to an editor action.
type Shortcut struct {
	Key    int32
	Label  string
	Action func(e *Editor)
}

// Shortcuts lists every keyboard binding, in the order shown in the help bar.
var Shortcuts = []Shortcut{
	{rl.KeyW, "Move", func(e *Editor) { e.Selection.SetGizmoMode(gizmo.Translate) }},
	{rl.KeyE, "Rotate", func(e *Editor) { e.Selection.SetGizmoMode(gizmo.Rotate) }},
	{rl.KeyR, "Scale", func(e *Editor) { e.Selection.SetGizmoMode(gizmo.Scale) }},
	{rl.KeyL, "Point light", func(e *Editor) { e.AddPointLight() }},
	{rl.KeyK, "Spot light", func(e *Editor) { e.AddSpotLight() }},
	{rl.KeyOne, "Cube", func(e *Editor) { e.AddPrimitive(components.PrimitiveCube) }},
	{rl.KeyTwo, "Sphere", func(e *Editor) { e.AddPrimitive(components.PrimitiveSphere) }},
	{rl.KeyThree, "Plane", func(e *Editor) { e.AddPrimitive(components.PrimitivePlane) }},
	{rl.KeyFour, "Cylinder", func(e *Editor) { e.AddPrimitive(components.PrimitiveCylinder) }},
	{rl.KeyF, "Focus", func(e *Editor) { e.FocusSelection() }},
	{rl.KeyEscape, "Deselect", func(e *Editor) { e.Selection.Detach() }},
}

// HandleKey runs the shortcut bound to key. It reports whether one matched.
func (e *Editor) HandleKey(key int32) bool {
	for _, s := range Shortcuts {
		if s.Key == key {
			s.Action(e)
			return true
		}
	}
	return false
}
