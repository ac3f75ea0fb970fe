package gizmo

import (
	"tokenstage/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return "translate"
}

const (
	Length    float32 = 2.0
	tipSize   float32 = 0.2
	hitDist   float32 = 0.3
	ringHit   float32 = 0.4
	thickness float32 = 0.06

	// MinScale is the smallest per-axis scale factor a drag can reach.
	MinScale float32 = 0.1
	// DegreesPerUnit maps drag distance along an axis to rotation.
	DegreesPerUnit float32 = 45.0
)

var axes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0}, // X - red
	{X: 0, Y: 1, Z: 0}, // Y - green
	{X: 0, Y: 0, Z: 1}, // Z - blue
}

var axisColors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

// Gizmo is the single translate/rotate/scale handle. Its mode is independent
// of its target and survives retargeting.
type Gizmo struct {
	Mode        Mode
	HoveredAxis int

	target *engine.Entity

	dragging         bool
	dragAxisIdx      int
	dragAxis         rl.Vector3
	dragInitPos      rl.Vector3
	dragInitWorldPos rl.Vector3
	dragInitRot      rl.Vector3
	dragInitScale    rl.Vector3
	dragPlaneNormal  rl.Vector3
	dragStart        float32

	DragStarted  engine.Event
	DragFinished engine.Event
}

func New() *Gizmo {
	return &Gizmo{HoveredAxis: -1, dragAxisIdx: -1}
}

// SetTarget moves the gizmo onto e and makes it visible. An active drag on a
// previous target is finished first.
func (g *Gizmo) SetTarget(e *engine.Entity) {
	if g.target != e && g.dragging {
		g.EndDrag()
	}
	g.target = e
	g.HoveredAxis = -1
}

// ClearTarget hides the gizmo.
func (g *Gizmo) ClearTarget() {
	g.SetTarget(nil)
}

func (g *Gizmo) Target() *engine.Entity { return g.target }
func (g *Gizmo) Visible() bool          { return g.target != nil }
func (g *Gizmo) Dragging() bool         { return g.dragging }

// DragAxis returns the axis index being dragged, or -1.
func (g *Gizmo) DragAxis() int {
	if !g.dragging {
		return -1
	}
	return g.dragAxisIdx
}

// SetMode switches the handle type. It is ignored mid-drag.
func (g *Gizmo) SetMode(m Mode) {
	if g.dragging {
		return
	}
	g.Mode = m
}

// PickAxis returns the index of the gizmo axis closest to ray, or -1.
func (g *Gizmo) PickAxis(ray rl.Ray) int {
	if g.target == nil {
		return -1
	}

	center := g.target.WorldPosition()
	bestDist := float32(999.0)
	bestAxis := -1

	if g.Mode == Rotate {
		radius := Length * 0.8
		for i, normal := range axes {
			// Each ring lies in the plane perpendicular to its axis
			pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, center, normal)
			if !ok {
				continue
			}
			distFromRing := math32.Abs(rl.Vector3Length(rl.Vector3Subtract(pt, center)) - radius)
			if distFromRing < ringHit && distFromRing < bestDist {
				bestDist = distFromRing
				bestAxis = i
			}
		}
		return bestAxis
	}

	for i, axis := range axes {
		_, t2, dist := closestPointBetweenRays(ray.Position, ray.Direction, center, axis)
		if t2 > 0 && t2 < Length && dist < hitDist && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

// Hover updates the highlighted axis while no drag is active.
func (g *Gizmo) Hover(ray rl.Ray) {
	if g.dragging {
		return
	}
	g.HoveredAxis = g.PickAxis(ray)
}

// BeginDrag starts manipulating axisIdx. eye is the camera position, used to
// orient the drag plane toward the viewer.
func (g *Gizmo) BeginDrag(axisIdx int, ray rl.Ray, eye rl.Vector3) bool {
	if g.target == nil || g.dragging || axisIdx < 0 || axisIdx >= len(axes) {
		return false
	}

	t := g.target
	g.dragging = true
	g.dragAxisIdx = axisIdx
	g.dragAxis = axes[axisIdx]
	g.dragInitPos = t.Transform.Position
	g.dragInitWorldPos = t.WorldPosition()
	g.dragInitRot = t.Transform.Rotation
	g.dragInitScale = t.Transform.Scale

	// Plane containing the axis, turned to face the camera as much as possible
	viewDir := rl.Vector3Normalize(rl.Vector3Subtract(g.dragInitWorldPos, eye))
	cross1 := rl.Vector3CrossProduct(viewDir, g.dragAxis)
	g.dragPlaneNormal = rl.Vector3Normalize(rl.Vector3CrossProduct(g.dragAxis, cross1))

	g.dragStart = 0
	if pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.dragInitWorldPos, g.dragPlaneNormal); ok {
		g.dragStart = rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.dragInitWorldPos), g.dragAxis)
	}

	g.DragStarted.Invoke()
	return true
}

// UpdateDrag applies the drag delta under ray to the target's local transform.
func (g *Gizmo) UpdateDrag(ray rl.Ray) {
	if !g.dragging {
		return
	}
	if g.target == nil {
		g.EndDrag()
		return
	}

	pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.dragInitWorldPos, g.dragPlaneNormal)
	if !ok {
		return
	}
	delta := rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.dragInitWorldPos), g.dragAxis) - g.dragStart

	t := g.target
	switch g.Mode {
	case Translate:
		worldDelta := rl.Vector3Scale(g.dragAxis, delta)
		t.Transform.Position = rl.Vector3Add(g.dragInitPos, parentLocalDelta(t, worldDelta))

	case Rotate:
		degrees := delta * DegreesPerUnit
		rot := g.dragInitRot
		switch g.dragAxisIdx {
		case 0:
			rot.X += degrees
		case 1:
			rot.Y += degrees
		case 2:
			rot.Z += degrees
		}
		t.Transform.Rotation = rot

	case Scale:
		factor := max(1+delta*0.5, MinScale)
		s := g.dragInitScale
		switch g.dragAxisIdx {
		case 0:
			s.X *= factor
		case 1:
			s.Y *= factor
		case 2:
			s.Z *= factor
		}
		t.Transform.Scale = s
	}
}

// EndDrag finishes the active drag and fires DragFinished.
func (g *Gizmo) EndDrag() {
	if !g.dragging {
		return
	}
	g.dragging = false
	g.dragAxisIdx = -1
	g.DragFinished.Invoke()
}

// parentLocalDelta expresses a world-space offset in e's parent space.
func parentLocalDelta(e *engine.Entity, worldDelta rl.Vector3) rl.Vector3 {
	if e.Parent == nil {
		return worldDelta
	}
	inv := rl.MatrixInvert(e.Parent.WorldMatrix())
	origin := rl.Vector3Transform(rl.Vector3Zero(), inv)
	return rl.Vector3Subtract(rl.Vector3Transform(worldDelta, inv), origin)
}

// closestPointBetweenRays finds the closest approach between two rays.
// Returns (t1, t2, distance) where t1/t2 are parameters along each ray.
func closestPointBetweenRays(a, u, b, v rl.Vector3) (t1, t2, dist float32) {
	w := rl.Vector3Subtract(a, b)
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	uw := rl.Vector3DotProduct(u, w)
	vw := rl.Vector3DotProduct(v, w)

	denom := uu*vv - uv*uv
	if denom < 1e-6 {
		return 0, 0, 999
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := rl.Vector3Add(a, rl.Vector3Scale(u, t1))
	p2 := rl.Vector3Add(b, rl.Vector3Scale(v, t2))
	dist = rl.Vector3Length(rl.Vector3Subtract(p1, p2))
	return
}

// rayPlaneIntersect returns where a ray hits a plane (defined by point + normal).
func rayPlaneIntersect(rayOrigin, rayDir, planePoint, planeNormal rl.Vector3) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(rayDir, planeNormal)
	if math32.Abs(denom) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, rayOrigin), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(rayOrigin, rl.Vector3Scale(rayDir, t)), true
}
