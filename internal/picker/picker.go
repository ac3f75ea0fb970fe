package picker

import (
	"sort"

	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultMaxDistance bounds how far along the pick ray hits are accepted.
const DefaultMaxDistance float32 = 1000

// Hit is one intersection of the pick ray with pickable geometry.
type Hit struct {
	Entity   *engine.Entity
	Distance float32
	Point    rl.Vector3
}

// NDC maps a pointer position in pixels to normalized device coordinates,
// with +Y pointing up.
func NDC(px, py, width, height float32) rl.Vector2 {
	if width <= 0 || height <= 0 {
		return rl.Vector2{}
	}
	return rl.Vector2{
		X: (px/width)*2 - 1,
		Y: -(py/height)*2 + 1,
	}
}

// RayFromNDC builds a world-space ray through ndc for camera. The returned
// direction is unit length so hit parameters are world distances.
func RayFromNDC(ndc rl.Vector2, camera rl.Camera3D, aspect float32) rl.Ray {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(camera.Target, camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, camera.Up))
	up := rl.Vector3CrossProduct(right, forward)

	if camera.Projection == rl.CameraOrthographic {
		// Fovy is the height of the view volume in world units.
		halfH := camera.Fovy / 2
		offset := rl.Vector3Add(
			rl.Vector3Scale(right, ndc.X*halfH*aspect),
			rl.Vector3Scale(up, ndc.Y*halfH),
		)
		return rl.Ray{Position: rl.Vector3Add(camera.Position, offset), Direction: forward}
	}

	halfH := math32.Tan(camera.Fovy * rl.Deg2rad / 2)
	dir := rl.Vector3Add(forward, rl.Vector3Add(
		rl.Vector3Scale(right, ndc.X*halfH*aspect),
		rl.Vector3Scale(up, ndc.Y*halfH),
	))
	return rl.Ray{Position: camera.Position, Direction: rl.Vector3Normalize(dir)}
}

// Picker casts rays from viewport coordinates into candidate sets. It holds
// no scene state and never modifies what it tests.
type Picker struct {
	Width       float32
	Height      float32
	MaxDistance float32
}

func New(width, height float32) *Picker {
	return &Picker{Width: width, Height: height, MaxDistance: DefaultMaxDistance}
}

// SetViewport updates the viewport size used for NDC conversion.
func (p *Picker) SetViewport(width, height float32) {
	p.Width = width
	p.Height = height
}

// Ray returns the world ray under the given pointer position.
func (p *Picker) Ray(screenX, screenY float32, camera rl.Camera3D) rl.Ray {
	aspect := float32(1)
	if p.Height > 0 {
		aspect = p.Width / p.Height
	}
	return RayFromNDC(NDC(screenX, screenY, p.Width, p.Height), camera, aspect)
}

// Pick returns every hit under the pointer across sets, nearest first. With
// recursive set, whole subtrees of each candidate are tested; otherwise only
// the candidates themselves.
func (p *Picker) Pick(screenX, screenY float32, camera rl.Camera3D, recursive bool, sets ...[]*engine.Entity) []Hit {
	return p.PickRay(p.Ray(screenX, screenY, camera), recursive, sets...)
}

// PickRay is Pick for a ray already in world space.
func (p *Picker) PickRay(ray rl.Ray, recursive bool, sets ...[]*engine.Entity) []Hit {
	maxT := p.MaxDistance
	if maxT <= 0 {
		maxT = DefaultMaxDistance
	}

	var hits []Hit
	seen := make(map[uint64]struct{})
	test := func(e *engine.Entity) {
		if _, ok := seen[e.UID]; ok {
			return
		}
		seen[e.UID] = struct{}{}
		if hit, ok := intersect(e, ray, maxT); ok {
			hits = append(hits, hit)
		}
	}

	for _, set := range sets {
		for _, candidate := range set {
			if candidate == nil || !candidate.IsActiveInHierarchy() {
				continue
			}
			if !recursive {
				test(candidate)
				continue
			}
			candidate.Walk(func(e *engine.Entity) bool {
				if !e.Active {
					return false
				}
				test(e)
				return true
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersect tests every pickable component of e and keeps the nearest hit.
func intersect(e *engine.Entity, ray rl.Ray, maxT float32) (Hit, bool) {
	var shapes []raycast.Shape
	for _, c := range e.Components() {
		if pk, ok := c.(components.Pickable); ok {
			if s := pk.Shape(); s != nil {
				shapes = append(shapes, s)
			}
		}
	}
	if len(shapes) == 0 {
		return Hit{}, false
	}

	origin, dir := raycast.ToLocal(ray, rl.MatrixInvert(e.WorldMatrix()))
	best := maxT
	found := false
	for _, s := range shapes {
		if t, ok := s.IntersectRay(origin, dir, best); ok {
			best = t
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return Hit{
		Entity:   e,
		Distance: best,
		Point:    rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, best)),
	}, true
}
