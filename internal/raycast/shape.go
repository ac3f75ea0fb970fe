package raycast

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is pickable geometry expressed in its owner's local space. dir does
// not have to be unit length; the returned t is a parameter along it.
type Shape interface {
	IntersectRay(origin, dir rl.Vector3, maxT float32) (t float32, ok bool)
	Bounds() AABB
}

// ToLocal maps a world ray into the space described by the inverse of a
// world matrix. The local direction is left unnormalized so a parameter t
// found in local space lands on the same world point.
func ToLocal(ray rl.Ray, invWorld rl.Matrix) (origin, dir rl.Vector3) {
	origin = rl.Vector3Transform(ray.Position, invWorld)
	tip := rl.Vector3Transform(rl.Vector3Add(ray.Position, ray.Direction), invWorld)
	dir = rl.Vector3Subtract(tip, origin)
	return origin, dir
}

// Box is an axis-aligned box centered on the local origin.
type Box struct {
	Size rl.Vector3
}

func (b Box) Bounds() AABB {
	return NewAABBFromCenter(rl.Vector3Zero(), b.Size)
}

func (b Box) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	return b.Bounds().IntersectRay(origin, dir, maxT)
}

// Sphere is centered on the local origin.
type Sphere struct {
	Radius float32
}

func (s Sphere) Bounds() AABB {
	d := s.Radius * 2
	return NewAABBFromCenter(rl.Vector3Zero(), rl.Vector3{X: d, Y: d, Z: d})
}

func (s Sphere) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	a := rl.Vector3DotProduct(dir, dir)
	if a == 0 {
		return 0, false
	}
	b := 2.0 * rl.Vector3DotProduct(origin, dir)
	c := rl.Vector3DotProduct(origin, origin) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sq := math32.Sqrt(discriminant)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxT {
		return 0, false
	}
	return t, true
}

// Quad is a double-sided rectangle in the local XY plane facing +Z.
type Quad struct {
	Width, Height float32
}

func (q Quad) Bounds() AABB {
	return NewAABBFromCenter(rl.Vector3Zero(), rl.Vector3{X: q.Width, Y: q.Height})
}

func (q Quad) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	if math32.Abs(dir.Z) < 1e-8 {
		return 0, false
	}
	t := -origin.Z / dir.Z
	if t < 0 || t > maxT {
		return 0, false
	}
	x := origin.X + dir.X*t
	y := origin.Y + dir.Y*t
	if math32.Abs(x) > q.Width/2 || math32.Abs(y) > q.Height/2 {
		return 0, false
	}
	return t, true
}

// Cylinder is a capped cylinder along local Y, centered on the origin.
type Cylinder struct {
	Radius, Height float32
}

func (c Cylinder) Bounds() AABB {
	d := c.Radius * 2
	return NewAABBFromCenter(rl.Vector3Zero(), rl.Vector3{X: d, Y: c.Height, Z: d})
}

func (c Cylinder) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	half := c.Height / 2
	best := maxT
	hit := false

	// Side wall
	a := dir.X*dir.X + dir.Z*dir.Z
	if a > 1e-12 {
		b := 2 * (origin.X*dir.X + origin.Z*dir.Z)
		k := origin.X*origin.X + origin.Z*origin.Z - c.Radius*c.Radius
		disc := b*b - 4*a*k
		if disc >= 0 {
			sq := math32.Sqrt(disc)
			for _, t := range [2]float32{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t < 0 || t > best {
					continue
				}
				if y := origin.Y + dir.Y*t; y >= -half && y <= half {
					best, hit = t, true
					break
				}
			}
		}
	}

	// Caps
	if math32.Abs(dir.Y) > 1e-12 {
		for _, capY := range [2]float32{-half, half} {
			t := (capY - origin.Y) / dir.Y
			if t < 0 || t > best {
				continue
			}
			x := origin.X + dir.X*t
			z := origin.Z + dir.Z*t
			if x*x+z*z <= c.Radius*c.Radius {
				best, hit = t, true
			}
		}
	}

	return best, hit
}
