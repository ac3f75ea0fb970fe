package raycast

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Triangle struct {
	V0, V1, V2 rl.Vector3
}

func (t Triangle) centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

// IntersectRay is a double-sided Moller-Trumbore test.
func (t Triangle) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	const epsilon = 1e-7

	edge1 := rl.Vector3Subtract(t.V1, t.V0)
	edge2 := rl.Vector3Subtract(t.V2, t.V0)
	p := rl.Vector3CrossProduct(dir, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if math32.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := rl.Vector3Subtract(origin, t.V0)
	u := rl.Vector3DotProduct(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := rl.Vector3CrossProduct(s, edge1)
	v := rl.Vector3DotProduct(dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := rl.Vector3DotProduct(edge2, q) * inv
	if dist < epsilon || dist > maxT {
		return 0, false
	}
	return dist, true
}

// bvhNode is a node in the bounding volume hierarchy. Leaves carry triangle indices.
type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []int
}

// TriangleMesh is arbitrary triangle geometry accelerated by a BVH built
// once at construction. Vertices are in the owner's local space.
type TriangleMesh struct {
	Triangles []Triangle
	root      *bvhNode
}

func NewTriangleMesh(tris []Triangle) *TriangleMesh {
	m := &TriangleMesh{Triangles: tris}
	if len(tris) == 0 {
		return m
	}
	indices := make([]int, len(tris))
	for i := range indices {
		indices[i] = i
	}
	m.root = m.buildNode(indices, 0)
	return m
}

func (m *TriangleMesh) Bounds() AABB {
	if m.root == nil {
		return AABB{}
	}
	return m.root.bounds
}

func (m *TriangleMesh) IntersectRay(origin, dir rl.Vector3, maxT float32) (float32, bool) {
	if m.root == nil {
		return 0, false
	}
	return m.intersectNode(m.root, origin, dir, maxT)
}

func (m *TriangleMesh) intersectNode(node *bvhNode, origin, dir rl.Vector3, maxT float32) (float32, bool) {
	if _, ok := node.bounds.IntersectRay(origin, dir, maxT); !ok {
		return 0, false
	}

	best := maxT
	hit := false
	if node.triangles != nil {
		for _, idx := range node.triangles {
			if t, ok := m.Triangles[idx].IntersectRay(origin, dir, best); ok {
				best, hit = t, true
			}
		}
		return best, hit
	}

	for _, child := range [2]*bvhNode{node.left, node.right} {
		if child == nil {
			continue
		}
		if t, ok := m.intersectNode(child, origin, dir, best); ok {
			best, hit = t, true
		}
	}
	return best, hit
}

func (m *TriangleMesh) buildNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{bounds: m.computeBounds(indices)}

	// If few triangles or max depth, make leaf
	if len(indices) <= 4 || depth > 20 {
		node.triangles = indices
		return node
	}

	// Split along the longest axis
	size := node.bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > axisValue(size, axis) {
		axis = 2
	}

	mid := m.partition(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.triangles = indices
		return node
	}

	node.left = m.buildNode(indices[:mid], depth+1)
	node.right = m.buildNode(indices[mid:], depth+1)
	return node
}

func (m *TriangleMesh) computeBounds(indices []int) AABB {
	bounds := EmptyAABB()
	for _, idx := range indices {
		tri := &m.Triangles[idx]
		bounds = bounds.Grow(tri.V0).Grow(tri.V1).Grow(tri.V2)
	}
	return bounds
}

// partition splits indices around the mean centroid on axis.
func (m *TriangleMesh) partition(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += axisValue(m.Triangles[idx].centroid(), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if axisValue(m.Triangles[indices[left]].centroid(), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
