package components

import (
	"math"
	"testing"

	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPrimitiveShapes(t *testing.T) {
	cases := []struct {
		kind PrimitiveKind
		want raycast.Shape
	}{
		{PrimitiveCube, raycast.Box{Size: rl.Vector3{X: 1, Y: 1, Z: 1}}},
		{PrimitiveSphere, raycast.Sphere{Radius: 0.5}},
		{PrimitivePlane, raycast.Box{Size: rl.Vector3{X: 2, Z: 2}}},
		{PrimitiveCylinder, raycast.Cylinder{Radius: 0.5, Height: 1}},
	}
	for _, c := range cases {
		got := NewPrimitive(c.kind, rl.Red).Shape()
		if got != c.want {
			t.Errorf("%s: expected shape %#v, got %#v", c.kind, c.want, got)
		}
	}
}

func TestTokenKeepsAspect(t *testing.T) {
	tok := NewToken(rl.Texture2D{Width: 200, Height: 100}, 1.5)
	if tok.Width != 3 || tok.Height != 1.5 {
		t.Errorf("Expected 3x1.5 quad, got %fx%f", tok.Width, tok.Height)
	}
	if q, ok := tok.Shape().(raycast.Quad); !ok || q.Width != 3 {
		t.Errorf("Expected 3 wide quad shape, got %#v", tok.Shape())
	}

	square := NewToken(rl.Texture2D{}, 2)
	if square.Width != 2 {
		t.Errorf("Texture without size should default to square, got %f", square.Width)
	}
}

func TestLightColorRoundTrip(t *testing.T) {
	for _, light := range []Light{NewPointLight(), NewSpotLight()} {
		c := rl.NewColor(10, 20, 30, 255)
		light.SetLightColor(c)
		if light.LightColor() != c {
			t.Errorf("%T: expected %v, got %v", light, c, light.LightColor())
		}
	}
}

func TestLightOf(t *testing.T) {
	marker := engine.NewEntity("Light")
	if LightOf(marker) != nil {
		t.Error("Entity without light should return nil")
	}
	pl := NewPointLight()
	marker.AddComponent(pl)
	if LightOf(marker) != pl {
		t.Error("LightOf should find the PointLight")
	}
	if LightOf(nil) != nil {
		t.Error("LightOf(nil) should be nil")
	}
}

func TestLightHelperSync(t *testing.T) {
	marker := engine.NewEntity("Light")
	marker.Transform.Position = rl.Vector3{X: 1, Y: 4, Z: -2}
	marker.AddComponent(NewPointLight())

	helper := engine.NewEntity("Helper")
	h := NewLightHelper(marker)
	helper.AddComponent(h)

	h.Sync()
	if helper.Transform.Position != marker.Transform.Position {
		t.Errorf("Helper should follow light, got %v", helper.Transform.Position)
	}
	if h.Light != marker {
		t.Error("Back-reference should point at the marker")
	}
}

func TestSpotLightDirectionFollowsRotation(t *testing.T) {
	marker := engine.NewEntity("Spot")
	spot := NewSpotLight()
	marker.AddComponent(spot)

	d := spot.Direction()
	if d.Y > -0.999 {
		t.Errorf("Unrotated spot should point down, got %v", d)
	}

	marker.Transform.Rotation = rl.Vector3{X: 90}
	d = spot.Direction()
	// RotateX(90) maps -Y onto -Z
	if d.Z > -0.999 {
		t.Errorf("Expected spot to point along -Z, got %v", d)
	}
}

func TestMeshTriangles(t *testing.T) {
	verts := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
	}
	indices := []uint16{0, 1, 2, 1, 3, 2}
	mesh := rl.Mesh{
		VertexCount:   4,
		TriangleCount: 2,
		Vertices:      &verts[0],
		Indices:       &indices[0],
	}

	tris := MeshTriangles(mesh)
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(tris))
	}
	if tris[1].V1 != (rl.Vector3{X: 1, Y: 1}) {
		t.Errorf("Unexpected second triangle %v", tris[1])
	}

	flat := rl.Mesh{VertexCount: 3, Vertices: &verts[0]}
	if got := MeshTriangles(flat); len(got) != 1 {
		t.Errorf("Expected 1 non-indexed triangle, got %d", len(got))
	}
	if MeshTriangles(rl.Mesh{}) != nil {
		t.Error("Empty mesh should have no triangles")
	}
}

func TestSpotLightConeUsesRange(t *testing.T) {
	marker := engine.NewEntity("Spot")
	marker.Transform.Position = rl.Vector3{Y: 5}
	spot := NewSpotLight()
	spot.Range = 4
	spot.Angle = 45
	marker.AddComponent(spot)

	end, radius := spot.Cone()
	if !near(end.X, 0) || !near(end.Y, 1) || !near(end.Z, 0) {
		t.Errorf("Expected cone end at (0,1,0), got %v", end)
	}
	if !near(radius, 4) {
		t.Errorf("Expected cone radius 4, got %f", radius)
	}

	spot.Range = 8
	if _, r := spot.Cone(); !near(r, 8) {
		t.Errorf("Radius should grow with range, got %f", r)
	}
}
