package components

import (
	"unsafe"

	"tokenstage/internal/engine"
	"tokenstage/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelAsset sits on the root of an imported model and owns the GPU model.
// Its meshes are drawn and picked through ModelMesh children.
type ModelAsset struct {
	engine.BaseComponent
	Path  string
	Model rl.Model
}

func NewModelAsset(path string, model rl.Model) *ModelAsset {
	return &ModelAsset{Path: path, Model: model}
}

func (m *ModelAsset) Unload() {
	rl.UnloadModel(m.Model)
}

// ModelMesh draws one mesh of a ModelAsset and carries its triangles for picking.
type ModelMesh struct {
	engine.BaseComponent

	mesh     rl.Mesh
	material rl.Material
	tris     *raycast.TriangleMesh
}

// NewModelMesh builds the component from triangles already extracted in
// mesh-local space. Tests and non-GPU callers use it directly.
func NewModelMesh(tris []raycast.Triangle) *ModelMesh {
	return &ModelMesh{tris: raycast.NewTriangleMesh(tris)}
}

// ModelMeshes returns one ModelMesh per mesh in model, with triangles read
// back from the CPU-side vertex buffers.
func ModelMeshes(model rl.Model) []*ModelMesh {
	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	materials := unsafe.Slice(model.Materials, model.MaterialCount)
	meshMaterial := unsafe.Slice(model.MeshMaterial, model.MeshCount)

	out := make([]*ModelMesh, 0, len(meshes))
	for i, mesh := range meshes {
		mm := NewModelMesh(MeshTriangles(mesh))
		mm.mesh = mesh
		if idx := int(meshMaterial[i]); idx >= 0 && idx < len(materials) {
			mm.material = materials[idx]
		} else if len(materials) > 0 {
			mm.material = materials[0]
		}
		out = append(out, mm)
	}
	return out
}

// MeshTriangles extracts the triangles of an indexed or non-indexed mesh.
func MeshTriangles(mesh rl.Mesh) []raycast.Triangle {
	if mesh.Vertices == nil || mesh.VertexCount == 0 {
		return nil
	}
	vertices := unsafe.Slice(mesh.Vertices, mesh.VertexCount*3)
	vertex := func(i int32) rl.Vector3 {
		return rl.Vector3{X: vertices[i*3+0], Y: vertices[i*3+1], Z: vertices[i*3+2]}
	}

	var tris []raycast.Triangle
	if mesh.Indices != nil {
		indices := unsafe.Slice(mesh.Indices, mesh.TriangleCount*3)
		for i := int32(0); i < mesh.TriangleCount; i++ {
			tris = append(tris, raycast.Triangle{
				V0: vertex(int32(indices[i*3+0])),
				V1: vertex(int32(indices[i*3+1])),
				V2: vertex(int32(indices[i*3+2])),
			})
		}
		return tris
	}

	// Non-indexed mesh (every 3 vertices = 1 triangle)
	for i := int32(0); i < mesh.VertexCount/3; i++ {
		tris = append(tris, raycast.Triangle{V0: vertex(i*3 + 0), V1: vertex(i*3 + 1), V2: vertex(i*3 + 2)})
	}
	return tris
}

func (m *ModelMesh) Shape() raycast.Shape {
	return m.tris
}

func (m *ModelMesh) Draw(world rl.Matrix) {
	if m.mesh.VertexCount == 0 {
		return
	}
	rl.DrawMesh(m.mesh, m.material, world)
}
