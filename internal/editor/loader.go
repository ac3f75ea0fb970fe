package editor

import (
	"fmt"
	"image"
	"path/filepath"

	"tokenstage/internal/components"
	"tokenstage/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AssetLoader turns finished imports into scene entities. Implementations
// may touch the GPU and are only called from the frame thread.
type AssetLoader interface {
	LoadModel(path string) (*engine.Entity, error)
	LoadToken(img image.Image, height float32) (*engine.Entity, error)
}

// RaylibLoader uploads assets through raylib. It needs an open window.
type RaylibLoader struct{}

// LoadModel loads a model file into a root entity with one child per mesh.
func (RaylibLoader) LoadModel(path string) (*engine.Entity, error) {
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("load model %s: no meshes", filepath.Base(path))
	}

	root := engine.NewEntity(filepath.Base(path))
	root.AddComponent(components.NewModelAsset(path, model))
	for i, mm := range components.ModelMeshes(model) {
		child := engine.NewEntity(fmt.Sprintf("Mesh %d", i))
		child.AddComponent(mm)
		root.AddChild(child)
	}
	return root, nil
}

// LoadToken uploads img as a texture on a camera-facing quad.
func (RaylibLoader) LoadToken(img image.Image, height float32) (*engine.Entity, error) {
	cpu := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(cpu)
	rl.UnloadImage(cpu)
	if tex.ID == 0 {
		return nil, fmt.Errorf("upload token texture failed")
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	root := engine.NewEntity("Token")
	root.AddComponent(components.NewToken(tex, height))
	return root, nil
}
