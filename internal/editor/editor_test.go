package editor

import (
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"tokenstage/internal/billboard"
	"tokenstage/internal/camera"
	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/gizmo"
	"tokenstage/internal/layout"
	"tokenstage/internal/raycast"
	"tokenstage/internal/selection"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

// fakeLoader builds entities without touching the GPU.
type fakeLoader struct{}

func (fakeLoader) LoadModel(path string) (*engine.Entity, error) {
	root := engine.NewEntity(filepath.Base(path))
	child := engine.NewEntity("Mesh 0")
	a := rl.Vector3{X: -1, Y: -1}
	b := rl.Vector3{X: 1, Y: -1}
	c := rl.Vector3{X: 0, Y: 1}
	child.AddComponent(components.NewModelMesh([]raycast.Triangle{{V0: a, V1: b, V2: c}}))
	root.AddChild(child)
	return root, nil
}

func (fakeLoader) LoadToken(img image.Image, height float32) (*engine.Entity, error) {
	b := img.Bounds()
	root := engine.NewEntity("Token")
	root.AddComponent(components.NewToken(rl.Texture2D{Width: int32(b.Dx()), Height: int32(b.Dy())}, height))
	return root, nil
}

func newEditor(t *testing.T) *Editor {
	t.Helper()
	return New(context.Background(), Options{Width: 800, Height: 600, ImportWorkers: 2, MaxTokenSize: 64}, fakeLoader{})
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 20, 10))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddPrimitiveSelectsIt(t *testing.T) {
	e := newEditor(t)
	cube := e.AddPrimitive(components.PrimitiveCube)

	if e.Selection.Current().Root != cube || e.Selection.Current().Kind != selection.Object {
		t.Errorf("Expected new cube selected, got %v", e.Selection.Current())
	}
	if e.Scene.FindByUID(cube.UID) != cube {
		t.Error("Cube should be in the scene")
	}
	if len(e.Registry.Candidates(0)) != 1 {
		t.Error("Cube should be registered as an object")
	}
	if cube.Transform.Position != e.Camera.Target {
		t.Errorf("Expected cube at camera target, got %v", cube.Transform.Position)
	}

	second := e.AddPrimitive(components.PrimitiveCube)
	if cube.Name != "Cube" || second.Name != "Cube 2" {
		t.Errorf("Expected Cube and Cube 2, got %q and %q", cube.Name, second.Name)
	}
}

func TestAddLightsShowPanel(t *testing.T) {
	e := newEditor(t)
	if e.LightPanelVisible() {
		t.Error("Panel should start hidden")
	}

	marker := e.AddPointLight()
	if e.Selection.GetCurrentSelectionKind() != selection.Light || !e.LightPanelVisible() {
		t.Error("Point light should be selected with the panel visible")
	}
	if components.LightOf(marker) == nil {
		t.Error("Marker should carry a light")
	}

	e.AddPrimitive(components.PrimitiveSphere)
	if e.LightPanelVisible() {
		t.Error("Panel should hide for objects")
	}

	spot := e.AddSpotLight()
	if engine.GetComponent[*components.SpotLight](spot) == nil {
		t.Error("Expected a spot light")
	}
	if len(e.Registry.Helpers()) != 2 || len(e.Registry.Lights()) != 2 {
		t.Errorf("Expected 2 lights with helpers, got %d/%d", len(e.Registry.Lights()), len(e.Registry.Helpers()))
	}
}

func TestShortcuts(t *testing.T) {
	e := newEditor(t)

	e.Tick(0.016, Input{Keys: []int32{rl.KeyE}})
	if e.Selection.GizmoMode() != gizmo.Rotate {
		t.Errorf("Expected rotate, got %s", e.Selection.GizmoMode())
	}
	e.Tick(0.016, Input{Keys: []int32{rl.KeyR}})
	if e.Selection.GizmoMode() != gizmo.Scale {
		t.Errorf("Expected scale, got %s", e.Selection.GizmoMode())
	}

	e.Tick(0.016, Input{Keys: []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}})
	if e.Scene.Len() != 4 {
		t.Errorf("Expected 4 primitives, got %d", e.Scene.Len())
	}
	last := e.Selection.Current().Root
	if p := engine.GetComponent[*components.Primitive](last); p == nil || p.Kind != components.PrimitiveCylinder {
		t.Error("Last primitive created should be selected")
	}

	e.Tick(0.016, Input{Keys: []int32{rl.KeyL}})
	if e.Selection.GetCurrentSelectionKind() != selection.Light {
		t.Error("L should add and select a point light")
	}
	e.Tick(0.016, Input{Keys: []int32{rl.KeyEscape}})
	if e.Selection.Current().Root != nil {
		t.Error("Escape should deselect")
	}
	e.Tick(0.016, Input{Keys: []int32{rl.KeyW}})
	if e.Selection.GizmoMode() != gizmo.Translate {
		t.Error("W should switch back to translate")
	}
	if e.HandleKey(rl.KeyZ) {
		t.Error("Unbound key should not match")
	}
}

func TestPointerPicksAndMisses(t *testing.T) {
	e := newEditor(t)
	cube := e.AddPrimitive(components.PrimitiveCube)
	e.Selection.Detach()

	e.Tick(0.016, Input{Pointer: rl.Vector2{X: 400, Y: 300}, PointerPressed: true})
	if e.Selection.Current().Root != cube {
		t.Fatalf("Expected click on the cube to select it, got %v", e.Selection.Current())
	}
	e.Tick(0.016, Input{Pointer: rl.Vector2{X: 400, Y: 300}, PointerReleased: true})

	e.Tick(0.016, Input{Pointer: rl.Vector2{X: 5, Y: 5}, PointerPressed: true})
	if e.Selection.Current().Root != nil {
		t.Error("Click on empty space should deselect")
	}
}

func TestPointerOverUIDoesNotPick(t *testing.T) {
	e := newEditor(t)
	cube := e.AddPrimitive(components.PrimitiveCube)
	e.Selection.Detach()

	e.Tick(0.016, Input{Pointer: rl.Vector2{X: 400, Y: 300}, PointerPressed: true, PointerOverUI: true})
	if e.Selection.Current().Root == cube {
		t.Error("Clicks on the UI should not reach the scene")
	}
	if !e.PointerOverUI(rl.Vector2{X: 20, Y: 20}) {
		t.Error("Mode bar should count as UI")
	}
	if e.PointerOverUI(rl.Vector2{X: 400, Y: 300}) {
		t.Error("Viewport center should not be UI")
	}
}

func TestDragDisablesNavigation(t *testing.T) {
	e := newEditor(t)
	e.AddPrimitive(components.PrimitiveCube)
	cam := e.Camera.Camera3D()
	yaw := e.Camera.Yaw

	ray := e.Picker.Ray(400, 100, cam)
	if !e.Gizmo.BeginDrag(1, ray, cam.Position) {
		t.Fatal("Expected drag to start")
	}
	if e.Camera.Enabled {
		t.Error("Camera should be disabled during a drag")
	}

	e.Tick(0.016, Input{Orbit: camera.OrbitInput{Rotate: rl.Vector2{X: 40}}})
	if e.Camera.Yaw != yaw {
		t.Error("Orbit input should be ignored mid-drag")
	}

	e.Tick(0.016, Input{PointerReleased: true})
	if !e.Camera.Enabled || e.Selection.IsDragging() {
		t.Error("Releasing the pointer should end the drag and re-enable the camera")
	}
}

func TestImportTokenRegistersBillboard(t *testing.T) {
	e := newEditor(t)
	path := writePNG(t, t.TempDir(), "goblin.png")

	e.Tick(0.016, Input{Dropped: []string{path}})
	e.Importer.Wait()
	e.Tick(0.016, Input{})

	root := e.Selection.Current().Root
	if root == nil || root.Name != "goblin" {
		t.Fatalf("Expected the token selected, got %v", root)
	}
	if !e.Registry.IsBillboard(root) {
		t.Error("Token should be a billboard")
	}
	tok := engine.GetComponent[*components.Token](root)
	if tok == nil || !near(tok.Width, 2*tok.Height) {
		t.Errorf("Expected 2:1 token, got %+v", tok)
	}

	want := billboard.Yaw(e.Camera.Position(), root.WorldPosition()) * rl.Rad2deg
	if !near(root.Transform.Rotation.Y, want) {
		t.Errorf("Expected token yaw %f, got %f", want, root.Transform.Rotation.Y)
	}
}

func TestImportModelSelectsRoot(t *testing.T) {
	e := newEditor(t)
	path := filepath.Join(t.TempDir(), "crate.glb")
	if err := os.WriteFile(path, []byte("glTF"), 0644); err != nil {
		t.Fatal(err)
	}

	e.Tick(0.016, Input{Dropped: []string{path}})
	e.Importer.Wait()
	e.Tick(0.016, Input{})

	root := e.Selection.Current().Root
	if root == nil || root.Name != "crate" {
		t.Fatalf("Expected model selected, got %v", root)
	}
	got, ok := e.Registry.ResolveRoot(root.Children[0], 0)
	if !ok || got != root {
		t.Error("Mesh child should resolve to the model root")
	}
	if e.Registry.IsBillboard(root) {
		t.Error("Models are not billboards")
	}
}

func TestFailedImportRegistersNothing(t *testing.T) {
	e := newEditor(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	e.Tick(0.016, Input{Dropped: []string{path}})
	e.Importer.Wait()
	e.Tick(0.016, Input{})

	if e.Scene.Len() != 0 || len(e.Registry.Candidates(0)) != 0 {
		t.Error("Failed import should not add anything")
	}
	if e.Selection.Current().Root != nil {
		t.Error("Failed import should not select anything")
	}
	if e.Status() != "Import failed: notes" {
		t.Errorf("Unexpected status %q", e.Status())
	}
}

func TestBillboardYieldsToManualRotation(t *testing.T) {
	e := newEditor(t)
	held := engine.NewEntity("Held")
	held.AddComponent(components.NewToken(rl.Texture2D{Width: 1, Height: 1}, 1))
	free := engine.NewEntity("Free")
	free.Transform.Position = rl.Vector3{X: 3}
	free.AddComponent(components.NewToken(rl.Texture2D{Width: 1, Height: 1}, 1))
	for _, ent := range []*engine.Entity{held, free} {
		e.Scene.Add(ent)
		e.Registry.RegisterBillboard(ent)
	}

	const sentinel = 42.5
	held.Transform.Rotation.Y = sentinel
	e.Selection.Attach(held)
	e.Selection.SetGizmoMode(gizmo.Rotate)

	cam := e.Camera.Camera3D()
	if !e.Gizmo.BeginDrag(1, e.Picker.Ray(0, 0, cam), cam.Position) {
		t.Fatal("Expected rotate drag to start")
	}
	for range 3 {
		e.Tick(0.016, Input{})
	}
	if held.Transform.Rotation.Y != sentinel {
		t.Errorf("Held token rotation should stay %f, got %f", sentinel, held.Transform.Rotation.Y)
	}
	want := billboard.Yaw(e.Camera.Position(), free.WorldPosition()) * rl.Rad2deg
	if !near(free.Transform.Rotation.Y, want) {
		t.Errorf("Free token should keep facing the camera, got %f want %f", free.Transform.Rotation.Y, want)
	}

	e.Tick(0.016, Input{PointerReleased: true})
	e.Tick(0.016, Input{})
	want = billboard.Yaw(e.Camera.Position(), held.WorldPosition()) * rl.Rad2deg
	if !near(held.Transform.Rotation.Y, want) {
		t.Errorf("Released token should face the camera again, got %f", held.Transform.Rotation.Y)
	}
}

func TestHelpersFollowLights(t *testing.T) {
	e := newEditor(t)
	marker := e.AddPointLight()
	marker.Transform.Position = rl.Vector3{X: 7, Y: 1, Z: -2}

	e.Tick(0.016, Input{})
	helper := e.Registry.Helpers()[0]
	if helper.Transform.Position != marker.Transform.Position {
		t.Errorf("Helper should follow its light, got %v", helper.Transform.Position)
	}
}

func TestLightColorEditing(t *testing.T) {
	e := newEditor(t)
	e.AddPointLight()

	c := rl.NewColor(1, 2, 3, 255)
	if !e.Selection.SetCurrentSelectionColor(c) {
		t.Fatal("Expected colour write to succeed")
	}
	if got, _ := e.Selection.GetCurrentSelectionColor(); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestFocusSelection(t *testing.T) {
	e := newEditor(t)
	if e.FocusSelection() {
		t.Error("Nothing to focus without a selection")
	}

	cube := e.AddPrimitive(components.PrimitiveCube)
	cube.Transform.Position = rl.Vector3{X: 4, Z: -1}
	e.Tick(0.016, Input{Keys: []int32{rl.KeyF}})
	if !e.Camera.Focusing() {
		t.Fatal("F should start a focus glide")
	}
	e.Tick(1, Input{})
	if !near(e.Camera.Target.X, 4) || !near(e.Camera.Target.Z, -1) {
		t.Errorf("Expected camera target on the cube, got %v", e.Camera.Target)
	}
	if !near(e.Camera.Distance, 3) {
		t.Errorf("Expected minimum focus distance 3, got %f", e.Camera.Distance)
	}
}

func TestApplyLayout(t *testing.T) {
	e := newEditor(t)
	f := &layout.File{
		Primitives: []layout.PrimitiveDef{
			{Name: "Floor", Kind: "plane", Scale: [3]float32{5, 1, 5}, Color: "darkgray"},
			{Kind: "cube", Position: [3]float32{0, 0.5, 0}},
		},
		Lights: []layout.LightDef{
			{Kind: layout.LightSpot, Position: [3]float32{0, 4, 0}, Color: "gold", Intensity: 2},
		},
	}
	e.ApplyLayout(f)

	if e.Selection.Current().Root != nil {
		t.Error("Layout should not select anything")
	}
	floor := e.Scene.FindByName("Floor")
	if floor == nil || floor.Transform.Scale.X != 5 {
		t.Fatalf("Expected scaled floor, got %v", floor)
	}
	if p := engine.GetComponent[*components.Primitive](floor); p.Color != rl.DarkGray {
		t.Errorf("Expected dark gray floor, got %v", p.Color)
	}
	if len(e.Registry.Candidates(0)) != 2 {
		t.Errorf("Expected 2 objects, got %d", len(e.Registry.Candidates(0)))
	}
	lights := e.Registry.Lights()
	if len(lights) != 1 {
		t.Fatalf("Expected 1 light, got %d", len(lights))
	}
	spot := engine.GetComponent[*components.SpotLight](lights[0])
	if spot == nil || spot.Color != rl.Gold || spot.Intensity != 2 {
		t.Errorf("Unexpected spot light %+v", spot)
	}
}

func TestWorldBounds(t *testing.T) {
	cube := engine.NewEntity("Cube")
	cube.Transform.Position = rl.Vector3{X: 1}
	cube.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	cube.AddComponent(components.NewPrimitive(components.PrimitiveCube, rl.Gray))

	b, ok := WorldBounds(cube)
	if !ok {
		t.Fatal("Expected bounds")
	}
	if !near(b.Min.X, 0) || !near(b.Max.X, 2) || !near(b.Min.Y, -1) || !near(b.Max.Z, 1) {
		t.Errorf("Unexpected bounds %v", b)
	}
	if _, ok := WorldBounds(engine.NewEntity("Empty")); ok {
		t.Error("Entity without shapes should have no bounds")
	}
}

func TestFrustum(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3Zero(),
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(cam, 1)

	if !f.ContainsPoint(rl.Vector3Zero()) {
		t.Error("Target should be inside the frustum")
	}
	if f.ContainsPoint(rl.Vector3{Z: 20}) {
		t.Error("Point behind the camera should be outside")
	}
	if f.ContainsPoint(rl.Vector3{X: 100}) {
		t.Error("Point far to the side should be outside")
	}
	if !f.ContainsSphere(rl.Vector3{X: 6}, 3) {
		t.Error("Sphere overlapping the side plane should be kept")
	}
}

func TestStatusExpires(t *testing.T) {
	e := newEditor(t)
	e.setStatus("Imported: crate")
	e.Tick(1, Input{})
	if e.Status() != "Imported: crate" {
		t.Errorf("Expected status to show, got %q", e.Status())
	}
	e.Tick(2.5, Input{})
	if e.Status() != "" {
		t.Errorf("Expected status to expire, got %q", e.Status())
	}
}

func TestFocusDistanceScalesWithExtent(t *testing.T) {
	e := newEditor(t)
	cube := e.AddPrimitive(components.PrimitiveCube)
	cube.Transform.Scale = rl.Vector3{X: 4, Y: 2, Z: 1}

	if !e.FocusSelection() {
		t.Fatal("Expected focus to start")
	}
	e.Tick(1, Input{})
	if !near(e.Camera.Distance, 6) {
		t.Errorf("Expected 1.5x the 4 unit extent, got %f", e.Camera.Distance)
	}
}
