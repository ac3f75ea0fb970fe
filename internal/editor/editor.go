// Package editor runs the per-frame loop that ties picking, selection,
// billboarding, navigation and import together.
package editor

import (
	"context"
	"fmt"
	"log"

	"tokenstage/internal/billboard"
	"tokenstage/internal/camera"
	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/gizmo"
	"tokenstage/internal/importer"
	"tokenstage/internal/picker"
	"tokenstage/internal/registry"
	"tokenstage/internal/selection"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is everything the editor reads from the user in one frame.
type Input struct {
	Pointer         rl.Vector2
	PointerPressed  bool
	PointerReleased bool
	// PointerOverUI blocks scene picking while the pointer is on a panel.
	PointerOverUI bool
	Keys          []int32
	Orbit         camera.OrbitInput
	Dropped       []string
}

type Options struct {
	Width         float32
	Height        float32
	PickDistance  float32
	MaxTokenSize  int
	ImportWorkers int
	AssetDir      string
	// TokenHeight is the world height of newly imported image tokens.
	TokenHeight float32
}

const (
	defaultTokenHeight float32 = 1.5
	statusDuration     float32 = 3
)

type Editor struct {
	Scene      *engine.Scene
	Registry   *registry.Registry
	Picker     *picker.Picker
	Gizmo      *gizmo.Gizmo
	Selection  *selection.Controller
	Camera     *camera.Orbit
	Billboards *billboard.Engine
	Importer   *importer.Importer

	ctx         context.Context
	loader      AssetLoader
	tokenHeight float32

	names       map[string]int
	lastPointer rl.Vector2
	lightPanel  bool

	status     string
	statusTime float32
	time       float32
}

// New wires the editor subsystems together. loader performs GPU uploads of
// imported assets and is called on the frame thread only.
func New(ctx context.Context, opts Options, loader AssetLoader) *Editor {
	reg := registry.New()
	pk := picker.New(opts.Width, opts.Height)
	if opts.PickDistance > 0 {
		pk.MaxDistance = opts.PickDistance
	}
	gz := gizmo.New()
	cam := camera.New(rl.Vector3Zero(), 12)
	ctrl := selection.New(reg, pk, gz, cam)

	e := &Editor{
		Scene:      engine.NewScene("Stage"),
		Registry:   reg,
		Picker:     pk,
		Gizmo:      gz,
		Selection:  ctrl,
		Camera:     cam,
		Billboards: billboard.New(reg, ctrl),
		Importer: importer.New(importer.Options{
			Workers:      opts.ImportWorkers,
			MaxTokenSize: opts.MaxTokenSize,
			AssetDir:     opts.AssetDir,
		}),
		ctx:         ctx,
		loader:      loader,
		tokenHeight: opts.TokenHeight,
		names:       make(map[string]int),
	}
	if e.tokenHeight <= 0 {
		e.tokenHeight = defaultTokenHeight
	}

	// Navigation is handed to the gizmo for the length of a drag.
	gz.DragStarted.AddListener(func() { cam.Enabled = false })
	gz.DragFinished.AddListener(func() { cam.Enabled = true })
	ctrl.Changed.AddListener(func(s selection.Selection) {
		e.lightPanel = s.Kind == selection.Light
	})
	return e
}

// SetViewport tells the picker the current window size.
func (e *Editor) SetViewport(width, height float32) {
	e.Picker.SetViewport(width, height)
}

// Tick runs one frame of editor logic. Order matters: pointer handling,
// shortcuts, finished imports, navigation, billboards, then helper refresh.
func (e *Editor) Tick(dt float32, in Input) {
	e.time += dt

	e.handlePointer(in)
	for _, key := range in.Keys {
		e.HandleKey(key)
	}

	if len(in.Dropped) > 0 {
		e.Importer.Import(e.ctx, in.Dropped...)
	}
	e.Importer.Drain(e.applyImport)

	e.Camera.Update(dt, in.Orbit)
	e.Billboards.Update(e.Camera.Position())
	e.refreshHelpers()
}

func (e *Editor) handlePointer(in Input) {
	x, y := in.Pointer.X, in.Pointer.Y
	if in.PointerPressed && !in.PointerOverUI {
		e.Selection.PointerDown(x, y)
	}
	if in.Pointer != e.lastPointer || e.Selection.IsDragging() {
		e.Selection.PointerMove(x, y)
		e.lastPointer = in.Pointer
	}
	if in.PointerReleased {
		e.Selection.PointerUp()
	}
}

// refreshHelpers moves every light helper onto its marker.
func (e *Editor) refreshHelpers() {
	for _, h := range e.Registry.Helpers() {
		if lh := engine.GetComponent[*components.LightHelper](h); lh != nil {
			lh.Sync()
		}
	}
}

// LightPanelVisible reports whether the light colour panel should be shown.
func (e *Editor) LightPanelVisible() bool {
	return e.lightPanel
}

// FocusSelection glides the camera onto the selected root.
func (e *Editor) FocusSelection() bool {
	root := e.Selection.Current().Root
	if root == nil {
		return false
	}
	center := root.WorldPosition()
	distance := float32(0)
	if b, ok := WorldBounds(root); ok {
		center = b.Center()
		size := b.Size()
		// 1.5x the largest full extent, never closer than 3 units
		distance = max(3, max(size.X, size.Y, size.Z)*1.5)
	}
	e.Camera.Focus(center, distance)
	return true
}

func (e *Editor) applyImport(res importer.Result) {
	if res.Err != nil {
		e.setStatus(fmt.Sprintf("Import failed: %s", res.Name))
		return
	}

	var (
		root *engine.Entity
		err  error
	)
	switch res.Kind {
	case importer.KindModel:
		root, err = e.loader.LoadModel(res.Path)
		if err == nil {
			e.Registry.RegisterObject(root)
		}
	case importer.KindImage:
		root, err = e.loader.LoadToken(res.Image, e.tokenHeight)
		if err == nil {
			e.Registry.RegisterBillboard(root)
		}
	}
	if err != nil {
		log.Printf("import: %s: %v", res.Path, err)
		e.setStatus(fmt.Sprintf("Import failed: %s", res.Name))
		return
	}

	root.Name = e.uniqueName(res.Name)
	root.Transform.Position = e.Camera.Target
	e.Scene.Add(root)
	e.Selection.Attach(root)
	e.setStatus(fmt.Sprintf("Imported: %s", root.Name))
}

// uniqueName appends a counter to repeated names.
func (e *Editor) uniqueName(base string) string {
	e.names[base]++
	if n := e.names[base]; n > 1 {
		return fmt.Sprintf("%s %d", base, n)
	}
	return base
}

func (e *Editor) setStatus(msg string) {
	e.status = msg
	e.statusTime = e.time
}

// Status returns the current status line, or "" once it has expired.
func (e *Editor) Status() string {
	if e.status == "" || e.time-e.statusTime > statusDuration {
		return ""
	}
	return e.status
}

// Unload frees every GPU resource owned by the scene.
func (e *Editor) Unload() {
	e.Scene.Walk(func(ent *engine.Entity) bool {
		for _, c := range ent.Components() {
			if u, ok := c.(engine.Unloader); ok {
				u.Unload()
			}
		}
		return true
	})
}
