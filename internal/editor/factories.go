package editor

import (
	"log"

	"tokenstage/internal/components"
	"tokenstage/internal/engine"
	"tokenstage/internal/layout"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// lightLift raises new lights above the camera target so they are not
// buried in the geometry they light.
const lightLift float32 = 2

var primitiveNames = map[components.PrimitiveKind]string{
	components.PrimitiveCube:     "Cube",
	components.PrimitiveSphere:   "Sphere",
	components.PrimitivePlane:    "Plane",
	components.PrimitiveCylinder: "Cylinder",
}

// AddPrimitive creates a primitive at the camera target and selects it.
func (e *Editor) AddPrimitive(kind components.PrimitiveKind) *engine.Entity {
	ent := e.spawnPrimitive(kind, e.Camera.Target, rl.LightGray)
	e.Selection.Attach(ent)
	return ent
}

// AddPointLight creates a point light above the camera target and selects it.
func (e *Editor) AddPointLight() *engine.Entity {
	marker := e.spawnLight(components.NewPointLight(), "Point Light", rl.Vector3Add(e.Camera.Target, rl.Vector3{Y: lightLift}))
	e.Selection.Attach(marker)
	return marker
}

// AddSpotLight creates a downward spot light above the camera target and selects it.
func (e *Editor) AddSpotLight() *engine.Entity {
	marker := e.spawnLight(components.NewSpotLight(), "Spot Light", rl.Vector3Add(e.Camera.Target, rl.Vector3{Y: lightLift * 2}))
	e.Selection.Attach(marker)
	return marker
}

func (e *Editor) spawnPrimitive(kind components.PrimitiveKind, pos rl.Vector3, color rl.Color) *engine.Entity {
	ent := engine.NewEntity(e.uniqueName(primitiveNames[kind]))
	ent.Transform.Position = pos
	ent.AddComponent(components.NewPrimitive(kind, color))
	e.Scene.Add(ent)
	e.Registry.RegisterObject(ent)
	return ent
}

// spawnLight creates a light marker and its helper. The helper is a separate
// top-level entity so it never inherits the marker's rotation or scale.
func (e *Editor) spawnLight(light components.Light, name string, pos rl.Vector3) *engine.Entity {
	marker := engine.NewEntity(e.uniqueName(name))
	marker.Transform.Position = pos
	marker.AddComponent(light)

	helper := engine.NewEntity(marker.Name + " Helper")
	lh := components.NewLightHelper(marker)
	helper.AddComponent(lh)
	lh.Sync()

	e.Scene.Add(marker)
	e.Scene.Add(helper)
	e.Registry.RegisterLight(marker, helper)
	return marker
}

// ApplyLayout builds the startup scene. Nothing is selected afterwards;
// imports listed in the layout arrive through the importer like drops.
func (e *Editor) ApplyLayout(f *layout.File) {
	for _, def := range f.Primitives {
		kind, err := layout.PrimitiveKind(def.Kind)
		if err != nil {
			log.Printf("layout: %v", err)
			continue
		}
		ent := e.spawnPrimitive(kind, layout.Vec(def.Position), layout.LookupColor(def.Color, rl.LightGray))
		if def.Name != "" {
			ent.Name = def.Name
		}
		ent.Transform.Rotation = layout.Vec(def.Rotation)
		ent.Transform.Scale = layout.ScaleOrOne(def.Scale)
	}

	for _, def := range f.Lights {
		var light components.Light
		name := "Point Light"
		switch def.Kind {
		case layout.LightSpot:
			spot := components.NewSpotLight()
			if def.Intensity > 0 {
				spot.Intensity = def.Intensity
			}
			light, name = spot, "Spot Light"
		default:
			point := components.NewPointLight()
			if def.Intensity > 0 {
				point.Intensity = def.Intensity
			}
			light = point
		}
		light.SetLightColor(layout.LookupColor(def.Color, rl.White))

		marker := e.spawnLight(light, name, layout.Vec(def.Position))
		if def.Name != "" {
			marker.Name = def.Name
		}
		marker.Transform.Rotation = layout.Vec(def.Rotation)
	}

	if len(f.Imports) > 0 {
		e.Importer.Import(e.ctx, f.Imports...)
	}
	log.Printf("layout: %d primitives, %d lights, %d imports", len(f.Primitives), len(f.Lights), len(f.Imports))
}
