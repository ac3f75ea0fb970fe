package editor

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	clipNear float32 = 0.1
	clipFar  float32 = 1000.0
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]plane // left, right, bottom, top, near, far
}

// plane is ax + by + cz + d = 0
type plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from the camera's view-projection
// matrix using the Gribb/Hartmann method.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, clipNear, clipFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, clipNear, clipFar)
	}

	// View is applied first: VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	row := func(i int) (rl.Vector3, float32) {
		switch i {
		case 0:
			return rl.Vector3{X: vp.M0, Y: vp.M4, Z: vp.M8}, vp.M12
		case 1:
			return rl.Vector3{X: vp.M1, Y: vp.M5, Z: vp.M9}, vp.M13
		case 2:
			return rl.Vector3{X: vp.M2, Y: vp.M6, Z: vp.M10}, vp.M14
		}
		return rl.Vector3{X: vp.M3, Y: vp.M7, Z: vp.M11}, vp.M15
	}

	w, wd := row(3)
	var f Frustum
	for i := range 3 {
		r, rd := row(i)
		f.planes[i*2] = normalizePlane(plane{normal: rl.Vector3Add(w, r), distance: wd + rd})
		f.planes[i*2+1] = normalizePlane(plane{normal: rl.Vector3Subtract(w, r), distance: wd - rd})
	}
	return f
}

func normalizePlane(p plane) plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, center)+p.distance < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
