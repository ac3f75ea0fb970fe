package editor

import (
	"tokenstage/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PollInput reads this frame's input from raylib.
func (e *Editor) PollInput() Input {
	pointer := rl.GetMousePosition()
	in := Input{
		Pointer:         pointer,
		PointerPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		PointerReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		PointerOverUI:   e.PointerOverUI(pointer),
		Orbit:           camera.PollInput(),
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		in.Keys = append(in.Keys, key)
	}

	if rl.IsFileDropped() {
		in.Dropped = rl.LoadDroppedFiles()
		rl.UnloadDroppedFiles()
	}
	return in
}
