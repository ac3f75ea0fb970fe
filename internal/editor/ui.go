package editor

import (
	"fmt"
	"strings"

	"tokenstage/internal/components"
	"tokenstage/internal/gizmo"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - indigo dark theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorBorder = rl.NewColor(50, 50, 65, 255)
)

const (
	modeBarX      int32 = 10
	modeBarY      int32 = 10
	modeButtonW   int32 = 90
	modeButtonH   int32 = 28
	lightPanelW   int32 = 250
	lightPanelH   int32 = 370
	panelMargin   int32 = 10
	statusBarH    int32 = 24
	uiTextSize    int32 = 15
	uiHeadingSize int32 = 18
)

var modeButtons = []struct {
	mode  gizmo.Mode
	label string
}{
	{gizmo.Translate, "Move (W)"},
	{gizmo.Rotate, "Rotate (E)"},
	{gizmo.Scale, "Scale (R)"},
}

// InitStyle applies the editor's raygui theme. Call once after InitWindow.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func modeBarBounds() rl.Rectangle {
	n := int32(len(modeButtons))
	return rl.NewRectangle(float32(modeBarX), float32(modeBarY), float32(n*modeButtonW+(n-1)*4), float32(modeButtonH))
}

func (e *Editor) lightPanelBounds() rl.Rectangle {
	x := e.Picker.Width - float32(lightPanelW+panelMargin)
	return rl.NewRectangle(x, float32(panelMargin), float32(lightPanelW), float32(lightPanelH))
}

// PointerOverUI reports whether p lies on a visible panel.
func (e *Editor) PointerOverUI(p rl.Vector2) bool {
	if rl.CheckCollisionPointRec(p, modeBarBounds()) {
		return true
	}
	return e.LightPanelVisible() && rl.CheckCollisionPointRec(p, e.lightPanelBounds())
}

// DrawUI draws the 2D overlay. It is immediate mode: clicks are handled here.
func (e *Editor) DrawUI() {
	e.drawModeBar()
	if e.LightPanelVisible() {
		e.drawLightPanel()
	}
	e.drawStatusBar()
}

func (e *Editor) drawModeBar() {
	mouse := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)

	x := modeBarX
	for _, b := range modeButtons {
		bounds := rl.NewRectangle(float32(x), float32(modeBarY), float32(modeButtonW), float32(modeButtonH))
		hover := rl.CheckCollisionPointRec(mouse, bounds)

		bg := colorBgElement
		switch {
		case e.Selection.GizmoMode() == b.mode:
			bg = colorAccent
		case hover:
			bg = colorBgHover
		}
		rl.DrawRectangleRec(bounds, bg)
		rl.DrawRectangleLinesEx(bounds, 1, colorBorder)

		textW := rl.MeasureText(b.label, uiTextSize)
		rl.DrawText(b.label, x+(modeButtonW-textW)/2, modeBarY+(modeButtonH-uiTextSize)/2, uiTextSize, colorTextPrimary)

		if hover && clicked {
			e.Selection.SetGizmoMode(b.mode)
		}
		x += modeButtonW + 4
	}
}

func (e *Editor) drawLightPanel() {
	root := e.Selection.Current().Root
	light := components.LightOf(root)
	if light == nil {
		return
	}

	bounds := e.lightPanelBounds()
	rl.DrawRectangleRec(bounds, colorBgPanel)
	rl.DrawRectangleLinesEx(bounds, 1, colorBorder)

	x := int32(bounds.X) + 12
	y := int32(bounds.Y) + 10
	rl.DrawText(root.Name, x, y, uiHeadingSize, colorTextPrimary)
	y += 28

	current, _ := e.Selection.GetCurrentSelectionColor()
	// Leave room on the right for the hue bar
	pickerBounds := rl.NewRectangle(float32(x), float32(y), bounds.Width-24-30, 160)
	if picked := gui.ColorPicker(pickerBounds, "", current); picked != current {
		e.Selection.SetCurrentSelectionColor(picked)
	}
	y += 172

	sliderW := bounds.Width - 24 - 70
	slider := func(label string, value, lo, hi float32) float32 {
		rl.DrawText(label, x, y, uiTextSize, colorTextMuted)
		r := rl.NewRectangle(float32(x), float32(y+18), sliderW, 16)
		v := gui.Slider(r, "", fmt.Sprintf("%.1f", value), value, lo, hi)
		y += 44
		return v
	}

	switch l := light.(type) {
	case *components.PointLight:
		l.Intensity = slider("Intensity", l.Intensity, 0, 5)
		l.Radius = slider("Radius", l.Radius, 1, 50)
	case *components.SpotLight:
		l.Intensity = slider("Intensity", l.Intensity, 0, 5)
		l.Angle = slider("Angle", l.Angle, 5, 80)
		l.Range = slider("Range", l.Range, 1, 50)
	}
}

func (e *Editor) drawStatusBar() {
	h := float32(rl.GetScreenHeight())
	w := float32(rl.GetScreenWidth())
	bar := rl.NewRectangle(0, h-float32(statusBarH), w, float32(statusBarH))
	rl.DrawRectangleRec(bar, colorBgPanel)

	text := e.Status()
	if text == "" {
		text = e.helpText()
	}
	rl.DrawText(text, 8, int32(bar.Y)+(statusBarH-uiTextSize)/2, uiTextSize, colorTextSecondary)

	sel := e.Selection.Current()
	if sel.Root != nil {
		label := fmt.Sprintf("%s: %s", sel.Kind, sel.Root.Name)
		lw := rl.MeasureText(label, uiTextSize)
		rl.DrawText(label, int32(w)-lw-8, int32(bar.Y)+(statusBarH-uiTextSize)/2, uiTextSize, colorTextPrimary)
	}
}

func (e *Editor) helpText() string {
	parts := make([]string, 0, len(Shortcuts))
	for _, s := range Shortcuts {
		parts = append(parts, fmt.Sprintf("%s %s", keyName(s.Key), s.Label))
	}
	return strings.Join(parts, "  ")
}

func keyName(key int32) string {
	switch key {
	case rl.KeyEscape:
		return "Esc"
	case rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour:
		return string(rune('1' + key - rl.KeyOne))
	}
	return string(rune(key))
}
