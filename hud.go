package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD is the strip of toggle buttons along the top of the window. Clicks are
// queued on the controls so they reach the arena through the normal input
// path.
type HUD struct {
	ui        *ebitenui.UI
	autoBtn   *widget.Button
	globalBtn *widget.Button
	status    *widget.Text

	auto, global bool
	synced       bool
}

func NewHUD(controls *Controls) *HUD {
	stripImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 220})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	textColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	h := &HUD{}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(label, &face, textColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 12, Right: 12, Top: 6, Bottom: 6}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}
	h.autoBtn = button("Auto: off", controls.QueueToggleAuto)
	h.globalBtn = button("Global: off", controls.QueueToggleGlobal)
	h.status = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	strip := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(stripImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth, hudHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	strip.AddChild(h.autoBtn)
	strip.AddChild(h.globalBtn)
	strip.AddChild(h.status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(strip)
	h.ui = &ebitenui.UI{Container: root}
	return h
}

// Sync refreshes the button labels when the agent's flags change.
func (h *HUD) Sync(auto, global bool, status string) {
	if !h.synced || auto != h.auto {
		h.autoBtn.SetText("Auto: " + onOff(auto))
	}
	if !h.synced || global != h.global {
		h.globalBtn.SetText("Global: " + onOff(global))
	}
	h.auto, h.global, h.synced = auto, global, true
	h.status.Label = status
}

func (h *HUD) Update() { h.ui.Update() }

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func statusLine(state string, kills, left int, now float64) string {
	return fmt.Sprintf("state %-8s kills %d  left %d  t=%.1fs   [T] auto  [G] global  [Space] attack  [R] restart  [F3] overlay", state, kills, left, now)
}
