package panels

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"algo-visualizer/internal/app"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/pkg/geometry"
	"algo-visualizer/ui/canvas"
	"algo-visualizer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	maxShift     = 500
	frameOverlay = "frame"
	pixelHint    = "Click the image to trace a pixel back to the sample."
)

var frameColor = color.RGBA{R: 255, G: 215, A: 255}

// TransformPanel applies rotation, scaling, translation and flips to the
// sample image.
type TransformPanel struct {
	state *app.State
	prefs *prefs.Prefs

	angle, scale, tx, ty *valueSlider
	flipH, flipV         *widget.Check

	matrix *widget.Label
	pixel  *widget.Label
	status *widget.Label
	canvas *canvas.ImageCanvas

	content fyne.CanvasObject
}

// NewTransformPanel creates the graphic transformation page.
func NewTransformPanel(state *app.State, p *prefs.Prefs) *TransformPanel {
	tp := &TransformPanel{state: state, prefs: p}

	params := state.TransformParams()
	onChanged := func(float64) { tp.applyParams() }
	tp.angle = newValueSlider(-180, 180, 1, p.FloatWithFallback(prefs.KeyAngle, params.Angle), "%.0f°", onChanged)
	tp.scale = newValueSlider(0.1, 3, 0.1, p.FloatWithFallback(prefs.KeyScale, params.Scale), "%.1f×", onChanged)
	tp.tx = newValueSlider(-maxShift, maxShift, 1, p.FloatWithFallback(prefs.KeyTX, params.TX), "%.0f px", onChanged)
	tp.ty = newValueSlider(-maxShift, maxShift, 1, p.FloatWithFallback(prefs.KeyTY, params.TY), "%.0f px", onChanged)

	tp.flipH = widget.NewCheck("Flip horizontally", nil)
	tp.flipH.Checked = p.Bool(prefs.KeyFlipH, params.FlipH)
	tp.flipH.OnChanged = func(bool) { tp.applyParams() }
	tp.flipV = widget.NewCheck("Flip vertically", nil)
	tp.flipV.Checked = p.Bool(prefs.KeyFlipV, params.FlipV)
	tp.flipV.OnChanged = func(bool) { tp.applyParams() }

	tp.matrix = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	tp.pixel = widget.NewLabel(pixelHint)
	tp.status = widget.NewLabel("")
	tp.canvas = canvas.NewImageCanvas()
	tp.canvas.SetFitToWindow(true)
	tp.canvas.OnLeftClick(tp.inspect)

	tp.buildUI()

	state.On(app.EventImageLoaded, func(interface{}) { tp.Refresh() })
	state.On(app.EventTransformChanged, func(interface{}) { tp.Refresh() })

	tp.applyParams()
	return tp
}

func (tp *TransformPanel) buildUI() {
	reset := widget.NewButton("Reset", func() {
		tp.SetParams(geometry.DefaultTransformParams())
	})

	controls := container.NewVBox(
		widget.NewCard("Rotation and scaling", "", container.NewVBox(
			tp.angle.row("Angle"),
			tp.scale.row("Scale"),
		)),
		widget.NewCard("Translation", "", container.NewVBox(
			tp.tx.row("X"),
			tp.ty.row("Y"),
		)),
		widget.NewCard("Flip", "", container.NewVBox(tp.flipH, tp.flipV)),
		widget.NewCard("Affine matrix", "", tp.matrix),
		widget.NewCard("Pixel", "", tp.pixel),
		reset,
		tp.status,
	)

	zoom := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", func() {
			tp.canvas.SetFitToWindow(false)
			tp.canvas.ZoomOut()
		}),
		widget.NewButton("+", func() {
			tp.canvas.SetFitToWindow(false)
			tp.canvas.ZoomIn()
		}),
		widget.NewButton("Fit", func() { tp.canvas.SetFitToWindow(true) }),
		widget.NewButton("1:1", func() {
			tp.canvas.SetFitToWindow(false)
			tp.canvas.SetZoom(1)
		}),
	)

	split := container.NewHSplit(
		container.NewVScroll(controls),
		container.NewBorder(zoom, nil, nil, nil, tp.canvas.Container()),
	)
	split.SetOffset(0.3)
	tp.content = split
}

// Container returns the panel container.
func (tp *TransformPanel) Container() fyne.CanvasObject {
	return tp.content
}

// SetParams moves the controls to p and re-renders.
func (tp *TransformPanel) SetParams(p geometry.TransformParams) {
	tp.angle.setSilently(p.Angle)
	tp.scale.setSilently(p.Scale)
	tp.tx.setSilently(p.TX)
	tp.ty.setSilently(p.TY)
	tp.flipH.Checked = p.FlipH
	tp.flipH.Refresh()
	tp.flipV.Checked = p.FlipV
	tp.flipV.Refresh()
	tp.applyParams()
}

func (tp *TransformPanel) currentParams() geometry.TransformParams {
	return geometry.TransformParams{
		Angle: tp.angle.Value(),
		Scale: tp.scale.Value(),
		TX:    tp.tx.Value(),
		TY:    tp.ty.Value(),
		FlipH: tp.flipH.Checked,
		FlipV: tp.flipV.Checked,
	}
}

// applyParams stores the control values. The state change triggers Refresh.
func (tp *TransformPanel) applyParams() {
	p := tp.currentParams()
	tp.prefs.SetFloat(prefs.KeyAngle, p.Angle)
	tp.prefs.SetFloat(prefs.KeyScale, p.Scale)
	tp.prefs.SetFloat(prefs.KeyTX, p.TX)
	tp.prefs.SetFloat(prefs.KeyTY, p.TY)
	tp.prefs.SetBool(prefs.KeyFlipH, p.FlipH)
	tp.prefs.SetBool(prefs.KeyFlipV, p.FlipV)
	tp.state.SetTransformParams(p)
}

// Refresh re-renders the matrix and the transformed image.
func (tp *TransformPanel) Refresh() {
	m, err := tp.state.TransformMatrix()
	if err != nil {
		tp.matrix.SetText(geometry.Identity().String())
		tp.pixel.SetText(pixelHint)
		tp.showError(err)
		tp.canvas.SetImage(nil)
		tp.canvas.ClearOverlay(frameOverlay)
		return
	}
	tp.matrix.SetText(m.String())

	img, err := tp.state.TransformedImage()
	if err != nil {
		tp.showError(err)
		return
	}
	tp.status.SetText("")
	tp.canvas.SetImage(img)

	sample, _ := tp.state.Sample()
	tp.canvas.SetOverlay(frameOverlay, &canvas.Overlay{
		Outlines: []canvas.Outline{canvas.FrameOutline(sample.Width(), sample.Height(), m)},
		Color:    frameColor,
	})
}

// inspect reports which sample pixel is shown at (x, y) of the
// transformed image. Pixel i covers [i, i+1).
func (tp *TransformPanel) inspect(x, y float64) {
	view := geometry.Point2D{X: math.Floor(x), Y: math.Floor(y)}
	px, err := tp.state.SourcePixel(view)
	if err != nil {
		tp.showError(err)
		return
	}
	if !px.Inside {
		tp.pixel.SetText(fmt.Sprintf("View (%.0f, %.0f) <- sample (%d, %d)\noutside the sample", view.X, view.Y, px.X, px.Y))
		return
	}
	c := color.NRGBAModel.Convert(px.Color).(color.NRGBA)
	rgb := colorutil.RGB{R: int(c.R), G: int(c.G), B: int(c.B)}
	tp.pixel.SetText(fmt.Sprintf("View (%.0f, %.0f) <- sample (%d, %d)\n%s %s",
		view.X, view.Y, px.X, px.Y, rgb.Hex(), rgb))
}

func (tp *TransformPanel) showError(err error) {
	if errors.Is(err, app.ErrNoImage) {
		tp.status.SetText("No sample image loaded. Use File > Open Sample Image.")
		return
	}
	tp.state.Logger().Warn("Transform: failed", "error", err)
	tp.status.SetText(err.Error())
}
