// Package panels provides the pages of the dashboard.
package panels

import (
	"fmt"
	"image"

	"algo-visualizer/internal/chart"
	"algo-visualizer/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Page is a dashboard page that can be embedded in a tab.
type Page interface {
	Container() fyne.CanvasObject
}

// valueSlider is a slider with a caption and a label following its value.
type valueSlider struct {
	slider *widget.Slider
	value  *widget.Label
	format string
}

// newValueSlider creates a slider on [min, max] starting at initial.
// onChanged is not called for the initial value.
func newValueSlider(min, max, step, initial float64, format string, onChanged func(float64)) *valueSlider {
	vs := &valueSlider{
		slider: widget.NewSlider(min, max),
		value:  widget.NewLabel(""),
		format: format,
	}
	vs.slider.Step = step
	vs.slider.Value = clampFloat(initial, min, max)
	vs.showValue()
	vs.slider.OnChanged = func(v float64) {
		vs.showValue()
		if onChanged != nil {
			onChanged(v)
		}
	}
	return vs
}

// Value returns the slider position.
func (vs *valueSlider) Value() float64 {
	return vs.slider.Value
}

// setSilently moves the slider without calling onChanged.
func (vs *valueSlider) setSilently(v float64) {
	vs.slider.Value = clampFloat(v, vs.slider.Min, vs.slider.Max)
	vs.slider.Refresh()
	vs.showValue()
}

func (vs *valueSlider) showValue() {
	vs.value.SetText(fmt.Sprintf(vs.format, vs.slider.Value))
}

// row lays out caption, slider and value on one line.
func (vs *valueSlider) row(caption string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(caption), vs.value, vs.slider)
}

// newImageView creates an image widget that keeps its aspect ratio.
func newImageView(img image.Image, minW, minH float32) *fynecanvas.Image {
	view := fynecanvas.NewImageFromImage(img)
	view.FillMode = fynecanvas.ImageFillContain
	view.ScaleMode = fynecanvas.ImageScalePixels
	view.SetMinSize(fyne.NewSize(minW, minH))
	return view
}

// setViewImage replaces the image shown by view.
func setViewImage(view *fynecanvas.Image, img image.Image) {
	view.Image = img
	view.Refresh()
}

// placeholder is shown where an image cannot be rendered.
func placeholder(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xee
	}
	return img
}

// channelBars renders the red, green and blue intensities as a bar chart.
func channelBars(r, g, b int) (image.Image, error) {
	opts := chart.DefaultOptions()
	opts.YMax = 255
	opts.GridLines = 5
	return chart.Bars([]chart.Bar{
		{Label: "Red", Value: float64(r), Color: colorutil.Red},
		{Label: "Green", Value: float64(g), Color: colorutil.Green},
		{Label: "Blue", Value: float64(b), Color: colorutil.Blue},
	}, opts)
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
