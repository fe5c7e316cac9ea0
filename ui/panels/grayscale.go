package panels

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"algo-visualizer/internal/app"
	"algo-visualizer/internal/chart"
	"algo-visualizer/internal/tone"
	"algo-visualizer/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	previewW = 240
	previewH = 180
)

var (
	logCurveColor   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	powerCurveColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	histogramColor  = color.Gray{Y: 0x50}
)

// GrayscalePanel shows the log and power-law transforms of the sample.
type GrayscalePanel struct {
	state *app.State
	prefs *prefs.Prefs

	logC, powerC, gamma *valueSlider

	status     *widget.Label
	grayView   *fynecanvas.Image
	logView    *fynecanvas.Image
	powerView  *fynecanvas.Image
	grayStats  *widget.Label
	logStats   *widget.Label
	powerStats *widget.Label

	logCurve   *fynecanvas.Image
	powerCurve *fynecanvas.Image

	grayHist  *fynecanvas.Image
	logHist   *fynecanvas.Image
	powerHist *fynecanvas.Image

	content fyne.CanvasObject
}

// NewGrayscalePanel creates the grayscale page.
func NewGrayscalePanel(state *app.State, p *prefs.Prefs) *GrayscalePanel {
	gp := &GrayscalePanel{state: state, prefs: p}

	params := state.ToneParams()
	params = tone.Params{
		LogC:   p.FloatWithFallback(prefs.KeyLogC, params.LogC),
		PowerC: p.FloatWithFallback(prefs.KeyPowerC, params.PowerC),
		Gamma:  p.FloatWithFallback(prefs.KeyGamma, params.Gamma),
	}.Clamp()

	onChanged := func(float64) { gp.applyParams() }
	gp.logC = newValueSlider(tone.ConstMin, tone.ConstMax, tone.ParamStep, params.LogC, "%.1f", onChanged)
	gp.powerC = newValueSlider(tone.ConstMin, tone.ConstMax, tone.ParamStep, params.PowerC, "%.1f", onChanged)
	gp.gamma = newValueSlider(tone.GammaMin, tone.GammaMax, tone.ParamStep, params.Gamma, "%.1f", onChanged)

	gp.status = widget.NewLabel("")
	gp.grayView = newImageView(placeholder(previewW, previewH), previewW, previewH)
	gp.logView = newImageView(placeholder(previewW, previewH), previewW, previewH)
	gp.powerView = newImageView(placeholder(previewW, previewH), previewW, previewH)
	gp.grayStats = widget.NewLabel("")
	gp.logStats = widget.NewLabel("")
	gp.powerStats = widget.NewLabel("")
	gp.logCurve = newImageView(placeholder(chartW, chartH), chartW, chartH)
	gp.powerCurve = newImageView(placeholder(chartW, chartH), chartW, chartH)
	gp.grayHist = newImageView(placeholder(chartW, chartH), chartW/2, chartH/2)
	gp.logHist = newImageView(placeholder(chartW, chartH), chartW/2, chartH/2)
	gp.powerHist = newImageView(placeholder(chartW, chartH), chartW/2, chartH/2)

	gp.buildUI()

	state.On(app.EventImageLoaded, func(interface{}) { gp.Refresh() })
	state.On(app.EventToneChanged, func(interface{}) { gp.Refresh() })

	// Storing the restored parameters renders the page.
	gp.applyParams()
	return gp
}

func (gp *GrayscalePanel) buildUI() {
	sliders := widget.NewCard("Parameters", "", container.NewVBox(
		gp.logC.row("Log scaling factor c1"),
		gp.powerC.row("Power-law scaling factor c2"),
		gp.gamma.row("Gamma γ"),
	))

	images := container.NewGridWithColumns(3,
		previewCard("Grayscale", gp.grayView, gp.grayStats),
		previewCard("Log Transformation", gp.logView, gp.logStats),
		previewCard("Power-Law Transformation", gp.powerView, gp.powerStats),
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Log Transformation", container.NewGridWithColumns(2,
			widget.NewRichTextFromMarkdown(tone.LogDescription), gp.logCurve)),
		container.NewTabItem("Power-Law Transformation", container.NewGridWithColumns(2,
			widget.NewRichTextFromMarkdown(tone.PowerLawDescription), gp.powerCurve)),
		container.NewTabItem("Histograms", container.NewGridWithColumns(3,
			widget.NewCard("Grayscale", "", gp.grayHist),
			widget.NewCard("Log", "", gp.logHist),
			widget.NewCard("Power-Law", "", gp.powerHist),
		)),
	)

	gp.content = container.NewVScroll(container.NewVBox(sliders, gp.status, images, tabs))
}

func previewCard(title string, view *fynecanvas.Image, stats *widget.Label) fyne.CanvasObject {
	return widget.NewCard(title, "", container.NewBorder(nil, stats, nil, nil, view))
}

// Container returns the panel container.
func (gp *GrayscalePanel) Container() fyne.CanvasObject {
	return gp.content
}

// SetParams moves the sliders to p and re-renders.
func (gp *GrayscalePanel) SetParams(p tone.Params) {
	p = p.Clamp()
	gp.logC.setSilently(p.LogC)
	gp.powerC.setSilently(p.PowerC)
	gp.gamma.setSilently(p.Gamma)
	gp.applyParams()
}

// applyParams stores the slider values. The state change triggers Refresh.
func (gp *GrayscalePanel) applyParams() {
	p := tone.Params{LogC: gp.logC.Value(), PowerC: gp.powerC.Value(), Gamma: gp.gamma.Value()}
	gp.prefs.SetFloat(prefs.KeyLogC, p.LogC)
	gp.prefs.SetFloat(prefs.KeyPowerC, p.PowerC)
	gp.prefs.SetFloat(prefs.KeyGamma, p.Gamma)
	gp.state.SetToneParams(p)
}

// Refresh re-renders the images and tone curves from the state.
func (gp *GrayscalePanel) Refresh() {
	p := gp.state.ToneParams()
	gp.showCurve(gp.logCurve, "log", p.Log(), logCurveColor)
	gp.showCurve(gp.powerCurve, "power-law", p.PowerLaw(), powerCurveColor)

	gray, logImg, power, err := gp.state.ToneImages()
	if err != nil {
		if errors.Is(err, app.ErrNoImage) {
			gp.status.SetText("No sample image loaded. Use File > Open Sample Image.")
		} else {
			gp.status.SetText(err.Error())
		}
		return
	}
	gp.status.SetText("")
	gp.showGray(gp.grayView, gp.grayStats, gp.grayHist, gray)
	gp.showGray(gp.logView, gp.logStats, gp.logHist, logImg)
	gp.showGray(gp.powerView, gp.powerStats, gp.powerHist, power)
}

func (gp *GrayscalePanel) showGray(view *fynecanvas.Image, stats *widget.Label, hist *fynecanvas.Image, img *image.Gray) {
	setViewImage(view, img)
	mean, stddev := tone.Stats(img)
	stats.SetText(fmt.Sprintf("mean %.1f, std dev %.1f", mean, stddev))

	h, err := chart.Histogram(tone.Histogram(img), histogramColor, chart.DefaultOptions())
	if err != nil {
		gp.state.Logger().Warn("Grayscale: histogram failed", "error", err)
		h = placeholder(chartW, chartH)
	}
	setViewImage(hist, h)
}

func (gp *GrayscalePanel) showCurve(view *fynecanvas.Image, name string, f tone.Func, c color.Color) {
	img, err := toneCurveChart(name, f, c)
	if err != nil {
		gp.state.Logger().Warn("Grayscale: curve chart failed", "curve", name, "error", err)
		img = placeholder(chartW, chartH)
	}
	setViewImage(view, img)
}

// toneCurveChart plots f over [0,1] against the identity line.
func toneCurveChart(name string, f tone.Func, c color.Color) (image.Image, error) {
	curve := tone.Sample(f, tone.CurvePoints)
	return chart.ToneCurve(name, curve.X, curve.Y, c)
}
