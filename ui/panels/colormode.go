package panels

import (
	"fmt"
	"math"
	"strings"

	"algo-visualizer/internal/app"
	visimage "algo-visualizer/internal/image"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	swatchSize = 100
	chartW     = 320
	chartH     = 240
)

// hueFormula is the piecewise hue definition shown under the converters.
const hueFormula = `**Hue**, with Δ = max(R, G, B) − min(R, G, B):

- R is the maximum: H = 60° × ((G − B) / Δ) + 360°, taken modulo 360°
- G is the maximum: H = 60° × ((B − R) / Δ) + 120°
- B is the maximum: H = 60° × ((R − G) / Δ) + 240°

Saturation = Δ / max(R, G, B), Brightness = max(R, G, B).`

// ColorModePanel converts RGB input to HSB and HSB input to RGB.
type ColorModePanel struct {
	state *app.State
	prefs *prefs.Prefs

	red, green, blue            *valueSlider
	hue, saturation, brightness *valueSlider

	hsbReadout *widget.Label
	rgbHex     *widget.Label
	rgbSwatch  *fynecanvas.Image
	rgbChart   *fynecanvas.Image

	rgbReadout *widget.Label
	hsbHex     *widget.Label
	hsbSwatch  *fynecanvas.Image
	hsbChart   *fynecanvas.Image

	content fyne.CanvasObject
}

// NewColorModePanel creates the color mode page. Slider positions are
// restored from p.
func NewColorModePanel(state *app.State, p *prefs.Prefs) *ColorModePanel {
	cp := &ColorModePanel{state: state, prefs: p}

	rgb, hsb := state.RGB(), state.HSB()
	cp.red = newValueSlider(0, 255, 1, float64(p.IntWithFallback(prefs.KeyRed, rgb.R)), "%.0f", func(float64) { cp.updateRGB() })
	cp.green = newValueSlider(0, 255, 1, float64(p.IntWithFallback(prefs.KeyGreen, rgb.G)), "%.0f", func(float64) { cp.updateRGB() })
	cp.blue = newValueSlider(0, 255, 1, float64(p.IntWithFallback(prefs.KeyBlue, rgb.B)), "%.0f", func(float64) { cp.updateRGB() })

	cp.hue = newValueSlider(0, 360, 1, p.FloatWithFallback(prefs.KeyHue, hsb.H), "%.0f°", func(float64) { cp.updateHSB() })
	cp.saturation = newValueSlider(0, 1, 0.01, p.FloatWithFallback(prefs.KeySaturation, hsb.S), "%.2f", func(float64) { cp.updateHSB() })
	cp.brightness = newValueSlider(0, 1, 0.01, p.FloatWithFallback(prefs.KeyBrightness, hsb.B), "%.2f", func(float64) { cp.updateHSB() })

	cp.hsbReadout = widget.NewLabel("")
	cp.rgbHex = widget.NewLabel("")
	cp.rgbSwatch = newImageView(placeholder(swatchSize, swatchSize), swatchSize, swatchSize)
	cp.rgbChart = newImageView(placeholder(chartW, chartH), chartW, chartH)

	cp.rgbReadout = widget.NewLabel("")
	cp.hsbHex = widget.NewLabel("")
	cp.hsbSwatch = newImageView(placeholder(swatchSize, swatchSize), swatchSize, swatchSize)
	cp.hsbChart = newImageView(placeholder(chartW, chartH), chartW, chartH)

	cp.buildUI()
	cp.updateRGB()
	cp.updateHSB()
	return cp
}

func (cp *ColorModePanel) buildUI() {
	rgbInputs := container.NewVBox(
		cp.red.row("Red (0-255)"),
		cp.green.row("Green (0-255)"),
		cp.blue.row("Blue (0-255)"),
		cp.hsbReadout,
		container.NewHBox(cp.rgbSwatch, cp.rgbHex),
	)
	rgbCard := widget.NewCard("RGB → HSB", "Pick a color by its channel intensities",
		container.NewBorder(nil, nil, rgbInputs, nil, cp.rgbChart))

	hsbInputs := container.NewVBox(
		cp.hue.row("Hue (0-360)"),
		cp.saturation.row("Saturation (0-1)"),
		cp.brightness.row("Brightness (0-1)"),
		cp.rgbReadout,
		container.NewHBox(cp.hsbSwatch, cp.hsbHex),
	)
	hsbCard := widget.NewCard("HSB → RGB", "Pick a color by hue, saturation and brightness",
		container.NewBorder(nil, nil, hsbInputs, nil, cp.hsbChart))

	cp.content = container.NewVScroll(container.NewVBox(
		container.NewGridWithColumns(2, rgbCard, hsbCard),
		widget.NewCard("Formula", "", widget.NewRichTextFromMarkdown(hueFormula)),
	))
}

// Container returns the panel container.
func (cp *ColorModePanel) Container() fyne.CanvasObject {
	return cp.content
}

// SetRGB moves the RGB sliders to c and converts it.
func (cp *ColorModePanel) SetRGB(c colorutil.RGB) {
	cp.red.setSilently(float64(c.R))
	cp.green.setSilently(float64(c.G))
	cp.blue.setSilently(float64(c.B))
	cp.updateRGB()
}

// SetHSB moves the HSB sliders to c and converts it.
func (cp *ColorModePanel) SetHSB(c colorutil.HSB) {
	cp.hue.setSilently(c.H)
	cp.saturation.setSilently(c.S)
	cp.brightness.setSilently(c.B)
	cp.updateHSB()
}

// currentRGB reads the RGB sliders.
func (cp *ColorModePanel) currentRGB() colorutil.RGB {
	return colorutil.RGB{
		R: int(math.Round(cp.red.Value())),
		G: int(math.Round(cp.green.Value())),
		B: int(math.Round(cp.blue.Value())),
	}
}

func (cp *ColorModePanel) currentHSB() colorutil.HSB {
	return colorutil.HSB{H: cp.hue.Value(), S: cp.saturation.Value(), B: cp.brightness.Value()}
}

func (cp *ColorModePanel) updateRGB() {
	c := cp.currentRGB()
	hsb, err := cp.state.SetRGB(c)
	if err != nil {
		cp.hsbReadout.SetText(err.Error())
		return
	}
	cp.hsbReadout.SetText(readout(hsb))
	cp.showColor(c, cp.rgbSwatch, cp.rgbHex, cp.rgbChart)

	cp.prefs.SetInt(prefs.KeyRed, c.R)
	cp.prefs.SetInt(prefs.KeyGreen, c.G)
	cp.prefs.SetInt(prefs.KeyBlue, c.B)
}

func (cp *ColorModePanel) updateHSB() {
	c := cp.currentHSB()
	rgb := cp.state.SetHSB(c)
	cp.rgbReadout.SetText(readout(rgb))
	cp.showColor(rgb, cp.hsbSwatch, cp.hsbHex, cp.hsbChart)

	cp.prefs.SetFloat(prefs.KeyHue, c.H)
	cp.prefs.SetFloat(prefs.KeySaturation, c.S)
	cp.prefs.SetFloat(prefs.KeyBrightness, c.B)
}

// readout puts each component of c on its own line.
func readout(c fmt.Stringer) string {
	return strings.ReplaceAll(c.String(), ", ", "\n")
}

// showColor renders the swatch, hex code and channel chart of c.
func (cp *ColorModePanel) showColor(c colorutil.RGB, swatch *fynecanvas.Image, hex *widget.Label, chartView *fynecanvas.Image) {
	setViewImage(swatch, visimage.Swatch(c.NRGBA(), swatchSize, swatchSize))
	hex.SetText(c.Hex())

	img, err := channelBars(c.R, c.G, c.B)
	if err != nil {
		cp.state.Logger().Warn("ColorMode: chart failed", "error", err)
		img = placeholder(chartW, chartH)
	}
	setViewImage(chartView, img)
}
