// Package colorutil converts single color samples between RGB and HSB.
//
// RGB channels are integers in [0,255]. HSB carries hue in degrees
// [0,360), saturation and brightness in [0,1]. When the maximum channel
// is shared by several channels the hue branch is chosen in the order
// red, green, blue. Achromatic colors (grey, white, black) get hue 0,
// and black additionally gets saturation 0.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Common swatch colors used by the charts.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// ErrInputRange is matched by every *InputRangeError.
var ErrInputRange = errors.New("channel value out of range")

// InputRangeError reports an RGB channel outside [0,255].
type InputRangeError struct {
	Channel string
	Value   int
}

func (e *InputRangeError) Error() string {
	return fmt.Sprintf("%s channel %d outside [0,255]", e.Channel, e.Value)
}

// Is makes errors.Is(err, ErrInputRange) report true.
func (e *InputRangeError) Is(target error) bool {
	return target == ErrInputRange
}

// RGB is a color with integer channel intensities.
type RGB struct {
	R, G, B int
}

// HSB is a color in hue/saturation/brightness form.
type HSB struct {
	H float64 // degrees, [0,360)
	S float64 // [0,1]
	B float64 // [0,1]
}

// Validate returns an *InputRangeError for the first channel outside [0,255].
func (c RGB) Validate() error {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if ch.value < 0 || ch.value > 255 {
			return &InputRangeError{Channel: ch.name, Value: ch.value}
		}
	}
	return nil
}

// HSB converts c, failing if a channel is out of range.
func (c RGB) HSB() (HSB, error) {
	return RGBToHSB(c.R, c.G, c.B)
}

// NRGBA returns c as an opaque color.NRGBA. Channels must be valid.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// Hex renders c as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func (c RGB) String() string {
	return fmt.Sprintf("Red = %d, Green = %d, Blue = %d", c.R, c.G, c.B)
}

// RGBToHSB converts integer channels in [0,255] to HSB.
func RGBToHSB(r, g, b int) (HSB, error) {
	if err := (RGB{R: r, G: g, B: b}).Validate(); err != nil {
		return HSB{}, err
	}

	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	chroma := maxC - minC

	var hsb HSB
	hsb.B = maxC
	if maxC != 0 {
		hsb.S = chroma / maxC
	}

	if chroma == 0 {
		return hsb, nil
	}

	var h float64
	switch maxC {
	case rf:
		h = 60 * floorMod((gf-bf)/chroma, 6)
	case gf:
		h = 60 * ((bf-rf)/chroma + 2)
	default:
		h = 60 * ((rf-gf)/chroma + 4)
	}
	hsb.H = wrapHue(h)

	return hsb, nil
}

// HSBToRGB converts HSB to integer channels. It never fails: hue wraps
// modulo 360, saturation and brightness are clamped into [0,1].
func HSBToRGB(h, s, v float64) RGB {
	h = wrapHue(h)
	s = clampUnit(s)
	v = clampUnit(v)

	chroma := v * s
	hp := h / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := v - chroma

	var rf, gf, bf float64
	switch int(hp) {
	case 0:
		rf, gf, bf = chroma, x, 0
	case 1:
		rf, gf, bf = x, chroma, 0
	case 2:
		rf, gf, bf = 0, chroma, x
	case 3:
		rf, gf, bf = 0, x, chroma
	case 4:
		rf, gf, bf = x, 0, chroma
	default:
		rf, gf, bf = chroma, 0, x
	}

	return RGB{
		R: toChannel(rf + m),
		G: toChannel(gf + m),
		B: toChannel(bf + m),
	}
}

// RGB converts c to integer channels.
func (c HSB) RGB() RGB {
	return HSBToRGB(c.H, c.S, c.B)
}

// RGBA implements color.Color.
func (c HSB) RGBA() (r, g, b, a uint32) {
	return c.RGB().NRGBA().RGBA()
}

func (c HSB) String() string {
	return fmt.Sprintf("Hue = %.2f°, Saturation = %.2f, Brightness = %.2f", c.H, c.S*100, c.B*100)
}

// HSBModel converts any color.Color to HSB. Alpha is discarded.
var HSBModel = color.ModelFunc(hsbModel)

func hsbModel(c color.Color) color.Color {
	if _, ok := c.(HSB); ok {
		return c
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	// uint8 channels are always in range.
	hsb, _ := RGBToHSB(int(nrgba.R), int(nrgba.G), int(nrgba.B))
	return hsb
}

// floorMod returns x mod m with the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// wrapHue maps any hue into [0,360). Non-finite hues map to 0.
func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = floorMod(h, 360)
	if h >= 360 {
		h = 0
	}
	return h
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toChannel(x float64) int {
	v := math.RoundToEven(x * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}
