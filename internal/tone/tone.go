// Package tone provides grayscale intensity transforms and their tone curves.
package tone

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Slider ranges shared by the grayscale page and the CLI.
const (
	ConstMin    = 0.0
	ConstMax    = 2.0
	GammaMin    = 0.0
	GammaMax    = 5.0
	ParamStep   = 0.1
	CurvePoints = 100
)

// Func maps a normalized intensity in [0,1] to a transformed intensity.
type Func func(r float64) float64

// Log returns s = c * ln(1 + r).
func Log(c float64) Func {
	return func(r float64) float64 {
		return c * math.Log1p(r)
	}
}

// PowerLaw returns s = c * r^gamma. 0^0 is 1.
func PowerLaw(c, gamma float64) Func {
	return func(r float64) float64 {
		return c * math.Pow(r, gamma)
	}
}

// Params holds the constants of both transforms.
type Params struct {
	LogC   float64 `json:"logC"`
	PowerC float64 `json:"powerC"`
	Gamma  float64 `json:"gamma"`
}

// DefaultParams returns c1 = c2 = gamma = 1.
func DefaultParams() Params {
	return Params{LogC: 1, PowerC: 1, Gamma: 1}
}

// Clamp returns p with every field inside its slider range.
func (p Params) Clamp() Params {
	return Params{
		LogC:   clamp(p.LogC, ConstMin, ConstMax),
		PowerC: clamp(p.PowerC, ConstMin, ConstMax),
		Gamma:  clamp(p.Gamma, GammaMin, GammaMax),
	}
}

// Log returns the log transform for p.
func (p Params) Log() Func { return Log(p.LogC) }

// PowerLaw returns the power-law transform for p.
func (p Params) PowerLaw() Func { return PowerLaw(p.PowerC, p.Gamma) }

// LUT tabulates f for every 8-bit intensity. Results are scaled back by 255,
// truncated toward zero and saturated to [0,255].
func LUT(f Func) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := f(float64(i)/255.0) * 255.0
		switch {
		case math.IsNaN(v) || v <= 0:
			lut[i] = 0
		case v >= 255:
			lut[i] = 255
		default:
			lut[i] = uint8(v)
		}
	}
	return lut
}

// Apply maps every pixel of img through lut. img is not modified.
func Apply(img *image.Gray, lut [256]uint8) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, y):]
		dst := out.Pix[out.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			dst[x] = lut[src[x]]
		}
	}
	return out
}

// Transform applies f to img.
func Transform(img *image.Gray, f Func) *image.Gray {
	return Apply(img, LUT(f))
}

// Curve is a sampled tone curve.
type Curve struct {
	X []float64
	Y []float64
}

// Sample evaluates f at n evenly spaced points on [0,1]. n < 2 yields nil slices.
func Sample(f Func, n int) Curve {
	if n < 2 {
		return Curve{}
	}
	xs := floats.Span(make([]float64, n), 0, 1)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = f(x)
	}
	return Curve{X: xs, Y: ys}
}

// Identity samples the reference line s = r.
func Identity(n int) Curve {
	return Sample(func(r float64) float64 { return r }, n)
}

// Stats returns the mean and standard deviation of img's intensities.
func Stats(img *image.Gray) (mean, stddev float64) {
	values := intensities(img)
	if len(values) == 0 {
		return 0, 0
	}
	if len(values) == 1 {
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Histogram counts pixels per intensity level. The result has 256 bins.
func Histogram(img *image.Gray) []float64 {
	counts := make([]float64, 256)
	values := intensities(img)
	if len(values) == 0 {
		return counts
	}
	sort.Float64s(values)
	dividers := floats.Span(make([]float64, 257), 0, 256)
	return stat.Histogram(counts, dividers, values, nil)
}

func intensities(img *image.Gray) []float64 {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	values := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			values = append(values, float64(row[x]))
		}
	}
	return values
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
