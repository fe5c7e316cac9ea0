package tone

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	return img
}

func TestLogTransform(t *testing.T) {
	f := Log(1)
	assert.Equal(t, 0.0, f(0))
	assert.InDelta(t, math.Ln2, f(1), 1e-12)
	assert.InDelta(t, 2*math.Ln2, Log(2)(1), 1e-12)
}

func TestPowerLawTransform(t *testing.T) {
	assert.InDelta(t, 0.25, PowerLaw(1, 2)(0.5), 1e-12)
	assert.InDelta(t, 1.0, PowerLaw(1, 0)(0), 1e-12, "0^0 is 1")
	assert.InDelta(t, 0.5, PowerLaw(1, 1)(0.5), 1e-12)
	assert.Equal(t, 0.0, PowerLaw(0, 3)(0.7))
}

func TestLUTIdentity(t *testing.T) {
	lut := LUT(PowerLaw(1, 1))
	for i, v := range lut {
		// i/255*255 may land just below i and truncate.
		assert.InDelta(t, i, int(v), 1, "level %d", i)
	}
	assert.Equal(t, uint8(0), lut[0])
	assert.Equal(t, uint8(255), lut[255])
}

func TestLUTSaturates(t *testing.T) {
	lut := LUT(PowerLaw(2, 1))
	assert.Equal(t, uint8(255), lut[200])
	assert.Equal(t, uint8(255), lut[255])

	lut = LUT(Log(2))
	assert.Equal(t, uint8(255), lut[255], "2*ln2*255 > 255 saturates instead of wrapping")

	lut = LUT(func(float64) float64 { return -1 })
	assert.Equal(t, uint8(0), lut[128])
}

func TestLUTLogValues(t *testing.T) {
	lut := LUT(Log(1))
	assert.Equal(t, uint8(176), lut[255], "ln2*255 = 176.75 truncates")
	assert.Equal(t, uint8(0), lut[0])
	for i := 1; i < 256; i++ {
		assert.GreaterOrEqual(t, lut[i], lut[i-1], "log LUT must be monotonic")
	}
}

func TestApply(t *testing.T) {
	src := rampImage(16, 16)
	var invert [256]uint8
	for i := range invert {
		invert[i] = uint8(255 - i)
	}
	out := Apply(src, invert)
	require.Equal(t, src.Bounds(), out.Bounds())
	for i := range src.Pix {
		assert.Equal(t, 255-src.Pix[i], out.Pix[i])
	}
	assert.Equal(t, uint8(0), src.Pix[0], "source must be untouched")
}

func TestApplySubImage(t *testing.T) {
	src := rampImage(8, 8)
	sub := src.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray)
	out := Transform(sub, PowerLaw(0, 1))
	assert.Equal(t, sub.Bounds(), out.Bounds())
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			assert.Equal(t, uint8(0), out.GrayAt(x, y).Y)
		}
	}
}

func TestParamsClamp(t *testing.T) {
	p := Params{LogC: -1, PowerC: 3, Gamma: math.NaN()}.Clamp()
	assert.Equal(t, Params{LogC: 0, PowerC: 2, Gamma: 0}, p)
	assert.Equal(t, DefaultParams(), DefaultParams().Clamp())
}

func TestSample(t *testing.T) {
	c := Sample(PowerLaw(1, 2), CurvePoints)
	require.Len(t, c.X, CurvePoints)
	require.Len(t, c.Y, CurvePoints)
	assert.Equal(t, 0.0, c.X[0])
	assert.Equal(t, 1.0, c.X[CurvePoints-1])
	assert.InDelta(t, 1.0, c.Y[CurvePoints-1], 1e-12)

	id := Identity(5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, id.X)
	assert.Equal(t, id.X, id.Y)

	assert.Nil(t, Sample(Log(1), 1).X)
}

func TestStats(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[1] = 10, 30
	mean, std := Stats(img)
	assert.InDelta(t, 20.0, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(200), std, 1e-12)

	mean, std = Stats(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestHistogram(t *testing.T) {
	img := rampImage(16, 32)
	hist := Histogram(img)
	require.Len(t, hist, 256)
	for level, count := range hist {
		assert.Equal(t, 2.0, count, "level %d", level)
	}
	assert.Len(t, Histogram(nil), 256)
}
