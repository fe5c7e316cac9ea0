package app

import (
	"errors"
	goimage "image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"algo-visualizer/internal/config"
	"algo-visualizer/internal/tone"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayOf converts with the ITU-R 601 weights OpenCV uses.
func grayOf(img goimage.Image) (*goimage.Gray, error) {
	b := img.Bounds()
	out := goimage.NewGray(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

// nearestWarp maps every destination pixel back through the inverse.
func nearestWarp(img goimage.Image, t geometry.AffineTransform) (goimage.Image, error) {
	inv, err := t.Inverse()
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	out := goimage.NewRGBA(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			p := inv.Apply(geometry.Point2D{X: float64(x), Y: float64(y)})
			sx, sy := int(p.X+0.5), int(p.Y+0.5)
			if (goimage.Point{X: sx, Y: sy}).In(b) {
				out.Set(x, y, img.At(sx, sy))
			}
		}
	}
	return out, nil
}

func testServices() Services {
	return Services{Gray: grayOf, Warp: nearestWarp}
}

func writeSample(t *testing.T) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		img.Set(x, 1, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	assert.Equal(t, config.Default().Page.Title, s.Config().Page.Title)
	assert.Equal(t, "", s.Topic())
	assert.Equal(t, tone.DefaultParams(), s.ToneParams())
	assert.Equal(t, geometry.DefaultTransformParams(), s.TransformParams())
	assert.Equal(t, colorutil.RGB{R: 255}, s.RGB())
	assert.Equal(t, colorutil.HSB{H: 0, S: 1, B: 1}, s.HSB())
	assert.NotNil(t, s.Logger())
}

func TestEventsReachListeners(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	var got []interface{}
	s.On(EventToneChanged, func(data interface{}) { got = append(got, data) })
	s.On(EventToneChanged, func(data interface{}) { got = append(got, "second") })

	s.SetToneParams(tone.Params{LogC: 5, PowerC: -1, Gamma: 2})
	require.Len(t, got, 2)
	assert.Equal(t, tone.Params{LogC: 2, PowerC: 0, Gamma: 2}, got[0])
	assert.Equal(t, "second", got[1])
	assert.Equal(t, tone.Params{LogC: 2, PowerC: 0, Gamma: 2}, s.ToneParams())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "ImageLoaded", EventImageLoaded.String())
	assert.Equal(t, "EventType(99)", EventType(99).String())
}

func TestSetTopic(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	var topics []string
	s.On(EventTopicChanged, func(data interface{}) { topics = append(topics, data.(string)) })

	require.NoError(t, s.SetTopic(TopicImageProcessing))
	assert.Equal(t, TopicImageProcessing, s.Topic())

	err := s.SetTopic("Quantum Chromodynamics")
	assert.True(t, errors.Is(err, ErrUnknownTopic))
	assert.Equal(t, TopicImageProcessing, s.Topic())

	require.NoError(t, s.SetTopic(""))
	assert.Equal(t, []string{TopicImageProcessing, ""}, topics)
}

func TestLoadSampleImageAndTones(t *testing.T) {
	s := NewState(nil, testServices(), nil)

	_, _, _, err := s.ToneImages()
	assert.ErrorIs(t, err, ErrNoImage)

	loaded := 0
	s.On(EventImageLoaded, func(interface{}) { loaded++ })
	require.NoError(t, s.LoadSampleImage(writeSample(t)))
	assert.Equal(t, 1, loaded)

	layer, gray := s.Sample()
	require.NotNil(t, layer)
	assert.Equal(t, "sample.png", layer.Name())
	assert.Equal(t, uint8(200), gray.GrayAt(1, 1).Y)

	s.SetToneParams(tone.Params{LogC: 1, PowerC: 1, Gamma: 1})
	g, logImg, power, err := s.ToneImages()
	require.NoError(t, err)
	assert.Same(t, gray, g)
	assert.Equal(t, gray.Pix, power.Pix, "gamma 1 with c 1 is the identity")
	assert.Equal(t, tone.LUT(tone.Log(1))[200], logImg.GrayAt(1, 1).Y)
	assert.Less(t, logImg.GrayAt(1, 0).Y, gray.GrayAt(1, 0).Y, "c = 1 darkens mid-tones")
}

func TestLoadSampleImageErrors(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	err := s.LoadSampleImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	failing := Services{Gray: func(goimage.Image) (*goimage.Gray, error) {
		return nil, errors.New("boom")
	}}
	s = NewState(nil, failing, nil)
	err = s.LoadSampleImage(writeSample(t))
	assert.ErrorContains(t, err, "failed to convert sample.png to grayscale: boom")
	layer, _ := s.Sample()
	assert.Nil(t, layer)
}

func TestTransformedImage(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	_, err := s.TransformedImage()
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.TransformMatrix()
	assert.ErrorIs(t, err, ErrNoImage)

	require.NoError(t, s.LoadSampleImage(writeSample(t)))
	layer, _ := s.Sample()

	img, err := s.TransformedImage()
	require.NoError(t, err)
	assert.Same(t, layer.Image, img, "identity parameters skip the warp")

	p := geometry.DefaultTransformParams()
	p.FlipH = true
	s.SetTransformParams(p)

	m, err := s.TransformMatrix()
	require.NoError(t, err)
	assert.InDelta(t, -1, m.A, 1e-12)
	assert.InDelta(t, 3, m.TX, 1e-12)

	img, err = s.TransformedImage()
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(100), r>>8, "red corner moved away from the left edge")
}

func TestSetColors(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	events := 0
	s.On(EventColorChanged, func(interface{}) { events++ })

	hsb, err := s.SetRGB(colorutil.RGB{R: 0, G: 255, B: 0})
	require.NoError(t, err)
	assert.InDelta(t, 120, hsb.H, 1e-9)
	assert.Equal(t, colorutil.RGB{G: 255}, s.RGB())

	_, err = s.SetRGB(colorutil.RGB{R: 256})
	assert.ErrorIs(t, err, colorutil.ErrInputRange)
	assert.Equal(t, colorutil.RGB{G: 255}, s.RGB())

	rgb := s.SetHSB(colorutil.HSB{H: 240, S: 1, B: 1})
	assert.Equal(t, colorutil.RGB{B: 255}, rgb)
	assert.Equal(t, 240.0, s.HSB().H)
	assert.Equal(t, 2, events)
}

func TestSetConfig(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	var got *config.Config
	s.On(EventConfigReloaded, func(data interface{}) { got = data.(*config.Config) })

	cfg := config.Default()
	cfg.Page.Title = "Reloaded"
	s.SetConfig(cfg)
	assert.Same(t, cfg, got)
	assert.Equal(t, "Reloaded", s.Config().Page.Title)
}

func TestSourcePixel(t *testing.T) {
	s := NewState(nil, testServices(), nil)
	_, err := s.SourcePixel(geometry.Point2D{})
	assert.ErrorIs(t, err, ErrNoImage)

	require.NoError(t, s.LoadSampleImage(writeSample(t)))
	px, err := s.SourcePixel(geometry.Point2D{X: 0, Y: 0})
	require.NoError(t, err)
	assert.True(t, px.Inside)
	assert.Equal(t, 0, px.X)
	r, g, _, _ := px.Color.RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(0), g>>8)

	s.SetTransformParams(geometry.TransformParams{Scale: 1, FlipH: true})
	px, err = s.SourcePixel(geometry.Point2D{X: 0, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, px.X)
	assert.Equal(t, 1, px.Y)
	assert.InDelta(t, 3, px.Source.X, 1e-9)
	r, _, _, _ = px.Color.RGBA()
	assert.Equal(t, uint32(200), r>>8)

	s.SetTransformParams(geometry.TransformParams{Scale: 1, TX: 10})
	px, err = s.SourcePixel(geometry.Point2D{X: 0, Y: 0})
	require.NoError(t, err)
	assert.False(t, px.Inside)
	assert.Equal(t, -10, px.X)
	assert.Equal(t, color.Black, px.Color)
}
