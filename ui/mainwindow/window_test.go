package mainwindow

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"algo-visualizer/internal/app"
	"algo-visualizer/internal/config"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/pkg/geometry"
	"algo-visualizer/ui/prefs"

	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayOf(img image.Image) (*image.Gray, error) {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

func identityWarp(img image.Image, _ geometry.AffineTransform) (image.Image, error) {
	return img, nil
}

func newTestWindow(t *testing.T) (*MainWindow, *app.State, *prefs.Prefs) {
	t.Helper()
	a := test.NewApp()
	s := app.NewState(nil, app.Services{Gray: grayOf, Warp: identityWarp}, nil)
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	mw := New(a, s, p)
	mw.exitDelay = 0
	return mw, s, p
}

func TestStartsOnHomePage(t *testing.T) {
	mw, s, _ := newTestWindow(t)
	assert.Equal(t, "", s.Topic())
	assert.Nil(t, mw.tabs)
	require.NotNil(t, mw.topicSelect)
	assert.Equal(t, app.TopicNames(), mw.topicSelect.Options)
	assert.Equal(t, "Algorithm Visualizer", mw.Title())
}

func TestGoToTopicRequiresSelection(t *testing.T) {
	mw, s, _ := newTestWindow(t)
	mw.onGoToTopic()
	assert.Equal(t, noTopicMessage, mw.homeMessage.Text)
	assert.Equal(t, "", s.Topic())
}

func TestGoToTopicShowsPages(t *testing.T) {
	mw, s, p := newTestWindow(t)
	mw.topicSelect.SetSelected(app.TopicImageProcessing)
	mw.onGoToTopic()

	assert.Equal(t, app.TopicImageProcessing, s.Topic())
	assert.Equal(t, app.TopicImageProcessing, p.String(prefs.KeyLastTopic))
	require.NotNil(t, mw.tabs)

	var titles []string
	for _, item := range mw.tabs.Items {
		titles = append(titles, item.Text)
	}
	assert.Equal(t, []string{"Color Mode", "Grayscale", "Graphic Transformation", "Help", "Settings", "Exit"}, titles)
	assert.Equal(t, "Algorithm Visualizer - "+app.TopicImageProcessing, mw.Title())
}

func TestExitReturnsHome(t *testing.T) {
	mw, s, _ := newTestWindow(t)
	require.NoError(t, s.SetTopic(app.TopicTest))
	require.NotNil(t, mw.tabs)
	bar := mw.exitBar

	mw.tabs.SelectIndex(len(mw.tabs.Items) - 1)
	assert.Eventually(t, func() bool { return s.Topic() == "" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, bar.Value)
}

func TestRestoresLastTopic(t *testing.T) {
	a := test.NewApp()
	s := app.NewState(nil, app.Services{Gray: grayOf, Warp: identityWarp}, nil)
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	p.SetString(prefs.KeyLastTopic, app.TopicTest)

	mw := New(a, s, p)
	assert.Equal(t, app.TopicTest, s.Topic())
	require.NotNil(t, mw.tabs)
	assert.Len(t, mw.tabs.Items, 5)
}

func TestOpenSampleImage(t *testing.T) {
	mw, s, p := newTestWindow(t)

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	require.NoError(t, mw.OpenSampleImage(path))
	layer, _ := s.Sample()
	require.NotNil(t, layer)
	assert.Equal(t, path, p.String(prefs.KeyLastImage))
	assert.Equal(t, "Sample image: sample.png", mw.statusBar.Text)

	err = mw.OpenSampleImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Equal(t, path, p.String(prefs.KeyLastImage))
}

func TestStatusShowsConvertedColor(t *testing.T) {
	mw, s, _ := newTestWindow(t)

	_, err := s.SetRGB(colorutil.RGB{R: 255, G: 128})
	require.NoError(t, err)
	assert.Equal(t, "Color: #ff8000 (Red = 255, Green = 128, Blue = 0)", mw.statusBar.Text)

	s.SetHSB(colorutil.HSB{H: 240, S: 1, B: 1})
	assert.Equal(t, "Color: #0000ff (Red = 0, Green = 0, Blue = 255)", mw.statusBar.Text)
}

func TestHomeIconIsScaled(t *testing.T) {
	dir := t.TempDir()
	icon := image.NewRGBA(image.Rect(0, 0, 400, 100))
	f, err := os.Create(filepath.Join(dir, "logo.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, icon))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.Page.Icon = filepath.Join(dir, "logo.png")
	obj := loadIcon(cfg, nil)
	require.NotNil(t, obj)
	img := obj.(*fynecanvas.Image)
	assert.Equal(t, image.Rect(0, 0, iconW, 40), img.Image.Bounds())

	cfg.Page.Icon = filepath.Join(dir, "missing.png")
	assert.Nil(t, loadIcon(cfg, nil))
}
