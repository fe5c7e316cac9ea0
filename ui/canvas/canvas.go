// Package canvas provides a zoomable image canvas with outline overlays.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

var defaultSize = fyne.NewSize(400, 300)

// ImageCanvas displays a single image with zoom and outline overlays.
type ImageCanvas struct {
	widget.BaseWidget

	img      image.Image
	overlays map[string]*Overlay

	// Display state
	raster  *fynecanvas.Raster
	zoom    float64
	imgSize fyne.Size

	// Container
	scroll  *zoomScroll
	content *clickableContent

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onLeftClick  func(x, y float64) // image coordinates
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
	zs.canvas.CheckResize(size)
}

// clickableContent wraps the raster to report clicks in image coordinates.
type clickableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
}

func newClickableContent(ic *ImageCanvas) *clickableContent {
	cc := &clickableContent{canvas: ic}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.canvas.raster)
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.canvas.raster.MinSize()
}

// Tapped handles left-click events.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	if cc.canvas.onLeftClick == nil {
		return
	}
	// Reject clicks outside widget bounds
	size := cc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	x, y := cc.canvas.CanvasToImage(float64(ev.Position.X), float64(ev.Position.Y))
	cc.canvas.onLeftClick(x, y)
}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:     1.0,
		imgSize:  defaultSize,
		overlays: make(map[string]*Overlay),
	}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	ic.content = newClickableContent(ic)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetImage sets the image to display. nil clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	ic.img = img
	ic.updateContentSize()
	if ic.fitToWindow {
		ic.FitToWindow()
	}
}

// Image returns the displayed image.
func (ic *ImageCanvas) Image() image.Image {
	return ic.img
}

// SetOverlay sets an overlay with the given name.
func (ic *ImageCanvas) SetOverlay(name string, overlay *Overlay) {
	ic.overlays[name] = overlay
	ic.Refresh()
}

// ClearOverlay removes an overlay by name.
func (ic *ImageCanvas) ClearOverlay(name string) {
	delete(ic.overlays, name)
	ic.Refresh()
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ic *ImageCanvas) GetZoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (ic *ImageCanvas) FitToWindow() {
	if ic.img == nil {
		return
	}
	bounds := ic.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())
	ic.SetZoom(min(zoomX, zoomY) * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

// CheckResize auto-fits when the viewport size changed and fit is enabled.
func (ic *ImageCanvas) CheckResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnLeftClick sets a callback for left-click events.
// Coordinates are in image space (not zoomed).
func (ic *ImageCanvas) OnLeftClick(callback func(x, y float64)) {
	ic.onLeftClick = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (ic *ImageCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	return imgX * ic.zoom, imgY * ic.zoom
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (ic *ImageCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	return canvasX / ic.zoom, canvasY / ic.zoom
}

// updateContentSize updates the content size based on image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	if ic.img == nil || ic.img.Bounds().Empty() {
		ic.imgSize = defaultSize
	} else {
		b := ic.img.Bounds()
		ic.imgSize = fyne.NewSize(float32(float64(b.Dx())*ic.zoom), float32(float64(b.Dy())*ic.zoom))
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	ic.content.Resize(ic.imgSize)
	ic.content.Refresh()
	ic.raster.Refresh()
	ic.scroll.Refresh()
}

// draw is the raster drawing function. The image is sampled nearest
// neighbor so single pixels stay visible when zoomed in.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Fill with black background (set alpha channel)
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if ic.img != nil {
		src := ic.img.Bounds()
		for y := 0; y < h; y++ {
			sy := src.Min.Y + int(float64(y)/ic.zoom)
			if sy >= src.Max.Y {
				break
			}
			for x := 0; x < w; x++ {
				sx := src.Min.X + int(float64(x)/ic.zoom)
				if sx >= src.Max.X {
					break
				}
				// Premultiplied channels are the color composited over black.
				r, g, b, _ := ic.img.At(sx, sy).RGBA()
				output.SetRGBA(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
			}
		}
	}

	for _, overlay := range ic.overlays {
		if overlay != nil {
			ic.drawOverlay(output, overlay)
		}
	}
	return output
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.scroll)
}

// overlayColor is used when an overlay has no color set.
var overlayColor = color.RGBA{R: 255, G: 215, A: 255}
