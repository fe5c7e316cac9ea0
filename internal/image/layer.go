// Package image provides sample image loading, thumbnails and swatches.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"algo-visualizer/pkg/geometry"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned by Load for files whose extension is
// not in SupportedFormats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// GrayFunc converts an image to 8-bit grayscale.
type GrayFunc func(img image.Image) (*image.Gray, error)

// WarpFunc applies an affine transform to an image, keeping its size.
type WarpFunc func(img image.Image, t geometry.AffineTransform) (image.Image, error)

// Layer is a loaded sample image.
type Layer struct {
	Path   string      // Original file path
	Image  image.Image // Decoded image data
	Format string      // Decoder name, e.g. "png"
}

// Load decodes the image at path.
func Load(path string) (*Layer, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}

	return &Layer{Path: path, Image: img, Format: format}, nil
}

// Name returns the file name of the layer.
func (l *Layer) Name() string {
	if l.Path == "" {
		return "(untitled)"
	}
	return filepath.Base(l.Path)
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// PixelAt returns the color at the specified pixel coordinates.
func (l *Layer) PixelAt(x, y int) color.Color {
	if l.Image == nil {
		return color.Black
	}
	if !(image.Point{X: x, Y: y}).In(l.Image.Bounds()) {
		return color.Black
	}
	return l.Image.At(x, y)
}

// Thumbnail scales img to fit inside maxW x maxH, keeping the aspect ratio.
// Images that already fit are copied unscaled.
func Thumbnail(img image.Image, maxW, maxH int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || maxW <= 0 || maxH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale >= 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}

	tw := max(1, int(float64(w)*scale))
	th := max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// Swatch returns a w x h image filled with c.
func Swatch(c color.Color, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return dst
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
