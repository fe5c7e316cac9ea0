package image

import (
	"image"
	"image/color"
	"image/draw"
)

// BlendMode specifies how a tile is combined with the pixels under it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendDifference
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// Composite combines several images on one canvas.
type Composite struct {
	Width     int
	Height    int
	Tiles     []Tile
	BackColor color.Color
}

// Tile is an image placed on a composite.
type Tile struct {
	Image   image.Image
	Mode    BlendMode
	OffsetX int
	OffsetY int
}

// NewComposite creates a new Composite with the specified dimensions.
func NewComposite(width, height int) *Composite {
	return &Composite{
		Width:     width,
		Height:    height,
		BackColor: color.White,
	}
}

// Add places img with its top-left corner at (x, y).
func (c *Composite) Add(img image.Image, mode BlendMode, x, y int) {
	c.Tiles = append(c.Tiles, Tile{Image: img, Mode: mode, OffsetX: x, OffsetY: y})
}

// Render draws the tiles in order over the background.
func (c *Composite) Render() *image.RGBA {
	result := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	if c.BackColor != nil {
		draw.Draw(result, result.Bounds(), &image.Uniform{C: c.BackColor}, image.Point{}, draw.Src)
	}
	for _, t := range c.Tiles {
		if t.Image == nil {
			continue
		}
		switch t.Mode {
		case BlendDifference:
			difference(result, t)
		default:
			src := t.Image.Bounds()
			dst := image.Rect(t.OffsetX, t.OffsetY, t.OffsetX+src.Dx(), t.OffsetY+src.Dy())
			draw.Draw(result, dst, t.Image, src.Min, draw.Over)
		}
	}
	return result
}

// difference replaces each covered pixel with |tile - dst| per channel.
func difference(dst *image.RGBA, t Tile) {
	src := t.Image.Bounds()
	for y := src.Min.Y; y < src.Max.Y; y++ {
		dy := y - src.Min.Y + t.OffsetY
		for x := src.Min.X; x < src.Max.X; x++ {
			dx := x - src.Min.X + t.OffsetX
			if !(image.Point{X: dx, Y: dy}).In(dst.Rect) {
				continue
			}
			sr, sg, sb, _ := t.Image.At(x, y).RGBA()
			d := dst.RGBAAt(dx, dy)
			dst.SetRGBA(dx, dy, color.RGBA{
				R: absDiff(uint8(sr>>8), d.R),
				G: absDiff(uint8(sg>>8), d.G),
				B: absDiff(uint8(sb>>8), d.B),
				A: 255,
			})
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// SideBySide lays the images out left to right, top aligned, separated by
// gap pixels of white.
func SideBySide(gap int, images ...image.Image) *image.RGBA {
	gap = max(gap, 0)
	width, height := 0, 0
	for i, img := range images {
		b := img.Bounds()
		if i > 0 {
			width += gap
		}
		width += b.Dx()
		height = max(height, b.Dy())
	}

	c := NewComposite(width, height)
	x := 0
	for _, img := range images {
		c.Add(img, BlendNormal, x, 0)
		x += img.Bounds().Dx() + gap
	}
	return c.Render()
}

// Difference returns the per-channel absolute difference of a and b, both
// anchored at the origin. The result has the size of a.
func Difference(a, b image.Image) *image.RGBA {
	ab := a.Bounds()
	c := NewComposite(ab.Dx(), ab.Dy())
	c.Add(a, BlendNormal, 0, 0)
	c.Add(b, BlendDifference, 0, 0)
	return c.Render()
}
