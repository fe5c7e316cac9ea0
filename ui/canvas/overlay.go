package canvas

import (
	"image/color"

	"algo-visualizer/pkg/geometry"
)

// Overlay is a set of outlines drawn over the image.
type Overlay struct {
	Outlines  []Outline
	Color     color.RGBA
	Thickness int // pixels, 0 for 2
}

// Outline is a polyline in image coordinates.
type Outline struct {
	Points []geometry.Point2D
	Closed bool
}

// FrameOutline returns the image rectangle w x h mapped through t, the
// outline of where the source frame lands after a transform.
func FrameOutline(w, h int, t geometry.AffineTransform) Outline {
	corners := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: float64(w - 1), Y: 0},
		{X: float64(w - 1), Y: float64(h - 1)},
		{X: 0, Y: float64(h - 1)},
	}
	for i, c := range corners {
		corners[i] = t.Apply(c)
	}
	return Outline{Points: corners, Closed: true}
}
