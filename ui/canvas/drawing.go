package canvas

import (
	"image"
	"image/color"
)

// drawOverlay draws every outline of overlay scaled by the current zoom.
func (ic *ImageCanvas) drawOverlay(output *image.RGBA, overlay *Overlay) {
	col := overlay.Color
	if col.A == 0 {
		col = overlayColor
	}
	thickness := overlay.Thickness
	if thickness <= 0 {
		thickness = 2
	}

	for _, outline := range overlay.Outlines {
		n := len(outline.Points)
		if n < 2 {
			continue
		}
		segments := n - 1
		if outline.Closed {
			segments = n
		}
		for i := 0; i < segments; i++ {
			x1, y1 := ic.ImageToCanvas(outline.Points[i].X, outline.Points[i].Y)
			x2, y2 := ic.ImageToCanvas(outline.Points[(i+1)%n].X, outline.Points[(i+1)%n].Y)
			drawLine(output, int(x1), int(y1), int(x2), int(y2), col, thickness)
		}
	}
}

// drawLine draws a thick Bresenham line clipped to the output bounds.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		// Draw thick point
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
