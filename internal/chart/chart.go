// Package chart renders the small bar and line plots shown next to the
// color and tone controls. Only plot bodies are drawn here; titles and
// axis labels are laid out by the UI.
package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// ErrInvalidOptions is returned for empty canvases or degenerate ranges.
var ErrInvalidOptions = errors.New("invalid chart options")

// Options controls the canvas size and the data ranges of a plot.
type Options struct {
	Width, Height int
	XMin, XMax    float64
	YMin, YMax    float64
	GridLines     int // horizontal divisions, 0 for none
	Padding       float64
	Background    color.Color
	Axis          color.Color
	Grid          color.Color
}

// DefaultOptions returns a 320x240 plot of the unit square.
func DefaultOptions() Options {
	return Options{
		Width:      320,
		Height:     240,
		XMin:       0,
		XMax:       1,
		YMin:       0,
		YMax:       1,
		GridLines:  4,
		Padding:    8,
		Background: color.White,
		Axis:       color.Gray{Y: 0x40},
		Grid:       color.Gray{Y: 0xc0},
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case !(o.XMax > o.XMin):
		return fmt.Errorf("%w: x range [%g, %g]", ErrInvalidOptions, o.XMin, o.XMax)
	case !(o.YMax > o.YMin):
		return fmt.Errorf("%w: y range [%g, %g]", ErrInvalidOptions, o.YMin, o.YMax)
	case o.Padding < 0 || 2*o.Padding >= float64(min(o.Width, o.Height)):
		return fmt.Errorf("%w: padding %g", ErrInvalidOptions, o.Padding)
	}
	return nil
}

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Value float64
	Color color.Color
}

// Series is one polyline of a line chart.
type Series struct {
	Name   string
	X, Y   []float64
	Color  color.Color
	Width  float64
	Dashed bool
}

// plot maps data coordinates onto the padded canvas area.
type plot struct {
	opts Options
	dc   *gg.Context
}

func newPlot(opts Options) (*plot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	dc.ClearWithColor(gg.FromColor(bg))
	return &plot{opts: opts, dc: dc}, nil
}

func (p *plot) px(x float64) float64 {
	w := float64(p.opts.Width) - 2*p.opts.Padding
	return p.opts.Padding + (x-p.opts.XMin)/(p.opts.XMax-p.opts.XMin)*w
}

func (p *plot) py(y float64) float64 {
	h := float64(p.opts.Height) - 2*p.opts.Padding
	return p.opts.Padding + (1-(y-p.opts.YMin)/(p.opts.YMax-p.opts.YMin))*h
}

func (p *plot) drawFrame() error {
	o := p.opts
	left, right := p.px(o.XMin), p.px(o.XMax)
	top, bottom := p.py(o.YMax), p.py(o.YMin)

	if o.GridLines > 0 && o.Grid != nil {
		p.dc.SetColor(o.Grid)
		p.dc.SetLineWidth(1)
		p.dc.SetDash(4, 3)
		for i := 1; i <= o.GridLines; i++ {
			y := top + (bottom-top)*float64(i-1)/float64(o.GridLines)
			p.dc.DrawLine(left, y, right, y)
		}
		if err := p.dc.Stroke(); err != nil {
			return fmt.Errorf("failed to draw grid: %w", err)
		}
		p.dc.SetDash()
	}

	if o.Axis != nil {
		p.dc.SetColor(o.Axis)
		p.dc.SetLineWidth(1)
		p.dc.MoveTo(left, top)
		p.dc.LineTo(left, bottom)
		p.dc.LineTo(right, bottom)
		if err := p.dc.Stroke(); err != nil {
			return fmt.Errorf("failed to draw axes: %w", err)
		}
	}
	return nil
}

func (p *plot) finish() (image.Image, error) {
	if err := p.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("failed to flush chart: %w", err)
	}
	img := p.dc.Image()
	if err := p.dc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close chart context: %w", err)
	}
	return img, nil
}

// Bars draws one bar per entry, evenly spaced across the x axis.
// The x range of opts is ignored; values are clipped to the y range.
func Bars(bars []Bar, opts Options) (image.Image, error) {
	opts.XMin, opts.XMax = 0, float64(max(len(bars), 1))
	p, err := newPlot(opts)
	if err != nil {
		return nil, err
	}

	for i, b := range bars {
		v := math.Max(opts.YMin, math.Min(b.Value, opts.YMax))
		if math.IsNaN(b.Value) || v <= opts.YMin {
			continue
		}
		x0, x1 := p.px(float64(i)+0.2), p.px(float64(i)+0.8)
		y0, y1 := p.py(v), p.py(opts.YMin)
		c := b.Color
		if c == nil {
			c = color.Gray{Y: 0x80}
		}
		p.dc.SetColor(c)
		p.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		if err := p.dc.Fill(); err != nil {
			return nil, fmt.Errorf("failed to draw bar %q: %w", b.Label, err)
		}
	}

	if err := p.drawFrame(); err != nil {
		return nil, err
	}
	return p.finish()
}

// Histogram draws counts as adjacent columns, one per bin. The x range
// of opts is replaced by the bin indices and the y range by [0, peak].
func Histogram(counts []float64, c color.Color, opts Options) (image.Image, error) {
	opts.XMin, opts.XMax = 0, float64(max(len(counts), 1))
	opts.YMin, opts.YMax = 0, 1
	for _, v := range counts {
		if !math.IsInf(v, 0) && v > opts.YMax {
			opts.YMax = v
		}
	}
	p, err := newPlot(opts)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = color.Gray{Y: 0x80}
	}

	p.dc.SetColor(c)
	drawn := false
	for i, v := range counts {
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		x0, x1 := p.px(float64(i)), p.px(float64(i+1))
		y0, y1 := p.py(math.Min(v, opts.YMax)), p.py(0)
		p.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		drawn = true
	}
	if drawn {
		if err := p.dc.Fill(); err != nil {
			return nil, fmt.Errorf("failed to draw histogram: %w", err)
		}
	}

	if err := p.drawFrame(); err != nil {
		return nil, err
	}
	return p.finish()
}

// Lines draws each series as a polyline. Points outside the ranges are
// drawn clipped by the canvas.
func Lines(series []Series, opts Options) (image.Image, error) {
	p, err := newPlot(opts)
	if err != nil {
		return nil, err
	}
	if err := p.drawFrame(); err != nil {
		return nil, err
	}

	for _, s := range series {
		n := min(len(s.X), len(s.Y))
		if n < 2 {
			continue
		}
		c := s.Color
		if c == nil {
			c = color.Black
		}
		width := s.Width
		if width <= 0 {
			width = 2
		}
		p.dc.SetColor(c)
		p.dc.SetLineWidth(width)
		if s.Dashed {
			p.dc.SetDash(6, 4)
		}
		started := false
		for i := 0; i < n; i++ {
			if math.IsNaN(s.Y[i]) || math.IsInf(s.Y[i], 0) {
				started = false
				continue
			}
			x, y := p.px(s.X[i]), p.py(s.Y[i])
			if started {
				p.dc.LineTo(x, y)
			} else {
				p.dc.MoveTo(x, y)
				started = true
			}
		}
		if err := p.dc.Stroke(); err != nil {
			return nil, fmt.Errorf("failed to draw series %q: %w", s.Name, err)
		}
		p.dc.SetDash()
	}
	return p.finish()
}

// ToneCurve plots a sampled intensity mapping against the identity line
// s = r on [0,1]. The y range grows to fit curves that exceed 1.
func ToneCurve(name string, x, y []float64, c color.Color) (image.Image, error) {
	opts := DefaultOptions()
	for _, v := range y {
		if !math.IsInf(v, 0) && v > opts.YMax {
			opts.YMax = v
		}
	}
	return Lines([]Series{
		{Name: "identity", X: []float64{0, 1}, Y: []float64{0, 1}, Color: identityColor, Width: 1, Dashed: true},
		{Name: name, X: x, Y: y, Color: c, Width: 2},
	}, opts)
}

var identityColor = color.Gray{Y: 0x80}
