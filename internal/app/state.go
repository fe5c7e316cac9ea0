// Package app provides application state, topic navigation and events.
package app

import (
	"errors"
	"fmt"
	goimage "image"
	"image/color"
	"log/slog"
	"math"
	"sync"

	"algo-visualizer/internal/config"
	"algo-visualizer/internal/image"
	"algo-visualizer/internal/tone"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/pkg/geometry"
)

// ErrNoImage is returned by image operations before a sample is loaded.
var ErrNoImage = errors.New("no sample image loaded")

// Services are the image operations the state delegates to. Production
// code uses the OpenCV implementations.
type Services struct {
	Gray image.GrayFunc
	Warp image.WarpFunc
}

// State holds the application state shared by all pages.
type State struct {
	mu sync.RWMutex

	config   *config.Config
	services Services
	logger   *slog.Logger

	// Navigation
	topic string

	// Sample image and its grayscale version
	sample *image.Layer
	gray   *goimage.Gray

	// Page parameters
	tone      tone.Params
	transform geometry.TransformParams
	rgb       colorutil.RGB
	hsb       colorutil.HSB

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventTopicChanged EventType = iota
	EventImageLoaded
	EventToneChanged
	EventTransformChanged
	EventColorChanged
	EventConfigReloaded
)

func (e EventType) String() string {
	switch e {
	case EventTopicChanged:
		return "TopicChanged"
	case EventImageLoaded:
		return "ImageLoaded"
	case EventToneChanged:
		return "ToneChanged"
	case EventTransformChanged:
		return "TransformChanged"
	case EventColorChanged:
		return "ColorChanged"
	case EventConfigReloaded:
		return "ConfigReloaded"
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state. A nil cfg uses the defaults
// and a nil logger discards output.
func NewState(cfg *config.Config, services Services, logger *slog.Logger) *State {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &State{
		config:    cfg,
		services:  services,
		logger:    logger,
		tone:      tone.DefaultParams(),
		transform: geometry.DefaultTransformParams(),
		rgb:       colorutil.RGB{R: 255},
		hsb:       colorutil.HSB{H: 0, S: 1, B: 1},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	s.logger.Debug("State: emit", "event", event, "listeners", len(listeners))
	for _, listener := range listeners {
		listener(data)
	}
}

// Logger returns the application logger.
func (s *State) Logger() *slog.Logger {
	return s.logger
}

// Config returns the current configuration.
func (s *State) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration and emits EventConfigReloaded.
func (s *State) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.logger.Info("Config: reloaded", "path", cfg.Path())
	s.Emit(EventConfigReloaded, cfg)
}

// Topic returns the selected topic, or "" on the home page.
func (s *State) Topic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topic
}

// SetTopic selects a topic. An empty name returns to the home page.
func (s *State) SetTopic(name string) error {
	if name != "" {
		if _, ok := FindTopic(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTopic, name)
		}
	}
	s.mu.Lock()
	s.topic = name
	s.mu.Unlock()
	s.logger.Info("Navigation: topic changed", "topic", name)
	s.Emit(EventTopicChanged, name)
	return nil
}

// LoadSampleImage loads the image at path and its grayscale version.
func (s *State) LoadSampleImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	if s.services.Gray == nil {
		return errors.New("no grayscale converter configured")
	}
	gray, err := s.services.Gray(layer.Image)
	if err != nil {
		return fmt.Errorf("failed to convert %s to grayscale: %w", layer.Name(), err)
	}

	s.mu.Lock()
	s.sample = layer
	s.gray = gray
	s.mu.Unlock()

	s.logger.Info("Image: loaded sample", "name", layer.Name(), "width", layer.Width(), "height", layer.Height())
	s.Emit(EventImageLoaded, layer)
	return nil
}

// Sample returns the loaded sample image and its grayscale version.
func (s *State) Sample() (*image.Layer, *goimage.Gray) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sample, s.gray
}

// ToneParams returns the grayscale transform constants.
func (s *State) ToneParams() tone.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tone
}

// SetToneParams stores p clamped to the slider ranges.
func (s *State) SetToneParams(p tone.Params) {
	p = p.Clamp()
	s.mu.Lock()
	s.tone = p
	s.mu.Unlock()
	s.Emit(EventToneChanged, p)
}

// ToneImages returns the grayscale sample and its log and power-law
// transforms under the current parameters.
func (s *State) ToneImages() (gray, logImg, power *goimage.Gray, err error) {
	s.mu.RLock()
	gray, p := s.gray, s.tone
	s.mu.RUnlock()

	if gray == nil {
		return nil, nil, nil, ErrNoImage
	}
	return gray, tone.Transform(gray, p.Log()), tone.Transform(gray, p.PowerLaw()), nil
}

// TransformParams returns the graphic transformation parameters.
func (s *State) TransformParams() geometry.TransformParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

// SetTransformParams stores p and emits EventTransformChanged.
func (s *State) SetTransformParams(p geometry.TransformParams) {
	s.mu.Lock()
	s.transform = p
	s.mu.Unlock()
	s.Emit(EventTransformChanged, p)
}

// TransformMatrix returns the current transform about the sample's center.
func (s *State) TransformMatrix() (geometry.AffineTransform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sample == nil {
		return geometry.AffineTransform{}, ErrNoImage
	}
	cx, cy := center(s.sample)
	return s.transform.About(cx, cy), nil
}

// center returns the middle of the image in pixel-center coordinates.
func center(l *image.Layer) (cx, cy float64) {
	return float64(l.Width()-1) / 2, float64(l.Height()-1) / 2
}

// TransformedImage warps the sample with the current parameters.
func (s *State) TransformedImage() (goimage.Image, error) {
	s.mu.RLock()
	sample, params := s.sample, s.transform
	s.mu.RUnlock()

	if sample == nil {
		return nil, ErrNoImage
	}
	src := sample.Image
	t := params.About(center(sample))
	if params.IsIdentity() {
		return src, nil
	}
	if s.services.Warp == nil {
		return nil, errors.New("no warp function configured")
	}
	out, err := s.services.Warp(src, t)
	if err != nil {
		return nil, fmt.Errorf("failed to transform image: %w", err)
	}
	return out, nil
}

// SourcePixel is the sample pixel shown at a point of the transformed view.
type SourcePixel struct {
	View   geometry.Point2D // pixel-center coordinates in the transformed image
	Source geometry.Point2D // the same point in the sample
	X, Y   int              // nearest sample pixel
	Inside bool
	Color  color.Color // black outside the sample
}

// SourcePixel maps view, in pixel-center coordinates of the transformed
// image, back through the inverse transform to the sample.
func (s *State) SourcePixel(view geometry.Point2D) (SourcePixel, error) {
	m, err := s.TransformMatrix()
	if err != nil {
		return SourcePixel{}, err
	}
	inv, err := m.Inverse()
	if err != nil {
		return SourcePixel{}, fmt.Errorf("failed to map point back to the sample: %w", err)
	}

	sample, _ := s.Sample()
	src := inv.Apply(view)
	x, y := int(math.Round(src.X)), int(math.Round(src.Y))
	b := sample.Image.Bounds()
	p := goimage.Point{X: b.Min.X + x, Y: b.Min.Y + y}
	return SourcePixel{
		View:   view,
		Source: src,
		X:      x,
		Y:      y,
		Inside: p.In(b),
		Color:  sample.PixelAt(p.X, p.Y),
	}, nil
}

// RGB returns the last RGB input of the color mode page.
func (s *State) RGB() colorutil.RGB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rgb
}

// SetRGB converts an RGB input and stores it. Out-of-range channels are
// rejected and leave the state unchanged.
func (s *State) SetRGB(c colorutil.RGB) (colorutil.HSB, error) {
	hsb, err := c.HSB()
	if err != nil {
		return colorutil.HSB{}, err
	}
	s.mu.Lock()
	s.rgb = c
	s.mu.Unlock()
	s.Emit(EventColorChanged, c)
	return hsb, nil
}

// HSB returns the last HSB input of the color mode page.
func (s *State) HSB() colorutil.HSB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hsb
}

// SetHSB converts an HSB input and stores it.
func (s *State) SetHSB(c colorutil.HSB) colorutil.RGB {
	rgb := c.RGB()
	s.mu.Lock()
	s.hsb = c
	s.mu.Unlock()
	s.Emit(EventColorChanged, c)
	return rgb
}
