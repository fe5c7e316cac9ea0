// Command grayscale applies the log and power-law transforms to an image
// and writes the results, their tone curves and histograms as PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"algo-visualizer/internal/chart"
	visimage "algo-visualizer/internal/image"
	"algo-visualizer/internal/tone"
	"algo-visualizer/internal/vision"
)

var histogramColor = color.Gray{Y: 0x50}

func main() {
	imagePath := flag.String("image", "", "Path to the input image")
	logC := flag.Float64("c1", 1, "Log transform scaling factor (0-2)")
	powerC := flag.Float64("c2", 1, "Power-law scaling factor (0-2)")
	gamma := flag.Float64("gamma", 1, "Power-law exponent (0-5)")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: grayscale -image <path> [-c1 1] [-c2 1] [-gamma 1] [-out dir]")
		os.Exit(1)
	}

	img, err := vision.ReadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	gray, err := vision.Grayscale(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}

	params := tone.Params{LogC: *logC, PowerC: *powerC, Gamma: *gamma}.Clamp()
	if err := run(gray, params, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes every output for gray into dir and prints a summary.
func run(gray *image.Gray, p tone.Params, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Parameters: c1=%.1f c2=%.1f gamma=%.1f\n", p.LogC, p.PowerC, p.Gamma)
	logImg := tone.Transform(gray, p.Log())
	power := tone.Transform(gray, p.PowerLaw())

	logCurve := tone.Sample(p.Log(), tone.CurvePoints)
	logChart, err := chart.ToneCurve("log", logCurve.X, logCurve.Y, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff})
	if err != nil {
		return err
	}
	powerCurve := tone.Sample(p.PowerLaw(), tone.CurvePoints)
	powerChart, err := chart.ToneCurve("power-law", powerCurve.X, powerCurve.Y, color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff})
	if err != nil {
		return err
	}

	var histograms [3]image.Image
	for i, g := range []*image.Gray{gray, logImg, power} {
		if histograms[i], err = chart.Histogram(tone.Histogram(g), histogramColor, chart.DefaultOptions()); err != nil {
			return err
		}
	}

	outputs := []struct {
		name string
		img  image.Image
	}{
		{"gray.png", gray},
		{"log.png", logImg},
		{"power.png", power},
		{"comparison.png", visimage.SideBySide(8, gray, logImg, power)},
		{"log_difference.png", visimage.Difference(gray, logImg)},
		{"power_difference.png", visimage.Difference(gray, power)},
		{"log_curve.png", logChart},
		{"power_curve.png", powerChart},
		{"gray_histogram.png", histograms[0]},
		{"log_histogram.png", histograms[1]},
		{"power_histogram.png", histograms[2]},
	}
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := writePNG(path, o.img); err != nil {
			return err
		}
		if g, ok := o.img.(*image.Gray); ok {
			mean, stddev := tone.Stats(g)
			fmt.Printf("  %-20s mean %6.1f  std dev %6.1f\n", o.name, mean, stddev)
		} else {
			fmt.Printf("  %s\n", o.name)
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
