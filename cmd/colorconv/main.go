// Command colorconv converts a single color between RGB and HSB.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"algo-visualizer/pkg/colorutil"
)

func main() {
	rgb := flag.String("rgb", "", "RGB color as r,g,b with channels in 0-255")
	hsb := flag.String("hsb", "", "HSB color as h,s,b with hue in degrees and s, b in 0-1")
	flag.Parse()

	if err := run(os.Stdout, *rgb, *hsb); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Usage: colorconv -rgb r,g,b | -hsb h,s,b")
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("exactly one of -rgb and -hsb is required")

func run(w io.Writer, rgb, hsb string) error {
	if (rgb == "") == (hsb == "") {
		return errUsage
	}

	if rgb != "" {
		v, err := parseTriple(rgb, strconv.Atoi)
		if err != nil {
			return fmt.Errorf("failed to parse -rgb: %w", err)
		}
		c := colorutil.RGB{R: v[0], G: v[1], B: v[2]}
		out, err := c.HSB()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n%s\n", out, c.Hex())
		return nil
	}

	v, err := parseTriple(hsb, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	if err != nil {
		return fmt.Errorf("failed to parse -hsb: %w", err)
	}
	out := colorutil.HSBToRGB(v[0], v[1], v[2])
	fmt.Fprintf(w, "%s\n%s\n", out, out.Hex())
	return nil
}

// parseTriple splits s on commas and parses exactly three values.
func parseTriple[T any](s string, parse func(string) (T, error)) ([3]T, error) {
	var out [3]T
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := parse(strings.TrimSpace(p))
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
