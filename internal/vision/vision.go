// Package vision wraps the OpenCV operations used by the dashboard.
package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"algo-visualizer/pkg/geometry"

	"github.com/anthonynsimon/bild/clone"
	"gocv.io/x/gocv"
)

// ReadImage loads an image from disk with OpenCV, like cv.imread.
func ReadImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image %s", path)
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGBA)

	img, err := rgb.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return img, nil
}

// Grayscale converts img to 8-bit grayscale with OpenCV's luma weights.
func Grayscale(img image.Image) (*image.Gray, error) {
	mat, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)
	return grayFromMat(gray)
}

// WarpAffine applies t to img. The output keeps the input size and
// uncovered pixels are black.
func WarpAffine(img image.Image, t geometry.AffineTransform) (image.Image, error) {
	src, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	m := t.ToMatrix()
	transformMat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer transformMat.Close()
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			transformMat.SetDoubleAt(row, col, m[row][col])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	size := image.Point{X: src.Cols(), Y: src.Rows()}
	gocv.WarpAffineWithParams(src, &dst, transformMat, size,
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{A: 255})

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert warped image: %w", err)
	}
	return out, nil
}

// matFromImage copies img into a 4-channel RGBA Mat.
func matFromImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() {
		rgba = clone.AsRGBA(img)
	}

	mat, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create Mat: %w", err)
	}
	return mat, nil
}

func grayFromMat(mat gocv.Mat) (*image.Gray, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert grayscale Mat: %w", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		bounds := img.Bounds()
		gray = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	}
	return gray, nil
}
