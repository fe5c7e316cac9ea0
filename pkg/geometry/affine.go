// Package geometry provides the 2D affine transforms behind the graphic transformation page.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a transform has no inverse.
var ErrSingular = errors.New("affine transform is singular")

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation returns a rotation transform around the origin.
// With y pointing down, positive angles turn clockwise on screen.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other),
// so other is applied first.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Dense returns the transform as a 3x3 homogeneous matrix.
func (t AffineTransform) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	})
}

// FromDense reads the top two rows of a 3x3 homogeneous matrix.
func FromDense(m mat.Matrix) AffineTransform {
	return AffineTransform{
		A: m.At(0, 0), B: m.At(0, 1), TX: m.At(0, 2),
		C: m.At(1, 0), D: m.At(1, 1), TY: m.At(1, 2),
	}
}

// Inverse returns the inverse transform.
func (t AffineTransform) Inverse() (AffineTransform, error) {
	m := t.Dense()
	if math.Abs(mat.Det(m)) < 1e-10 {
		return AffineTransform{}, ErrSingular
	}

	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return AffineTransform{}, fmt.Errorf("failed to invert transform: %w", err)
	}
	return FromDense(&inv), nil
}

// ToMatrix returns the transform as a [2][3]float64 array.
func (t AffineTransform) ToMatrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.TX},
		{t.C, t.D, t.TY},
	}
}

func (t AffineTransform) String() string {
	return fmt.Sprintf("[%7.3f %7.3f %8.2f]\n[%7.3f %7.3f %8.2f]", t.A, t.B, t.TX, t.C, t.D, t.TY)
}

// TransformParams describes the user-facing graphic transformation.
type TransformParams struct {
	Angle float64 `json:"angle"` // degrees, positive = clockwise
	Scale float64 `json:"scale"` // uniform, 1 = unchanged
	TX    float64 `json:"tx"`    // pixels
	TY    float64 `json:"ty"`    // pixels
	FlipH bool    `json:"flipH"`
	FlipV bool    `json:"flipV"`
}

// DefaultTransformParams returns the identity parameters.
func DefaultTransformParams() TransformParams {
	return TransformParams{Scale: 1}
}

// About builds the transform that scales, flips and rotates around (cx, cy)
// and then translates by (TX, TY).
func (p TransformParams) About(cx, cy float64) AffineTransform {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	sx, sy := scale, scale
	if p.FlipH {
		sx = -sx
	}
	if p.FlipV {
		sy = -sy
	}

	t := Translation(cx+p.TX, cy+p.TY)
	t = t.Compose(Rotation(p.Angle * math.Pi / 180))
	t = t.Compose(Scale(sx, sy))
	return t.Compose(Translation(-cx, -cy))
}

// IsIdentity reports whether p leaves the image unchanged.
func (p TransformParams) IsIdentity() bool {
	return p.Angle == 0 && (p.Scale == 1 || p.Scale <= 0) && p.TX == 0 && p.TY == 0 && !p.FlipH && !p.FlipV
}
