package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, want, got Point2D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestComposeOrder(t *testing.T) {
	// Scale first, then translate.
	tr := Translation(10, 0).Compose(Scale(2, 2))
	assertPoint(t, Point2D{X: 12, Y: 2}, tr.Apply(Point2D{X: 1, Y: 1}))
}

func TestRotationClockwiseOnScreen(t *testing.T) {
	r := Rotation(math.Pi / 2)
	// +x axis turns onto +y, which points down.
	assertPoint(t, Point2D{X: 0, Y: 1}, r.Apply(Point2D{X: 1, Y: 0}))
}

func TestInverse(t *testing.T) {
	tr := Translation(5, -3).Compose(Rotation(0.7)).Compose(Scale(1.5, 0.5))
	inv, err := tr.Inverse()
	require.NoError(t, err)

	p := Point2D{X: 12.5, Y: -4}
	assertPoint(t, p, inv.Apply(tr.Apply(p)))

	id := tr.Compose(inv)
	assert.InDelta(t, 1, id.A, 1e-9)
	assert.InDelta(t, 0, id.B, 1e-9)
	assert.InDelta(t, 0, id.TX, 1e-9)
	assert.InDelta(t, 1, id.D, 1e-9)
}

func TestInverseSingular(t *testing.T) {
	_, err := Scale(0, 1).Inverse()
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestDenseRoundTrip(t *testing.T) {
	tr := AffineTransform{A: 1, B: 2, TX: 3, C: 4, D: 5, TY: 6}
	m := tr.Dense()
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 1.0, m.At(2, 2))
	assert.Equal(t, tr, FromDense(m))
	assert.Equal(t, [2][3]float64{{1, 2, 3}, {4, 5, 6}}, tr.ToMatrix())
}

func TestTransformParamsAboutKeepsCenter(t *testing.T) {
	p := TransformParams{Angle: 33, Scale: 0.5, FlipH: true}
	tr := p.About(50, 40)
	assertPoint(t, Point2D{X: 50, Y: 40}, tr.Apply(Point2D{X: 50, Y: 40}))
}

func TestTransformParamsTranslate(t *testing.T) {
	p := DefaultTransformParams()
	p.TX, p.TY = 7, -2
	tr := p.About(10, 10)
	assertPoint(t, Point2D{X: 17, Y: 8}, tr.Apply(Point2D{X: 10, Y: 10}))
}

func TestTransformParamsFlip(t *testing.T) {
	p := DefaultTransformParams()
	p.FlipH = true
	tr := p.About(10, 5)
	assertPoint(t, Point2D{X: 20, Y: 0}, tr.Apply(Point2D{X: 0, Y: 0}))

	p = DefaultTransformParams()
	p.FlipV = true
	tr = p.About(10, 5)
	assertPoint(t, Point2D{X: 0, Y: 10}, tr.Apply(Point2D{X: 0, Y: 0}))
}

func TestTransformParamsIdentity(t *testing.T) {
	p := DefaultTransformParams()
	assert.True(t, p.IsIdentity())
	tr := p.About(100, 100)
	assertPoint(t, Point2D{X: 3, Y: 4}, tr.Apply(Point2D{X: 3, Y: 4}))

	p.Angle = 1
	assert.False(t, p.IsIdentity())
}
