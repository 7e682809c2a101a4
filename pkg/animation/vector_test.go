package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestVector_Arithmetic(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 6, 8}

	assert.Equal(t, Vector{5, 8, 11}, a.Add(b))
	assert.Equal(t, Vector{3, 4, 5}, b.Sub(a))
	assert.Equal(t, Vector{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vector{2.5, 4, 5.5}, a.Lerp(b, 0.5))
	assert.Equal(t, Vector{7, 10, 13}, a.Lerp(b, 2), "lerp extrapolates")
	assert.Equal(t, 14.0, a.MagnitudeSquared())
	assert.Equal(t, 5.0, Vector{3, 4}.Magnitude())
	assert.Equal(t, Vector{1, -2, 3}, Vector{0.6, -1.6, 2.5}.Rounded())
}

func TestVector_MismatchedLengthsReadZero(t *testing.T) {
	assert.Equal(t, Vector{1, 2}, Vector{1, 2}.Add(Vector{}))
	assert.False(t, Vector{1}.Equal(Vector{1, 0}))
	assert.True(t, Zeros(3).IsZero())
	assert.True(t, Vector(nil).IsZero())
}

func TestVector_CloneIsIndependent(t *testing.T) {
	a := Vector{1, 2}
	b := a.Clone()
	b[0] = 9
	assert.Equal(t, 1.0, a[0])
}

func TestConverters_RoundTrip(t *testing.T) {
	red, err := Hex("#ff8000")
	require.NoError(t, err)
	red.A = 0.5

	assert.Equal(t, 3.5, Float64Data.Decode(Float64Data.Encode(3.5)))
	assert.Equal(t, Point{X: 1, Y: -2}, PointData.Decode(PointData.Encode(Point{X: 1, Y: -2})))
	assert.Equal(t, Size{Width: 3, Height: 4}, SizeData.Decode(SizeData.Encode(Size{Width: 3, Height: 4})))
	rect := Rect{Origin: Point{X: 1, Y: 2}, Size: Size{Width: 3, Height: 4}}
	assert.Equal(t, rect, RectData.Decode(RectData.Encode(rect)))
	assert.Equal(t, red, ColorData.Decode(ColorData.Encode(red)))
	assert.Equal(t, f64.Vec2{1, 2}, Vec2Data.Decode(Vec2Data.Encode(f64.Vec2{1, 2})))
	assert.Equal(t, f64.Vec3{1, 2, 3}, Vec3Data.Decode(Vec3Data.Encode(f64.Vec3{1, 2, 3})))
	assert.Equal(t, f64.Vec4{1, 2, 3, 4}, Vec4Data.Decode(Vec4Data.Encode(f64.Vec4{1, 2, 3, 4})))
	assert.Equal(t, Vector{1, 2}, VectorData.Decode(VectorData.Encode(Vector{1, 2})))
}

func TestColor_HexAndClamp(t *testing.T) {
	_, err := Hex("nope")
	assert.Error(t, err)

	c, err := Hex("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.A)
	assert.Equal(t, "#00ff00", c.Hex())

	over := ColorData.Decode(Vector{1.2, -0.1, 0.5, 1.5}).Clamped()
	assert.Equal(t, 1.0, over.R)
	assert.Equal(t, 0.0, over.G)
	assert.Equal(t, 1.0, over.A)
}

func TestCurves_Endpoints(t *testing.T) {
	for name, curve := range namedCurves {
		assert.InDelta(t, 0.0, curve(0), 1e-9, name)
		assert.InDelta(t, 1.0, curve(1), 1e-9, name)
	}

	linear, ok := CurveNamed("")
	require.True(t, ok)
	assert.Equal(t, 0.3, linear(0.3))
}

func TestCurves_OvershootingCurves(t *testing.T) {
	assert.Greater(t, EaseOutBack(0.7), 1.0)
	assert.Greater(t, EaseOutElastic(0.2), 1.0)
}
