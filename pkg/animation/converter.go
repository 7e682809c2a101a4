package animation

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"
)

// Converter maps a domain value to and from its animatable data.
//
// Decode(Encode(v)) must reproduce v for every component Encode writes.
// Use the predefined converters for common types, or build one for a
// custom type:
//
//	type Angle float64
//	var AngleData = animation.Converter[Angle]{
//	    Encode: func(a Angle) animation.Vector { return animation.Vector{float64(a)} },
//	    Decode: func(v animation.Vector) Angle { return Angle(v[0]) },
//	}
type Converter[T any] struct {
	// Encode returns the animatable data of a value.
	Encode func(T) Vector
	// Decode reconstructs a value from animatable data.
	Decode func(Vector) T
}

// Point is a position in two dimensions.
type Point struct {
	X, Y float64
}

// Size is a two-dimensional extent.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// Color is an sRGB color with straight alpha. Channels are in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// Hex parses a "#rrggbb" color and makes it opaque.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Color: c, A: 1}, nil
}

// Clamped returns c with every channel inside [0, 1]. Springs overshoot,
// so observers that hand colors to a renderer should clamp first.
func (c Color) Clamped() Color {
	return Color{Color: c.Color.Clamped(), A: clampUnit(c.A)}
}

// Float64Data converts scalars.
var Float64Data = Converter[float64]{
	Encode: func(v float64) Vector { return Vector{v} },
	Decode: func(v Vector) float64 { return v.at(0) },
}

// PointData converts points.
var PointData = Converter[Point]{
	Encode: func(p Point) Vector { return Vector{p.X, p.Y} },
	Decode: func(v Vector) Point { return Point{X: v.at(0), Y: v.at(1)} },
}

// SizeData converts sizes.
var SizeData = Converter[Size]{
	Encode: func(s Size) Vector { return Vector{s.Width, s.Height} },
	Decode: func(v Vector) Size { return Size{Width: v.at(0), Height: v.at(1)} },
}

// RectData converts rectangles as origin followed by size.
var RectData = Converter[Rect]{
	Encode: func(r Rect) Vector {
		return Vector{r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height}
	},
	Decode: func(v Vector) Rect {
		return Rect{
			Origin: Point{X: v.at(0), Y: v.at(1)},
			Size:   Size{Width: v.at(2), Height: v.at(3)},
		}
	},
}

// ColorData converts colors as red, green, blue, alpha.
var ColorData = Converter[Color]{
	Encode: func(c Color) Vector { return Vector{c.R, c.G, c.B, c.A} },
	Decode: func(v Vector) Color {
		return Color{Color: colorful.Color{R: v.at(0), G: v.at(1), B: v.at(2)}, A: v.at(3)}
	},
}

// Vec2Data converts two-component vectors.
var Vec2Data = Converter[f64.Vec2]{
	Encode: func(p f64.Vec2) Vector { return Vector{p[0], p[1]} },
	Decode: func(v Vector) f64.Vec2 { return f64.Vec2{v.at(0), v.at(1)} },
}

// Vec3Data converts three-component vectors.
var Vec3Data = Converter[f64.Vec3]{
	Encode: func(p f64.Vec3) Vector { return Vector{p[0], p[1], p[2]} },
	Decode: func(v Vector) f64.Vec3 { return f64.Vec3{v.at(0), v.at(1), v.at(2)} },
}

// Vec4Data converts four-component vectors.
var Vec4Data = Converter[f64.Vec4]{
	Encode: func(p f64.Vec4) Vector { return Vector{p[0], p[1], p[2], p[3]} },
	Decode: func(v Vector) f64.Vec4 { return f64.Vec4{v.at(0), v.at(1), v.at(2), v.at(3)} },
}

// VectorData passes vectors through unchanged, copying on both sides.
var VectorData = Converter[Vector]{
	Encode: func(v Vector) Vector { return v.Clone() },
	Decode: func(v Vector) Vector { return v.Clone() },
}
