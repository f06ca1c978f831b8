package geom

import "math"

// Vec2 is a float64 2D vector. Plain float64 keeps the geometry exact enough
// for level construction and is bit-reproducible across platforms.
type Vec2 struct {
	X, Y float64
}

func Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func Neg(v Vec2) Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Madd returns a + b*s.
func Madd(a, b Vec2, s float64) Vec2 {
	return Vec2{a.X + b.X*s, a.Y + b.Y*s}
}

// Lerp interpolates from a to b by t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Wedge returns the 2D cross product a.X*b.Y - a.Y*b.X.
// Positive when b points to the left of a.
func Wedge(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func LengthSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func Length(v Vec2) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func DistanceSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// Normalize returns the unit vector, zero-safe.
func Normalize(v Vec2) Vec2 {
	mag := Length(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// Perpendicular returns v rotated 90° counter-clockwise.
func Perpendicular(v Vec2) Vec2 {
	return Vec2{-v.Y, v.X}
}

// SegmentDistanceSq returns the squared distance from p to segment a-b.
func SegmentDistanceSq(p, a, b Vec2) float64 {
	d := Sub(b, a)
	lenSq := LengthSq(d)
	if lenSq == 0 {
		return DistanceSq(p, a)
	}
	t := Dot(Sub(p, a), d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return DistanceSq(p, Madd(a, d, t))
}
