package math

import "math"

// Vec2 is a point or offset on the canvas, in pixels with y pointing down.
type Vec2 struct {
	X, Y float32
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a*s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns the dot product.
func (a Vec2) Dot(b Vec2) float32 { return a.X*b.X + a.Y*b.Y }

// Length returns the magnitude.
func (a Vec2) Length() float32 {
	return float32(math.Hypot(float64(a.X), float64(a.Y)))
}

// Normalize returns a unit vector, or zero for the zero vector.
func (a Vec2) Normalize() Vec2 {
	if l := a.Length(); l != 0 {
		return a.Scale(1 / l)
	}
	return Vec2{}
}

// Perp returns a rotated a quarter turn, from +X towards +Y.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Polar returns the point r away from a in direction angle (radians).
func (a Vec2) Polar(angle float64, r float32) Vec2 {
	return Vec2{
		a.X + r*float32(math.Cos(angle)),
		a.Y + r*float32(math.Sin(angle)),
	}
}

// Ribbon returns the quad covering segment a-b widened by half on each side.
// It is nil for a degenerate segment.
func Ribbon(a, b Vec2, half float32) []Vec2 {
	n := b.Sub(a).Normalize().Perp().Scale(half)
	if n == (Vec2{}) {
		return nil
	}
	return []Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}
