package vmath

import (
	"math"
)

// Vec2F is a float64 2D vector in board space
type Vec2F struct {
	X, Y float64
}

func V2F(x, y float64) Vec2F {
	return Vec2F{X: x, Y: y}
}

func V2FAdd(a, b Vec2F) Vec2F {
	return Vec2F{a.X + b.X, a.Y + b.Y}
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FScale(v Vec2F, s float64) Vec2F {
	return Vec2F{v.X * s, v.Y * s}
}

func V2FDot(a, b Vec2F) float64 {
	return a.X*b.X + a.Y*b.Y
}

func V2FMagSq(v Vec2F) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2FMag(v Vec2F) float64 {
	return math.Sqrt(V2FMagSq(v))
}

// V2FDist returns the Euclidean distance between a and b
func V2FDist(a, b Vec2F) float64 {
	return V2FMag(V2FSub(b, a))
}

// V2FDistSq returns the squared distance, avoids sqrt for radius checks
func V2FDistSq(a, b Vec2F) float64 {
	return V2FMagSq(V2FSub(b, a))
}

// PolylineLength sums segment lengths between consecutive points in order
func PolylineLength(points []Vec2F) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += V2FDist(points[i-1], points[i])
	}
	return total
}
