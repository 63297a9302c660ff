package vmath

import "math"

// SegmentProjection returns the unclamped parametric position of p projected onto the line a→b
// 0 is a, 1 is b; a degenerate segment returns 0
func SegmentProjection(a, b, p Vec2F) float64 {
	ab := V2FSub(b, a)
	lenSq := V2FMagSq(ab)
	if lenSq == 0 {
		return 0
	}
	return V2FDot(V2FSub(p, a), ab) / lenSq
}

// SegmentCircleHit reports whether the segment a→b passes through the circle (center, radius)
// Returns the parametric position t in [0,1] of the closest approach along the segment
// Degenerate segments (a == b) test the point a
func SegmentCircleHit(a, b, center Vec2F, radius float64) (t float64, hit bool) {
	if a == b {
		return 0, V2FDistSq(a, center) <= radius*radius
	}

	t = math.Max(0, math.Min(1, SegmentProjection(a, b, center)))
	closest := V2FAdd(a, V2FScale(V2FSub(b, a), t))
	return t, V2FDistSq(closest, center) <= radius*radius
}

// WithinRadius reports whether p lies inside or on the circle (center, radius)
func WithinRadius(p, center Vec2F, radius float64) bool {
	return V2FDistSq(p, center) <= radius*radius
}
