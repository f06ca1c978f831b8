package geom

import "math"

// LineSplit returns the fraction t along v1→v2 at which a point is equidistant
// from c1 and c2, i.e. where the segment crosses the perpendicular bisector of
// c1-c2. Returns +Inf when the segment is parallel to the bisector; callers
// treat any fraction outside (0,1) as "no interior crossing".
func LineSplit(v1, v2, c1, c2 Vec2) float64 {
	d := Sub(v2, v1)
	m := Sub(c2, c1)
	denom := Dot(d, m)
	if denom == 0 {
		return math.Inf(1)
	}
	q := Scale(Add(c1, c2), 0.5)
	return Dot(Sub(q, v1), m) / denom
}

// LineIntersect returns the fraction along a0→a1 of its crossing with the
// infinite line through b0-b1. ok is false when the lines are parallel.
func LineIntersect(a0, a1, b0, b1 Vec2) (t float64, ok bool) {
	da := Sub(a1, a0)
	db := Sub(b1, b0)
	denom := Wedge(da, db)
	if denom == 0 {
		return 0, false
	}
	return Wedge(Sub(b0, a0), db) / denom, true
}
