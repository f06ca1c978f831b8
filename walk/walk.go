// Package walk resolves entity movement against the level's cell boundaries:
// straight motion where nothing is in the way, sliding along walls otherwise.
package walk

import (
	"fmt"
	"math"

	"github.com/depp/intern-apocalypse-sub002/geom"
	"github.com/depp/intern-apocalypse-sub002/level"
)

// walkMargin pads the broad-phase edge query so slides that curve away from
// the original path still see every wall they could touch.
const walkMargin = 0.1

// maxRounds bounds the collide-and-slide iteration. Convex cells cannot
// require more than a handful of deflections; hitting the cap means the
// remaining motion is discarded.
const maxRounds = 9

// Walker moves a circular entity of the given radius through a level.
type Walker struct {
	Level  *level.Level
	Radius float64
}

// insetEdge is one candidate wall pushed toward its cell's interior by the
// entity radius, plus per-call slide state.
type insetEdge struct {
	edge   *level.Edge
	a0, a1 geom.Vec2 // inset segment endpoints
	dir    geom.Vec2 // unit tangent of the wall
	length float64
	slid   bool // hit earlier in this call; not re-triggered every round
}

// Walk moves the entity from start by movement, deflecting along any walls in
// the way, and returns the final position. The result always lies within the
// circle whose diameter is the unobstructed path: walls can only pull the
// entity back toward the start, never push it outward. A result outside that
// circle is a solver bug and returns an error.
//
// The round loop maintains that bound by construction. Each hit point lies on
// the segment between the current position and target, and each slide target
// lies on the circle with that segment as diameter (the hit point, the slide
// target and the old target form a right angle at the slide target), so every
// such circle nests inside the previous one.
func (w *Walker) Walk(start, movement geom.Vec2) (geom.Vec2, error) {
	if movement == (geom.Vec2{}) {
		return start, nil
	}

	dist := geom.Length(movement)
	mid := geom.Madd(start, movement, 0.5)
	edges := w.insetEdges(mid, dist)

	pos := start
	target := geom.Add(start, movement)
	var slideDir geom.Vec2
	for round := 0; round < maxRounds; round++ {
		seg := geom.Sub(target, pos)
		if geom.LengthSq(seg) == 0 {
			break
		}
		h, hitPos := w.firstHit(pos, seg, edges)
		if h == nil {
			pos = target
			break
		}
		h.slid = true

		residual := geom.Sub(target, hitPos)
		along := geom.Dot(residual, h.dir)
		slide := geom.Scale(h.dir, along)
		if along == 0 || geom.Dot(slide, slideDir) < 0 {
			// Head-on, or the new tangent reverses the direction already
			// being slid: wedged into a corner, the rest of the movement is
			// discarded.
			h.edge.Highlight = level.HighlightHit
			pos = hitPos
			target = hitPos
			continue
		}

		// Redirect the remaining movement along the wall. The slide stays on
		// the line through the hit point: clamping is along the tangent only,
		// so the target cannot overshoot the edge span but is never displaced
		// sideways either.
		proj := geom.Dot(geom.Sub(hitPos, h.a0), h.dir)
		if along > h.length-proj {
			along = h.length - proj
		}
		if along < -proj {
			along = -proj
		}
		h.edge.Highlight = level.HighlightSlide
		slideDir = slide
		pos = hitPos
		target = geom.Madd(hitPos, h.dir, along)
	}

	// Postcondition, not a correction: the result must stay inside the circle
	// spanned by the unobstructed path. Clamping here would hide solver bugs.
	if geom.Distance(pos, mid) > dist/2+1e-9 {
		return geom.Vec2{}, fmt.Errorf(
			"walk: position %v escaped movement bound (start %v, movement %v)", pos, start, movement)
	}
	return pos, nil
}

// insetEdges gathers the candidate walls for one call and insets each toward
// its cell's interior by the entity radius (boundaries run anticlockwise, so
// the interior normal is the left perpendicular of the tangent).
func (w *Walker) insetEdges(center geom.Vec2, dist float64) []*insetEdge {
	raw := w.Level.FindEdges(center, dist+w.Radius+walkMargin)
	out := make([]*insetEdge, 0, len(raw))
	for _, e := range raw {
		d := geom.Sub(e.Vertex1, e.Vertex0)
		length := geom.Length(d)
		if length == 0 {
			continue
		}
		dir := geom.Scale(d, 1/length)
		n := geom.Perpendicular(dir)
		out = append(out, &insetEdge{
			edge:   e,
			a0:     geom.Madd(e.Vertex0, n, w.Radius),
			a1:     geom.Madd(e.Vertex1, n, w.Radius),
			dir:    dir,
			length: length,
		})
	}
	return out
}

// firstHit finds the earliest crossing of the motion segment with any wall
// not already slid along this call. Only walls approached from their interior
// side count; the twin edge covers the other side. A crossing up to one
// radius behind the entity still registers (the tolerance for resting on an
// edge left by the previous round), but the hit position is clamped to the
// entity's current position, never behind it.
func (w *Walker) firstHit(pos, seg geom.Vec2, edges []*insetEdge) (*insetEdge, geom.Vec2) {
	segLen := geom.Length(seg)
	end := geom.Add(pos, seg)
	var best *insetEdge
	bestT := math.Inf(1)
	for _, e := range edges {
		if e.slid {
			continue
		}
		span := geom.Sub(e.a1, e.a0)
		denom := geom.Wedge(seg, span)
		if denom <= 0 {
			continue // parallel, or approaching from the far side
		}
		t, ok := geom.LineIntersect(pos, end, e.a0, e.a1)
		if !ok || t > 1 || t*segLen < -w.Radius {
			continue
		}
		u := geom.Wedge(geom.Sub(e.a0, pos), seg) / denom
		if u < 0 || u > 1 {
			continue
		}
		if t < bestT {
			bestT = t
			best = e
		}
	}
	if best == nil {
		return nil, geom.Vec2{}
	}
	if bestT < 0 {
		bestT = 0
	}
	return best, geom.Madd(pos, seg, bestT)
}
