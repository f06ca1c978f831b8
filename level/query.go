package level

import "github.com/depp/intern-apocalypse-sub002/geom"

// NearestCell returns the interior cell whose center is closest to p, by
// linear scan. Insertion counts are small and one-time, so no index is kept.
func (l *Level) NearestCell(p geom.Vec2) *Cell {
	var best *Cell
	bestD := 0.0
	for _, c := range l.cells {
		d := geom.DistanceSq(c.Center, p)
		if best == nil || d < bestD {
			best = c
			bestD = d
		}
	}
	return best
}

// Cells returns the interior cells in insertion order.
func (l *Level) Cells() []*Cell {
	return l.cells
}

// Borders returns the four border wedges.
func (l *Level) Borders() []*Cell {
	return l.borders
}

// Edges returns every live edge in the subdivision.
func (l *Level) Edges() []*Edge {
	out := make([]*Edge, 0, len(l.edges))
	for _, e := range l.edges {
		if !e.dead {
			out = append(out, e)
		}
	}
	return out
}

// FindEdges returns all live edges whose segment may intersect the circle at
// center with the given radius. The filter is conservative: it may return
// extra edges but never omits one that could matter.
func (l *Level) FindEdges(center geom.Vec2, radius float64) []*Edge {
	rsq := radius * radius
	var out []*Edge
	for _, e := range l.edges {
		if e.dead {
			continue
		}
		if geom.SegmentDistanceSq(center, e.Vertex0, e.Vertex1) <= rsq {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether p lies inside the interior cell (left of every
// boundary edge, boundary inclusive). Always false for border wedges, whose
// open chains do not enclose their region.
func (c *Cell) Contains(p geom.Vec2) bool {
	if c.Border() {
		return false
	}
	e := c.Edge
	for {
		d := geom.Sub(e.Vertex1, e.Vertex0)
		if geom.Wedge(d, geom.Sub(p, e.Vertex0)) < 0 {
			return false
		}
		e = e.Next
		if e == c.Edge {
			return true
		}
	}
}

// ClearHighlights resets the debug annotation on every edge.
func (l *Level) ClearHighlights() {
	for _, e := range l.edges {
		e.Highlight = HighlightNone
	}
}
