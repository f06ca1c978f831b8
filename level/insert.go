package level

import (
	"fmt"

	"github.com/depp/intern-apocalypse-sub002/geom"
)

// vertexEps is the crossing-fraction band treated as "exactly at a vertex":
// splits inside it reuse the existing vertex instead of creating a degenerate
// near-zero-length edge.
const vertexEps = 1e-9

// splitPoint records where the boundary of a cell under insertion leaves one
// existing cell: the cell was entered on entry, its ceded arc ends on front,
// and vertex is the exit point on front.
type splitPoint struct {
	vertex geom.Vec2
	front  *Edge // last ceded edge of the visited cell; exit point lies on it
	entry  *Edge // edge of the visited cell on which its ceded arc begins
}

// competitor returns the center the split tests compare the new center
// against at edge e: the owning cell's own center for interior cells, or the
// interior neighbor across the chain for border wedges (whose synthetic
// centers are not equidistant along the square's sides).
func competitor(e *Edge) geom.Vec2 {
	if e.Cell.Border() {
		return e.Center
	}
	return e.Cell.Center
}

// inRegion reports whether v would be claimed by a cell centered at c against
// the competitor recorded at e. Strict comparison: ties are not claimed.
func inRegion(e *Edge, v, c geom.Vec2) bool {
	return geom.DistanceSq(c, v) < geom.DistanceSq(competitor(e), v)
}

// cededBefore reports whether the boundary immediately before e.Vertex1 lies
// in the new cell's region. The distance difference is linear along the edge,
// so the endpoint decides except when it sits exactly on the bisector.
func cededBefore(e *Edge, c geom.Vec2) bool {
	k := competitor(e)
	d1 := geom.DistanceSq(c, e.Vertex1) - geom.DistanceSq(k, e.Vertex1)
	if d1 != 0 {
		return d1 < 0
	}
	return geom.DistanceSq(c, e.Vertex0) < geom.DistanceSq(k, e.Vertex0)
}

// findAnySplitEdge walks the cell boundary for an edge whose anticlockwise
// endpoint the new center strictly beats. The strict comparison guarantees a
// genuine boundary change exists before the split walk commits.
func (l *Level) findAnySplitEdge(c *Cell, center geom.Vec2) (*Edge, error) {
	e := c.Edge
	for steps := 0; ; steps++ {
		if steps > len(l.edges) {
			return nil, fmt.Errorf("level: no split edge on cell %d for center %v", c.Index, center)
		}
		if inRegion(e, e.Vertex1, center) {
			return e, nil
		}
		e = e.Next
		if e == nil || e == c.Edge {
			return nil, fmt.Errorf("level: no split edge on cell %d for center %v", c.Index, center)
		}
	}
}

// createSplit walks forward from enter around its cell's boundary until the
// new center stops claiming the chain, and resolves the exit point: an
// interior crossing splits the edge at the bisector fraction, a crossing at a
// vertex reuses that vertex, and a border chain running out cedes through its
// far corner with no interpolation.
func (l *Level) createSplit(enter *Edge, center geom.Vec2) (splitPoint, error) {
	e := enter
	for steps := 0; ; steps++ {
		if steps > len(l.edges) {
			return splitPoint{}, fmt.Errorf("level: split walk from edge %d did not terminate (center %v)",
				enter.Index, center)
		}
		if !inRegion(e, e.Vertex1, center) {
			t := geom.LineSplit(e.Vertex0, e.Vertex1, competitor(e), center)
			switch {
			case t >= 1-vertexEps:
				return splitPoint{vertex: e.Vertex1, front: e, entry: enter}, nil
			case t <= vertexEps:
				// The crossing coincides with the edge's start: the previous
				// edge is the last one ceded.
				if e == enter || e.Prev == nil {
					return splitPoint{}, fmt.Errorf("level: degenerate split at %v inserting %v",
						e.Vertex0, center)
				}
				return splitPoint{vertex: e.Vertex0, front: e.Prev, entry: enter}, nil
			default:
				return splitPoint{vertex: geom.Lerp(e.Vertex0, e.Vertex1, t), front: e, entry: enter}, nil
			}
		}
		if e.Next == nil {
			// Border wedge with no further edge: the corner is ceded whole.
			return splitPoint{vertex: e.Vertex1, front: e, entry: enter}, nil
		}
		e = e.Next
		if e == enter {
			return splitPoint{}, fmt.Errorf("level: no exit found around cell %d inserting %v",
				enter.Cell.Index, center)
		}
	}
}

// crossSplit steps from a found split into the cell the walk continues in.
// The usual case is the twin of the front edge; when the split point is an
// existing vertex, the continuation pivots clockwise around that vertex until
// it reaches the cell whose ceded arc begins there.
func (l *Level) crossSplit(sp splitPoint, center geom.Vec2) (*Edge, error) {
	enter := l.Back(sp.front)
	if enter == nil {
		return nil, fmt.Errorf("level: edge %d has no twin during insertion of %v", sp.front.Index, center)
	}
	for hops := 0; sp.vertex == enter.Vertex0; hops++ {
		if hops > len(l.edges) {
			return nil, fmt.Errorf("level: vertex pivot at %v did not terminate inserting %v",
				sp.vertex, center)
		}
		if enter.Prev == nil {
			break // open chain start: the arc begins here
		}
		if !cededBefore(enter.Prev, center) {
			break // the arc begins at this vertex
		}
		next := l.Back(enter.Prev)
		if next == nil {
			return nil, fmt.Errorf("level: edge %d has no twin during insertion of %v",
				enter.Prev.Index, center)
		}
		enter = next
	}
	return enter, nil
}

// AddCell inserts a new seed into the subdivision and returns its cell.
//
// The insertion walks the existing cells the new cell takes territory from,
// clockwise around the new center: in each cell it finds where the new
// boundary exits, crosses to the neighbor through the half-edge pairing, and
// repeats until it returns to the starting cell. Only then is the graph
// rebuilt: one new twin pair per visited cell, spliced in place of the ceded
// arc, and the collected edges reversed into an anticlockwise boundary for
// the new cell.
func (l *Level) AddCell(center geom.Vec2) (*Cell, error) {
	first := l.NearestCell(center)
	if first == nil {
		return nil, fmt.Errorf("level: no interior cell to split for %v", center)
	}

	seed, err := l.findAnySplitEdge(first, center)
	if err != nil {
		return nil, err
	}

	var splits []splitPoint
	enter := seed
	for {
		if len(splits) > len(l.edges)+8 {
			return nil, fmt.Errorf("level: insertion walk for %v did not close", center)
		}
		sp, err := l.createSplit(enter, center)
		if err != nil {
			return nil, err
		}
		if len(splits) > 0 && sp.vertex == splits[len(splits)-1].vertex {
			return nil, fmt.Errorf("level: zero-length boundary at %v inserting %v", sp.vertex, center)
		}
		splits = append(splits, sp)

		enter, err = l.crossSplit(sp, center)
		if err != nil {
			return nil, err
		}
		if enter.Cell == first {
			break
		}
	}
	if len(splits) < 3 {
		return nil, fmt.Errorf("level: degenerate cell (%d sides) inserting %v", len(splits), center)
	}
	// The walk entered the first cell last; patch its arc start, recorded as
	// a placeholder when the walk began.
	splits[0].entry = enter

	// Reverse into anticlockwise order around the new cell.
	for i, j := 0, len(splits)-1; i < j; i, j = i+1, j-1 {
		splits[i], splits[j] = splits[j], splits[i]
	}

	// Allocate the new boundary. The stretch from splits[i] to splits[i+1]
	// separates the new cell from the cell splits[i].front belongs to.
	n := len(splits)
	newEdges := make([]*Edge, n)
	twins := make([]*Edge, n)
	for i := range splits {
		next := splits[(i+1)%n]
		owner := splits[i].front.Cell
		a, b := l.newEdgePair(splits[i].vertex, next.vertex, owner.Center, center)
		newEdges[i] = a
		twins[i] = b
	}
	for i := range splits {
		l.splice(splits[i], twins[i])
	}
	return l.newCell(center, newEdges), nil
}

// splice replaces the ceded arc of one visited cell with tw, the twin of the
// new cell's edge along that stretch. tw runs from the arc's start point to
// its end point in the visited cell's own anticlockwise order. Partially
// ceded boundary edges are truncated in place; fully ceded ones are marked
// dead. Truncation stays twin-symmetric because the neighboring cell's own
// splice cuts the partner edge at the same shared point.
func (l *Level) splice(sp splitPoint, tw *Edge) {
	cell := sp.front.Cell
	entryEdge := sp.entry
	exitEdge := sp.front
	entryPoint := tw.Vertex0
	exitPoint := tw.Vertex1

	entryCeded := entryPoint == entryEdge.Vertex0
	exitCeded := exitPoint == exitEdge.Vertex1

	// Mark fully ceded edges dead before any relinking.
	if entryEdge == exitEdge {
		if entryCeded && exitCeded {
			entryEdge.dead = true
		}
	} else {
		e := entryEdge
		if !entryCeded {
			e = e.Next
		}
		for e != nil && e != exitEdge {
			e.dead = true
			e = e.Next
		}
		if exitCeded {
			exitEdge.dead = true
		}
	}

	var prevLive, nextLive *Edge
	if entryCeded {
		prevLive = entryEdge.Prev
	} else {
		entryEdge.Vertex1 = entryPoint
		prevLive = entryEdge
	}
	if exitCeded {
		nextLive = exitEdge.Next
	} else {
		exitEdge.Vertex0 = exitPoint
		nextLive = exitEdge
	}

	tw.Cell = cell
	tw.Prev = prevLive
	tw.Next = nextLive
	if prevLive != nil {
		prevLive.Next = tw
	}
	if nextLive != nil {
		nextLive.Prev = tw
	}
	if cell.Edge.dead {
		cell.Edge = tw
	}
}
