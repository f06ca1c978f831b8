// Package level builds and owns the planar subdivision a game level is made
// of: a bounded square partitioned into convex cells around seed points, held
// as a half-edge graph. The builder is the only mutator; after construction
// the graph is read-only except for the per-edge debug highlight.
package level

import (
	"fmt"

	"github.com/depp/intern-apocalypse-sub002/geom"
)

// HighlightColor is a write-only debug annotation set by the movement solver
// and read by visualizers. It carries no semantic weight.
type HighlightColor uint8

const (
	HighlightNone HighlightColor = iota
	// HighlightHit marks an edge that stopped the entity dead (corner clamp).
	HighlightHit
	// HighlightSlide marks an edge the entity slid along.
	HighlightSlide
)

// Cell is one convex polygonal region of the subdivision.
type Cell struct {
	// Center is the seed point that generated the cell. Read-only after
	// creation. Border cells carry a synthetic center: the reflection of the
	// square's midpoint across their side.
	Center geom.Vec2

	// Index is the unique cell identity. Non-negative indices are interior
	// cells in insertion order; negative indices are the four border wedges.
	Index int

	// Edge is an arbitrary entry point into the cell's boundary chain.
	Edge *Edge
}

// Border reports whether the cell is one of the unbounded exterior wedges.
func (c *Cell) Border() bool {
	return c.Index < 0
}

// Edge is one directed side of a cell boundary, anticlockwise around its
// owning cell. Edges are allocated in twin pairs; the pair partner shares the
// same physical boundary seen from the neighboring cell.
type Edge struct {
	Vertex0 geom.Vec2 // clockwise endpoint
	Vertex1 geom.Vec2 // anticlockwise endpoint; equals Next.Vertex0 on interior chains

	// Center is the center of the adjacent cell on the far side, used by the
	// geometric split tests during insertion.
	Center geom.Vec2

	// Index is the arena id. The twin edge has Index^1.
	Index int

	// Cell is the owning cell. Ownership can transfer during insertion but an
	// edge always belongs to exactly one cell.
	Cell *Cell

	// Prev/Next link the boundary chain: circular for interior cells, open
	// (nil-terminated at both ends) for border wedges.
	Prev, Next *Edge

	// Highlight is the debug side channel. Not read by the core.
	Highlight HighlightColor

	// dead marks edges whose span was swallowed whole by an inserted cell.
	// Dead edges stay in the arena (their twin link remains symmetric) but are
	// excluded from chains, queries and iteration.
	dead bool
}

// Dead reports whether the edge has been dropped from the subdivision.
func (e *Edge) Dead() bool {
	return e.dead
}

// Level is the subdivision of the square [-HalfSize,HalfSize]². It is built
// once, synchronously, and must not be mutated concurrently.
type Level struct {
	HalfSize float64

	cells   []*Cell // interior cells; Index == slice position
	borders []*Cell // the four wedges, indices -1..-4
	edges   []*Edge // arena; twin lookup is Index^1
}

// newEdgePair allocates a twin pair in the arena: a runs v0→v1 with far-side
// center far0, b runs v1→v0 with far-side center far1. Both are unlinked and
// unowned.
func (l *Level) newEdgePair(v0, v1, far0, far1 geom.Vec2) (a, b *Edge) {
	a = &Edge{Vertex0: v0, Vertex1: v1, Center: far0, Index: len(l.edges)}
	b = &Edge{Vertex0: v1, Vertex1: v0, Center: far1, Index: len(l.edges) + 1}
	l.edges = append(l.edges, a, b)
	return a, b
}

// Back returns the twin of e, or nil if the arena has no partner (a corrupt
// graph; callers treat nil as a contract violation).
func (l *Level) Back(e *Edge) *Edge {
	i := e.Index ^ 1
	if i < 0 || i >= len(l.edges) {
		return nil
	}
	return l.edges[i]
}

// newCell links edges into a circular anticlockwise chain, assigns ownership
// and registers the cell.
func (l *Level) newCell(center geom.Vec2, edges []*Edge) *Cell {
	c := &Cell{Center: center, Index: len(l.cells), Edge: edges[0]}
	n := len(edges)
	for i, e := range edges {
		e.Cell = c
		e.Prev = edges[(i+n-1)%n]
		e.Next = edges[(i+1)%n]
	}
	l.cells = append(l.cells, c)
	return c
}

// Create bootstraps the square and inserts every seed. The first seed is
// associated with interior cell 0, whose geometry uses the square's midpoint;
// each subsequent seed is inserted with AddCell.
func Create(halfSize float64, centers []geom.Vec2) (*Level, error) {
	if halfSize <= 0 {
		return nil, fmt.Errorf("level: half size must be positive, got %v", halfSize)
	}
	if len(centers) == 0 {
		return nil, fmt.Errorf("level: at least one seed center required")
	}

	l := &Level{HalfSize: halfSize}
	s := halfSize
	origin := geom.Vec2{}
	corners := [4]geom.Vec2{{X: -s, Y: -s}, {X: s, Y: -s}, {X: s, Y: s}, {X: -s, Y: s}} // bl, br, tr, tl
	wedges := [4]geom.Vec2{{X: 0, Y: -2 * s}, {X: 2 * s, Y: 0}, {X: 0, Y: 2 * s}, {X: -2 * s, Y: 0}}

	inner := make([]*Edge, 4)
	for i := 0; i < 4; i++ {
		in, out := l.newEdgePair(corners[i], corners[(i+1)%4], wedges[i], origin)
		inner[i] = in
		border := &Cell{Center: wedges[i], Index: -(i + 1), Edge: out}
		out.Cell = border
		l.borders = append(l.borders, border)
	}
	l.newCell(origin, inner)

	for _, c := range centers[1:] {
		if _, err := l.AddCell(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Validate checks the structural invariants: twin symmetry, chain closure,
// vertex continuity and ownership. Used by tests and debug tooling; a failure
// means the builder has a bug.
func (l *Level) Validate() error {
	for _, e := range l.edges {
		b := l.Back(e)
		if b == nil {
			return fmt.Errorf("level: edge %d has no twin", e.Index)
		}
		if l.Back(b) != e {
			return fmt.Errorf("level: twin pairing broken at edge %d", e.Index)
		}
		if e.dead != b.dead {
			return fmt.Errorf("level: edge %d dead but twin %d alive", e.Index, b.Index)
		}
		if e.dead {
			continue
		}
		if e.Cell == nil {
			return fmt.Errorf("level: edge %d (%v→%v) unowned", e.Index, e.Vertex0, e.Vertex1)
		}
		if e.Vertex0 != b.Vertex1 || e.Vertex1 != b.Vertex0 {
			return fmt.Errorf("level: edge %d span %v→%v disagrees with twin %v→%v",
				e.Index, e.Vertex0, e.Vertex1, b.Vertex0, b.Vertex1)
		}
	}

	check := func(c *Cell) error {
		e := c.Edge
		if e == nil {
			return fmt.Errorf("level: cell %d has no boundary", c.Index)
		}
		if c.Border() {
			// Open chain: rewind to the start, then walk to the end.
			for steps := 0; e.Prev != nil; steps++ {
				if steps > len(l.edges) {
					return fmt.Errorf("level: cell %d chain does not terminate", c.Index)
				}
				e = e.Prev
			}
		}
		start := e
		for steps := 0; ; steps++ {
			if steps > len(l.edges) {
				return fmt.Errorf("level: cell %d chain does not terminate", c.Index)
			}
			if e.dead {
				return fmt.Errorf("level: cell %d chain contains dead edge %d", c.Index, e.Index)
			}
			if e.Cell != c {
				return fmt.Errorf("level: cell %d chain contains edge %d owned by cell %d",
					c.Index, e.Index, e.Cell.Index)
			}
			next := e.Next
			if next == nil {
				if !c.Border() {
					return fmt.Errorf("level: interior cell %d chain is not circular", c.Index)
				}
				return nil
			}
			if next.Vertex0 != e.Vertex1 {
				return fmt.Errorf("level: cell %d chain gap between edge %d (%v) and %d (%v)",
					c.Index, e.Index, e.Vertex1, next.Index, next.Vertex0)
			}
			if next.Prev != e {
				return fmt.Errorf("level: cell %d chain links asymmetric at edge %d", c.Index, e.Index)
			}
			if next == start {
				return nil
			}
			e = next
		}
	}

	for _, c := range l.cells {
		if err := check(c); err != nil {
			return err
		}
	}
	for _, c := range l.borders {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}
