package level

import (
	"testing"

	"github.com/depp/intern-apocalypse-sub002/geom"
)

func TestCreateBootstrap(t *testing.T) {
	l, err := Create(5, []geom.Vec2{{X: 1, Y: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Validate(); err != nil {
		t.Fatal(err)
	}

	if got := len(l.Cells()); got != 1 {
		t.Fatalf("interior cells = %d, want 1", got)
	}
	if got := len(l.Borders()); got != 4 {
		t.Fatalf("border cells = %d, want 4", got)
	}

	// The first seed's coordinates do not shape the bootstrap cell: it is the
	// whole square, centered on the origin.
	c := l.Cells()[0]
	if c.Center != (geom.Vec2{}) {
		t.Errorf("bootstrap cell center = %v, want origin", c.Center)
	}
	if c.Border() {
		t.Error("interior cell reports Border() = true")
	}

	// Four sides, anticlockwise, each twinned with a border-owned edge.
	n := 0
	e := c.Edge
	for {
		n++
		if n > 8 {
			t.Fatal("bootstrap chain does not close")
		}
		b := l.Back(e)
		if b == nil {
			t.Fatalf("edge %d has no twin", e.Index)
		}
		if l.Back(b) != e {
			t.Fatalf("twin of twin of edge %d is not itself", e.Index)
		}
		if !b.Cell.Border() {
			t.Errorf("twin of bootstrap edge %d owned by interior cell %d", e.Index, b.Cell.Index)
		}
		if b.Prev != nil || b.Next != nil {
			t.Errorf("border edge %d is not an open single-edge chain", b.Index)
		}
		e = e.Next
		if e == c.Edge {
			break
		}
	}
	if n != 4 {
		t.Errorf("bootstrap cell has %d edges, want 4", n)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	if _, err := Create(0, []geom.Vec2{{}}); err == nil {
		t.Error("zero half size accepted")
	}
	if _, err := Create(-1, []geom.Vec2{{}}); err == nil {
		t.Error("negative half size accepted")
	}
	if _, err := Create(5, nil); err == nil {
		t.Error("empty seed list accepted")
	}
}

func TestAddCellSplitsSquare(t *testing.T) {
	l, err := Create(10, []geom.Vec2{{}, {X: 5, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Validate(); err != nil {
		t.Fatal(err)
	}

	if got := len(l.Cells()); got != 2 {
		t.Fatalf("interior cells = %d, want 2", got)
	}
	nc := l.Cells()[1]
	if nc.Center != (geom.Vec2{X: 5, Y: 0}) {
		t.Fatalf("new cell center = %v", nc.Center)
	}

	// The bisector of the origin and (5,0) is the vertical line x = 2.5; both
	// cells end up as axis-aligned rectangles split along it.
	wantNew := map[geom.Vec2]bool{
		{X: 2.5, Y: -10}: true, {X: 10, Y: -10}: true,
		{X: 10, Y: 10}: true, {X: 2.5, Y: 10}: true,
	}
	countEdges := func(c *Cell, want map[geom.Vec2]bool) int {
		n := 0
		e := c.Edge
		for {
			n++
			if n > 16 {
				t.Fatalf("cell %d chain does not close", c.Index)
			}
			if !want[e.Vertex0] {
				t.Errorf("cell %d has unexpected vertex %v", c.Index, e.Vertex0)
			}
			e = e.Next
			if e == c.Edge {
				return n
			}
		}
	}
	if n := countEdges(nc, wantNew); n != 4 {
		t.Errorf("new cell has %d edges, want 4", n)
	}

	wantOld := map[geom.Vec2]bool{
		{X: -10, Y: -10}: true, {X: 2.5, Y: -10}: true,
		{X: 2.5, Y: 10}: true, {X: -10, Y: 10}: true,
	}
	if n := countEdges(l.Cells()[0], wantOld); n != 4 {
		t.Errorf("old cell has %d edges, want 4", n)
	}

	// One twin pair (the swallowed right side of the square) is dead.
	dead := 0
	for _, e := range l.edges {
		if e.Dead() {
			dead++
		}
	}
	if dead != 2 {
		t.Errorf("dead edges = %d, want 2", dead)
	}
	if got := len(l.Edges()); got != len(l.edges)-2 {
		t.Errorf("Edges() returned %d live edges, want %d", got, len(l.edges)-2)
	}
}

func TestAddCellSequenceStaysValid(t *testing.T) {
	seeds := []geom.Vec2{
		{}, {X: 5, Y: 0}, {X: -4, Y: 6}, {X: 3, Y: -7}, {X: -6, Y: -5}, {X: 7, Y: 7},
	}
	l, err := Create(10, seeds[:1])
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range seeds[1:] {
		c, err := l.AddCell(s)
		if err != nil {
			t.Fatalf("AddCell(%v): %v", s, err)
		}
		if c.Center != s {
			t.Fatalf("AddCell(%v) returned cell centered at %v", s, c.Center)
		}
		if err := l.Validate(); err != nil {
			t.Fatalf("after AddCell(%v): %v", s, err)
		}
		if got := l.NearestCell(s); got != c {
			t.Fatalf("NearestCell(%v) = cell %d, want the new cell %d", s, got.Index, c.Index)
		}
	}
	if got := len(l.Cells()); got != len(seeds) {
		t.Errorf("interior cells = %d, want %d", got, len(seeds))
	}
}

func TestContains(t *testing.T) {
	l, err := Create(10, []geom.Vec2{{}, {X: 5, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	old, nc := l.Cells()[0], l.Cells()[1]

	if !nc.Contains(geom.Vec2{X: 6, Y: 3}) {
		t.Error("new cell should contain (6,3)")
	}
	if nc.Contains(geom.Vec2{X: 0, Y: 0}) {
		t.Error("new cell should not contain the origin")
	}
	if !old.Contains(geom.Vec2{X: -3, Y: -3}) {
		t.Error("old cell should contain (-3,-3)")
	}
	if old.Contains(geom.Vec2{X: 6, Y: 3}) {
		t.Error("old cell should not contain (6,3)")
	}
	for _, b := range l.Borders() {
		if b.Contains(geom.Vec2{}) {
			t.Errorf("border cell %d claims to contain the origin", b.Index)
		}
	}
}

func TestFindEdges(t *testing.T) {
	l, err := Create(10, []geom.Vec2{{}, {X: 5, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	// A probe hugging the bisector at x = 2.5 must see the shared wall.
	found := l.FindEdges(geom.Vec2{X: 2, Y: 0}, 1)
	hasWall := false
	for _, e := range found {
		if e.Dead() {
			t.Fatalf("FindEdges returned dead edge %d", e.Index)
		}
		if e.Vertex0.X == 2.5 && e.Vertex1.X == 2.5 {
			hasWall = true
		}
	}
	if !hasWall {
		t.Error("FindEdges missed the wall at x = 2.5")
	}

	// A probe in the middle of the old cell, clear of everything.
	if got := l.FindEdges(geom.Vec2{X: -3, Y: 0}, 1); len(got) != 0 {
		t.Errorf("FindEdges in open space returned %d edges", len(got))
	}
}

func TestHighlights(t *testing.T) {
	l, err := Create(5, []geom.Vec2{{}})
	if err != nil {
		t.Fatal(err)
	}
	e := l.Cells()[0].Edge
	e.Highlight = HighlightSlide
	l.Back(e).Highlight = HighlightHit
	l.ClearHighlights()
	for _, e := range l.Edges() {
		if e.Highlight != HighlightNone {
			t.Fatalf("edge %d still highlighted after clear", e.Index)
		}
	}
}
