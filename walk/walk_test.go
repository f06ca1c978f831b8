package walk

import (
	"math"
	"testing"

	"github.com/depp/intern-apocalypse-sub002/geom"
	"github.com/depp/intern-apocalypse-sub002/level"
	"github.com/depp/intern-apocalypse-sub002/rng"
)

func square(t *testing.T, halfSize float64) *level.Level {
	t.Helper()
	l, err := level.Create(halfSize, []geom.Vec2{{}})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestWalkZeroMovement(t *testing.T) {
	w := &Walker{Level: square(t, 5), Radius: 0.5}
	start := geom.Vec2{X: 1, Y: 2}
	got, err := w.Walk(start, geom.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if got != start {
		t.Errorf("Walk with zero movement = %v, want %v", got, start)
	}
}

func TestWalkFreeMovement(t *testing.T) {
	w := &Walker{Level: square(t, 10), Radius: 0.5}
	got, err := w.Walk(geom.Vec2{X: -2, Y: -2}, geom.Vec2{X: 3, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got != (geom.Vec2{X: 1, Y: -1}) {
		t.Errorf("free movement landed at %v, want (1,-1)", got)
	}
}

func TestWalkStopsAtWall(t *testing.T) {
	// Square of half size 1, entity radius 0.5: the reachable band is
	// [-0.5, 0.5] on both axes. Pushing straight right must stop at x = 0.5.
	l := square(t, 1)
	w := &Walker{Level: l, Radius: 0.5}
	got, err := w.Walk(geom.Vec2{}, geom.Vec2{X: 1, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != (geom.Vec2{X: 0.5, Y: 0}) {
		t.Errorf("stopped at %v, want (0.5,0)", got)
	}

	hit := false
	for _, e := range l.Edges() {
		if e.Highlight == level.HighlightHit {
			hit = true
		}
	}
	if !hit {
		t.Error("no edge marked as hit")
	}
}

func TestWalkSlidesAlongWall(t *testing.T) {
	l := square(t, 1)
	w := &Walker{Level: l, Radius: 0.5}
	// Diagonal into the right wall: x stops at the inset line, the y component
	// carries on along the wall.
	got, err := w.Walk(geom.Vec2{}, geom.Vec2{X: 1, Y: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Vec2{X: 0.5, Y: 0.4}
	if geom.Distance(got, want) > 1e-12 {
		t.Errorf("slide landed at %v, want %v", got, want)
	}

	slid := false
	for _, e := range l.Edges() {
		if e.Highlight == level.HighlightSlide {
			slid = true
		}
	}
	if !slid {
		t.Error("no edge marked as slide")
	}
}

func TestWalkCornerClamp(t *testing.T) {
	l := square(t, 1)
	w := &Walker{Level: l, Radius: 0.5}
	// Aim well past the top-right corner. The slide along the right wall must
	// not carry the center beyond (0.5, 0.5).
	got, err := w.Walk(geom.Vec2{X: 0.3, Y: 0.3}, geom.Vec2{X: 1, Y: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if got.X > 0.5+1e-9 || got.Y > 0.5+1e-9 {
		t.Errorf("corner clamp failed: landed at %v", got)
	}
}

func TestWalkInternalWall(t *testing.T) {
	// Two cells split by the bisector x = 2.5. An entity in the left cell
	// pushing right must stop one radius short of the internal wall.
	l, err := level.Create(10, []geom.Vec2{{}, {X: 5, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	w := &Walker{Level: l, Radius: 0.5}
	got, err := w.Walk(geom.Vec2{X: 0, Y: 1}, geom.Vec2{X: 4, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != (geom.Vec2{X: 2, Y: 1}) {
		t.Errorf("stopped at %v, want (2,1)", got)
	}
}

func TestWalkRestingOnEdge(t *testing.T) {
	// After stopping against a wall the entity sits on the inset line, and
	// float error can leave it a hair past it. Movement brushing that wall
	// again must register the contact at the current position and slide from
	// there, never jump the entity backward to the crossing point.
	l := square(t, 1)
	w := &Walker{Level: l, Radius: 0.5}
	start := geom.Vec2{X: 0.51, Y: 0}
	got, err := w.Walk(start, geom.Vec2{X: 0.2, Y: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Vec2{X: 0.51, Y: 0.3}
	if geom.Distance(got, want) > 1e-12 {
		t.Errorf("resting slide landed at %v, want %v", got, want)
	}
}

// TestWalkBound fuzzes long random walks across many generated levels and
// radii and checks the movement bound the solver promises: the result stays
// inside the circle whose diameter is the unobstructed path, never errors,
// and never leaves the level.
func TestWalkBound(t *testing.T) {
	configs := []struct {
		cfg    level.Config
		radius float64
	}{
		{level.Config{HalfSize: 16, CellCount: 24, MinSpacing: 2}, 0.4},
		{level.Config{HalfSize: 8, CellCount: 12, MinSpacing: 1}, 0.3},
	}
	for _, tc := range configs {
		for seed := uint32(1); seed <= 25; seed++ {
			cfg := tc.cfg
			cfg.Seed = seed
			l, err := level.Generate(cfg)
			if err != nil {
				t.Fatalf("half %v seed %d: %v", cfg.HalfSize, seed, err)
			}
			w := &Walker{Level: l, Radius: tc.radius}
			r := rng.New(seed)
			pos := geom.Vec2{}
			for i := 0; i < 2000; i++ {
				mv := r.Vec(-1, 1)
				next, err := w.Walk(pos, mv)
				if err != nil {
					t.Fatalf("half %v seed %d step %d from %v by %v: %v",
						cfg.HalfSize, seed, i, pos, mv, err)
				}
				mid := geom.Madd(pos, mv, 0.5)
				if geom.Distance(next, mid) > geom.Length(mv)/2+1e-9 {
					t.Fatalf("half %v seed %d step %d escaped bound: %v -> %v by %v",
						cfg.HalfSize, seed, i, pos, next, mv)
				}
				if math.Abs(next.X) > cfg.HalfSize || math.Abs(next.Y) > cfg.HalfSize {
					t.Fatalf("half %v seed %d step %d left the level: %v",
						cfg.HalfSize, seed, i, next)
				}
				pos = next
			}
		}
	}
}
