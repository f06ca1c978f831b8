package level

import (
	"fmt"

	"github.com/depp/intern-apocalypse-sub002/geom"
	"github.com/depp/intern-apocalypse-sub002/rng"
)

// Config controls procedural level generation.
type Config struct {
	HalfSize   float64 // square extends [-HalfSize, HalfSize] on both axes
	CellCount  int     // number of interior cells, minimum 1
	Seed       uint32  // generator seed; same seed, same level
	MinSpacing float64 // minimum distance between seed points; 0 disables
}

// DefaultConfig returns a playable mid-size level configuration.
func DefaultConfig() Config {
	return Config{
		HalfSize:   16,
		CellCount:  24,
		Seed:       1,
		MinSpacing: 2,
	}
}

// Generate builds a level from scattered seed points. Points are drawn inside
// a margin of the square so cells cannot collapse against the boundary, with
// rejection sampling to keep them MinSpacing apart.
func Generate(cfg Config) (*Level, error) {
	if cfg.HalfSize <= 0 {
		return nil, fmt.Errorf("level: half size must be positive, got %v", cfg.HalfSize)
	}
	if cfg.CellCount < 1 {
		return nil, fmt.Errorf("level: cell count must be at least 1, got %d", cfg.CellCount)
	}

	r := rng.New(cfg.Seed)
	margin := cfg.HalfSize * 0.05
	lo, hi := -cfg.HalfSize+margin, cfg.HalfSize-margin
	minSq := cfg.MinSpacing * cfg.MinSpacing

	centers := make([]geom.Vec2, 0, cfg.CellCount)
	const maxTries = 64
	for len(centers) < cfg.CellCount {
		var p geom.Vec2
		ok := false
		for try := 0; try < maxTries; try++ {
			p = r.Vec(lo, hi)
			ok = true
			for _, c := range centers {
				if geom.DistanceSq(p, c) < minSq {
					ok = false
					break
				}
			}
			if ok {
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("level: cannot place %d cells with spacing %v in half size %v",
				cfg.CellCount, cfg.MinSpacing, cfg.HalfSize)
		}
		centers = append(centers, p)
	}

	return Create(cfg.HalfSize, centers)
}
