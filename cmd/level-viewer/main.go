// Command level-viewer renders a generated level in the terminal and lets you
// steer an entity through it with vi keys, with walls resolved by the
// collide-and-slide walker. Useful for eyeballing generation seeds and the
// collision response.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/depp/intern-apocalypse-sub002/audio"
	"github.com/depp/intern-apocalypse-sub002/geom"
	"github.com/depp/intern-apocalypse-sub002/level"
	"github.com/depp/intern-apocalypse-sub002/walk"
)

const (
	stepSize  = 0.5 // world units per key press
	frameRate = 30
)

type Viewer struct {
	screen        tcell.Screen
	width, height int

	lvl    *level.Level
	walker *walk.Walker
	pos    geom.Vec2

	sounds *audio.SoundManager

	// World-to-screen mapping, recomputed on resize. Terminal cells are about
	// twice as tall as wide, so x gets double the scale.
	scale   float64
	originX float64
	originY float64
}

func NewViewer(lvl *level.Level, radius float64, sounds *audio.SoundManager) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &Viewer{
		screen: screen,
		lvl:    lvl,
		walker: &walk.Walker{Level: lvl, Radius: radius},
		sounds: sounds,
	}
	v.handleResize()
	return v, nil
}

func (v *Viewer) handleResize() {
	v.width, v.height = v.screen.Size()

	// Fit the square into the screen, one row spared for the status line.
	usableH := v.height - 1
	if usableH < 1 {
		usableH = 1
	}
	sx := float64(v.width) / (4 * v.lvl.HalfSize)
	sy := float64(usableH) / (2 * v.lvl.HalfSize)
	v.scale = sx
	if sy < sx {
		v.scale = sy
	}
	v.originX = float64(v.width) / 2
	v.originY = float64(usableH) / 2
}

// toScreen maps a world point to terminal coordinates. World y grows up,
// terminal y grows down.
func (v *Viewer) toScreen(p geom.Vec2) (int, int) {
	x := v.originX + p.X*v.scale*2
	y := v.originY - p.Y*v.scale
	return int(x), int(y)
}

// toWorld maps the center of a terminal cell back to world coordinates.
func (v *Viewer) toWorld(x, y int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(x) + 0.5 - v.originX) / (v.scale * 2),
		Y: (v.originY - float64(y) - 0.5) / v.scale,
	}
}

// cellStyle gives each cell a stable hue from its index.
func cellStyle(idx, total int) tcell.Style {
	hue := float64(idx) * 360.0 / float64(total)
	c := colorful.Hsv(hue, 0.5, 0.25)
	r, g, b := c.RGB255()
	bg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	return tcell.StyleDefault.Background(bg)
}

func edgeStyle(h level.HighlightColor) tcell.Style {
	switch h {
	case level.HighlightHit:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case level.HighlightSlide:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()

	// Cell interiors: color each terminal cell by the nearest seed.
	total := len(v.lvl.Cells())
	half := v.lvl.HalfSize
	for y := 0; y < v.height-1; y++ {
		for x := 0; x < v.width; x++ {
			p := v.toWorld(x, y)
			if p.X < -half || p.X > half || p.Y < -half || p.Y > half {
				continue
			}
			c := v.lvl.NearestCell(p)
			v.screen.SetContent(x, y, ' ', nil, cellStyle(c.Index, total))
		}
	}

	// Walls on top, rasterized by sampling along each edge.
	for _, e := range v.lvl.Edges() {
		style := edgeStyle(e.Highlight)
		length := geom.Distance(e.Vertex0, e.Vertex1)
		steps := int(length*v.scale*2) + 1
		for i := 0; i <= steps; i++ {
			p := geom.Lerp(e.Vertex0, e.Vertex1, float64(i)/float64(steps))
			x, y := v.toScreen(p)
			if x >= 0 && x < v.width && y >= 0 && y < v.height-1 {
				v.screen.SetContent(x, y, '·', nil, style)
			}
		}
	}

	// The entity.
	px, py := v.toScreen(v.pos)
	if px >= 0 && px < v.width && py >= 0 && py < v.height-1 {
		v.screen.SetContent(px, py, '@', nil,
			tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	}

	status := fmt.Sprintf(" pos (%.2f, %.2f)  hjkl/arrows move  q quit",
		v.pos.X, v.pos.Y)
	for i, r := range status {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, r, nil,
			tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}

	v.screen.Show()
}

func (v *Viewer) move(dir geom.Vec2) {
	v.lvl.ClearHighlights()
	movement := geom.Scale(dir, stepSize)
	next, err := v.walker.Walk(v.pos, movement)
	if err != nil {
		// A bound violation is a solver bug; surface it instead of playing on.
		v.screen.Fini()
		log.Fatalf("movement solver: %v", err)
	}

	free := geom.Add(v.pos, movement)
	if next != free {
		// Blocked or deflected: pick the sound from what the solver marked.
		st := audio.SoundBump
		for _, e := range v.lvl.Edges() {
			if e.Highlight == level.HighlightSlide {
				st = audio.SoundSlide
				break
			}
		}
		v.sounds.Play(st)
	}
	v.pos = next
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.move(geom.Vec2{X: -1})
		case tcell.KeyRight:
			v.move(geom.Vec2{X: 1})
		case tcell.KeyUp:
			v.move(geom.Vec2{Y: 1})
		case tcell.KeyDown:
			v.move(geom.Vec2{Y: -1})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.move(geom.Vec2{X: -1})
			case 'l':
				v.move(geom.Vec2{X: 1})
			case 'k':
				v.move(geom.Vec2{Y: 1})
			case 'j':
				v.move(geom.Vec2{Y: -1})
			}
		}

	case *tcell.EventResize:
		v.handleResize()
	}

	return true
}

func (v *Viewer) run() {
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			v.draw()
		}
	}
}

func (v *Viewer) cleanup() {
	v.sounds.Cleanup()
	v.screen.Fini()
}

func main() {
	seed := flag.Uint("seed", 1, "generation seed")
	cells := flag.Int("cells", 24, "number of cells")
	half := flag.Float64("half", 16, "level half size in world units")
	radius := flag.Float64("radius", 0.4, "entity collision radius")
	spacing := flag.Float64("spacing", 2, "minimum seed spacing")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	lvl, err := level.Generate(level.Config{
		HalfSize:   *half,
		CellCount:  *cells,
		Seed:       uint32(*seed),
		MinSpacing: *spacing,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}

	sounds := audio.NewSoundManager()
	if !*mute {
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, the viewer works without sound.
			log.Printf("audio init failed: %v", err)
		}
	}

	viewer, err := NewViewer(lvl, *radius, sounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	sounds.Play(audio.SoundChime)
	viewer.run()
}
