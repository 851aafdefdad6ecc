// planets is an interactive viewer: drag with the left mouse button to
// fling new bodies into the simulation, watch them orbit, collide and
// merge.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"planets/scenario"
	"planets/sim"
)

const (
	screenWidth  = 1000
	screenHeight = 800

	spawnRadius = 2 // radius of mouse-spawned bodies

	// squared drag distance below which the drag guide is not drawn
	minDragDistSqr = 4
)

var (
	white    = color.RGBA{255, 255, 255, 255}
	green    = color.RGBA{0, 255, 0, 255}
	bodyFill = color.RGBA{200, 200, 255, 255}

	debugFace = etext.NewGoXFace(basicfont.Face7x13)
)

type mouseInfo struct {
	down    bool
	downPos mgl64.Vec2
	dragPos mgl64.Vec2
}

type game struct {
	sim    *sim.Sim
	sc     *scenario.Scenario
	trails map[uint64]*trail
	mouse  mouseInfo

	reload chan string // scenario file changes, nil without a watcher
	paused bool
}

func newGame(sc *scenario.Scenario) (*game, error) {
	s := sim.New(sc.Config())
	if err := sc.Populate(s); err != nil {
		return nil, err
	}

	g := &game{
		sim:    s,
		sc:     sc,
		trails: make(map[uint64]*trail),
	}
	for _, b := range s.Snapshot() {
		g.trails[b.ID] = newTrail()
	}
	return g, nil
}

func (g *game) Update() error {
	// scenario file changed on disk: rebuild the whole simulation
	select {
	case path := <-g.reload:
		sc, err := scenario.Load(path)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			break
		}
		ng, err := newGame(sc)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			break
		}
		ng.reload = g.reload
		*g = *ng
		log.Printf("reloaded %s", path)
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	g.handleMouse()

	if g.paused {
		return nil
	}

	res, err := g.sim.Step(g.sc.Dt)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	// tear down and spin up per-body trails in lockstep with the step
	for _, id := range res.Removed {
		if t, ok := g.trails[id]; ok {
			t.stopEmitting()
		}
	}
	for _, id := range res.Created {
		g.trails[id] = newTrail()
	}

	pos := make(map[uint64]mgl64.Vec2)
	for _, b := range g.sim.Snapshot() {
		pos[b.ID] = b.Pos
	}
	for id, t := range g.trails {
		t.update(g.sc.Dt, pos[id])
		if t.dead() {
			delete(g.trails, id)
		}
	}
	return nil
}

// handleMouse spawns a body when a left drag is released: it appears at the
// press position with a velocity opposite the drag, sling style.
func (g *game) handleMouse() {
	x, y := ebiten.CursorPosition()
	g.mouse.dragPos = mgl64.Vec2{float64(x), float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.mouse.down = true
		g.mouse.downPos = g.mouse.dragPos
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.mouse.down {
		g.mouse.down = false
		vel := g.mouse.downPos.Sub(g.mouse.dragPos)
		id, err := g.sim.Spawn(g.mouse.downPos, vel, 0, spawnRadius)
		if err != nil {
			log.Printf("spawn: %v", err)
			return
		}
		g.trails[id] = newTrail()
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for _, t := range g.trails {
		t.draw(screen)
	}

	for _, b := range g.sim.Snapshot() {
		plotcirclefilled(screen, bodyFill,
			int(b.Pos.X()), int(b.Pos.Y()), int(b.Radius))
	}

	if g.mouse.down && g.mouse.dragPos.Sub(g.mouse.downPos).LenSqr() >= minDragDistSqr {
		plotline(screen, green,
			int(g.mouse.downPos.X()), int(g.mouse.downPos.Y()),
			int(g.mouse.dragPos.X()), int(g.mouse.dragPos.Y()))
		plotcirclefilled(screen, white,
			int(g.mouse.downPos.X()), int(g.mouse.downPos.Y()), 2)
	}

	particles := 0
	for _, t := range g.trails {
		particles += t.count()
	}
	debug := fmt.Sprintf("%.1f tps\nBodies: %d\nTrails: %d\nParticles: %d",
		ebiten.ActualTPS(), g.sim.Count(), len(g.trails), particles)
	op := &etext.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.LineSpacing = 14
	op.ColorScale.ScaleWithColor(white)
	etext.Draw(screen, debug, debugFace, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// watch forwards write events for path into a channel the game polls.
func watch(path string) (chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	ch := make(chan string, 1)
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case ch <- event.Name:
				default: // a reload is already pending
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()
	return ch, nil
}

func main() {
	scenPath := flag.String("scenario", "", "scenario YAML to load (empty for the built-in default)")
	flag.Parse()

	sc := scenario.Default()
	if *scenPath != "" {
		loaded, err := scenario.Load(*scenPath)
		if err != nil {
			log.Fatal(err)
		}
		sc = loaded
	}

	g, err := newGame(sc)
	if err != nil {
		log.Fatal(err)
	}

	if *scenPath != "" {
		ch, err := watch(*scenPath)
		if err != nil {
			log.Fatal(err)
		}
		g.reload = ch
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Planets - " + sc.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
