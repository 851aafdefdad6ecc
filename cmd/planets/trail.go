package main

import (
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl64"
)

const particleLife = 1.5 // seconds

// trail is the fading particle tail behind one body. When its body is
// removed the trail stops emitting and lingers until the last particle
// fades.
type trail struct {
	particles []particle
	emitting  bool
}

type particle struct {
	pos  mgl64.Vec2
	life float64
}

func newTrail() *trail {
	return &trail{emitting: true}
}

// update ages existing particles and, while still emitting, adds one at
// pos.
func (t *trail) update(dt float64, pos mgl64.Vec2) {
	live := t.particles[:0]
	for _, p := range t.particles {
		p.life -= dt
		if p.life > 0 {
			live = append(live, p)
		}
	}
	t.particles = live

	if t.emitting {
		t.particles = append(t.particles, particle{pos: pos, life: particleLife})
	}
}

func (t *trail) stopEmitting() {
	t.emitting = false
}

func (t *trail) dead() bool {
	return !t.emitting && len(t.particles) == 0
}

func (t *trail) count() int {
	return len(t.particles)
}

// draw renders each particle as a single pixel fading with its remaining
// life.
func (t *trail) draw(img draw.Image) {
	for _, p := range t.particles {
		v := uint8(255 * p.life / particleLife)
		img.Set(int(p.pos.X()), int(p.pos.Y()), color.RGBA{v, v, v, 255})
	}
}
