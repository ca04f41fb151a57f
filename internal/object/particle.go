package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/flapssh/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Positions are canvas pixels and
// velocities pixels per second.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Gravity     float64 // Pixels per second squared
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Color       draw.Color
	Fade        bool // Whether to disappear in the last quarter of its life
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, col draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
		Color:       col,
		Fade:        true,
	}
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle. Returns true once it has expired.
func (p *Particle) Update(dt time.Duration) bool {
	secs := dt.Seconds()
	p.Lifetime -= secs
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, secs*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY = p.VY*dragFactor + p.Gravity*secs

	p.X += p.VX * secs
	p.Y += p.VY * secs
	return false
}

// Draw renders the particle as a single pixel.
func (p *Particle) Draw(ctx DrawContext) {
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return
	}
	ctx.Canvas.SetFloat(p.X, p.Y, p.Color)
}

// Spawner accepts newly created particles.
type Spawner interface {
	Spawn(p *Particle)
}

// SpawnBurst creates particles in a circular burst pattern.
func SpawnBurst(x, y float64, count int, speed, lifetime float64, colors []draw.Color, spawner Spawner) {
	if spawner == nil || len(colors) == 0 {
		return
	}
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)
		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, colors[rand.Intn(len(colors))])
		p.Gravity = speed * 1.5
		spawner.Spawn(p)
	}
}

// SpawnPuff creates a few particles drifting back and down from a flap.
func SpawnPuff(x, y, speed float64, col draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}
	count := 2 + rand.Intn(2)
	for i := 0; i < count; i++ {
		angle := math.Pi*0.75 + (rand.Float64()-0.5)*0.8
		spd := speed * (0.6 + rand.Float64()*0.6)
		life := 0.15 + rand.Float64()*0.2
		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, col)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Particles owns the live particles of one renderer.
type Particles struct {
	list []*Particle
}

var _ Spawner = (*Particles)(nil)

// Spawn adds p to the system.
func (ps *Particles) Spawn(p *Particle) {
	ps.list = append(ps.list, p)
}

// Update advances every particle and releases the expired ones.
func (ps *Particles) Update(dt time.Duration) {
	kept := ps.list[:0]
	for _, p := range ps.list {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(ps.list[len(kept):])
	ps.list = kept
}

// Draw paints every live particle.
func (ps *Particles) Draw(ctx DrawContext) {
	for _, p := range ps.list {
		p.Draw(ctx)
	}
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.list)
}

// Reset releases all particles.
func (ps *Particles) Reset() {
	for _, p := range ps.list {
		p.Release()
	}
	clear(ps.list)
	ps.list = ps.list[:0]
}
