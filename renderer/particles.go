package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParticleType selects a particle's look.
type ParticleType uint8

const (
	ParticleCrumb ParticleType = iota
	ParticleDrop
	ParticleSparkle
)

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y    float32
	VX, VY  float32
	Life    int32
	MaxLife int32
	Size    float32
	Type    ParticleType
}

// ParticleRenderer owns and renders effect particles.
type ParticleRenderer struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{rng: rand.New(rand.NewSource(1))}
}

// Burst emits n particles of the given type at (x, y).
func (r *ParticleRenderer) Burst(x, y float32, typ ParticleType, n int) {
	for i := 0; i < n; i++ {
		angle := r.rng.Float64() * 2 * math.Pi
		speed := float32(0.5 + r.rng.Float64()*1.5)
		life := int32(20 + r.rng.Intn(20))
		r.particles = append(r.particles, Particle{
			X:       x,
			Y:       y,
			VX:      float32(math.Cos(angle)) * speed,
			VY:      float32(math.Sin(angle))*speed - 1,
			Life:    life,
			MaxLife: life,
			Size:    2 + r.rng.Float32()*2,
			Type:    typ,
		})
	}
}

// Update advances particles one frame and drops dead ones.
func (r *ParticleRenderer) Update() {
	kept := r.particles[:0]
	for _, p := range r.particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VY += 0.08
		kept = append(kept, p)
	}
	r.particles = kept
}

// Clear removes every particle.
func (r *ParticleRenderer) Clear() {
	r.particles = r.particles[:0]
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw() {
	for i := range r.particles {
		p := &r.particles[i]

		// Fade with remaining life
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		var color rl.Color
		switch p.Type {
		case ParticleCrumb:
			color = rl.Color{R: 160, G: 120, B: 60, A: uint8(lifeRatio * 220)}
		case ParticleDrop:
			color = rl.Color{R: 255, G: 255, B: 255, A: uint8(lifeRatio * 180)}
		case ParticleSparkle:
			color = rl.Color{R: 255, G: 220, B: 80, A: uint8(lifeRatio * 255)}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
