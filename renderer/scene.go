// Package renderer draws the garden scene with raylib.
package renderer

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
)

// BubbleLifetime is how long a mood bubble stays on screen.
const BubbleLifetime = 2 * time.Second

type bubble struct {
	mood    components.Mood
	x, y    float64
	expires time.Time
}

type banner struct {
	text    string
	expires time.Time
}

// Scene renders the creature, the food and transient effects. It keeps a
// copy of the last synced state so drawing never touches simulation data.
type Scene struct {
	width, height int32

	creature components.Creature
	hasPet   bool
	faceLeft bool
	lastX    float64
	foods    []components.FoodItem

	bubbles   []bubble
	banner    banner
	particles *ParticleRenderer

	now func() time.Time
}

// NewScene creates a scene of the given size.
func NewScene(width, height int32) *Scene {
	return &Scene{
		width:     width,
		height:    height,
		particles: NewParticleRenderer(),
		now:       time.Now,
	}
}

// Sync copies the creature and food list for the next Draw.
func (s *Scene) Sync(c *components.Creature, foods []components.FoodItem) {
	if c.X < s.lastX-0.01 {
		s.faceLeft = true
	} else if c.X > s.lastX+0.01 {
		s.faceLeft = false
	}
	s.lastX = c.X
	s.creature = *c
	s.hasPet = true
	s.foods = append(s.foods[:0], foods...)
}

// ShowMood queues a mood bubble anchored at (x, y).
func (s *Scene) ShowMood(m components.Mood, x, y float64) {
	if m == components.MoodNone {
		return
	}
	s.bubbles = append(s.bubbles, bubble{mood: m, x: x, y: y, expires: s.now().Add(BubbleLifetime)})
}

// FoodPlaced pops a small burst where food appeared.
func (s *Scene) FoodPlaced(item components.FoodItem) {
	s.particles.Burst(float32(item.X), float32(item.Y), ParticleDrop, 6)
}

// FoodEaten pops crumbs where the food was.
func (s *Scene) FoodEaten(item components.FoodItem) {
	s.particles.Burst(float32(item.X), float32(item.Y), ParticleCrumb, 10)
}

// StageChanged shows a growth banner.
func (s *Scene) StageChanged(stage components.Stage) {
	s.banner = banner{
		text:    fmt.Sprintf("Your bunny is now %s!", stage.Label),
		expires: s.now().Add(BubbleLifetime),
	}
	s.particles.Burst(float32(s.creature.X), float32(s.creature.Y), ParticleSparkle, 16)
}

// Reset drops all transient effects.
func (s *Scene) Reset() {
	s.bubbles = s.bubbles[:0]
	s.banner = banner{}
	s.particles.Clear()
}

// Draw renders the scene. placing highlights the scene as a drop target.
func (s *Scene) Draw(placing bool) {
	now := s.now()
	s.prune(now)

	s.drawBackground(placing)
	for _, f := range s.foods {
		drawFood(f.Kind, float32(f.X), float32(f.Y))
	}
	s.particles.Update()
	s.particles.Draw()
	if s.hasPet {
		s.drawCreature(now)
	}
	for _, b := range s.bubbles {
		s.drawBubble(b, now)
	}
	if now.Before(s.banner.expires) {
		w := rl.MeasureText(s.banner.text, 24)
		rl.DrawText(s.banner.text, (s.width-w)/2, 20, 24, rl.Color{R: 255, G: 215, B: 90, A: 255})
	}
}

// prune removes expired bubbles.
func (s *Scene) prune(now time.Time) {
	kept := s.bubbles[:0]
	for _, b := range s.bubbles {
		if now.Before(b.expires) {
			kept = append(kept, b)
		}
	}
	s.bubbles = kept
}

func (s *Scene) drawBackground(placing bool) {
	sky := rl.Color{R: 170, G: 215, B: 240, A: 255}
	grass := rl.Color{R: 120, G: 190, B: 100, A: 255}
	horizon := s.height / 3
	rl.DrawRectangle(0, 0, s.width, horizon, sky)
	rl.DrawRectangle(0, horizon, s.width, s.height-horizon, grass)

	if placing {
		rl.DrawRectangleLinesEx(
			rl.Rectangle{X: 2, Y: 2, Width: float32(s.width - 4), Height: float32(s.height - 4)},
			4, rl.Color{R: 255, G: 230, B: 120, A: 200},
		)
	}
}

func (s *Scene) drawCreature(now time.Time) {
	c := &s.creature
	px := int32(c.PixelSize())
	if px <= 0 {
		px = 1
	}

	x, y := float32(c.X), float32(c.Y)
	t := float64(now.UnixMilli()) / 1000
	switch c.Activity {
	case components.ActivityDancing:
		y -= float32(math.Abs(math.Sin(t*8))) * float32(px) * 2
		x += float32(math.Sin(t*4)) * float32(px)
	case components.ActivityWalking:
		y -= float32(math.Abs(math.Sin(t*10))) * float32(px)
	case components.ActivityEating:
		y += float32(math.Sin(t*20)) * float32(px) * 0.5
	}

	// Shadow
	size := float32(SpriteSize * px)
	rl.DrawEllipse(int32(c.X), int32(c.Y)+int32(size/2), size/2.5, size/8, rl.Color{R: 0, G: 0, B: 0, A: 50})

	alpha := uint8(255)
	if c.HungerDescriptor() == components.HungerStarving {
		alpha = uint8(170 + 85*math.Abs(math.Sin(t*3)))
	}
	drawRabbit(x, y, px, s.faceLeft, alpha)
}

func (s *Scene) drawBubble(b bubble, now time.Time) {
	text := moodText(b.mood)
	remaining := b.expires.Sub(now).Seconds() / BubbleLifetime.Seconds()
	rise := float32((1 - remaining) * 20)

	const fontSize = 18
	w := rl.MeasureText(text, fontSize) + 16
	bx := int32(b.x) - w/2
	by := int32(b.y) - 70 - int32(rise)

	fade := uint8(255 * math.Min(1, remaining*2))
	rl.DrawRectangleRounded(
		rl.Rectangle{X: float32(bx), Y: float32(by), Width: float32(w), Height: 26},
		0.5, 6, rl.Color{R: 255, G: 255, B: 255, A: fade},
	)
	rl.DrawText(text, bx+8, by+4, fontSize, rl.Color{R: 60, G: 50, B: 50, A: fade})
}

// moodText is the bubble caption for a mood.
func moodText(m components.Mood) string {
	switch m {
	case components.MoodGreeting:
		return "Hi!"
	case components.MoodCelebrate:
		return "I grew!"
	case components.MoodYum:
		return "Yum!"
	case components.MoodDistress:
		return "So hungry..."
	case components.MoodStarving:
		return "Starving!"
	case components.MoodContent:
		return "Happy :)"
	case components.MoodDancing:
		return "La la la"
	case components.MoodWalking:
		return "Hop hop"
	case components.MoodLove:
		return "<3"
	default:
		return m.String()
	}
}
