package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
)

// SpriteSize is the rabbit sprite width and height in sprite pixels.
const SpriteSize = 13

// rabbitSprite is the rabbit bitmap. W = fur, P = pink, K = eye, N = nose.
var rabbitSprite = [SpriteSize]string{
	"...WW...WW...",
	"...WP...PW...",
	"...WP...PW...",
	"...WP...PW...",
	"...WWWWWWW...",
	"..WWWWWWWWW..",
	"..WKWWWWWKW..",
	"..WWWWNWWWW..",
	"...WWWWWWW...",
	"..WWWWWWWWW..",
	".WWWWWWWWWWW.",
	".WWWWWWWWWWW.",
	"..WW.....WW..",
}

var (
	furColor  = rl.Color{R: 245, G: 240, B: 235, A: 255}
	pinkColor = rl.Color{R: 255, G: 170, B: 190, A: 255}
	eyeColor  = rl.Color{R: 40, G: 30, B: 30, A: 255}
	noseColor = rl.Color{R: 230, G: 100, B: 130, A: 255}
)

// drawRabbit draws the sprite centred on (cx, cy). Facing left mirrors it.
func drawRabbit(cx, cy float32, px int32, faceLeft bool, tint uint8) {
	size := SpriteSize * px
	ox := int32(cx) - size/2
	oy := int32(cy) - size/2

	for row, line := range rabbitSprite {
		for col := 0; col < SpriteSize; col++ {
			src := col
			if faceLeft {
				src = SpriteSize - 1 - col
			}
			var c rl.Color
			switch line[src] {
			case 'W':
				c = furColor
			case 'P':
				c = pinkColor
			case 'K':
				c = eyeColor
			case 'N':
				c = noseColor
			default:
				continue
			}
			c.A = tint
			rl.DrawRectangle(ox+int32(col)*px, oy+int32(row)*px, px, px, c)
		}
	}
}

// drawFood draws a food item centred on (x, y).
func drawFood(kind components.FoodKind, x, y float32) {
	ix, iy := int32(x), int32(y)
	switch kind {
	case components.FoodGrass:
		green := rl.Color{R: 70, G: 160, B: 60, A: 255}
		for i := int32(-2); i <= 2; i++ {
			rl.DrawLine(ix+i*3, iy+6, ix+i*4, iy-8+abs32(i)*2, green)
		}
	case components.FoodWater:
		rl.DrawCircle(ix, iy, 8, rl.Color{R: 80, G: 150, B: 230, A: 230})
		rl.DrawCircle(ix-2, iy-3, 2, rl.Color{R: 220, G: 240, B: 255, A: 255})
	case components.FoodCarrot:
		rl.DrawTriangle(
			rl.Vector2{X: x - 5, Y: y - 6},
			rl.Vector2{X: x, Y: y + 10},
			rl.Vector2{X: x + 5, Y: y - 6},
			rl.Color{R: 240, G: 130, B: 40, A: 255},
		)
		rl.DrawRectangle(ix-2, iy-11, 4, 5, rl.Color{R: 60, G: 160, B: 60, A: 255})
	case components.FoodBerry:
		red := rl.Color{R: 200, G: 40, B: 70, A: 255}
		rl.DrawCircle(ix-3, iy+2, 5, red)
		rl.DrawCircle(ix+3, iy+2, 5, red)
		rl.DrawCircle(ix, iy-3, 5, red)
	default:
		rl.DrawCircle(ix, iy, 6, rl.Gray)
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
