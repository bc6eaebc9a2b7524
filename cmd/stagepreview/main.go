// Stage preview tool - shows the rabbit at any age, hunger and activity.
//
// Usage: go run ./cmd/stagepreview [config.yaml]
package main

import (
	"fmt"
	"log"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/renderer"
)

const (
	sceneWidth  = 480
	sceneHeight = 400
	panelWidth  = 300
	windowWidth = sceneWidth + panelWidth
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	rules := components.NewRules(cfg)

	rl.InitWindow(windowWidth, sceneHeight, "Stage Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	scene := renderer.NewScene(sceneWidth, sceneHeight)
	creature := components.NewCreature(rules, sceneWidth/2, sceneHeight/2, cfg.Spawn.Hunger)

	age := float32(0)
	hunger := float32(creature.Hunger)
	showRadius := true

	for !rl.WindowShouldClose() {
		// Rebuild so the stage is always derived from the slider age
		prevActivity := creature.Activity
		creature = components.NewCreature(rules, sceneWidth/2, sceneHeight/2, float64(hunger))
		creature.AdvanceAge(float64(age))
		creature.Activity = prevActivity
		scene.Sync(creature, nil)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		scene.Draw(false)
		if showRadius {
			rl.DrawCircleLines(int32(creature.X), int32(creature.Y), float32(creature.EatRadius()), rl.Red)
		}

		panelX := float32(sceneWidth + 10)
		panelY := float32(10)
		rl.DrawText("Stage Preview", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Age (seconds)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		age = gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20}, "", "", age, 0, 180)
		rl.DrawText(fmt.Sprintf("%.0f", age), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Hunger", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		hunger = gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20}, "", "", hunger, 0, float32(rules.HungerMax))
		rl.DrawText(fmt.Sprintf("%.0f", hunger), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		panelY += 40

		for i, name := range components.ActivityNames() {
			x := panelX + float32(i%2)*135
			y := panelY + float32(i/2)*38
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: 125, Height: 30}, name) {
				creature.Activity, _ = components.ParseActivity(name)
			}
		}
		panelY += 85

		for i, m := range []components.Mood{components.MoodYum, components.MoodDistress, components.MoodLove, components.MoodCelebrate} {
			x := panelX + float32(i%2)*135
			y := panelY + float32(i/2)*38
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: 125, Height: 30}, m.String()) {
				scene.ShowMood(m, creature.X, creature.Y)
			}
		}
		panelY += 85

		showRadius = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Eat radius", showRadius)
		panelY += 35

		st := creature.StageInfo()
		rl.DrawText(fmt.Sprintf("Stage: %s  pixel=%d  scale=%.1f", st.Label, st.PixelSize, st.Scale), int32(panelX), int32(panelY), 14, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Eat radius: %.1f  %s", creature.EatRadius(), creature.HungerDescriptor()), int32(panelX), int32(panelY+18), 14, rl.DarkGray)

		rl.EndDrawing()
	}
}
