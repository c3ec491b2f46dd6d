// Command lane-stress plays the stock level headless with a crowded road and river
// and reports frame times, system timings and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"

	"github.com/plus3/lilypad/app"
	"github.com/plus3/lilypad/ecs"
	"github.com/plus3/lilypad/game"
	"github.com/plus3/lilypad/input"
	"github.com/plus3/lilypad/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of extra cars and logs to spawn.")
	scenePath := flag.String("scene", "", "Scene file to play instead of the embedded level.")
	hopEvery := flag.Int("hop-every", 8, "Frames between two random hops.")
	step := flag.Duration("step", time.Second/60, "Simulated time per frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu, mem or allocs profile to the current directory.")
	flag.Parse()

	log.Println("Starting lane stress test...")

	doc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	shell := app.NewShell(doc, newHopper(*hopEvery), input.NopPointer{}, game.NopCues{})
	shell.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	play := app.Install(shell, nil, "lane-stress")
	if err := shell.Start(app.StatePlay); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer shell.Stop()

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Scene:          sceneName(doc),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	if mode, ok := profileModes[*profileMode]; ok {
		p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	} else if *profileMode != "" {
		log.Fatalf("Unknown profile %q", *profileMode)
	}

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	var crowded *ecs.World
	var crowdedEpoch uint64
	last := shell.Current()
	dt := step.Seconds()
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		// A restart builds a new world and a reload clears it; both drop the crowd.
		if world := play.World(); shell.Current() == app.StatePlay && (world != crowded || world.Epoch() != crowdedEpoch) {
			spawnCrowd(world, doc.Level, *entityCount)
			play.Control().Reset(world)
			crowded, crowdedEpoch = world, world.Epoch()
			report.Populations++
		}

		updateStart := time.Now()
		if err := shell.Frame(dt); err != nil {
			log.Fatalf("Frame failed: %v", err)
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++

		if current := shell.Current(); current != last {
			switch current {
			case app.StateWin:
				report.Wins++
			case app.StateLose:
				report.Losses++
			}
			last = current
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	if scheduler := play.Scheduler(); scheduler != nil {
		report.Systems = scheduler.GetStats().Systems
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"allocs": profile.MemProfileAllocs,
}

func loadScene(path string) (*scene.Document, error) {
	if path == "" {
		return scene.Default()
	}
	return scene.Load(path)
}

func sceneName(doc *scene.Document) string {
	if doc.Path == "" {
		return scene.DefaultLevel
	}
	return doc.Path
}

var laneColors = map[game.Category]mgl32.Vec4{
	game.CategoryCar:        {0.9, 0.2, 0.2, 1},
	game.CategoryLog:        {0.5, 0.3, 0.1, 1},
	game.CategoryReverseLog: {0.5, 0.3, 0.1, 1},
}

// spawnCrowd adds count cars and logs at random spots between the banks.
func spawnCrowd(world *ecs.World, level game.LevelConfig, count int) {
	categories := []game.Category{game.CategoryCar, game.CategoryLog, game.CategoryReverseLog}
	for i := 0; i < count; i++ {
		category := categories[rand.Intn(len(categories))]
		x := (rand.Float32()*2 - 1) * level.WrapBound
		z := level.EndDepth + 2 + float32(rand.Intn(int(level.StartDepth-level.EndDepth)-3))

		t := ecs.NewTransform()
		t.Position = mgl32.Vec3{x, 0, z}
		movement := game.Movement{
			LinearVelocity: mgl32.Vec3{1 + rand.Float32()*4, 0, 0},
			Category:       category,
		}
		if category == game.CategoryCar {
			movement.Direction = game.DirectionRight
		} else {
			t.Scale = mgl32.Vec3{3, 0.5, 1.6}
		}
		world.Spawn(t, movement, game.MeshRenderer{Mesh: string(category), Color: laneColors[category]})
	}
}

// hopper presses a random arrow key every few frames and Enter on the end screens.
type hopper struct {
	every int
	frame int
	prev  input.KeySet
}

func newHopper(every int) *hopper {
	return &hopper{every: max(every, 2)}
}

var hopKeys = []input.Key{input.KeyUp, input.KeyUp, input.KeyUp, input.KeyLeft, input.KeyRight, input.KeyDown}

func (h *hopper) Poll() input.State {
	h.frame++
	var keys input.KeySet
	if h.frame%h.every == 0 {
		keys = keys.With(hopKeys[rand.Intn(len(hopKeys))], input.KeyEnter)
	}
	state := input.State{Keys: keys, Previous: h.prev}
	h.prev = keys
	return state
}
