// Command lightprobe loads a scene preset, steps the lighting simulation and
// prints what the player and a grid of probe points would see.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gekko3d/lumen"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/remeh/sizedwaitgroup"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lightprobe",
		Usage: "measure first-person lighting in a scene preset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "settings", Usage: "YAML settings file"},
			&cli.StringFlag{Name: "scene", Usage: "JSON scene preset", Required: true},
			&cli.StringFlag{Name: "player", Value: "0,1,0", Usage: "player position as x,y,z"},
			&cli.IntFlag{Name: "frames", Value: 60, Usage: "frames to simulate before probing"},
			&cli.Float64Flag{Name: "dt", Value: 1.0 / 60, Usage: "fixed frame time in seconds"},
			&cli.BoolFlag{Name: "sunlit", Usage: "player is outdoors in daylight"},
			&cli.BoolFlag{Name: "inside", Usage: "player is inside a building"},
			&cli.BoolFlag{Name: "dungeon", Usage: "player is inside a dungeon"},
			&cli.BoolFlag{Name: "night", Usage: "it is night"},
			&cli.BoolFlag{Name: "submerged", Usage: "player is underwater"},
			&cli.StringFlag{Name: "carry", Usage: "equip a light source: torch, lantern or candle"},
			&cli.IntFlag{Name: "durability", Value: 10, Usage: "fuel of the carried light"},
			&cli.StringFlag{Name: "grid", Usage: "probe grid as minX,minZ,maxX,maxZ,step at player height"},
			&cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent grid probes"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "random seed"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "lightprobe:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := lumen.NewDefaultLogger("lightprobe", c.Bool("debug"))

	settings := lumen.DefaultSettings()
	if path := c.String("settings"); path != "" {
		loaded, err := lumen.LoadSettings(path, logger)
		if err != nil {
			return err
		}
		settings = loaded
	}

	position, err := parseFloats(c.String("player"), 3)
	if err != nil {
		return fmt.Errorf("--player: %w", err)
	}

	env := lumen.NewEnvironment()
	env.InSunlight = c.Bool("sunlit")
	env.Inside = c.Bool("inside") || c.Bool("dungeon")
	env.InsideDungeon = c.Bool("dungeon")
	env.IsNight = c.Bool("night")
	env.Submerged = c.Bool("submerged")
	if env.IsNight {
		env.DaylightScale = 0
	}

	builder := lumen.NewAppBuilder().UseResources(logger)
	cmd := builder.Commands()

	transform := lumen.NewTransform(mgl32.Vec3{position[0], position[1], position[2]})
	player := lumen.NewPlayer(cmd.AddEntity(&transform))
	if kind := c.String("carry"); kind != "" {
		item, err := carriedItem(kind, c.Int("durability"))
		if err != nil {
			return err
		}
		player.Inventory.Add(item)
		player.LightSource = item
	}

	entities, err := lumen.LoadPreset(cmd, c.String("scene"))
	if err != nil {
		return err
	}

	lighting := lumen.LightingModule{
		Settings:    settings,
		Environment: env,
		Player:      player,
		Seed:        c.Uint64("seed"),
	}
	app := builder.UseLighting(lighting, float32(c.Float64("dt"))).Build()

	frames := c.Int("frames")
	for i := 0; i < frames; i++ {
		app.Step()
	}

	service := lumen.Resource[lumen.LightingService](app)
	registry := lumen.Resource[lumen.LightRegistry](app)
	hud := lumen.Resource[lumen.HUD](app)

	fmt.Printf("scene: %s entities, %s sensed lights after %s frames\n",
		humanize.Comma(int64(len(entities))),
		humanize.Comma(int64(len(registry.Sources()))),
		humanize.Comma(int64(frames)))
	fmt.Printf("player tint:       %s\n", formatColor(service.PlayerTint()))
	fmt.Printf("player location:   %s\n", formatColor(service.MeasureLocationLighting(transform.Position)))
	fmt.Printf("grope light range: %.2f\n", service.GropeLightRange())
	if carried := lumen.Resource[lumen.CarriedLight](app); carried.Lit {
		fmt.Printf("carried light:     intensity %.3f range %.2f\n", carried.Intensity, carried.Range)
	}
	for _, msg := range hud.Drain() {
		fmt.Printf("hud: %s\n", msg)
	}

	if layout := c.String("grid"); layout != "" {
		return probeGrid(service.Meter, layout, position[1], c.Int("workers"))
	}
	return nil
}

type probe struct {
	at    mgl32.Vec3
	color lumen.Color
}

// probeGrid measures a horizontal grid of locations concurrently. Location
// measurements only read the scene, so they can share the meter.
func probeGrid(meter *lumen.LightMeter, layout string, height float32, workers int) error {
	g, err := parseFloats(layout, 5)
	if err != nil {
		return fmt.Errorf("--grid: %w", err)
	}
	minX, minZ, maxX, maxZ, step := g[0], g[1], g[2], g[3], g[4]
	if step <= 0 || maxX < minX || maxZ < minZ {
		return fmt.Errorf("--grid: empty grid %q", layout)
	}

	var points []mgl32.Vec3
	for z := minZ; z <= maxZ; z += step {
		for x := minX; x <= maxX; x += step {
			points = append(points, mgl32.Vec3{x, height, z})
		}
	}

	results := make([]probe, len(points))
	var mu sync.Mutex
	brightest := -1

	swg := sizedwaitgroup.New(max(workers, 1))
	for i, p := range points {
		swg.Add()
		go func(i int, p mgl32.Vec3) {
			defer swg.Done()
			color := meter.Measure(p, lumen.NoEntity, lumen.LayerTerrain)
			results[i] = probe{at: p, color: color}

			mu.Lock()
			if brightest < 0 || color.Grayscale() > results[brightest].color.Grayscale() {
				brightest = i
			}
			mu.Unlock()
		}(i, p)
	}
	swg.Wait()

	for _, r := range results {
		fmt.Printf("probe %6.2f %6.2f %6.2f  %s\n", r.at.X(), r.at.Y(), r.at.Z(), formatColor(r.color))
	}
	if brightest >= 0 {
		b := results[brightest]
		fmt.Printf("brightest of %s probes: %.2f,%.2f,%.2f\n", humanize.Comma(int64(len(results))), b.at.X(), b.at.Y(), b.at.Z())
	}
	return nil
}

func carriedItem(kind string, durability int) (*lumen.Item, error) {
	switch strings.ToLower(kind) {
	case "torch":
		return lumen.NewItem(lumen.ItemTorch, "", durability), nil
	case "lantern":
		return lumen.NewItem(lumen.ItemLantern, "", durability), nil
	case "candle":
		return lumen.NewItem(lumen.ItemCandle, "", durability), nil
	default:
		return nil, fmt.Errorf("--carry: unknown light source %q", kind)
	}
}

func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float32, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

func formatColor(c lumen.Color) string {
	return fmt.Sprintf("r=%.3f g=%.3f b=%.3f a=%.3f (gray %.3f)", c.R, c.G, c.B, c.A, c.Grayscale())
}
