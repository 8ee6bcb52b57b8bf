// Command ls-helios is a terminal visualizer for an animated star system:
// a procedurally shaded star with orbiting planets, rendered with a bloom
// pass on top of a rune canvas.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-helios/internal/config"
	"github.com/litescript/ls-helios/internal/logging"
	"github.com/litescript/ls-helios/internal/render"
	"github.com/litescript/ls-helios/internal/scene"
	"github.com/litescript/ls-helios/internal/shader"
	"github.com/litescript/ls-helios/internal/sim"
	"github.com/litescript/ls-helios/internal/ui"
)

// CLI flags for headless mode
var (
	frameCount int
	frameW     int
	frameH     int
)

func main() {
	// Parse flags
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	envPath := flag.String("env", ".env", "Path to dotenv file with HELIOS_* overrides")
	fps := flag.Int("fps", 0, "Target frames per second (overrides config)")
	timeScale := flag.Float64("time-scale", 0, "Simulation time multiplier (overrides config)")
	speedBoost := flag.Float64("speed-boost", 0, "Orbital speed boost (overrides config)")
	noBloom := flag.Bool("no-bloom", false, "Disable the bloom pass")
	flag.IntVar(&frameCount, "frames", 0, "Render N frames to stdout and exit (headless)")
	flag.IntVar(&frameW, "width", 120, "Headless frame width in cells")
	flag.IntVar(&frameH, "height", 35, "Headless frame height in cells")
	flag.Parse()

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))

	// Load configuration: defaults, then dotenv, then environment, then flags.
	if err := config.LoadDotenv(*envPath); err != nil {
		logger.Warn("dotenv: %v", err)
	}
	cfg, warnings := config.ApplyEnv(config.Default())
	for _, w := range warnings {
		logger.Warn("config: %s", w)
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *timeScale > 0 {
		cfg.TimeScale = *timeScale
	}
	if *speedBoost > 0 {
		cfg.SpeedBoost = *speedBoost
	}

	// A bad catalog is fatal before the first frame.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize the simulation pipeline.
	sys, err := sim.NewSystem(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building system: %v\n", err)
		os.Exit(1)
	}
	lava := shader.NewLava(shader.DefaultLavaConfig())
	graph, err := scene.Build(cfg, sys, lava)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}
	comp := render.NewCompositor(cfg.Bloom, logger)
	if *noBloom {
		comp.SetEnabled(false)
	}

	// Headless mode: no TUI
	if frameCount > 0 {
		if err := runHeadless(ctx, cfg, sys, graph, comp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create TUI model
	model := ui.New(cfg, sys, graph, comp, logger)

	// Create Bubble Tea program. Focus reporting lets the model pause the
	// simulation clock while the terminal is hidden.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless renders a fixed number of frames at a fixed step to stdout,
// for piping into files or terminals without the interactive UI.
func runHeadless(ctx context.Context, cfg config.Config, sys *sim.System, graph *scene.Graph, comp *render.Compositor) error {
	comp.Resize(frameW, frameH)
	proj := ui.FitProjection(frameW, frameH, maxOrbitUnits(cfg))
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	dt := 1.0 / float64(cfg.FPS)
	interval := time.Duration(float64(time.Second) * dt)

	for i := 0; i < frameCount; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		sys.Advance(dt, cfg.TimeScale, cfg.SpeedBoost)
		graph.Sync(sys)

		v := render.View{
			Proj:    proj,
			OriginX: frameW / 2,
			OriginY: frameH / 2,
			Time:    sys.Elapsed(),
		}
		frame, err := comp.RenderFrame(graph, v)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		fmt.Println(ui.RenderPlain(frame))
		if isTTY && i < frameCount-1 {
			// Pace live output; piped output renders as fast as possible.
			time.Sleep(interval)
		}
	}
	return nil
}

func maxOrbitUnits(cfg config.Config) float64 {
	max := 0.0
	for _, b := range cfg.Bodies {
		if r := b.SemiMajorAU * cfg.UnitsPerAU; r > max {
			max = r
		}
	}
	return max
}
