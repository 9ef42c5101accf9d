package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/display"
	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
	"github.com/animalstyletaco/Sly2Decomp/internal/overlay"
	"github.com/animalstyletaco/Sly2Decomp/internal/render"
	"github.com/animalstyletaco/Sly2Decomp/internal/sim"
	"github.com/animalstyletaco/Sly2Decomp/internal/storage"
)

const windowTitle = "Sly 2 Decompilation - Work in Progress"

var (
	flagBackend string
	flagMode    string
	flagScreen  int
	flagWidth   int
	flagHeight  int
	flagFPS     int
	flagFrames  uint64
	flagTicks   uint64
	flagSeed    int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the engine",
	Long: `Start the engine: the simulation thread produces frame chains at the
configured tick rate while the presentation loop consumes them into a
native window.

Display modes:
  windowed    - Decorated window, remembered size and position
  fullscreen  - Exclusive fullscreen at the screen's native mode
  borderless  - Undecorated window covering the screen

Examples:
  sly2 run
  sly2 run --backend headless --frames 600
  sly2 run --mode borderless --screen 1
  sly2 run --config ./my-graphics.yaml`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagBackend, "backend", "", "Renderer backend (default from config)")
	runCmd.Flags().StringVar(&flagMode, "mode", "", "Display mode: windowed, fullscreen, borderless")
	runCmd.Flags().IntVar(&flagScreen, "screen", 0, "Target screen index")
	runCmd.Flags().IntVar(&flagWidth, "width", 0, "Window width (default from config)")
	runCmd.Flags().IntVar(&flagHeight, "height", 0, "Window height (default from config)")
	runCmd.Flags().IntVar(&flagFPS, "fps", 0, "Simulation tick rate (default from config)")
	runCmd.Flags().Uint64Var(&flagFrames, "frames", 0, "Stop after N presented frames (0 = run until closed)")
	runCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "Stop the simulation after N ticks (0 = unlimited)")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Simulation RNG seed")
}

func runRun(cmd *cobra.Command, args []string) error {
	// The window and its event queue belong to the startup thread for the
	// whole run.
	runtime.LockOSThread()

	logger := log.Default().WithPrefix("engine")

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagVerbose {
		cfg.Debug = true
	}
	if flagWidth > 0 {
		cfg.Display.WindowWidth = flagWidth
	}
	if flagHeight > 0 {
		cfg.Display.WindowHeight = flagHeight
	}
	if flagFPS > 0 {
		cfg.Graphics.TargetFPS = flagFPS
	}

	backendName := cfg.Renderer
	if flagBackend != "" {
		backendName = flagBackend
	}
	if !render.Exists(backendName) {
		return fmt.Errorf("unknown backend %q, run 'sly2 displays' to check your setup", backendName)
	}

	// Session stats survive the run; a broken database only costs history.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	mod, err := render.Create(backendName)
	if err != nil {
		return err
	}
	if err := mod.Init(&cfg); err != nil {
		return fmt.Errorf("backend %s init failed: %w", backendName, err)
	}
	defer mod.Exit()

	ov := overlay.New()
	if cfg.Debug {
		ov.ToggleVisible()
	}
	sess := graphics.NewSession(mod, ov, &cfg.Graphics, nil)

	gw := graphics.NewGateway()
	gw.Attach(sess)
	defer gw.Detach()

	reg := display.NewRegistry(mod.MakeDisplay)
	h, err := reg.CreateMain(cfg.Display.WindowWidth, cfg.Display.WindowHeight, windowTitle)
	if err != nil {
		return fmt.Errorf("window creation failed: %w", err)
	}
	defer reg.DestroyMain()

	if err := applyDisplayFlags(cmd, h, &cfg); err != nil {
		return err
	}

	simulator := sim.New(gw, sim.Config{
		TickRate: cfg.Graphics.TargetFPS,
		Seed:     flagSeed,
		MaxTicks: flagTicks,
	})
	simDone := make(chan struct{})
	go func() {
		simulator.Run()
		close(simDone)
	}()

	started := time.Now()
	loop := graphics.NewLoop(sess, reg, graphics.LoopOptions{MaxFrames: flagFrames})
	loop.Run()

	sess.Shutdown()
	<-simDone

	saveSessionStats(store, backendName, sess, loop, time.Since(started), logger)
	return nil
}

// applyDisplayFlags resolves the initial display mode from flags and
// config; flags win.
func applyDisplayFlags(cmd *cobra.Command, h *display.Handle, cfg *config.Config) error {
	mode, screen, err := resolveDisplayTarget(cfg, flagMode, cmd.Flags().Changed("screen"), flagScreen)
	if err != nil {
		return err
	}
	h.State().SetTarget(mode, screen)
	return nil
}

// resolveDisplayTarget picks the initial mode and screen. An explicitly set
// --screen overrides the config even when its value is 0, so screenSet has
// to come from the flag set, not from the value.
func resolveDisplayTarget(cfg *config.Config, modeFlag string, screenSet bool, screenFlag int) (display.Mode, int, error) {
	modeName := cfg.Display.Mode
	screen := cfg.Display.Screen
	if modeFlag != "" {
		modeName = modeFlag
	}
	if screenSet {
		screen = screenFlag
	}
	mode, err := display.ParseMode(modeName)
	if err != nil {
		return 0, 0, err
	}
	return mode, screen, nil
}

func saveSessionStats(store *storage.Store, backend string, sess *graphics.Session, loop *graphics.Loop, elapsed time.Duration, logger *log.Logger) {
	ls := loop.Stats()
	es := sess.Exchange.Stats()

	logger.Info("run finished",
		"presented", ls.Presented,
		"accepted", es.Accepted,
		"rejected", es.Rejected,
		"timeouts", es.TakeTimeouts,
		"elapsed", elapsed.Round(time.Millisecond),
	)

	if store == nil {
		return
	}
	var avgWaitMs float64
	if ls.Iterations > 0 {
		avgWaitMs = float64(ls.TakeWait.Milliseconds()) / float64(ls.Iterations)
	}
	if _, err := store.SaveSession(storage.SessionRecord{
		Backend:         backend,
		FramesPresented: int64(ls.Presented),
		FramesAccepted:  int64(es.Accepted),
		FramesRejected:  int64(es.Rejected),
		TakeTimeouts:    int64(es.TakeTimeouts),
		AvgTakeWaitMs:   avgWaitMs,
		DurationSecs:    elapsed.Seconds(),
	}); err != nil {
		logger.Warn("could not record session", "err", err)
	}
}
