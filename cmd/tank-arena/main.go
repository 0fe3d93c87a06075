package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/audio"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/core"
	"github.com/lixenwraith/tank-arena/engine"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/parameter"
	"github.com/lixenwraith/tank-arena/record"
	"github.com/lixenwraith/tank-arena/render"
	"github.com/lixenwraith/tank-arena/scoreboard"
	"github.com/lixenwraith/tank-arena/telemetry"
)

var (
	configFlag = flag.String("config", "", "Path to config file (toml, yaml or json)")
	layoutFlag = flag.String("layout", "", "Path to arena layout YAML, overrides arena.layout")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if err := run(*configFlag, *layoutFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "tank-arena: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, layoutPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logFile, err := setupLogging(cfg.LogsDir, cfg.LogLevel, debug)
	if err != nil {
		return err
	}
	defer logFile.Close()
	core.SetCrashLogger(logger)

	if layoutPath == "" {
		layoutPath = cfg.Arena.Layout
	}
	layout := config.DefaultLayout()
	if layoutPath != "" {
		if layout, err = config.LoadLayout(layoutPath); err != nil {
			return err
		}
	}

	queue := event.NewEventQueue()
	router := event.NewRouter(queue)

	seed := uint64(time.Now().UnixNano())
	arena, err := engine.NewArena(cfg, layout, queue, rand.New(rand.NewPCG(seed, seed>>1)), logger)
	if err != nil {
		return err
	}
	logger.Info().Str("layout", layout.Name).Int("players", cfg.Arena.Players).Msg("Arena created")

	// Metrics
	metrics := telemetry.New(cfg.Telemetry.Enabled)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := metrics.LogSummary(ctx, logger); err != nil {
			logger.Warn().Err(err).Msg("Metric summary failed")
		}
		if err := metrics.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("Metric shutdown failed")
		}
	}()
	instruments, err := telemetry.NewInstruments()
	if err != nil {
		return err
	}
	router.Register(instruments)

	// Match recording
	if cfg.Record.Enabled {
		rec, err := openRecorder(cfg, layout.Name, logger)
		if err != nil {
			logger.Error().Err(err).Msg("Recorder unavailable, continuing without match history")
		} else {
			router.Register(rec)
			defer func() {
				if s, err := rec.Summarize(cfg.Arena.Players); err == nil {
					s.Log(logger)
				}
				if err := rec.Close(); err != nil {
					logger.Error().Err(err).Msg("Failed to close recorder")
				}
			}()
		}
	}

	// All-time standings
	if cfg.Scoreboard.Enabled {
		board := scoreboard.Open(scoreboard.AppName, logger)
		router.Register(board)
		defer func() { board.Standings().Log(logger) }()
	}

	router.Register(engine.NewEventLogger(logger))

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashScreen(screen)

	// Audio is optional, the game runs silently without a device
	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("Audio initialization failed, continuing without audio")
		} else {
			sound = sm
			defer sound.Cleanup()
			router.Register(audio.NewCueSystem(sound, cfg.Tank.MinLaunchForce, cfg.Tank.MaxLaunchForce))
		}
	}

	source := input.NewTerminalSource(input.DefaultKeyMap(), cfg.Arena.Players, cfg.Input.HoldTimeout)
	clock := engine.NewPausableClock(engine.NewTimeProvider())
	scheduler := engine.NewClockScheduler(arena, source, router, clock, cfg.TickInterval, logger)

	if err := instruments.ObserveTick(metrics.Meter(), scheduler.TickCount); err != nil {
		logger.Warn().Err(err).Msg("Tick gauge unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	arena.Start()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	return frontLoop(ctx, screen, render.NewArenaRenderer(screen), arena, source, clock, sound, logger)
}

func openRecorder(cfg *config.Config, layout string, logger zerolog.Logger) (*record.Recorder, error) {
	db, err := record.OpenDB(cfg.Record.Path)
	if err != nil {
		return nil, err
	}
	return record.NewRecorder(db, layout, cfg.Arena.Players, logger)
}

// pollEvents forwards terminal events until poll returns nil or ctx ends
// The second channel closes when the poller goroutine exits
func pollEvents(ctx context.Context, poll func() tcell.Event, size int) (<-chan tcell.Event, <-chan struct{}) {
	events := make(chan tcell.Event, size)
	done := make(chan struct{})
	core.Go(func() {
		defer close(done)
		for {
			ev := poll()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})
	return events, done
}

// frontLoop renders at frame rate and forwards keys until quit or ctx ends
func frontLoop(
	ctx context.Context,
	screen tcell.Screen,
	renderer *render.ArenaRenderer,
	arena *engine.Arena,
	source *input.TerminalSource,
	clock *engine.PausableClock,
	sound *audio.SoundManager,
	logger zerolog.Logger,
) error {
	// Releases the poller when the loop returns before Fini unblocks PollEvent
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventChan, _ := pollEvents(ctx, screen.PollEvent, 256)

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch source.HandleKey(ev) {
				case input.CommandQuit:
					logger.Info().Msg("Quit requested")
					return nil
				case input.CommandPause:
					paused := clock.Toggle()
					// Keys latched before the pause must not resume held
					source.Reset()
					logger.Info().Bool("paused", paused).Msg("Pause toggled")
				case input.CommandMute:
					if sound != nil {
						sound.SetMuted(!sound.Muted())
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			renderer.RenderFrame(arena.Snapshot(), clock.IsPaused())
		}
	}
}
