package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/leonelquinteros/gotext"

	"sunstroke/pkg/engine/motion"
	"sunstroke/pkg/game/audio"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/level"
	"sunstroke/pkg/game/renderer"
	ebitenrenderer "sunstroke/pkg/game/renderer/ebiten"
	"sunstroke/pkg/game/renderer/tui"
	"sunstroke/pkg/game/session"
)

const (
	logDir      = "logs"
	logFileName = "sunstroke.log"
)

// setupLogging sends the standard logger to logs/sunstroke.log when debug is
// set and discards it otherwise. The returned file is nil when not logging.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "could not create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// fail reports a startup error on stderr and in the debug log, then exits
func fail(format string, args ...any) {
	log.Printf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	levelsPath := flag.String("levels", "", "level campaign JSON file (default: built-in campaign)")
	rulesPath := flag.String("rules", "", "rules override JSON file")
	startLevel := flag.Int("level", 1, "starting level number (for developer testing)")
	gui := flag.Bool("gui", false, "open a window instead of playing in the terminal")
	withAudio := flag.Bool("audio", false, "play sound cues")
	debug := flag.Bool("debug", false, "write a debug log to logs/sunstroke.log")
	lang := flag.String("lang", "en_GB", "message language")
	localesDir := flag.String("locales", "locales", "directory holding <lang>/default.po")
	flag.Parse()

	if f := setupLogging(*debug); f != nil {
		defer f.Close()
	}
	gotext.Configure(*localesDir, *lang, "default")

	rules, err := config.LoadFile(*rulesPath)
	if err != nil {
		fail("rules: %v", err)
	}
	catalog, err := level.LoadFile(*levelsPath, rules.TileHeat)
	if err != nil {
		fail("levels: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var front renderer.Renderer
	var sink motion.Sink
	if *gui {
		g := ebitenrenderer.New(nil, log.New(log.Writer(), "gui: ", log.Flags()))
		front, sink = g, g.Sink()
	} else {
		front = tui.New(os.Stdout, nil)
	}

	s, err := session.New(session.Options{
		Rules:    rules,
		Catalog:  catalog,
		Animator: motion.NewTimed(rules.Timing.MoveDuration.Std(), rules.Timing.StrikeDuration.Std(), sink),
		Transition: func(ctx context.Context, from, to *level.Level) {
			log.Printf("transition %q -> %q", from.Name, to.Name)
			motion.Pause(ctx, rules.Timing.TransitionDuration.Std())
		},
		Logger: log.New(log.Writer(), "engine: ", log.Flags()),
	})
	if err != nil {
		fail("%v", err)
	}
	defer s.Close()

	if err := s.Start(ctx, *startLevel-1); err != nil {
		fail("start: %v", err)
	}

	if *withAudio {
		p := audio.NewPlayer()
		if err := p.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer p.Close()
			evs, unsubscribe := s.Events(32)
			defer unsubscribe()
			go p.Listen(ctx, evs)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
		cancel()
	}()

	err = front.Run(ctx, s)
	cancel()
	if runErr := <-done; runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, session.ErrQuit) {
		log.Printf("session: %v", runErr)
	}
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(gotext.Get("GOODBYE"))
}
