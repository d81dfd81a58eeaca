package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/highscore"
	"github.com/tomz197/starfall/internal/loop"
)

const appName = "starfall"

func main() {
	logger, closeLog := newLogger(config.GetEnv("STARFALL_LOG", ""))
	defer closeLog()

	tuning := config.DefaultTuning()
	if path := config.GetEnv("STARFALL_TUNING", ""); path != "" {
		t, err := config.LoadTuning(path)
		if err != nil {
			logger.Warn("using default tuning", "path", path, "err", err)
		}
		tuning = t
	}

	location, err := catalog.Locate(config.GetEnv("STARFALL_LOCATION", ""))
	if err != nil {
		logger.Warn("ignoring STARFALL_LOCATION", "err", err)
	}

	store := openStore(logger)

	sound := audio.NewSoundManager(0.6, logger)
	if config.GetEnv("STARFALL_MUTE", "") == "" {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
	}
	defer sound.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	draw.EnterAltScreen(os.Stdout)
	restore := func() {
		draw.ExitAltScreen(os.Stdout)
		_ = term.Restore(fd, oldState)
	}

	client, err := loop.NewClient(bufio.NewReader(os.Stdin), os.Stdout, loop.ClientOptions{
		Tuning:   tuning,
		Store:    store,
		Location: location,
		Events:   sound,
		Username: os.Getenv("USER"),
		Logger:   logger,
	})
	if err != nil {
		restore()
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}

	runErr := client.Run()
	restore()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger writes to path, or discards logs when path is empty; stdout is the game screen.
func newLogger(path string) (*log.Logger, func()) {
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }
}

// openStore persists scores with gdata, falling back to an in-memory board.
func openStore(logger *log.Logger) *highscore.Store {
	backend, err := highscore.OpenGdata(config.GetEnv("STARFALL_DATA_APP", appName))
	if err != nil {
		logger.Warn("high scores will not be saved", "err", err)
		return highscore.NewStore(&highscore.MemoryBackend{}, logger)
	}
	return highscore.NewStore(backend, logger)
}
