package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/highscore"
	"github.com/tomz197/starfall/internal/lobby"
	"github.com/tomz197/starfall/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDataApp     = "starfall"

	// locationEnv is read from the client's environment (ssh -o SendEnv=STARFALL_LOCATION).
	locationEnv = "STARFALL_LOCATION"
)

// arcade holds what every SSH session shares.
type arcade struct {
	lobby   *lobby.Lobby
	store   *highscore.Store
	catalog *catalog.Catalog
	tuning  config.Tuning
	logger  *log.Logger
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall-ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	a, err := newArcade(logger)
	if err != nil {
		logger.Fatal("failed to set up arcade", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", a.lobby.Count())

	// Notify players and wait for them to disconnect
	a.lobby.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// newArcade loads the shared tuning, catalog and score store.
func newArcade(logger *log.Logger) (*arcade, error) {
	tuning := config.DefaultTuning()
	if path := config.GetEnv("STARFALL_TUNING", ""); path != "" {
		t, err := config.LoadTuning(path)
		if err != nil {
			logger.Warn("using default tuning", "path", path, "err", err)
		}
		tuning = t
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}

	var store *highscore.Store
	backend, err := highscore.OpenGdata(config.GetEnv("STARFALL_DATA_APP", defaultDataApp))
	if err != nil {
		logger.Warn("high scores will not survive a restart", "err", err)
		store = highscore.NewStore(&highscore.MemoryBackend{}, logger)
	} else {
		store = highscore.NewStore(backend, logger)
	}

	return &arcade{
		lobby:   lobby.New(),
		store:   store,
		catalog: cat,
		tuning:  tuning,
		logger:  logger,
	}, nil
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *arcade) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		location, err := catalog.Locate(sessionEnv(sess, locationEnv))
		if err != nil {
			a.logger.Warn("bad client location", "user", sess.User(), "err", err)
		}

		c, err := loop.NewClient(bufio.NewReader(sess), sess, loop.ClientOptions{
			Tuning:       a.tuning,
			Catalog:      a.catalog,
			Store:        a.store,
			Lobby:        a.lobby,
			Location:     location,
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Logger:       a.logger.With("user", sess.User()),
		})
		if err != nil {
			a.logger.Error("failed to start client", "user", sess.User(), "err", err)
			return
		}
		if err := c.Run(); err != nil {
			a.logger.Error("game error", "user", sess.User(), "err", err)
		}

		a.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sessionEnv returns the value of key in the session's environment, or "".
func sessionEnv(sess ssh.Session, key string) string {
	prefix := key + "="
	for _, kv := range sess.Environ() {
		if v, ok := strings.CutPrefix(kv, prefix); ok {
			return v
		}
	}
	return ""
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
