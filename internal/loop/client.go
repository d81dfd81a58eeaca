// Package loop drives one player's connection: menus, selection screens, the
// game session and its HUD, rendered to an ANSI terminal.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/highscore"
	"github.com/tomz197/starfall/internal/input"
	lconfig "github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/lobby"
)

// EventHandler consumes the events of each simulated frame (e.g. sound effects).
type EventHandler interface {
	HandleEvents(evs []game.Event)
}

// Client handles rendering and input for a single connection.
type Client struct {
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc

	tuning   config.Tuning
	catalog  *catalog.Catalog
	store    *highscore.Store
	lobby    *lobby.Lobby
	handle   *lobby.Handle
	location catalog.Locator
	events   EventHandler
	logger   *log.Logger
	username string
	now      func() time.Time
	rng      *rand.Rand
}

// ClientOptions configures the client.
type ClientOptions struct {
	Tuning       config.Tuning
	Catalog      *catalog.Catalog  // Defaults to catalog.Default()
	Store        *highscore.Store  // Defaults to an in-memory board
	Lobby        *lobby.Lobby      // Optional; enables presence and shutdown notices
	Location     catalog.Locator   // Player position used for the default country
	Events       EventHandler      // Optional
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Username     string
	Logger       *log.Logger
	Now          func() time.Time // Clock for score dates; defaults to time.Now
	Rand         *rand.Rand       // Seeds sessions; defaults to a time-seeded source
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	c, err := newClient(w, opts)
	if err != nil {
		return nil, err
	}
	c.inputStream = input.StartStream(r)
	return c, nil
}

func newClient(w io.Writer, opts ClientOptions) (*Client, error) {
	if opts.Catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		opts.Catalog = cat
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store == nil {
		opts.Store = highscore.NewStore(&highscore.MemoryBackend{}, opts.Logger)
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Tuning.FieldWidth == 0 {
		opts.Tuning = config.DefaultTuning()
	}
	if len(opts.Username) > lconfig.MaxUsernameLength {
		opts.Username = opts.Username[:lconfig.MaxUsernameLength]
	}

	state := NewClientState()
	state.BrowseIndex = opts.Catalog.Nearest(opts.Location.Position)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, opts.Tuning.FieldWidth, opts.Tuning.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		termSizeFunc: opts.TermSizeFunc,
		tuning:       opts.Tuning,
		catalog:      opts.Catalog,
		store:        opts.Store,
		lobby:        opts.Lobby,
		location:     opts.Location,
		events:       opts.Events,
		logger:       opts.Logger,
		username:     opts.Username,
		now:          opts.Now,
		rng:          opts.Rand,
	}
	if c.lobby != nil {
		c.handle = c.lobby.Register(opts.Username)
	}
	return c, nil
}

// State returns the client's state.
func (c *Client) State() *ClientState { return c.state }

// Run starts the client loop. Blocks until the player quits, the input closes
// or a shutdown countdown ends.
func (c *Client) Run() error {
	if c.handle != nil {
		defer c.lobby.Unregister(c.handle.ID)
	}

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processNotices()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < lconfig.ClientTargetFrameTime {
			time.Sleep(lconfig.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (c *Client) processInput() {
	c.setInput(input.ReadInput(c.inputStream))

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > lconfig.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player", "user", c.username)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > lconfig.InactivityWarnUser {
		c.state.isInactive = true
	}
}

func (c *Client) setInput(in input.Input) {
	c.state.Edges = risingEdges(in, c.state.prevInput)
	c.state.prevInput = in
	c.state.Input = in
	if in.Quit {
		c.state.Running = false
	}
}

// processNotices drains lobby notices.
func (c *Client) processNotices() {
	if c.handle == nil {
		return
	}
	c.state.Players = c.lobby.Count()
	for {
		select {
		case n := <-c.handle.Notices:
			c.applyNotice(n)
		default:
			return
		}
	}
}

func (c *Client) applyNotice(n lobby.Notice) {
	switch n.Type {
	case lobby.NoticeShutdown:
		c.state.Screen = ScreenShutdown
		c.state.shutdownTimer = lconfig.ShutdownDisplaySeconds
	case lobby.NoticeHighScore:
		name := n.Username
		if name == "" {
			name = "Someone"
		}
		c.state.Notice = fmt.Sprintf("%s just scored %d (#%d)", name, n.Score, n.Rank+1)
		c.state.NoticeTimer = 5
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, lconfig.MaxTermWidth)
	renderHeight = min(termHeight, lconfig.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the current screen by one frame.
func (c *Client) update() {
	c.state.clock += c.state.delta.Seconds()
	if c.state.NoticeTimer > 0 {
		c.state.NoticeTimer -= c.state.delta.Seconds()
		if c.state.NoticeTimer <= 0 {
			c.state.Notice = ""
		}
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.updateMenu()
	case ScreenHighScores:
		c.updateHighScores()
	case ScreenCountry:
		c.updateCountry()
	case ScreenPlane:
		c.updatePlane()
	case ScreenPlaying:
		c.updatePlaying()
	case ScreenUpgrade:
		c.updateUpgrade()
	case ScreenGameOver:
		c.updateGameOver()
	case ScreenShutdown:
		c.updateShutdown()
	}
}

// updateShutdown handles the shutdown screen countdown.
func (c *Client) updateShutdown() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
