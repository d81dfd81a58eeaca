package loop

import (
	"time"

	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/input"
)

// Screen is the client's current screen.
type Screen int

const (
	ScreenMenu       Screen = iota // Title screen with the main menu
	ScreenHighScores               // Score board
	ScreenCountry                  // Globe with country selection
	ScreenPlane                    // Plane selection
	ScreenPlaying                  // Active gameplay
	ScreenUpgrade                  // Upgrade choice between levels
	ScreenGameOver                 // Final score, lost or won
	ScreenShutdown                 // Server is shutting down
)

// MenuItem is an entry of the main menu.
type MenuItem int

const (
	MenuStart MenuItem = iota
	MenuCountry
	MenuPlane
	MenuHighScores
	MenuQuit
)

var menuItems = []MenuItem{MenuStart, MenuCountry, MenuPlane, MenuHighScores, MenuQuit}

func (m MenuItem) String() string {
	switch m {
	case MenuStart:
		return "Start"
	case MenuCountry:
		return "Country"
	case MenuPlane:
		return "Plane"
	case MenuHighScores:
		return "High Scores"
	case MenuQuit:
		return "Quit"
	default:
		return "?"
	}
}

// ClientState holds per-connection state: selections, the running session and
// screen bookkeeping. Each client has its own instance.
type ClientState struct {
	Screen  Screen
	Input   input.Input // Keys held this frame
	Edges   input.Input // Keys that went down this frame
	Running bool

	MenuIndex    int
	CountryIndex int // Selected country, -1 for none
	PlaneIndex   int
	BrowseIndex  int // Country under the cursor on the globe screen
	UpgradeIndex int

	Session   *game.Session
	LastScore int
	LastRank  int // 0-based board rank of the last run, -1 if it missed the board
	Players   int // Connected players, when running in a lobby

	Notice      string  // Transient banner text
	NoticeTimer float64 // Seconds the banner stays up

	prevInput     input.Input
	delta         time.Duration
	clock         float64 // Seconds since the client started, for animation
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:       ScreenMenu,
		CountryIndex: -1,
		LastRank:     -1,
		Running:      true,
		prevInput:    input.Input{Number: -1},
		Edges:        input.Input{Number: -1},
	}
}

// risingEdges returns the keys held in cur but not in prev, so a key held
// across several frames acts once in the menus.
func risingEdges(cur, prev input.Input) input.Input {
	e := input.Input{
		Quit:      cur.Quit && !prev.Quit,
		Left:      cur.Left && !prev.Left,
		Right:     cur.Right && !prev.Right,
		Up:        cur.Up && !prev.Up,
		Down:      cur.Down && !prev.Down,
		Fire:      cur.Fire && !prev.Fire,
		Enter:     cur.Enter && !prev.Enter,
		Backspace: cur.Backspace && !prev.Backspace,
		Escape:    cur.Escape && !prev.Escape,
		Number:    -1,
		Pressed:   cur.Pressed,
	}
	if cur.Number >= 0 && cur.Number != prev.Number {
		e.Number = cur.Number
	}
	return e
}
