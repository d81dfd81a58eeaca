package loop

import (
	"errors"
	"math/rand"

	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/input"
	lconfig "github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/lobby"
)

// confirm reports whether the player accepted the highlighted choice this frame.
func (c *Client) confirm() bool {
	return c.state.Edges.Enter || c.state.Edges.Fire
}

// cycle moves index by the vertical or horizontal arrows within [0, n).
func cycle(index, n int, e input.Input) int {
	if n == 0 {
		return 0
	}
	if e.Up || e.Left {
		index--
	}
	if e.Down || e.Right {
		index++
	}
	return (index%n + n) % n
}

func (c *Client) show(s Screen) {
	if c.inputStream != nil {
		input.ResetKeyInput(c.inputStream)
	}
	c.state.Screen = s
}

func (c *Client) updateMenu() {
	e := c.state.Edges
	c.state.MenuIndex = cycle(c.state.MenuIndex, len(menuItems), e)
	if e.Number >= 1 && e.Number <= len(menuItems) {
		c.state.MenuIndex = e.Number - 1
	} else if !c.confirm() {
		return
	}

	switch menuItems[c.state.MenuIndex] {
	case MenuStart:
		c.startGame()
	case MenuCountry:
		c.state.BrowseIndex = c.defaultCountry()
		c.show(ScreenCountry)
	case MenuPlane:
		c.show(ScreenPlane)
	case MenuHighScores:
		c.show(ScreenHighScores)
	case MenuQuit:
		c.state.Running = false
	}
}

func (c *Client) updateHighScores() {
	if c.state.Edges.Escape || c.confirm() {
		c.show(ScreenMenu)
	}
}

// defaultCountry is the selected country, or the one nearest the player's location.
func (c *Client) defaultCountry() int {
	if c.state.CountryIndex >= 0 {
		return c.state.CountryIndex
	}
	return c.catalog.Nearest(c.location.Position)
}

func (c *Client) updateCountry() {
	e := c.state.Edges
	c.state.BrowseIndex = cycle(c.state.BrowseIndex, len(c.catalog.Countries), e)
	switch {
	case e.Escape:
		c.show(ScreenMenu)
	case c.confirm():
		c.state.CountryIndex = c.state.BrowseIndex
		c.logger.Debug("country selected", "user", c.username,
			"country", c.catalog.Countries[c.state.CountryIndex].Code)
		c.show(ScreenMenu)
	}
}

func (c *Client) updatePlane() {
	e := c.state.Edges
	c.state.PlaneIndex = cycle(c.state.PlaneIndex, len(c.catalog.Planes), e)
	if e.Escape || c.confirm() {
		c.show(ScreenMenu)
	}
}

// CountryName is the label recorded with scores: the selected country's name or
// catalog.UnknownCountry.
func (c *Client) CountryName() string {
	if c.state.CountryIndex < 0 || c.state.CountryIndex >= len(c.catalog.Countries) {
		return catalog.UnknownCountry
	}
	return c.catalog.Countries[c.state.CountryIndex].Name
}

// startGame begins a new run with the selected plane.
func (c *Client) startGame() {
	plane := c.catalog.Planes[c.state.PlaneIndex]
	c.state.LastRank = -1
	c.state.LastScore = 0
	c.state.Session = game.NewSession(game.Options{
		Tuning: c.tuning,
		Hull:   plane.Hull,
		Rand:   rand.New(rand.NewSource(c.rng.Int63())),
		Sink:   game.ScoreSinkFunc(c.submitScore),
		Logger: c.logger,
	})
	c.logger.Info("run started", "user", c.username, "plane", plane.Key, "country", c.CountryName())
	c.show(ScreenPlaying)
}

// submitScore records the final score of a run; the session calls it once.
func (c *Client) submitScore(score int) error {
	c.state.LastScore = score
	rank, err := c.store.Record(score, c.CountryName(), c.now())
	c.state.LastRank = rank
	if rank >= 0 && c.handle != nil {
		c.lobby.Broadcast(lobby.Notice{
			Type:     lobby.NoticeHighScore,
			Username: c.username,
			Score:    score,
			Rank:     rank,
		}, c.handle.ID)
	}
	return err
}

func (c *Client) updatePlaying() {
	s := c.state.Session
	if s == nil {
		c.show(ScreenMenu)
		return
	}
	dt := min(c.state.delta, lconfig.MaxFrameDelta)
	evs := s.Step(dt, c.state.Input)
	c.dispatch(evs)

	switch s.State().Phase {
	case game.PhasePowerupChoice:
		c.state.UpgradeIndex = 0
		c.show(ScreenUpgrade)
	case game.PhaseGameOver:
		st := s.State()
		c.logger.Info("run ended", "user", c.username, "score", st.Score, "won", st.Won,
			"level", st.Level, "rank", c.state.LastRank+1)
		c.show(ScreenGameOver)
	}
}

func (c *Client) dispatch(evs []game.Event) {
	if c.events != nil && len(evs) > 0 {
		c.events.HandleEvents(evs)
	}
}

func (c *Client) updateUpgrade() {
	e := c.state.Edges
	c.state.UpgradeIndex = cycle(c.state.UpgradeIndex, len(game.Upgrades), e)
	if e.Number >= 1 && e.Number <= len(game.Upgrades) {
		c.state.UpgradeIndex = e.Number - 1
	} else if !c.state.Edges.Enter {
		// Fire is still held from play; only Enter or a digit confirms.
		return
	}

	u := game.Upgrades[c.state.UpgradeIndex]
	if err := c.state.Session.ChooseUpgrade(u); err != nil {
		if !errors.Is(err, game.ErrNotAwaitingUpgrade) {
			c.logger.Error("upgrade failed", "user", c.username, "upgrade", u, "err", err)
		}
		return
	}
	c.logger.Debug("upgrade chosen", "user", c.username, "upgrade", u)
	c.show(ScreenPlaying)
}

func (c *Client) updateGameOver() {
	if c.state.Edges.Escape || c.state.Edges.Enter {
		c.show(ScreenMenu)
	}
}
