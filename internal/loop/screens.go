package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/geo"
	"github.com/tomz197/starfall/internal/highscore"
	lconfig "github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// ASCII art titles (figlet "small" font)
var (
	titleArt = []string{
		`  ___ _____ _   ___ ___ _   _    _    `,
		` / __|_   _/_\ | _ \ __/_\ | |  | |   `,
		` \__ \ | |/ _ \|   / _/ _ \| |__| |__ `,
		` |___/ |_/_/ \_\_|_\_/_/ \_\____|____|`,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	victoryArt = []string{
		` __   _____ ___ _____ ___  _____   __ `,
		` \ \ / /_ _/ __|_   _/ _ \| _ \ \ / / `,
		`  \ V / | | (__  | || (_) |   /\ V /  `,
		`   \_/ |___\___| |_| \___/|_|_\ |_|   `,
	}
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// The canvas only emits lit cells, so every frame starts from a blank screen.
	c.chunkWriter.WriteString("\033[H\033[2J")

	c.canvas.Clear()
	c.drawScene()

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawScene draws the canvas layer of the current screen.
func (c *Client) drawScene() {
	s := c.state.Session
	drawStarfield(c.canvas, c.state.clock)

	switch c.state.Screen {
	case ScreenPlaying, ScreenUpgrade, ScreenGameOver:
		if s != nil {
			s.Draw(c.canvas)
		}
	case ScreenCountry:
		c.drawGlobe()
	case ScreenPlane:
		c.drawPlanePreview()
	}
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.drawMenu(centerY)
	case ScreenHighScores:
		c.drawHighScores(centerY)
	case ScreenCountry:
		c.drawCountryText(termHeight)
	case ScreenPlane:
		c.drawPlaneText(termHeight)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case ScreenUpgrade:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawUpgradeModal(centerY)
	case ScreenGameOver:
		c.drawGameOver(centerY)
	}

	if c.state.Notice != "" {
		c.chunkWriter.WriteCentered(termWidth, 2, draw.ColorMagenta, c.state.Notice)
	}
}

// writeArt writes lines centred horizontally starting at row and returns the row after them.
func (c *Client) writeArt(lines []string, row int, col draw.Color) int {
	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	start := (c.canvas.TerminalWidth()-width)/2 + 1
	for i, line := range lines {
		c.chunkWriter.WriteColored(max(start, 1), row+i, col, line)
	}
	return row + len(lines)
}

// blinkOn toggles at a steady rate for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawMenu draws the title screen and main menu.
func (c *Client) drawMenu(centerY int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()

	row := c.writeArt(titleArt, max(centerY-10, 1), draw.ColorCyan)
	cw.WriteCentered(width, row+1, draw.ColorGray, "~ Hold the line against the falling sky ~")

	row += 3
	for i, item := range menuItems {
		label := fmt.Sprintf("  %d. %-12s  ", i+1, item)
		color := draw.ColorWhite
		if i == c.state.MenuIndex {
			label = fmt.Sprintf("> %d. %-12s <", i+1, item)
			color = draw.ColorYellow
		}
		cw.WriteCentered(width, row+i, color, label)
	}
	row += len(menuItems) + 1

	plane := c.catalog.Planes[c.state.PlaneIndex]
	selection := fmt.Sprintf("Country: %s   Plane: %s", c.CountryName(), plane.Name)
	cw.WriteCentered(width, row, draw.ColorGreen, selection)

	controls := []string{
		"Arrows / WASD . . . . Move",
		"SPACE / F . . . . . . Fire",
		"ENTER . . . . . . . Select",
		"Q . . . . . . . . . . Quit",
	}
	for i, line := range controls {
		cw.WriteCentered(width, row+2+i, draw.ColorGray, line)
	}

	if c.state.LastScore > 0 {
		cw.WriteCentered(width, row+3+len(controls), draw.ColorWhite,
			fmt.Sprintf("Last run: %d", c.state.LastScore))
	}
	if c.state.Players > 1 {
		cw.WriteCentered(width, row+4+len(controls), draw.ColorGray,
			fmt.Sprintf("%d pilots online", c.state.Players))
	}
}

// drawHighScores draws the score board.
func (c *Client) drawHighScores(centerY int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()
	top := max(centerY-highscore.MaxEntries/2-4, 1)

	cw.WriteCentered(width, top, draw.ColorYellow, "HIGH SCORES")
	header := fmt.Sprintf("%-3s %8s  %-10s  %-16s", "#", "SCORE", "DATE", "COUNTRY")
	cw.WriteCentered(width, top+2, draw.ColorGray, header)

	entries := c.store.Entries()
	if len(entries) == 0 {
		cw.WriteCentered(width, top+4, draw.ColorWhite, "No scores yet. Be the first!")
	}
	for i, e := range entries {
		line := fmt.Sprintf("%-3d %8d  %-10s  %-16s", i+1, e.Score, e.Date, truncate(e.Country, 16))
		color := draw.ColorWhite
		if i == c.state.LastRank {
			color = draw.ColorGreen
		}
		cw.WriteCentered(width, top+4+i, color, line)
	}

	cw.WriteCentered(width, top+6+highscore.MaxEntries, draw.ColorGray, "ENTER / ESC to go back")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// drawCountryText draws the labels of the globe screen.
func (c *Client) drawCountryText(termHeight int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()
	country := c.catalog.Countries[c.state.BrowseIndex]

	cw.WriteCentered(width, 1, draw.ColorYellow, "SELECT YOUR COUNTRY")

	// Label the highlighted marker, which sits at the globe's centre.
	col, row := c.canvas.LogicalToTerminal(c.tuning.FieldWidth/2+2, c.tuning.FieldHeight/2)
	cw.WriteColored(col, row, draw.ColorYellow, country.Name)

	km := geo.Distance(c.location.Position, country.Position)
	info := fmt.Sprintf("< %s (%s) >   %.0f km from you", country.Name, country.Code, km)
	cw.WriteCentered(width, termHeight-3, draw.ColorWhite, info)
	cw.WriteCentered(width, termHeight-2, draw.ColorGray, "Arrows to browse, ENTER to select, ESC to cancel")

	if c.location.Fallback {
		cw.WriteCentered(width, 2, draw.ColorRed, "Location unavailable: using Paris as your position")
	}
}

// drawPlaneText draws the labels of the plane screen.
func (c *Client) drawPlaneText(termHeight int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()
	plane := c.catalog.Planes[c.state.PlaneIndex]

	cw.WriteCentered(width, 1, draw.ColorYellow, "SELECT YOUR PLANE")
	cw.WriteCentered(width, termHeight-3, draw.ColorWhite,
		fmt.Sprintf("< %s >  (%d/%d)", plane.Name, c.state.PlaneIndex+1, len(c.catalog.Planes)))
	cw.WriteCentered(width, termHeight-2, draw.ColorGray, "Arrows to browse, ENTER to select")
}

// drawPlanePreview draws the highlighted plane, enlarged, at the field centre.
func (c *Client) drawPlanePreview() {
	plane := c.catalog.Planes[c.state.PlaneIndex]
	center := physics.Vec2{X: c.tuning.FieldWidth / 2, Y: c.tuning.FieldHeight / 2}
	preview := object.NewPlayer(center, 12, plane.Hull)
	preview.Draw(object.DrawContext{Canvas: c.canvas})
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so the layout doesn't jump as values shrink.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	s := c.state.Session
	if s == nil {
		return
	}
	st := s.State()
	cw := c.chunkWriter

	level := fmt.Sprintf("Level %d/%d", st.Level, st.Levels)
	cw.WriteAt(2, 1, level)

	scoreText := fmt.Sprintf("Score: %-8d", st.Score)
	cw.WriteAt(termWidth-len(scoreText)-1, 1, scoreText)

	if boss := s.Boss(); boss != nil {
		bar := fmt.Sprintf("BOSS %s", draw.Bar(boss.Health, boss.MaxHealth, 30))
		cw.WriteCentered(termWidth, 1, draw.ColorRed, bar)
	} else if st.Phase == game.PhaseLevelRunning {
		timer := fmt.Sprintf("Time: %3.0fs", st.TimeLeft)
		cw.WriteCentered(termWidth, 1, draw.ColorWhite, timer)
	}

	healthColor := draw.ColorGreen
	switch {
	case st.Health*4 <= st.MaxHealth:
		healthColor = draw.ColorRed
	case st.Health*2 <= st.MaxHealth:
		healthColor = draw.ColorYellow
	}
	health := fmt.Sprintf("HP %s %3d/%d", draw.Bar(st.Health, st.MaxHealth, 20), st.Health, st.MaxHealth)
	cw.WriteColored(2, termHeight, healthColor, health)

	if st.PowerUp != game.PowerUpNone {
		power := fmt.Sprintf("%s %4.1fs", strings.ToUpper(st.PowerUp.String()), st.PowerUpLeft())
		cw.WriteColored(2, termHeight-1, draw.ColorMagenta, power)
	}

	stats := fmt.Sprintf("DMG %d  ROF %4.1f/s", st.Damage, 1/st.FireInterval)
	if c.state.Players > 1 {
		stats = fmt.Sprintf("Pilots: %-3d %s", c.state.Players, stats)
	}
	cw.WriteAt(termWidth-len(stats)-1, termHeight, stats)
}

// drawBox draws a bordered box filled with spaces.
func (c *Client) drawBox(col, row, w, h int) {
	cw := c.chunkWriter
	line := strings.Repeat("─", w-2)
	blank := strings.Repeat(" ", w-2)
	cw.WriteAt(col, row, "┌"+line+"┐")
	for i := 1; i < h-1; i++ {
		cw.WriteAt(col, row+i, "│"+blank+"│")
	}
	cw.WriteAt(col, row+h-1, "└"+line+"┘")
}

// drawUpgradeModal draws the upgrade choice over the frozen field.
func (c *Client) drawUpgradeModal(centerY int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()
	st := c.state.Session.State()

	boxW, boxH := 48, len(game.Upgrades)+8
	top := max(centerY-boxH/2, 1)
	c.drawBox(max((width-boxW)/2+1, 1), top, boxW, boxH)

	cw.WriteCentered(width, top+1, draw.ColorYellow, fmt.Sprintf("LEVEL %d COMPLETE", st.Level))
	cw.WriteCentered(width, top+2, draw.ColorGray, "Choose an upgrade")
	for i, u := range game.Upgrades {
		label := fmt.Sprintf("  %d. %-14s %-20s", i+1, u, u.Description())
		color := draw.ColorWhite
		if i == c.state.UpgradeIndex {
			label = fmt.Sprintf("> %d. %-14s %-20s", i+1, u, u.Description())
			color = draw.ColorCyan
		}
		cw.WriteCentered(width, top+4+i, color, label)
	}
	cw.WriteCentered(width, top+boxH-2, draw.ColorGray, "Arrows + ENTER, or press 1-3")
}

// drawGameOver draws the final score, rank and restart prompt.
func (c *Client) drawGameOver(centerY int) {
	cw := c.chunkWriter
	width := c.canvas.TerminalWidth()
	won := c.state.Session != nil && c.state.Session.State().Won

	art, color := gameOverArt, draw.ColorRed
	if won {
		art, color = victoryArt, draw.ColorGreen
	}
	row := c.writeArt(art, max(centerY-6, 1), color)

	cw.WriteCentered(width, row+1, draw.ColorWhite, fmt.Sprintf("Final score: %d", c.state.LastScore))
	if c.state.LastRank >= 0 {
		cw.WriteCentered(width, row+3, draw.ColorYellow,
			fmt.Sprintf("New high score! Rank #%d for %s", c.state.LastRank+1, c.CountryName()))
	} else {
		cw.WriteCentered(width, row+3, draw.ColorGray, "Not quite enough for the board this time")
	}

	if blinkOn() {
		cw.WriteCentered(width, row+5, draw.ColorWhite, ">>  Press ENTER for the menu  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(lconfig.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
