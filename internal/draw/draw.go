// Package draw renders the game to ANSI terminals using half-block characters.
package draw

import (
	"strconv"
	"unicode/utf8"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is one of the basic ANSI colours. The zero value means "no pixel".
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

var fgCodes = [...]int{
	ColorNone:    39,
	ColorWhite:   97,
	ColorRed:     91,
	ColorGreen:   92,
	ColorYellow:  93,
	ColorBlue:    94,
	ColorMagenta: 95,
	ColorCyan:    96,
	ColorGray:    90,
}

func (c Color) fg() int {
	if int(c) < len(fgCodes) {
		return fgCodes[c]
	}
	return 39
}

// Background SGR codes are the foreground codes shifted by 10.
func (c Color) bg() int {
	if c == ColorNone {
		return 49
	}
	return c.fg() + 10
}

// SGR returns the escape sequence selecting c as foreground colour.
func (c Color) SGR() string {
	return "\033[" + strconv.Itoa(c.fg()) + "m"
}

// Colorize wraps s in c and a reset.
func Colorize(c Color, s string) string {
	return c.SGR() + s + ColorReset
}

// Bar renders a horizontal meter of width cells filled to value/limit.
func Bar(value, limit, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if limit > 0 {
		filled = value * width / limit
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	buf := make([]rune, width)
	for i := range buf {
		if i < filled {
			buf[i] = BlockFull
		} else {
			buf[i] = BlockLight
		}
	}
	return string(buf)
}

// CenterCol returns the 1-based column at which s is centred on a line of width cells.
func CenterCol(width int, s string) int {
	col := (width-utf8.RuneCountInString(s))/2 + 1
	if col < 1 {
		col = 1
	}
	return col
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
