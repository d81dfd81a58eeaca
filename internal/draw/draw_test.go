package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasRenderHalfBlocks(t *testing.T) {
	// 1:1 scale: 4 columns, 2 rows, 4 logical sub-pixel rows.
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0) // top half of cell (1,1)
	c.SetFloat(1, 1) // bottom half of cell (2,1)
	c.SetFloat(2, 2)
	c.SetFloat(2, 3) // both halves of cell (3,2)

	var out bytes.Buffer
	c.Render(&out)
	s := out.String()

	for _, want := range []string{
		"\033[1;1H\033[97;49m▀",
		"\033[1;2H▄",
		"\033[2;3H█",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("render output missing %q:\n%q", want, s)
		}
	}
	if !strings.HasSuffix(s, ColorReset) {
		t.Error("render should reset attributes at the end")
	}
}

func TestCanvasMixedColours(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetColor(ColorRed)
	c.SetFloat(0, 0)
	c.SetColor(ColorBlue)
	c.SetFloat(0, 1)

	var out bytes.Buffer
	c.Render(&out)
	if want := "\033[91;104m▀"; !strings.Contains(out.String(), want) {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestCanvasClearAndBounds(t *testing.T) {
	c := NewScaledCanvas(2, 2, 2, 4)
	c.SetFloat(-5, -5)
	c.SetFloat(100, 100)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 1, Y: 3})
	c.Clear()

	var out bytes.Buffer
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("cleared canvas rendered %q", out.String())
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, limit, width int
		want                string
	}{
		{100, 100, 4, "████"},
		{50, 100, 4, "██░░"},
		{0, 100, 3, "░░░"},
		{150, 100, 2, "██"},
		{-3, 100, 2, "░░"},
		{5, 0, 2, "░░"},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.limit, tt.width); got != tt.want {
			t.Errorf("Bar(%d, %d, %d) = %q, want %q", tt.value, tt.limit, tt.width, got, tt.want)
		}
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[4;3Hhi"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCenterCol(t *testing.T) {
	if got := CenterCol(10, "abcd"); got != 4 {
		t.Errorf("CenterCol = %d, want 4", got)
	}
	if got := CenterCol(2, "toolong"); got != 1 {
		t.Errorf("CenterCol = %d, want 1", got)
	}
}
