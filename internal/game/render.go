package game

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

// Draw renders every entity of the run onto canvas, back to front.
func (s *Session) Draw(canvas *draw.Canvas) {
	ctx := object.DrawContext{Canvas: canvas, Elapsed: s.state.Elapsed}
	for _, p := range s.particles {
		p.Draw(ctx)
	}
	for _, d := range s.drops {
		d.Draw(ctx)
	}
	for _, a := range s.asteroids {
		a.Draw(ctx)
	}
	if s.boss != nil {
		s.boss.Draw(ctx)
	}
	for _, b := range s.bullets {
		b.Draw(ctx)
	}
	if !(s.Over() && !s.state.Won) {
		s.player.Draw(ctx)
	}
}
