package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
)

func filled(r rune) *core.Frame {
	f := core.NewFrame(frameWidth, frameHeight)
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			f.Set(x, y, r, core.ColorDefault)
		}
	}
	return f
}

func overlays(frames int) config.OverlayConfig {
	return config.OverlayConfig{TransitionFrames: frames, EdgeFlashMS: 100, IndicatorMS: 200}
}

func TestRendererDeclinesTransition(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		opts   core.TransitionOptions
	}{
		{"disabled", 0, core.TransitionOptions{Before: filled('a'), After: filled('b')}},
		{"no before", 4, core.TransitionOptions{After: filled('b')}},
		{"no after", 4, core.TransitionOptions{Before: filled('a')}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(overlays(tt.frames), nil)
			if r.StartRoomTransition(tt.opts) {
				t.Error("transition accepted")
			}
			if r.Transitioning() {
				t.Error("renderer reports a transition")
			}
		})
	}
}

func TestRendererSlideFinishes(t *testing.T) {
	now := time.Unix(100, 0)
	r := NewRenderer(overlays(4), func() time.Time { return now })
	ok := r.StartRoomTransition(core.TransitionOptions{
		Direction: core.DirRight,
		Before:    filled('a'),
		After:     filled('b'),
	})
	if !ok {
		t.Fatal("transition declined")
	}

	if got := r.Compose(now).Get(0, 0).Rune; got != 'a' {
		t.Errorf("first frame starts with %q, want 'a'", got)
	}
	for i := 1; i < 4; i++ {
		if r.Advance(now) {
			t.Fatalf("finished early at step %d", i)
		}
	}
	// Half way through a right slide the new room fills the right half.
	r2 := NewRenderer(overlays(2), nil)
	r2.StartRoomTransition(core.TransitionOptions{Direction: core.DirRight, Before: filled('a'), After: filled('b')})
	r2.Advance(now)
	mid := r2.Compose(now)
	if mid.Get(0, 0).Rune != 'a' || mid.Get(frameWidth-1, 0).Rune != 'b' {
		t.Errorf("mid slide row = %q", mid.String()[:frameWidth])
	}

	if !r.Advance(now) {
		t.Error("slide did not finish on the last step")
	}
	if r.Transitioning() {
		t.Error("still transitioning")
	}
}

func TestRendererSlideDirections(t *testing.T) {
	tests := []struct {
		dir  core.Direction
		x, y int // Cell that shows the new room half way through
	}{
		{core.DirRight, frameWidth - 1, 0},
		{core.DirLeft, 0, 0},
		{core.DirDown, 0, frameHeight - 1},
		{core.DirUp, 0, 0},
	}
	for _, tt := range tests {
		r := NewRenderer(overlays(2), nil)
		r.StartRoomTransition(core.TransitionOptions{Direction: tt.dir, Before: filled('a'), After: filled('b')})
		r.Advance(time.Time{})
		if got := r.Compose(time.Time{}).Get(tt.x, tt.y).Rune; got != 'b' {
			t.Errorf("dir %v: cell (%d,%d) = %q, want 'b'", tt.dir, tt.x, tt.y, got)
		}
	}
}

func TestRendererIndicatorExpires(t *testing.T) {
	now := time.Unix(100, 0)
	r := NewRenderer(overlays(0), func() time.Time { return now })
	r.ShowCombatIndicator("-1", core.IndicatorOptions{Kind: core.IndicatorDamage, X: 3, Y: 3})

	if !r.Animating(now) {
		t.Fatal("indicator not animating")
	}
	f := r.Compose(now)
	if f.Get(5, 2).Rune != '-' || f.Get(6, 2).Rune != '1' {
		t.Errorf("indicator not drawn above the cell:\n%s", f.String())
	}

	later := now.Add(200 * time.Millisecond)
	r.Advance(later)
	if r.Animating(later) {
		t.Error("indicator outlived its duration")
	}
}

func TestRendererEdgeFlash(t *testing.T) {
	now := time.Unix(100, 0)
	r := NewRenderer(overlays(0), func() time.Time { return now })
	r.FlashEdge(core.DirUp, core.EdgeOptions{})

	f := r.Compose(now)
	if c := f.Get(4, 0); c.Color != core.ColorBrightRed {
		t.Errorf("top edge color = %v", c.Color)
	}
	if c := f.Get(4, 1); c.Color == core.ColorBrightRed {
		t.Error("flash leaked past the edge")
	}
	if r.Animating(now.Add(100 * time.Millisecond)) {
		t.Error("edge flash outlived its duration")
	}
}
