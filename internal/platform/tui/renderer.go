package tui

import (
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/session"
)

type indicator struct {
	text  string
	kind  core.IndicatorKind
	x, y  int
	until time.Time
}

type transition struct {
	opts  core.TransitionOptions
	step  int
	steps int
}

// Renderer is the terminal core.Renderer. It keeps short-lived effects
// (edge flashes, combat indicators, screen flashes, room slides) and
// composes them over the room picture.
type Renderer struct {
	sess  *session.Session
	cfg   config.OverlayConfig
	clock core.Clock

	edgeDir    core.Direction
	edgeUntil  time.Time
	flashColor core.Color
	flashUntil time.Time
	indicators []indicator
	trans      *transition
}

var _ core.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer. Bind must be called before drawing.
func NewRenderer(cfg config.OverlayConfig, clock core.Clock) *Renderer {
	if clock == nil {
		clock = core.SystemClock
	}
	return &Renderer{cfg: cfg, clock: clock}
}

// Bind attaches the session to draw and drops running effects.
func (r *Renderer) Bind(s *session.Session) {
	r.sess = s
	r.indicators = nil
	r.trans = nil
	r.edgeUntil = time.Time{}
	r.flashUntil = time.Time{}
}

// Draw is a no-op: Bubble Tea redraws after every update.
func (r *Renderer) Draw() {}

// CaptureGameplayFrame draws the player's current room.
func (r *Renderer) CaptureGameplayFrame() *core.Frame {
	f := core.NewFrame(frameWidth, frameHeight)
	if r.sess != nil {
		drawRoom(f, r.sess)
	}
	return f
}

// StartRoomTransition starts a room slide. Declined when either frame is
// missing or transitions are disabled.
func (r *Renderer) StartRoomTransition(opts core.TransitionOptions) bool {
	if r.cfg.TransitionFrames <= 0 || opts.Before == nil || opts.After == nil {
		return false
	}
	r.trans = &transition{opts: opts, steps: r.cfg.TransitionFrames}
	return true
}

// FlashEdge highlights the room border the player bumped into.
func (r *Renderer) FlashEdge(dir core.Direction, _ core.EdgeOptions) {
	r.edgeDir = dir
	r.edgeUntil = r.clock().Add(r.cfg.EdgeFlash())
}

// ShowCombatIndicator floats text over a cell.
func (r *Renderer) ShowCombatIndicator(text string, opts core.IndicatorOptions) {
	r.indicators = append(r.indicators, indicator{
		text:  text,
		kind:  opts.Kind,
		x:     opts.X,
		y:     opts.Y,
		until: r.clock().Add(r.cfg.Indicator()),
	})
}

// FlashScreen tints the whole room briefly.
func (r *Renderer) FlashScreen(opts core.FlashOptions) {
	r.flashColor = opts.Color
	r.flashUntil = r.clock().Add(r.cfg.EdgeFlash())
}

// Transitioning reports whether a room slide is running.
func (r *Renderer) Transitioning() bool {
	return r.trans != nil
}

// Advance moves effects forward one frame. It reports whether a room slide
// finished on this frame.
func (r *Renderer) Advance(now time.Time) (finished bool) {
	live := r.indicators[:0]
	for _, ind := range r.indicators {
		if now.Before(ind.until) {
			live = append(live, ind)
		}
	}
	r.indicators = live

	if r.trans == nil {
		return false
	}
	r.trans.step++
	if r.trans.step < r.trans.steps {
		return false
	}
	r.trans = nil
	return true
}

// Animating reports whether any effect still needs frames.
func (r *Renderer) Animating(now time.Time) bool {
	return r.trans != nil || len(r.indicators) > 0 || now.Before(r.edgeUntil) || now.Before(r.flashUntil)
}

// Compose returns the room picture with every live effect applied.
func (r *Renderer) Compose(now time.Time) *core.Frame {
	if r.trans != nil {
		return r.slide()
	}

	f := r.CaptureGameplayFrame()
	if now.Before(r.flashUntil) {
		tint(f, r.flashColor, func(x, y int) bool { return true })
	}
	if now.Before(r.edgeUntil) {
		w, h := f.Width(), f.Height()
		var onEdge func(x, y int) bool
		switch r.edgeDir {
		case core.DirUp:
			onEdge = func(_, y int) bool { return y == 0 }
		case core.DirDown:
			onEdge = func(_, y int) bool { return y == h-1 }
		case core.DirLeft:
			onEdge = func(x, _ int) bool { return x == 0 }
		case core.DirRight:
			onEdge = func(x, _ int) bool { return x >= w-cellWidth }
		}
		if onEdge != nil {
			tint(f, core.ColorBrightRed, onEdge)
		}
	}
	for _, ind := range r.indicators {
		if !now.Before(ind.until) {
			continue
		}
		n := utf8.RuneCountInString(ind.text)
		x := core.Clamp(ind.x*cellWidth-n/2, 0, max(f.Width()-n, 0))
		y := ind.y - 1
		if y < 0 {
			y = ind.y + 1
		}
		f.DrawText(x, y, ind.text, indicatorColor(ind.kind))
	}
	return f
}

// slide interpolates between the before and after frames.
func (r *Renderer) slide() *core.Frame {
	t := r.trans
	before, after := t.opts.Before, t.opts.After
	switch t.opts.Direction {
	case core.DirRight:
		return before.Blend(after, before.Width()*t.step/t.steps)
	case core.DirLeft:
		return after.Blend(before, after.Width()-after.Width()*t.step/t.steps)
	case core.DirDown:
		return before.BlendRows(after, before.Height()*t.step/t.steps)
	case core.DirUp:
		return after.BlendRows(before, after.Height()-after.Height()*t.step/t.steps)
	}
	return after
}

func tint(f *core.Frame, c core.Color, where func(x, y int) bool) {
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if !where(x, y) {
				continue
			}
			cell := f.Get(x, y)
			if cell.Rune == ' ' {
				cell.Rune = '░'
			}
			f.Set(x, y, cell.Rune, c)
		}
	}
}

func indicatorColor(k core.IndicatorKind) core.Color {
	switch k {
	case core.IndicatorDamage:
		return core.ColorBrightRed
	case core.IndicatorMiss, core.IndicatorCooldown:
		return core.ColorGray
	case core.IndicatorShield:
		return core.ColorCyan
	case core.IndicatorRevive:
		return core.ColorMagenta
	case core.IndicatorDefeat:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}
