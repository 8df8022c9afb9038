// Package enemies runs enemy AI: vision and alert windows, chase and wander
// movement, collision with the player, combat and defeat triggers.
package enemies

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/telemetry"
	"github.com/vovakirdan/tilequest/internal/world"
)

// wanderMoves is the fixed 5-way set an idle enemy picks from.
var wanderMoves = [5]core.Direction{core.DirNone, core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

// Deps are the session structures the engine works on.
type Deps struct {
	Definition *world.Definition
	Runtime    *state.Runtime
	Catalog    *world.Catalog
	Tiles      world.TileLookup
	Objects    world.ObjectLookup
	Ledger     *progression.Ledger
	Skills     *skills.Queue
	Lifecycle  *lifecycle.Controller
	Renderer   core.Renderer
	Difficulty *config.DifficultyManager // Optional
	Rand       *rand.Rand
	Logger     *log.Logger
}

// Hooks are callbacks into the session.
type Hooks struct {
	// PlayerDefeated runs when a hit takes the last life.
	PlayerDefeated func(e *state.Enemy)
	// EnemyDefeated runs after an enemy was removed by a collision.
	EnemyDefeated func(e *state.Enemy, res CollisionResult)
	// LevelUp runs after level-ups were queued by a defeat.
	LevelUp func(res progression.LevelResult)
	// Message surfaces a one-shot world message.
	Message func(text string)
}

// Engine is the enemy AI.
type Engine struct {
	def     *world.Definition
	rt      *state.Runtime
	catalog *world.Catalog
	tiles   world.TileLookup
	objects world.ObjectLookup
	ledger  *progression.Ledger
	queue   *skills.Queue
	life    *lifecycle.Controller
	render  core.Renderer
	diff    *config.DifficultyManager
	rng     *rand.Rand
	logger  *log.Logger
	tracer  trace.Tracer

	enemyCfg  config.EnemyConfig
	combatCfg config.CombatConfig

	editorMode bool
	hooks      Hooks
}

// New creates an enemy engine.
func New(cfg config.GameConfig, d Deps) *Engine {
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Renderer == nil {
		d.Renderer = core.NopRenderer{}
	}
	return &Engine{
		def:       d.Definition,
		rt:        d.Runtime,
		catalog:   d.Catalog,
		tiles:     d.Tiles,
		objects:   d.Objects,
		ledger:    d.Ledger,
		queue:     d.Skills,
		life:      d.Lifecycle,
		render:    d.Renderer,
		diff:      d.Difficulty,
		rng:       d.Rand,
		logger:    d.Logger,
		tracer:    telemetry.Tracer("enemies"),
		enemyCfg:  cfg.Enemies,
		combatCfg: cfg.Combat,
	}
}

// SetHooks installs the session callbacks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// SetRenderer swaps the renderer used for combat feedback.
func (e *Engine) SetRenderer(r core.Renderer) {
	if r == nil {
		r = core.NopRenderer{}
	}
	e.render = r
}

// SetEditorMode freezes or unfreezes the AI.
func (e *Engine) SetEditorMode(on bool) {
	e.editorMode = on
}

// Bind points the engine at rebuilt structures.
func (e *Engine) Bind(def *world.Definition, rt *state.Runtime) {
	e.def = def
	e.rt = rt
}

// Tick advances every enemy in the player's room by one step.
func (e *Engine) Tick(now time.Time) {
	if !e.life.Playing() || e.editorMode {
		return
	}

	e.UpdateVision(now)

	p := e.rt.Player
	for _, en := range e.EnemiesInRoom(p.Room) {
		// A collision earlier in this tick may have removed it
		if e.rt.EnemyByID(en.ID) == nil {
			continue
		}

		dest, ok := e.nextStep(en)
		if !ok {
			continue
		}
		if dest.X == p.X && dest.Y == p.Y {
			e.ResolveCollision(en)
			break
		}
		en.LastX = en.X
		en.X, en.Y = dest.X, dest.Y
	}
}

// UpdateVision refreshes every enemy's vision flag and alert window.
func (e *Engine) UpdateVision(now time.Time) {
	p := e.rt.Player
	r := e.enemyCfg.VisionRange
	for _, en := range e.rt.Enemies {
		inRoom := en.Room == p.Room
		inRange := inRoom && core.Abs(p.X-en.X) <= r && core.Abs(p.Y-en.Y) <= r
		if !inRange {
			en.PlayerInVision = false
			en.AlertStart = nil
			en.AlertUntil = nil
			continue
		}
		if !en.PlayerInVision {
			start := now
			until := now.Add(e.enemyCfg.AlertDuration())
			en.AlertStart = &start
			en.AlertUntil = &until
		}
		en.PlayerInVision = true
	}
}

// nextStep picks the enemy's destination for this tick.
func (e *Engine) nextStep(en *state.Enemy) (core.Point, bool) {
	if en.PlayerInVision {
		for _, dir := range e.chaseOrder(en) {
			dest := core.Point{X: en.X, Y: en.Y}.Add(dir.Delta())
			if !e.blocked(en, dest) {
				return dest, true
			}
		}
		return core.Point{}, false
	}

	dir := wanderMoves[e.rng.Intn(len(wanderMoves))]
	if dir == core.DirNone {
		return core.Point{}, false
	}
	dest := core.Point{X: en.X, Y: en.Y}.Add(dir.Delta())
	if e.blocked(en, dest) {
		return core.Point{}, false
	}
	return dest, true
}

// chaseOrder lists greedy chase directions: larger axis distance first
// (x on ties), then the other axis.
func (e *Engine) chaseOrder(en *state.Enemy) []core.Direction {
	p := e.rt.Player
	dx, dy := p.X-en.X, p.Y-en.Y

	xDir := core.DirectionOf(core.Sign(dx), 0)
	yDir := core.DirectionOf(0, core.Sign(dy))

	var order []core.Direction
	if core.Abs(dx) >= core.Abs(dy) {
		order = []core.Direction{xDir, yDir}
	} else {
		order = []core.Direction{yDir, xDir}
	}

	out := order[:0]
	for _, d := range order {
		if d != core.DirNone {
			out = append(out, d)
		}
	}
	return out
}

// blocked reports whether en may not step into dest.
// The player's cell is not blocking; stepping there is a collision.
func (e *Engine) blocked(en *state.Enemy, dest core.Point) bool {
	if !world.InBounds(dest.X, dest.Y) {
		return true
	}
	room := e.def.Room(en.Room)
	if room == nil || room.Walls[dest.Y][dest.X] {
		return true
	}
	if tile, ok := world.ResolveTile(e.tiles, en.Room, dest.X, dest.Y); ok && tile.Collision {
		return true
	}
	if obj, ok := e.objects.ObjectAt(en.Room, dest.X, dest.Y); ok && obj.Blocking() {
		return true
	}
	if _, ok := e.objects.NPCAt(en.Room, dest.X, dest.Y); ok {
		return true
	}
	if other := e.rt.EnemyAt(en.Room, dest.X, dest.Y); other != nil && other != en {
		return true
	}
	return false
}

// EnemiesInRoom returns the live enemies of a room.
func (e *Engine) EnemiesInRoom(room int) []*state.Enemy {
	var out []*state.Enemy
	for _, en := range e.rt.Enemies {
		if en.Room == room {
			out = append(out, en)
		}
	}
	return out
}

// CheckPlayerCell resolves a collision with an enemy standing on the
// player's cell, as after a move or a room change.
func (e *Engine) CheckPlayerCell() (CollisionResult, bool) {
	p := e.rt.Player
	en := e.rt.EnemyAt(p.Room, p.X, p.Y)
	if en == nil {
		return CollisionResult{}, false
	}
	return e.ResolveCollision(en), true
}
