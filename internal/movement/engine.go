// Package movement resolves player steps: room wrapping across the world
// grid, blocking checks (walls, doors, tiles, NPCs, enemies), the commit of a
// move and the hand-off to the room transition animator.
package movement

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/enemies"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Outcome classifies a move attempt.
type Outcome string

const (
	OutcomeRejected     Outcome = "rejected"     // Gated by lifecycle, overlay or transition
	OutcomeDialog       Outcome = "dialog"       // Paged the active dialog instead
	OutcomeEdge         Outcome = "edge"         // No room beyond the edge
	OutcomeBlocked      Outcome = "blocked"      // Missing room, wall or tile
	OutcomeLocked       Outcome = "locked"       // Locked door without key
	OutcomeSealed       Outcome = "sealed"       // Variable door with its variable off
	OutcomeNPC          Outcome = "npc"          // Talked to an NPC
	OutcomeCombat       Outcome = "combat"       // Bumped into an enemy
	OutcomeMoved        Outcome = "moved"        // Committed synchronously
	OutcomeTransitioned Outcome = "transitioned" // Committed, animation running
)

// Door feedback messages.
const (
	MsgDoorLocked   = "The door is locked. You need a key."
	MsgDoorUnlocked = "You unlock the door."
	MsgDoorKeyless  = "The lock clicks open at your touch."
	MsgDoorSealed   = "The gate will not budge."
)

// MoveResult reports the outcome of TryMove.
type MoveResult struct {
	Outcome     Outcome
	From        core.Point
	To          core.Point
	FromRoom    int
	ToRoom      int
	RoomChanged bool
	DoorOpened  bool
	Message     string
	Combat      *enemies.CollisionResult
}

// Moved reports whether the player changed cell.
func (r MoveResult) Moved() bool {
	return r.Outcome == OutcomeMoved || r.Outcome == OutcomeTransitioned
}

// Deps are the session structures the engine works on.
type Deps struct {
	Definition   *world.Definition
	Runtime      *state.Runtime
	Tiles        world.TileLookup
	Objects      world.ObjectLookup
	Ledger       *progression.Ledger
	Enemies      *enemies.Engine
	Lifecycle    *lifecycle.Controller
	Renderer     core.Renderer
	Dialog       core.Dialog
	Interactions core.Interactions
	Clock        core.Clock
	// UIBlocked reports whether a celebration, level-up or pickup overlay is open.
	UIBlocked func() bool
}

// Engine is the movement and transition engine.
type Engine struct {
	def     *world.Definition
	rt      *state.Runtime
	tiles   world.TileLookup
	objects world.ObjectLookup
	ledger  *progression.Ledger
	enemies *enemies.Engine
	life    *lifecycle.Controller
	render  core.Renderer
	dialog  core.Dialog
	inter   core.Interactions
	clock   core.Clock
	blocked func() bool

	transitioning bool
}

// New creates a movement engine.
func New(d Deps) *Engine {
	if d.Renderer == nil {
		d.Renderer = core.NopRenderer{}
	}
	if d.Clock == nil {
		d.Clock = core.SystemClock
	}
	if d.UIBlocked == nil {
		d.UIBlocked = func() bool { return false }
	}
	return &Engine{
		def:     d.Definition,
		rt:      d.Runtime,
		tiles:   d.Tiles,
		objects: d.Objects,
		ledger:  d.Ledger,
		enemies: d.Enemies,
		life:    d.Lifecycle,
		render:  d.Renderer,
		dialog:  d.Dialog,
		inter:   d.Interactions,
		clock:   d.Clock,
		blocked: d.UIBlocked,
	}
}

// Bind points the engine at rebuilt structures and drops any transition.
func (e *Engine) Bind(def *world.Definition, rt *state.Runtime) {
	e.def = def
	e.rt = rt
	e.FinishTransition()
}

// SetRenderer swaps the renderer.
func (e *Engine) SetRenderer(r core.Renderer) {
	if r == nil {
		r = core.NopRenderer{}
	}
	e.render = r
}

// Transitioning reports whether a room transition animation is running.
func (e *Engine) Transitioning() bool {
	return e.transitioning
}

// FinishTransition ends a running transition and releases its pause.
// Safe to call when no transition is running.
func (e *Engine) FinishTransition() {
	if !e.transitioning {
		return
	}
	e.transitioning = false
	e.life.Release(lifecycle.ReasonTransition)
}

// TryMove attempts a one-cell step.
func (e *Engine) TryMove(dx, dy int) MoveResult {
	p := e.rt.Player
	res := MoveResult{
		Outcome:  OutcomeRejected,
		From:     p.Pos(),
		To:       p.Pos(),
		FromRoom: p.Room,
		ToRoom:   p.Room,
	}

	if e.transitioning || e.life.GameOver() || e.blocked() {
		return res
	}
	if e.dialog != nil && e.dialog.Active() {
		e.dialog.NextPage()
		res.Outcome = OutcomeDialog
		return res
	}
	if !e.life.Playing() {
		return res
	}

	dir := core.DirectionOf(core.Sign(dx), core.Sign(dy))
	if dir == core.DirNone {
		return res
	}
	dx, dy = dir.Delta()

	// Destination, wrapping into the neighbouring room
	room := p.Room
	nx, ny := p.X+dx, p.Y+dy
	exit := core.Point{X: nx, Y: ny}
	if !world.InBounds(nx, ny) {
		next, ok := e.def.Neighbor(room, dir)
		if !ok {
			res.Outcome = OutcomeEdge
			e.render.FlashEdge(dir, core.EdgeOptions{Room: room, X: p.X, Y: p.Y})
			return res
		}
		room = next
		nx = (nx + world.RoomSize) % world.RoomSize
		ny = (ny + world.RoomSize) % world.RoomSize
	}
	res.ToRoom = room
	res.To = core.Point{X: nx, Y: ny}

	if !e.passable(room, nx, ny, &res) {
		return res
	}

	if npc, ok := e.objects.NPCAt(room, nx, ny); ok {
		res.Outcome = OutcomeNPC
		res.To = res.From
		if e.dialog != nil {
			e.dialog.ShowDialog(npc.Dialog, core.DialogMeta{Speaker: npc.Name, NPCID: npc.ID})
		}
		return res
	}

	if room == p.Room {
		if en := e.rt.EnemyAt(room, nx, ny); en != nil {
			combat := e.enemies.ResolveCollision(en)
			res.Outcome = OutcomeCombat
			res.To = res.From
			res.Combat = &combat
			return res
		}
	}

	e.commit(dir, exit, &res)
	return res
}

// passable runs the room, wall, door and tile checks in order.
// Doors opened by a key or the keyless skill count as passable.
func (e *Engine) passable(room, x, y int, res *MoveResult) bool {
	r := e.def.Room(room)
	if r == nil || r.Walls[y][x] {
		res.Outcome = OutcomeBlocked
		res.To = res.From
		return false
	}

	if obj, ok := e.objects.ObjectAt(room, x, y); ok && obj.Blocking() {
		switch {
		case obj.IsVariableDoor:
			res.Outcome = OutcomeSealed
			res.Message = MsgDoorSealed
			res.To = res.From
			return false
		case e.rt.Skills.Has(skills.KeylessDoors):
			e.objects.OpenDoor(obj.ID)
			res.DoorOpened = true
			res.Message = MsgDoorKeyless
		case e.ledger.UseKey():
			e.objects.OpenDoor(obj.ID)
			res.DoorOpened = true
			res.Message = MsgDoorUnlocked
		default:
			res.Outcome = OutcomeLocked
			res.Message = MsgDoorLocked
			res.To = res.From
			return false
		}
	}

	if tile, ok := world.ResolveTile(e.tiles, room, x, y); ok && !e.canWalk(tile) {
		res.Outcome = OutcomeBlocked
		res.To = res.From
		return false
	}
	return true
}

// canWalk applies walker skills to water and lava; other tiles use their
// collision flag.
func (e *Engine) canWalk(t world.Tile) bool {
	switch t.Category {
	case world.CategoryWater:
		return e.rt.Skills.Has(skills.WaterWalker)
	case world.CategoryLava:
		return e.rt.Skills.Has(skills.LavaWalker)
	default:
		return !t.Collision
	}
}

// commit moves the player and runs post-move checks. Room changes capture
// before and after frames and hand them to the renderer's transition.
func (e *Engine) commit(dir core.Direction, exit core.Point, res *MoveResult) {
	p := e.rt.Player
	res.RoomChanged = res.ToRoom != p.Room

	var before *core.Frame
	if res.RoomChanged {
		before = e.render.CaptureGameplayFrame()
	}

	p.X, p.Y, p.Room = res.To.X, res.To.Y, res.ToRoom
	now := e.clock()
	if res.RoomChanged {
		p.LastRoomChangeTime = now
	}

	if e.inter != nil {
		e.inter.HandlePlayerInteractions()
	}
	e.enemies.UpdateVision(now)
	if combat, ok := e.enemies.CheckPlayerCell(); ok {
		res.Combat = &combat
	}

	res.Outcome = OutcomeMoved
	if !res.RoomChanged {
		return
	}

	dx, dy := dir.Delta()
	entry := core.Point{X: res.To.X - dx, Y: res.To.Y - dy}
	opts := core.TransitionOptions{
		Direction: dir,
		FromRoom:  res.FromRoom,
		ToRoom:    res.ToRoom,
		FromPath:  []core.Point{res.From, exit},
		ToPath:    []core.Point{entry, res.To},
		Before:    before,
		After:     e.render.CaptureGameplayFrame(),
	}
	if e.render.StartRoomTransition(opts) {
		e.transitioning = true
		e.life.Pause(lifecycle.ReasonTransition)
		res.Outcome = OutcomeTransitioned
	}
}
