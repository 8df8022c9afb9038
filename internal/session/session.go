// Package session wires the engines of one play session together and routes
// player actions to them.
package session

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/enemies"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/movement"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/revive"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/telemetry"
	"github.com/vovakirdan/tilequest/internal/world"
)

// maxMessages is how many world messages the feed keeps.
const maxMessages = 4

var (
	// ErrNoDefinition is returned when a session is created without a world.
	ErrNoDefinition = errors.New("session: no world definition")
	// ErrNoCatalog is returned when a session is created without a catalog.
	ErrNoCatalog = errors.New("session: no catalog")
)

// Options configure a session.
type Options struct {
	Config     config.GameConfig
	Catalog    *world.Catalog
	Definition *world.Definition
	Renderer   core.Renderer // Optional
	Clock      core.Clock    // Optional
	Seed       int64         // 0 seeds from the clock
	Logger     *log.Logger   // Optional
	EditorMode bool
}

// Session is the aggregate of one play session.
type Session struct {
	cfg    config.GameConfig
	def    *world.Definition
	rt     *state.Runtime
	clock  core.Clock
	logger *log.Logger
	tracer trace.Tracer

	lookup   *world.Lookup
	life     *lifecycle.Controller
	ledger   *progression.Ledger
	queue    *skills.Queue
	revive   *revive.System
	enemies  *enemies.Engine
	movement *movement.Engine
	dialog   *DialogBox
	diff     *config.DifficultyManager
	render   core.Renderer

	pickup      PickupOverlay
	celebration Celebration
	messages    []string

	run RunSummary
}

// New builds a session and resets it to the start of the world.
func New(opts Options) (*Session, error) {
	if opts.Definition == nil {
		return nil, ErrNoDefinition
	}
	if opts.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Renderer == nil {
		opts.Renderer = core.NopRenderer{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Clock().UnixNano()
	}

	cfg := opts.Config
	def := opts.Definition
	rt := state.NewRuntime(def, cfg.Player.BaseMaxLives)

	s := &Session{
		cfg:    cfg,
		def:    def,
		rt:     rt,
		clock:  opts.Clock,
		logger: opts.Logger,
		tracer: telemetry.Tracer("session"),
		render: opts.Renderer,
	}

	s.lookup = world.NewLookup(def, opts.Catalog, rt.World)
	s.life = lifecycle.New(cfg.Lifecycle.GameOverCooldown(), opts.Clock)
	s.diff = config.NewDifficultyManager(cfg.Difficulty, cfg.Progression.MaxLevel)
	s.ledger = progression.New(cfg, rt, opts.Clock)
	s.queue = skills.New(cfg.Progression, rt)
	s.dialog = NewDialogBox(s.life, cfg.Overlays.DialogPageRunes)
	s.revive = revive.New(def, rt, s.queue, s.ledger, s.life, opts.Logger.WithPrefix("revive"))

	s.ledger.SetReviveHook(s.queue.AttemptRevive)
	s.queue.SetGrantHook(s.onSkillGranted)
	s.revive.SetRewire(s.rewire)

	s.enemies = enemies.New(cfg, enemies.Deps{
		Definition: def,
		Runtime:    rt,
		Catalog:    opts.Catalog,
		Tiles:      s.lookup,
		Objects:    s.lookup,
		Ledger:     s.ledger,
		Skills:     s.queue,
		Lifecycle:  s.life,
		Renderer:   opts.Renderer,
		Difficulty: s.diff,
		Rand:       rand.New(rand.NewSource(seed)),
		Logger:     opts.Logger,
	})
	s.enemies.SetEditorMode(opts.EditorMode)
	s.enemies.SetHooks(enemies.Hooks{
		PlayerDefeated: s.onPlayerDefeated,
		EnemyDefeated:  s.onEnemyDefeated,
		LevelUp:        func(res progression.LevelResult) { s.onLevelUp(res.Level) },
		Message:        s.message,
	})

	s.movement = movement.New(movement.Deps{
		Definition:   def,
		Runtime:      rt,
		Tiles:        s.lookup,
		Objects:      s.lookup,
		Ledger:       s.ledger,
		Enemies:      s.enemies,
		Lifecycle:    s.life,
		Renderer:     opts.Renderer,
		Dialog:       s.dialog,
		Interactions: interactions{s: s},
		Clock:        opts.Clock,
		UIBlocked:    s.uiBlocked,
	})

	s.ResetGame()
	return s, nil
}

// SetRenderer swaps the renderer of every engine.
func (s *Session) SetRenderer(r core.Renderer) {
	if r == nil {
		r = core.NopRenderer{}
	}
	s.render = r
	s.enemies.SetRenderer(r)
	s.movement.SetRenderer(r)
}

// SetEditorMode freezes or unfreezes enemy AI.
func (s *Session) SetEditorMode(on bool) {
	s.enemies.SetEditorMode(on)
}

// ResetGame rebuilds every runtime structure from the definition.
func (s *Session) ResetGame() {
	_, span := s.tracer.Start(context.Background(), "session.reset")
	defer span.End()

	s.revive.Discard()
	s.rt.Reset(s.def, s.cfg.Player.BaseMaxLives)
	s.rt.Player.GodMode = s.cfg.Player.GodMode
	s.life.Reset()
	s.dialog.CloseDialog()
	s.pickup = PickupOverlay{}
	s.celebration = Celebration{}
	s.messages = nil
	s.rewire()

	now := s.clock()
	s.run = RunSummary{
		ID:        uuid.NewString(),
		World:     s.def.ID,
		Level:     1,
		StartedAt: now,
		Outcome:   OutcomePlaying,
		rooms:     map[int]bool{s.rt.Player.Room: true},
	}
	span.SetAttributes(attribute.String("run.id", s.run.ID), attribute.String("world.id", s.def.ID))
	s.logger.Debug("session reset", "run", s.run.ID, "world", s.def.ID)
}

// rewire re-points every engine at the live structures.
func (s *Session) rewire() {
	s.lookup.Bind(s.def, s.rt.World)
	s.ledger.Bind(s.rt)
	s.queue.Bind(s.rt)
	s.enemies.Bind(s.def, s.rt)
	s.movement.Bind(s.def, s.rt)
}

// Tick runs one enemy AI step.
func (s *Session) Tick(now time.Time) {
	s.enemies.Tick(now)
	s.syncRun()
}

// TickInterval is the enemy tick period at the player's current level.
func (s *Session) TickInterval() time.Duration {
	return s.diff.TickInterval(s.cfg.Enemies.TickInterval(), s.rt.Player.Level)
}

// Frame advances overlay timers. It reports whether the frame loop is still
// needed.
func (s *Session) Frame(now time.Time) bool {
	if s.celebration.Active && !now.Before(s.celebration.Until) {
		s.DismissCelebration()
	}
	return s.celebration.Active || s.movement.Transitioning()
}

// Move attempts one step.
func (s *Session) Move(dx, dy int) movement.MoveResult {
	res := s.movement.TryMove(dx, dy)
	if res.Message != "" {
		s.message(res.Message)
	}
	if res.Moved() {
		s.run.rooms[res.ToRoom] = true
	}
	s.syncRun()
	return res
}

// FinishTransition ends a running room transition.
func (s *Session) FinishTransition() {
	s.movement.FinishTransition()
}

// Revive spends an armed necromancer revive after a defeat.
func (s *Session) Revive() bool {
	_, span := s.tracer.Start(context.Background(), "session.revive")
	defer span.End()

	ok := s.revive.Revive()
	span.SetAttributes(attribute.Bool("revive.ok", ok))
	if !ok {
		return false
	}
	// Grace window against the enemy that just won
	s.rt.Player.LastRoomChangeTime = s.clock()
	s.run.Outcome = OutcomePlaying
	s.run.Cause = ""
	s.message("Death releases its grip. You rise again.")
	return true
}

// CanRevive reports whether Revive would succeed.
func (s *Session) CanRevive() bool {
	return s.life.GameOver() && s.revive.Ready()
}

func (s *Session) uiBlocked() bool {
	return s.pickup.Active || s.celebration.Active || s.queue.Active()
}

func (s *Session) onPlayerDefeated(en *state.Enemy) {
	name := en.Type
	if t, ok := s.lookup.Catalog().Enemy(en.Type); ok && t.Name != "" {
		name = t.Name
	}
	cause := "slain by " + name
	s.life.SetGameOver(true, cause)
	if s.queue.ReviveArmed() {
		s.revive.Prepare()
	}

	s.syncRun()
	s.run.Outcome = OutcomeDefeated
	s.run.Cause = cause
	s.run.EndedAt = s.clock()
	s.run.pending = true
	s.logger.Info("player defeated", "cause", cause, "level", s.rt.Player.Level, "revive", s.revive.Ready())
}

func (s *Session) onEnemyDefeated(_ *state.Enemy, _ enemies.CollisionResult) {
	s.run.Kills++
}

func (s *Session) onSkillGranted(id string) {
	if id == skills.ExtraHeart {
		s.ledger.RecalculateMaxLives()
		s.ledger.Heal(1)
	}
}

// onLevelUp shows the celebration for level.
func (s *Session) onLevelUp(level int) {
	if !s.celebration.Active {
		s.life.Pause(lifecycle.ReasonCelebration)
	}
	s.celebration = Celebration{
		Active: true,
		Level:  level,
		Until:  s.clock().Add(s.cfg.Overlays.Celebration()),
	}
}

// DismissCelebration closes the celebration and opens any queued level-up
// choice.
func (s *Session) DismissCelebration() bool {
	if !s.celebration.Active {
		return false
	}
	s.celebration = Celebration{}
	s.life.Resume(lifecycle.ReasonCelebration)
	s.openLevelSelection()
	return true
}

func (s *Session) openLevelSelection() {
	if s.queue.Active() || s.queue.PendingSelections() == 0 || s.life.GameOver() {
		return
	}
	if s.queue.StartLevelSelection() {
		s.life.Pause(lifecycle.ReasonLevelUp)
	}
}

// ChooseSkill completes the level-up choice at index (the cursor when nil)
// and chains to the next queued prompt.
func (s *Session) ChooseSkill(index *int) (string, bool) {
	id, ok := s.queue.CompleteSelection(index)
	if !ok {
		return "", false
	}
	s.life.Resume(lifecycle.ReasonLevelUp)
	s.openLevelSelection()
	return id, true
}

func (s *Session) message(text string) {
	s.messages = append(s.messages, text)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}
