// Package revive implements the necromancer "cheat death" snapshot.
// A snapshot of the whole session is captured when a revive is armed and
// restored in place when the player spends it.
package revive

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

type snapshot struct {
	def *world.Definition
	rt  *state.Runtime
}

// System captures and restores the revive snapshot.
type System struct {
	def    *world.Definition
	rt     *state.Runtime
	queue  *skills.Queue
	ledger *progression.Ledger
	life   *lifecycle.Controller
	logger *log.Logger

	snap   *snapshot
	rewire func()
}

// New creates a revive system over the live session structures.
// A nil logger discards diagnostics.
func New(def *world.Definition, rt *state.Runtime, queue *skills.Queue, ledger *progression.Ledger, life *lifecycle.Controller, logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{
		def:    def,
		rt:     rt,
		queue:  queue,
		ledger: ledger,
		life:   life,
		logger: logger,
	}
}

// SetRewire installs the callback that re-syncs dependents after a restore.
func (s *System) SetRewire(fn func()) {
	s.rewire = fn
}

// Prepare captures the snapshot. Only succeeds while a revive is armed.
// Clone failures are logged and reported as false.
func (s *System) Prepare() bool {
	if !s.queue.ReviveArmed() {
		return false
	}

	def, err := s.def.Clone()
	if err != nil {
		s.logger.Warn("revive snapshot failed", "part", "definition", "error", err)
		return false
	}
	rt, err := s.rt.Clone()
	if err != nil {
		s.logger.Warn("revive snapshot failed", "part", "runtime", "error", err)
		return false
	}

	s.snap = &snapshot{def: def, rt: rt}
	return true
}

// Ready reports whether Revive would succeed.
func (s *System) Ready() bool {
	return s.snap != nil && s.queue.ReviveArmed()
}

// Revive restores the snapshot in place, fills every life, clears game over
// and spends the charge. The live Definition and Runtime pointers are kept.
func (s *System) Revive() bool {
	if !s.Ready() {
		return false
	}
	snap := s.snap
	s.snap = nil

	*s.def = *snap.def
	s.rt.RestoreFrom(snap.rt)

	// The restored skills still carry the armed flag from capture time
	s.queue.ConsumeManualRevive()

	if s.rewire != nil {
		s.rewire()
	}
	s.ledger.RecalculateMaxLives()
	s.ledger.RestoreLives()
	s.life.SetGameOver(false, "")

	s.logger.Info("player revived", "room", s.rt.Player.Room, "lives", s.rt.Player.CurrentLives)
	return true
}

// Discard drops any stored snapshot. Called on game reset.
func (s *System) Discard() {
	s.snap = nil
}
