package session

import (
	"maps"
	"slices"
	"time"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Run outcomes.
const (
	OutcomePlaying  = "playing"
	OutcomeDefeated = "defeated"
)

// RunSummary is the record of one run, kept for run history.
type RunSummary struct {
	ID           string
	World        string
	Level        int
	Experience   int
	Kills        int
	RoomsVisited int
	Duration     time.Duration
	Outcome      string
	Cause        string
	StartedAt    time.Time
	EndedAt      time.Time

	rooms   map[int]bool
	pending bool
}

// Summary returns the current run record.
func (s *Session) Summary() RunSummary {
	s.syncRun()
	r := s.run
	r.rooms = nil
	r.pending = false
	end := r.EndedAt
	if end.IsZero() {
		end = s.clock()
	}
	r.Duration = end.Sub(r.StartedAt)
	return r
}

// TakeFinishedRun returns the summary of a run that just ended, once per
// defeat.
func (s *Session) TakeFinishedRun() (RunSummary, bool) {
	if !s.run.pending {
		return RunSummary{}, false
	}
	s.run.pending = false
	return s.Summary(), true
}

// VisitedRooms returns the indexes of every room entered this run, sorted.
func (s *Session) VisitedRooms() []int {
	return slices.Sorted(maps.Keys(s.run.rooms))
}

func (s *Session) syncRun() {
	p := s.rt.Player
	s.run.Level = p.Level
	s.run.Experience = p.Experience
	s.run.RoomsVisited = len(s.run.rooms)
}

// Config returns the game configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }

// Definition returns the live world definition.
func (s *Session) Definition() *world.Definition { return s.def }

// Runtime returns the live runtime state.
func (s *Session) Runtime() *state.Runtime { return s.rt }

// Player returns the live player.
func (s *Session) Player() *state.Player { return s.rt.Player }

// Lookup returns the tile and object lookup.
func (s *Session) Lookup() *world.Lookup { return s.lookup }

// Lifecycle returns the pause and game-over controller.
func (s *Session) Lifecycle() *lifecycle.Controller { return s.life }

// Ledger returns the progression ledger.
func (s *Session) Ledger() *progression.Ledger { return s.ledger }

// LevelUp returns the level-up overlay state.
func (s *Session) LevelUp() skills.Overlay { return s.queue.Overlay() }

// Dialog returns the dialog box.
func (s *Session) Dialog() *DialogBox { return s.dialog }

// Pickup returns the pickup overlay state.
func (s *Session) Pickup() PickupOverlay { return s.pickup }

// Celebration returns the celebration overlay state.
func (s *Session) Celebration() Celebration { return s.celebration }

// Messages returns the recent world messages, oldest first.
func (s *Session) Messages() []string { return slices.Clone(s.messages) }

// Transitioning reports whether a room transition is animating.
func (s *Session) Transitioning() bool { return s.movement.Transitioning() }

// EnemiesInRoom returns the live enemies of a room.
func (s *Session) EnemiesInRoom(room int) []*state.Enemy { return s.enemies.EnemiesInRoom(room) }

// Threshold returns the experience needed to leave the player's level.
func (s *Session) Threshold() int { return s.ledger.Threshold(s.rt.Player.Level) }

// Renderer returns the active renderer.
func (s *Session) Renderer() core.Renderer { return s.render }
