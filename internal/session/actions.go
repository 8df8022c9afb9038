package session

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/movement"
)

// HandleAction routes a UI action to whatever currently owns input.
// Reports whether anything changed.
func (s *Session) HandleAction(a core.Action) bool {
	switch {
	case s.life.GameOver():
		return s.handleGameOver(a)
	case s.pickup.Active:
		if a == core.ActionConfirm || a == core.ActionBack {
			return s.DismissPickup()
		}
		return false
	case s.celebration.Active:
		if a == core.ActionConfirm || a == core.ActionBack {
			return s.DismissCelebration()
		}
		return false
	case s.queue.Active():
		return s.handleLevelUp(a)
	case s.dialog.Active():
		switch a {
		case core.ActionBack:
			s.dialog.CloseDialog()
			return true
		case core.ActionConfirm, core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
			s.dialog.NextPage()
			return true
		}
		return false
	}

	switch a {
	case core.ActionPause:
		s.TogglePause()
		return true
	case core.ActionRestart:
		s.ResetGame()
		return true
	}

	if dir := a.Direction(); dir != core.DirNone {
		dx, dy := dir.Delta()
		return s.Move(dx, dy).Outcome != movement.OutcomeRejected
	}
	return false
}

func (s *Session) handleGameOver(a core.Action) bool {
	switch a {
	case core.ActionRevive:
		return s.Revive()
	case core.ActionRestart, core.ActionConfirm:
		if !s.life.CanResetAfterGameOver() {
			return false
		}
		s.ResetGame()
		return true
	}
	return false
}

func (s *Session) handleLevelUp(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionLeft:
		s.queue.MoveCursor(-1)
		return true
	case core.ActionDown, core.ActionRight:
		s.queue.MoveCursor(1)
		return true
	case core.ActionConfirm:
		_, ok := s.ChooseSkill(nil)
		return ok
	}
	return false
}

// TogglePause holds or releases the manual pause.
func (s *Session) TogglePause() {
	if s.life.Holds(lifecycle.ReasonManual) {
		s.life.Release(lifecycle.ReasonManual)
		return
	}
	s.life.Pause(lifecycle.ReasonManual)
}
