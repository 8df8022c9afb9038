package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilequest/internal/core"
)

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keyMsg(tea.KeyUp), core.ActionUp},
		{runeMsg('s'), core.ActionDown},
		{runeMsg('a'), core.ActionLeft},
		{keyMsg(tea.KeyRight), core.ActionRight},
		{keyMsg(tea.KeyEnter), core.ActionConfirm},
		{keyMsg(tea.KeyEsc), core.ActionBack},
		{runeMsg('p'), core.ActionPause},
		{runeMsg('r'), core.ActionRestart},
		{runeMsg('v'), core.ActionRevive},
		{runeMsg('q'), core.ActionQuit},
		{keyMsg(tea.KeyCtrlC), core.ActionQuit},
		{runeMsg('?'), core.ActionNone},
		{runeMsg('z'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeMsg('k'), MenuActionUp},
		{keyMsg(tea.KeyDown), MenuActionDown},
		{keyMsg(tea.KeyEnter), MenuActionSelect},
		{keyMsg(tea.KeyTab), MenuActionRuns},
		{keyMsg(tea.KeyEsc), MenuActionBack},
		{runeMsg('q'), MenuActionQuit},
		{runeMsg('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
