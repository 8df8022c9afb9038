// Package skills owns the skill catalog, the pending level-up queue and the
// level-up choice overlay.
package skills

import (
	"slices"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/state"
)

// maxChoices is how many skills a level-up prompt offers.
const maxChoices = 2

// Choice is one option shown on the level-up overlay.
type Choice struct {
	ID      string
	NameKey string
	DescKey string
}

// Overlay is the level-up selection state.
type Overlay struct {
	Active  bool
	Level   int
	Choices []Choice
	Cursor  int
}

// Queue grants skills through level-up prompts.
type Queue struct {
	skills  *state.Skills
	player  *state.Player
	xpBoost float64
	overlay Overlay

	onGranted func(id string)
}

// New creates a queue over the runtime's skills.
func New(cfg config.ProgressionConfig, rt *state.Runtime) *Queue {
	return &Queue{
		skills:  rt.Skills,
		player:  rt.Player,
		xpBoost: cfg.XPBoost,
	}
}

// Bind points the queue at a rebuilt runtime and closes the overlay.
func (q *Queue) Bind(rt *state.Runtime) {
	q.skills = rt.Skills
	q.player = rt.Player
	q.overlay = Overlay{}
}

// SetGrantHook installs a callback run after a skill is granted.
func (q *Queue) SetGrantHook(fn func(id string)) {
	q.onGranted = fn
}

// QueueLevelUps queues a prompt for every even level among the last count
// levels ending at latestLevel (the player's level when latestLevel <= 0).
// Returns the number of prompts queued.
func (q *Queue) QueueLevelUps(count, latestLevel int) int {
	if count <= 0 {
		return 0
	}
	if latestLevel <= 0 {
		latestLevel = q.player.Level
	}

	queued := 0
	for level := latestLevel - count + 1; level <= latestLevel; level++ {
		if level < 2 || level%2 != 0 {
			continue
		}
		if slices.Contains(q.skills.PendingLevelQueue, level) {
			continue
		}
		q.skills.PendingLevelQueue = append(q.skills.PendingLevelQueue, level)
		queued++
	}
	return queued
}

// PendingSelections returns the number of prompts still queued.
func (q *Queue) PendingSelections() int {
	return q.skills.PendingSelections()
}

// StartLevelSelection pops queued levels until one yields choices and opens
// the overlay. If no queued level has anything left, every unowned skill
// becomes eligible. Returns whether the overlay is active.
func (q *Queue) StartLevelSelection() bool {
	if q.overlay.Active {
		return true
	}

	attempts := len(q.skills.PendingLevelQueue)
	lastLevel := 0
	for i := 0; i < attempts && len(q.skills.PendingLevelQueue) > 0; i++ {
		level := q.skills.PendingLevelQueue[0]
		q.skills.PendingLevelQueue = q.skills.PendingLevelQueue[1:]
		lastLevel = level

		if choices := q.pickChoices(level); len(choices) > 0 {
			q.open(level, choices)
			return true
		}
	}

	if lastLevel == 0 {
		return false
	}
	if choices := q.fallbackChoices(); len(choices) > 0 {
		q.open(lastLevel, choices)
		return true
	}
	return false
}

func (q *Queue) open(level int, choices []Choice) {
	q.overlay = Overlay{
		Active:  true,
		Level:   level,
		Choices: choices,
	}
}

// pickChoices builds the candidate pool for level: new unlocks interleaved
// with carryover from the last prompt, minus owned skills.
func (q *Queue) pickChoices(level int) []Choice {
	unlocks := q.unowned(UnlocksAt(level))
	carry := q.unowned(q.skills.Carryover)

	var pool []string
	for i := 0; i < len(unlocks) || i < len(carry); i++ {
		if i < len(unlocks) && !slices.Contains(pool, unlocks[i]) {
			pool = append(pool, unlocks[i])
		}
		if i < len(carry) && !slices.Contains(pool, carry[i]) {
			pool = append(pool, carry[i])
		}
	}

	q.skills.CurrentChoicePool = pool
	return choicesFor(pool)
}

func (q *Queue) fallbackChoices() []Choice {
	var pool []string
	for _, s := range Catalog {
		if !q.skills.Has(s.ID) {
			pool = append(pool, s.ID)
		}
	}
	q.skills.CurrentChoicePool = pool
	return choicesFor(pool)
}

func (q *Queue) unowned(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !q.skills.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func choicesFor(pool []string) []Choice {
	n := min(len(pool), maxChoices)
	choices := make([]Choice, 0, n)
	for _, id := range pool[:n] {
		s, _ := Lookup(id)
		choices = append(choices, Choice{ID: id, NameKey: s.NameKey, DescKey: s.DescKey})
	}
	return choices
}

// Overlay returns a copy of the overlay state.
func (q *Queue) Overlay() Overlay {
	o := q.overlay
	o.Choices = slices.Clone(q.overlay.Choices)
	return o
}

// Active reports whether the overlay is open.
func (q *Queue) Active() bool {
	return q.overlay.Active
}

// MoveCursor moves the selection, wrapping around. No-op with one choice or fewer.
func (q *Queue) MoveCursor(delta int) {
	n := len(q.overlay.Choices)
	if !q.overlay.Active || n <= 1 {
		return
	}
	q.overlay.Cursor = ((q.overlay.Cursor+delta)%n + n) % n
}

// CompleteSelection grants the choice at index (the cursor when nil), keeps
// the rest of the pool as carryover and closes the overlay.
func (q *Queue) CompleteSelection(index *int) (string, bool) {
	if !q.overlay.Active {
		return "", false
	}
	i := q.overlay.Cursor
	if index != nil {
		i = *index
	}
	if i < 0 || i >= len(q.overlay.Choices) {
		return "", false
	}

	id := q.overlay.Choices[i].ID
	q.Grant(id)

	q.skills.Carryover = slices.DeleteFunc(slices.Clone(q.skills.CurrentChoicePool), func(s string) bool {
		return s == id
	})
	q.skills.CurrentChoicePool = nil
	q.overlay = Overlay{}
	return id, true
}

// Grant adds a skill and applies its immediate effect.
func (q *Queue) Grant(id string) {
	if q.skills.Owned == nil {
		q.skills.Owned = make(map[string]bool)
	}
	q.skills.Owned[id] = true

	switch id {
	case XPBoost:
		q.skills.XPBoost = q.xpBoost
	case Necromancer:
		// One charge for the whole game
		if !q.skills.NecromancerGranted {
			q.skills.NecromancerGranted = true
			q.skills.NecromancerCharges = 1
		}
	case ExtraHeart:
		q.skills.BonusMaxLives++
	}

	if q.onGranted != nil {
		q.onGranted(id)
	}
}

// AttemptRevive arms a manual revive if the necromancer skill has a charge.
// It does not revive by itself.
func (q *Queue) AttemptRevive() bool {
	if !q.skills.Has(Necromancer) || q.skills.NecromancerCharges <= 0 {
		return false
	}
	q.skills.PendingManualRevive = true
	return true
}

// ReviveArmed reports whether a manual revive is armed and chargeable.
func (q *Queue) ReviveArmed() bool {
	return q.skills.PendingManualRevive && q.skills.NecromancerCharges > 0
}

// ConsumeManualRevive spends the armed revive. Only succeeds once per arming.
func (q *Queue) ConsumeManualRevive() bool {
	if !q.skills.PendingManualRevive {
		return false
	}
	q.skills.PendingManualRevive = false
	q.skills.NecromancerCharges = max(q.skills.NecromancerCharges-1, 0)
	return true
}
