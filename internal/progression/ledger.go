// Package progression keeps the player's experience curve and resource
// bookkeeping: lives, keys, damage shield and sword.
package progression

import (
	"math"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
)

// LevelResult reports the outcome of AddExperience.
type LevelResult struct {
	LeveledUp        bool
	LevelsGained     int
	Level            int
	Experience       int
	ExperienceToNext int
	CurrentLives     int
	MaxLives         int
}

// DamageResult reports the outcome of Damage.
type DamageResult struct {
	Requested    int  // Amount before iron-body
	Effective    int  // Amount after iron-body
	Absorbed     int  // Taken by the shield
	LivesLost    int  // Taken from lives
	ShieldBroken bool // Shield reached 0 and the sword was lost
	GodMode      bool
	Lethal       bool
	ReviveArmed  bool // A necromancer revive was armed by the lethal blow
	CurrentLives int
}

// Ledger applies experience and damage to the shared player state.
type Ledger struct {
	player *state.Player
	skills *state.Skills
	clock  core.Clock

	playerCfg config.PlayerConfig
	progCfg   config.ProgressionConfig
	combatCfg config.CombatConfig

	// attemptRevive is asked to arm a revive when lives reach 0
	attemptRevive func() bool
}

// New creates a ledger over the runtime's player and skills.
func New(cfg config.GameConfig, rt *state.Runtime, clock core.Clock) *Ledger {
	if clock == nil {
		clock = core.SystemClock
	}
	return &Ledger{
		player:    rt.Player,
		skills:    rt.Skills,
		clock:     clock,
		playerCfg: cfg.Player,
		progCfg:   cfg.Progression,
		combatCfg: cfg.Combat,
	}
}

// Bind points the ledger at a rebuilt runtime.
func (l *Ledger) Bind(rt *state.Runtime) {
	l.player = rt.Player
	l.skills = rt.Skills
}

// SetReviveHook installs the callback signalled before a lethal blow is committed.
func (l *Ledger) SetReviveHook(fn func() bool) {
	l.attemptRevive = fn
}

// MaxLevel returns the level cap.
func (l *Ledger) MaxLevel() int {
	return l.progCfg.MaxLevel
}

// Threshold returns the experience needed to advance from level.
// floor(base * growth^(level-1)), never below the configured minimum.
func (l *Ledger) Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	t := int(math.Floor(l.progCfg.XPBase * math.Pow(l.progCfg.XPGrowth, float64(level-1))))
	return max(t, l.progCfg.MinThreshold, 1)
}

// AddExperience grants experience and applies every level crossed.
func (l *Ledger) AddExperience(amount int) LevelResult {
	p := l.player

	if amount > 0 && p.Level < l.progCfg.MaxLevel {
		gained := amount
		if l.skills.Has(skills.XPBoost) {
			gained = int(math.Floor(float64(amount) * (1 + l.skills.XPBoost)))
		}
		p.Experience += gained

		levels := 0
		for p.Level < l.progCfg.MaxLevel && p.Experience >= l.Threshold(p.Level) {
			p.Experience -= l.Threshold(p.Level)
			p.Level++
			levels++
			l.RecalculateMaxLives()
			p.CurrentLives = p.MaxLives
		}
		if p.Level >= l.progCfg.MaxLevel {
			p.Experience = 0
		}

		res := l.levelResult()
		res.LeveledUp = levels > 0
		res.LevelsGained = levels
		return res
	}

	if p.Level >= l.progCfg.MaxLevel {
		p.Experience = 0
	}
	return l.levelResult()
}

func (l *Ledger) levelResult() LevelResult {
	p := l.player
	toNext := 0
	if p.Level < l.progCfg.MaxLevel {
		toNext = l.Threshold(p.Level)
	}
	return LevelResult{
		Level:            p.Level,
		Experience:       p.Experience,
		ExperienceToNext: toNext,
		CurrentLives:     p.CurrentLives,
		MaxLives:         p.MaxLives,
	}
}

// RecalculateMaxLives sets max lives from level and bonus hearts and
// clamps current lives into range.
func (l *Ledger) RecalculateMaxLives() {
	p := l.player
	p.MaxLives = l.playerCfg.BaseMaxLives + (p.Level - 1) + l.skills.BonusMaxLives
	p.CurrentLives = core.Clamp(p.CurrentLives, 0, p.MaxLives)
}

// Damage applies an incoming hit.
func (l *Ledger) Damage(amount int) DamageResult {
	p := l.player
	res := DamageResult{Requested: amount}

	amount = max(amount, 0)
	if l.skills.Has(skills.IronBody) {
		amount = max(amount-1, 0)
	}
	res.Effective = amount

	if p.GodMode {
		p.LastDamageReduction = amount
		p.CurrentLives = p.MaxLives
		res.GodMode = true
		res.CurrentLives = p.CurrentLives
		return res
	}

	if p.DamageShield > 0 && amount > 0 {
		res.Absorbed = min(p.DamageShield, amount)
		p.DamageShield -= res.Absorbed
		if p.DamageShield == 0 {
			p.SwordType = ""
			p.DamageShieldMax = 0
			res.ShieldBroken = true
		}
	}

	remainder := amount - res.Absorbed
	lives := max(p.CurrentLives-remainder, 0)
	res.LivesLost = p.CurrentLives - lives

	if lives == 0 && res.LivesLost > 0 {
		res.Lethal = true
		if l.attemptRevive != nil {
			res.ReviveArmed = l.attemptRevive()
		}
	}

	p.CurrentLives = lives
	p.LastDamageReduction = res.LivesLost
	res.CurrentLives = lives
	return res
}

// ConsumeLastDamageReduction returns the last reduction and resets it.
func (l *Ledger) ConsumeLastDamageReduction() int {
	n := l.player.LastDamageReduction
	l.player.LastDamageReduction = 0
	return n
}

// IsOnDamageCooldown is true during the grace window after a room change.
func (l *Ledger) IsOnDamageCooldown() bool {
	last := l.player.LastRoomChangeTime
	if last.IsZero() {
		return false
	}
	return l.clock().Sub(last) < l.combatCfg.RoomChangeCooldown()
}

// Heal restores up to n lives and returns how many were restored.
func (l *Ledger) Heal(n int) int {
	p := l.player
	before := p.CurrentLives
	p.CurrentLives = core.Clamp(p.CurrentLives+max(n, 0), 0, p.MaxLives)
	return p.CurrentLives - before
}

// RestoreLives fills every life.
func (l *Ledger) RestoreLives() {
	l.player.CurrentLives = l.player.MaxLives
}

// AddKey adds a key unless the player already carries the maximum.
func (l *Ledger) AddKey() bool {
	if l.player.Keys >= l.playerCfg.MaxKeys {
		return false
	}
	l.player.Keys++
	return true
}

// UseKey spends a key if one is carried.
func (l *Ledger) UseKey() bool {
	if l.player.Keys <= 0 {
		return false
	}
	l.player.Keys--
	return true
}

// EquipSword equips a sword and refills the shield it grants.
func (l *Ledger) EquipSword(sword string, shield int) {
	p := l.player
	p.SwordType = sword
	p.DamageShieldMax = max(shield, 0)
	p.DamageShield = p.DamageShieldMax
}
