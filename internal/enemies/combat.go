package enemies

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Outcome classifies a collision.
type Outcome string

const (
	OutcomeAssassinated Outcome = "assassinated"
	OutcomeMiss         Outcome = "miss"
	OutcomeCooldown     Outcome = "cooldown" // Hit landed during the room-change grace
	OutcomeHit          Outcome = "hit"
	OutcomeLethal       Outcome = "lethal"
)

// CollisionResult reports how a collision was resolved.
type CollisionResult struct {
	EnemyID         string
	EnemyType       string
	Outcome         Outcome
	Damage          progression.DamageResult
	Level           progression.LevelResult
	DefeatVariable  string // Variable set by the defeat, if any
	VariableChanged bool
	OpenedDoor      bool
}

// Defeated reports whether the enemy was removed.
func (r CollisionResult) Defeated() bool {
	return r.Outcome != OutcomeLethal
}

// enemyType returns the catalog entry of en, with a minimal stand-in for
// unknown types.
func (e *Engine) enemyType(en *state.Enemy) world.EnemyType {
	if t, ok := e.catalog.Enemy(en.Type); ok {
		return t
	}
	return world.EnemyType{ID: en.Type, Name: en.Type, Damage: 1, XP: 1}
}

// missChance returns the chance a standard attack misses.
func (e *Engine) missChance(t world.EnemyType) float64 {
	if t.MissChance != nil {
		return *t.MissChance
	}
	if e.diff != nil {
		return e.diff.MissChance(e.combatCfg.MissChance, e.rt.Player.Level)
	}
	return e.combatCfg.MissChance
}

// ResolveCollision resolves the player and en sharing a cell.
// Any outcome but a lethal hit defeats the enemy.
func (e *Engine) ResolveCollision(en *state.Enemy) CollisionResult {
	t := e.enemyType(en)
	res := CollisionResult{EnemyID: en.ID, EnemyType: t.ID}

	_, span := e.tracer.Start(context.Background(), "combat.collision")
	span.SetAttributes(
		attribute.String("enemy.id", en.ID),
		attribute.String("enemy.type", t.ID),
		attribute.Int("enemy.damage", t.Damage),
		attribute.Int("player.lives", e.rt.Player.CurrentLives),
	)
	defer func() {
		span.SetAttributes(
			attribute.String("outcome", string(res.Outcome)),
			attribute.Int("lives_lost", res.Damage.LivesLost),
		)
		span.End()
	}()

	p := e.rt.Player
	at := core.IndicatorOptions{Room: p.Room, X: p.X, Y: p.Y}

	stealthy := e.rt.Skills.Has(skills.Stealth) && t.Damage <= e.combatCfg.StealthMaxDamage
	if stealthy && e.rng.Float64() >= e.combatCfg.StealthMissChance {
		res.Outcome = OutcomeAssassinated
		at.Kind = core.IndicatorDefeat
		e.render.ShowCombatIndicator("ASSASSINATED", at)
		e.defeat(en, t, &res)
		return res
	}

	switch {
	case e.rng.Float64() < e.missChance(t):
		res.Outcome = OutcomeMiss
		at.Kind = core.IndicatorMiss
		e.render.ShowCombatIndicator("MISS", at)

	case e.ledger.IsOnDamageCooldown():
		res.Outcome = OutcomeCooldown
		at.Kind = core.IndicatorCooldown
		e.render.ShowCombatIndicator("SAFE", at)

	default:
		res.Damage = e.ledger.Damage(t.Damage)
		e.damageFeedback(res.Damage, at)

		if res.Damage.Lethal {
			res.Outcome = OutcomeLethal
			e.render.FlashScreen(core.FlashOptions{Color: core.ColorRed, Intensity: 1})
			e.logger.Debug("player defeated", "enemy", en.ID, "type", t.ID)
			if e.hooks.PlayerDefeated != nil {
				e.hooks.PlayerDefeated(en)
			}
			return res
		}
		res.Outcome = OutcomeHit
	}

	e.defeat(en, t, &res)
	return res
}

func (e *Engine) damageFeedback(d progression.DamageResult, at core.IndicatorOptions) {
	reduction := e.ledger.ConsumeLastDamageReduction()

	switch {
	case d.GodMode:
		at.Kind = core.IndicatorInfo
		e.render.ShowCombatIndicator(fmt.Sprintf("GOD -%d", reduction), at)
	case d.ShieldBroken:
		at.Kind = core.IndicatorShield
		e.render.ShowCombatIndicator("SHIELD BROKEN", at)
	case d.Absorbed > 0:
		at.Kind = core.IndicatorShield
		e.render.ShowCombatIndicator(fmt.Sprintf("SHIELD -%d", d.Absorbed), at)
	}

	if reduction > 0 && !d.GodMode {
		at.Kind = core.IndicatorDamage
		e.render.ShowCombatIndicator(fmt.Sprintf("-%d", reduction), at)
		e.render.FlashScreen(core.FlashOptions{Color: core.ColorRed, Intensity: 0.5})
	}
	if d.ReviveArmed {
		at.Kind = core.IndicatorRevive
		e.render.ShowCombatIndicator("NECROMANCER READY", at)
	}
}

// defeat removes en, grants experience, chains level-ups and triggers its
// defeat variable.
func (e *Engine) defeat(en *state.Enemy, t world.EnemyType, res *CollisionResult) {
	e.RemoveEnemy(en.ID)

	res.Level = e.ledger.AddExperience(t.XP)
	if res.Level.LeveledUp {
		e.queue.QueueLevelUps(res.Level.LevelsGained, res.Level.Level)
		if e.hooks.LevelUp != nil {
			e.hooks.LevelUp(res.Level)
		}
	}

	if e.hooks.EnemyDefeated != nil {
		defer func() { e.hooks.EnemyDefeated(en, *res) }()
	}

	id := ResolveDefeatVariable(en, t)
	if id == "" {
		return
	}
	norm, ok := e.objects.NormalizeVariableID(id)
	if !ok {
		e.logger.Debug("unknown defeat variable", "enemy", en.ID, "variable", id)
		return
	}

	res.DefeatVariable = norm
	res.VariableChanged, res.OpenedDoor = e.objects.SetVariableValue(norm, true, t.PersistDefeat)
	if (res.VariableChanged || e.objects.IsVariableOn(norm)) && e.hooks.Message != nil {
		switch {
		case res.OpenedDoor:
			e.hooks.Message("Somewhere, a door grinds open.")
		case res.VariableChanged:
			e.hooks.Message("Something stirs in the world.")
		default:
			e.hooks.Message("The way is already open.")
		}
	}
}

// ResolveDefeatVariable picks the variable a defeat sets: the instance
// override, then the type default, then none.
func ResolveDefeatVariable(en *state.Enemy, t world.EnemyType) string {
	if en.DefeatVariableID != nil && *en.DefeatVariableID != "" {
		return *en.DefeatVariableID
	}
	return t.DefeatVariableID
}
