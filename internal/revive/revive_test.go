package revive

import (
	"testing"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/progression"
	"github.com/vovakirdan/tilequest/internal/skills"
	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

type fixture struct {
	def    *world.Definition
	rt     *state.Runtime
	queue  *skills.Queue
	ledger *progression.Ledger
	life   *lifecycle.Controller
	sys    *System
}

func newFixture() *fixture {
	cfg := config.DefaultGameConfig()
	def := &world.Definition{
		Cols:      1,
		Rooms:     make([]world.Room, 1),
		Variables: []world.VariableDef{{ID: "lever"}},
	}
	rt := state.NewRuntime(def, cfg.Player.BaseMaxLives)
	f := &fixture{
		def:    def,
		rt:     rt,
		queue:  skills.New(cfg.Progression, rt),
		ledger: progression.New(cfg, rt, nil),
		life:   lifecycle.New(0, nil),
	}
	f.ledger.SetReviveHook(f.queue.AttemptRevive)
	f.sys = New(def, rt, f.queue, f.ledger, f.life, nil)
	return f
}

func TestPrepareRequiresArmedRevive(t *testing.T) {
	f := newFixture()
	if f.sys.Prepare() {
		t.Error("snapshot captured without an armed revive")
	}
	if f.sys.Ready() {
		t.Error("Ready() without snapshot")
	}
}

func TestReviveRestoresInPlace(t *testing.T) {
	f := newFixture()
	f.queue.Grant(skills.Necromancer)

	res := f.ledger.Damage(10)
	if !res.ReviveArmed {
		t.Fatal("lethal blow did not arm revive")
	}
	f.life.SetGameOver(true, "slain")
	if !f.sys.Prepare() || !f.sys.Ready() {
		t.Fatal("snapshot not ready")
	}

	// Mutate after capture
	player := f.rt.Player
	def := f.def
	f.rt.Player.Keys = 5
	f.def.Variables[0].Value = true

	rewired := false
	f.sys.SetRewire(func() { rewired = true })

	if !f.sys.Revive() {
		t.Fatal("Revive() failed")
	}
	if f.rt.Player != player || f.def != def {
		t.Error("revive replaced live pointers")
	}
	if f.rt.Player.CurrentLives != f.rt.Player.MaxLives {
		t.Errorf("lives = %d, want %d", f.rt.Player.CurrentLives, f.rt.Player.MaxLives)
	}
	if f.rt.Player.Keys != 0 || f.def.Variables[0].Value {
		t.Error("post-capture mutations survived the restore")
	}
	if !rewired {
		t.Error("rewire callback not invoked")
	}
	if f.life.GameOver() || !f.life.Playing() {
		t.Error("game over not cleared")
	}
	if f.sys.Ready() {
		t.Error("Ready() still true after revive")
	}
	if f.rt.Skills.NecromancerCharges != 0 || f.rt.Skills.PendingManualRevive {
		t.Errorf("charge not spent: %+v", f.rt.Skills)
	}
	if f.sys.Revive() {
		t.Error("second revive succeeded")
	}
}

func TestPrepareCloneFailure(t *testing.T) {
	f := newFixture()
	f.queue.Grant(skills.Necromancer)
	f.queue.AttemptRevive()

	loop := map[string]any{}
	loop["self"] = loop
	f.rt.Props = map[string]any{"loop": loop}

	if f.sys.Prepare() {
		t.Error("cyclic runtime snapshotted")
	}
	if f.sys.Ready() {
		t.Error("Ready() after failed snapshot")
	}
}

func TestDiscard(t *testing.T) {
	f := newFixture()
	f.queue.Grant(skills.Necromancer)
	f.queue.AttemptRevive()
	f.sys.Prepare()

	f.sys.Discard()
	if f.sys.Ready() || f.sys.Revive() {
		t.Error("discarded snapshot still usable")
	}
}
