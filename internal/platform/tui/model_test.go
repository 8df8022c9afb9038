package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/storage"
	"github.com/vovakirdan/tilequest/internal/world"
)

func ptr[T any](v T) *T { return &v }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newCryptModel(t *testing.T, store *storage.Store) (*Model, *clock) {
	t.Helper()
	def, cat, err := registry.Create("crypt")
	if err != nil {
		t.Fatalf("create crypt: %v", err)
	}
	c := &clock{now: time.Unix(10_000, 0)}
	m, err := NewModel(ModelOptions{
		Session: session.Options{
			Config:     config.DefaultGameConfig(),
			Catalog:    cat,
			Definition: def,
			Clock:      c.Now,
			Seed:       1,
		},
		Store: store,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m, c
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeMsg(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestModelMovesPlayer(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	m.Update(keyMsg(tea.KeyRight))
	if p := m.Session().Player(); p.X != 2 || p.Y != 1 {
		t.Errorf("player at (%d,%d), want (2,1)", p.X, p.Y)
	}
	if got := m.renderer.Compose(time.Unix(10_000, 0)).Get(2*cellWidth, 1).Rune; got != glyphPlayer {
		t.Errorf("player cell = %q", got)
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init did not schedule a tick")
	}
	gen := m.tick.Generation()

	if _, cmd := m.Update(TickMsg{Gen: gen + 1, Time: time.Unix(10_001, 0)}); cmd != nil {
		t.Error("stale tick rescheduled")
	}
	if _, cmd := m.Update(TickMsg{Gen: gen, Time: time.Unix(10_001, 0)}); cmd == nil {
		t.Error("current tick not rescheduled")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	m.Init()
	_, cmd := m.Update(runeMsg('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q did not quit")
	}
	if m.tick.Active() {
		t.Error("tick loop still active after quit")
	}
	if m.View() != "" {
		t.Error("view not blank after quit")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	m.Update(runeMsg('?'))
	if !m.help.ShowAll {
		t.Error("help not expanded")
	}
	m.Update(runeMsg('?'))
	if m.help.ShowAll {
		t.Error("help not collapsed")
	}
}

func TestModelSavesRunOnDefeat(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cat := world.NewCatalog()
	cat.Enemies["brute"] = world.EnemyType{ID: "brute", Name: "Brute", Damage: 9, XP: 1, MissChance: ptr(0.0)}
	def := &world.Definition{
		ID:      "arena",
		Title:   "Arena",
		Cols:    1,
		Rooms:   make([]world.Room, 1),
		Start:   world.Spawn{Room: 0, X: 1, Y: 1},
		Enemies: []world.EnemyPlacement{{ID: "b1", Type: "brute", Room: 0, X: 2, Y: 1}},
	}
	m, err := NewModel(ModelOptions{
		Session: session.Options{Config: config.DefaultGameConfig(), Catalog: cat, Definition: def, Seed: 1},
		Store:   store,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	m.Update(keyMsg(tea.KeyRight))
	if !m.Session().Lifecycle().GameOver() {
		t.Fatal("player survived the brute")
	}
	m.Update(keyMsg(tea.KeyRight))

	runs, err := store.RecentRuns("arena", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Cause != "slain by Brute" {
		t.Fatalf("runs = %+v", runs)
	}

	m.Update(keyMsg(tea.KeyEsc))
	if !m.BackToMenu() {
		t.Error("esc after game over did not leave the world")
	}
}

func TestModelWorldReload(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	old := m.Session()

	m.Update(WorldReloadedMsg{Err: errors.New("bad yaml")})
	if m.Session() != old || m.status == "" {
		t.Fatalf("failed reload replaced the session (status %q)", m.status)
	}

	def, cat, err := registry.Create("crypt")
	if err != nil {
		t.Fatal(err)
	}
	def.Title = "Crypt Revisited"
	m.Update(WorldReloadedMsg{Def: def, Cat: cat})
	if m.Session() == old {
		t.Fatal("session not rebuilt")
	}
	if m.Session().Definition().Title != "Crypt Revisited" {
		t.Errorf("title = %q", m.Session().Definition().Title)
	}
	if m.renderer.sess != m.Session() {
		t.Error("renderer still bound to the old session")
	}
}

func TestModelViewShowsHUD(t *testing.T) {
	m, _ := newCryptModel(t, nil)
	view := m.View()
	for _, want := range []string{"The Sunken Crypt", "Antechamber", "Lv 1", "Keys 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestModelRuntimeConfig(t *testing.T) {
	def, cat, err := registry.Create("crypt")
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(ModelOptions{
		Session: session.Options{Config: config.DefaultGameConfig(), Catalog: cat, Definition: def},
		Runtime: core.RuntimeConfig{TickInterval: 250 * time.Millisecond, FrameRate: 10, Seed: 7, EditorMode: true},
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m.frameRate != 10 || m.opts.Seed != 7 || !m.opts.EditorMode {
		t.Errorf("runtime not applied: rate %d seed %d editor %v", m.frameRate, m.opts.Seed, m.opts.EditorMode)
	}
	if got := m.Session().Config().Enemies.TickIntervalMS; got != 250 {
		t.Errorf("tick interval = %dms, want 250", got)
	}
}
