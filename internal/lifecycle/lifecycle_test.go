package lifecycle

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func TestPauseResumeReasons(t *testing.T) {
	c := New(0, nil)

	c.Pause("a")
	c.Pause("b")
	c.Resume("a")
	if c.Playing() {
		t.Error("playing while b is still held")
	}
	c.Resume("b")
	if !c.Playing() {
		t.Error("not playing after every reason is resumed")
	}
}

func TestPauseIsCounted(t *testing.T) {
	c := New(0, nil)

	c.Pause(ReasonDialog)
	c.Pause(ReasonDialog)
	c.Resume(ReasonDialog)
	if c.Playing() {
		t.Error("double pause unlocked by a single resume")
	}
	c.Resume(ReasonDialog)
	if !c.Playing() {
		t.Error("double resume did not unlock")
	}

	// Resuming an absent reason is a no-op
	c.Resume(ReasonDialog)
	c.Resume("never-held")
	if !c.Playing() {
		t.Error("stray resume changed state")
	}
}

func TestResumeAllAndRelease(t *testing.T) {
	c := New(0, nil)
	c.Pause("a")
	c.Pause("a")
	c.Pause("b")

	c.Release("a")
	if c.Holds("a") || !c.Holds("b") {
		t.Error("Release dropped the wrong holds")
	}

	c.Pause("a")
	c.Resume("")
	if !c.Playing() {
		t.Error("empty resume did not clear every reason")
	}
}

func TestEmptyPauseIsManual(t *testing.T) {
	c := New(0, nil)
	c.Pause("")
	if !c.Holds(ReasonManual) {
		t.Error("empty pause not recorded as manual")
	}
}

func TestGameOverCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(2*time.Second, clock.Now)

	if c.CanResetAfterGameOver() {
		t.Error("reset allowed while not game over")
	}

	c.SetGameOver(true, "slain")
	if c.Playing() || !c.GameOver() || c.GameOverReason() != "slain" {
		t.Fatal("game over did not pause")
	}
	if c.CanResetAfterGameOver() {
		t.Error("reset allowed during cooldown")
	}

	clock.now = clock.now.Add(1999 * time.Millisecond)
	if c.CanResetAfterGameOver() {
		t.Error("reset allowed before cooldown elapsed")
	}
	clock.now = clock.now.Add(time.Millisecond)
	if !c.CanResetAfterGameOver() {
		t.Error("reset refused after cooldown elapsed")
	}

	c.SetGameOver(false, "")
	if !c.Playing() {
		t.Error("leaving game over kept the pause")
	}
}

func TestClearGameOverCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(0, clock.Now)

	c.SetGameOver(true, "")
	c.SetGameOver(true, "") // repeated entry holds the reason once
	c.ClearGameOverCooldown()
	if !c.CanResetAfterGameOver() {
		t.Error("cleared cooldown still blocks reset")
	}
	c.SetGameOver(false, "")
	if !c.Playing() {
		t.Error("repeated game over leaked a hold")
	}
}

func TestHandle(t *testing.T) {
	var h Handle
	h.Stop() // safe while idle

	g1 := h.Start()
	if !h.Valid(g1) || !h.Active() {
		t.Fatal("fresh generation invalid")
	}

	g2 := h.Start()
	if h.Valid(g1) {
		t.Error("restart left the stale generation valid")
	}
	if !h.Valid(g2) {
		t.Error("new generation invalid")
	}

	h.Stop()
	h.Stop()
	if h.Valid(g2) || h.Active() {
		t.Error("stopped handle still valid")
	}
}
