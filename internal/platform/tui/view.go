package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	roomStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(frameWidth + 12)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// skillText holds the English names and descriptions of the skill keys.
var skillText = map[string]string{
	"skill.iron-body.name":     "Iron Body",
	"skill.iron-body.desc":     "Every hit deals one less damage.",
	"skill.xp-boost.name":      "Scholar",
	"skill.xp-boost.desc":      "Gain half again as much experience.",
	"skill.necromancer.name":   "Necromancer",
	"skill.necromancer.desc":   "Rise once from death.",
	"skill.stealth.name":       "Stealth",
	"skill.stealth.desc":       "Assassinate weak enemies before they strike.",
	"skill.keyless-doors.name": "Lockpick",
	"skill.keyless-doors.desc": "Open locked doors without a key.",
	"skill.water-walker.name":  "Water Walker",
	"skill.water-walker.desc":  "Walk across water.",
	"skill.lava-walker.name":   "Lava Walker",
	"skill.lava-walker.desc":   "Walk across lava.",
	"skill.extra-heart.name":   "Extra Heart",
	"skill.extra-heart.desc":   "One more maximum life.",
}

func localize(k string) string {
	if s, ok := skillText[k]; ok {
		return s
	}
	return k
}

// View renders the room, HUD, overlays and help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.sess
	now := m.clock()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n")
	b.WriteString(roomStyle.Render(RenderFrame(m.renderer.Compose(now))))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(hud(s)))
	b.WriteString("\n")

	if o := overlay(s); o != "" {
		b.WriteString(overlayStyle.Render(o))
		b.WriteString("\n")
	}
	for _, msg := range s.Messages() {
		b.WriteString(dimStyle.Render("· " + msg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	def := m.sess.Definition()
	p := m.sess.Player()
	name := fmt.Sprintf("Room %d", p.Room+1)
	if room := def.Room(p.Room); room != nil && room.Name != "" {
		name = room.Name
	}
	return fmt.Sprintf("%s · %s", def.Title, name)
}

func hud(s *session.Session) string {
	p := s.Player()
	parts := []string{
		fmt.Sprintf("Lv %d", p.Level),
		fmt.Sprintf("XP %d/%d", p.Experience, s.Threshold()),
		fmt.Sprintf("♥ %d/%d", p.CurrentLives, p.MaxLives),
		fmt.Sprintf("Keys %d", p.Keys),
	}
	if p.DamageShieldMax > 0 {
		parts = append(parts, fmt.Sprintf("Shield %d/%d", p.DamageShield, p.DamageShieldMax))
	}
	if p.GodMode {
		parts = append(parts, "GOD")
	}
	return strings.Join(parts, "  ")
}

// overlay returns the text of the topmost overlay, or "".
func overlay(s *session.Session) string {
	life := s.Lifecycle()
	switch {
	case life.GameOver():
		lines := []string{alertStyle.Render("GAME OVER"), life.GameOverReason()}
		if s.CanRevive() {
			lines = append(lines, "v: rise again")
		}
		if life.CanResetAfterGameOver() {
			lines = append(lines, "r: restart  esc: leave")
		}
		return strings.Join(lines, "\n")

	case s.Pickup().Active:
		p := s.Pickup()
		return fmt.Sprintf("You found %s!\n%s", p.Name, dimStyle.Render("enter: continue"))

	case s.Celebration().Active:
		return fmt.Sprintf("Level %d!", s.Celebration().Level)

	case s.LevelUp().Active:
		lu := s.LevelUp()
		lines := []string{fmt.Sprintf("Level %d: choose a skill", lu.Level)}
		for i, c := range lu.Choices {
			line := fmt.Sprintf("%s: %s", localize(c.NameKey), localize(c.DescKey))
			if i == lu.Cursor {
				line = cursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")

	case s.Dialog().Active():
		page, n, total := s.Dialog().Page()
		if meta := s.Dialog().Meta(); meta.Speaker != "" {
			page = meta.Speaker + ": " + page
		}
		return fmt.Sprintf("%s\n%s", page, dimStyle.Render(fmt.Sprintf("%d/%d  enter: next  esc: close", n, total)))

	case life.Holds(lifecycle.ReasonManual):
		return "PAUSED"
	}
	return ""
}
