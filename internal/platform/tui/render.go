package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/world"
)

// cellWidth is how many terminal columns one room cell takes.
const cellWidth = 2

// Frame dimensions of one room.
const (
	frameWidth  = world.RoomSize * cellWidth
	frameHeight = world.RoomSize
)

// Glyphs for things that have no catalog entry.
const (
	glyphPlayer   = '@'
	glyphNPC      = '&'
	glyphWall     = '#'
	glyphOpenDoor = '\''
	glyphEmpty    = ' '
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderFrame converts a frame to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderFrame(f *core.Frame) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(f.Width()*f.Height()*2 + f.Height())

	for y := range f.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < f.Width() {
			cell := f.Get(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < f.Width() {
				cell = f.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// drawRoom draws the player's current room into f.
func drawRoom(f *core.Frame, s *session.Session) {
	f.Clear()
	def := s.Definition()
	p := s.Player()
	room := def.Room(p.Room)
	if room == nil {
		return
	}
	lookup := s.Lookup()
	cat := lookup.Catalog()

	for y := 0; y < world.RoomSize; y++ {
		for x := 0; x < world.RoomSize; x++ {
			glyph, color := glyphEmpty, core.ColorDefault
			if room.Walls[y][x] {
				glyph, color = glyphWall, core.ColorGray
			} else if t, ok := world.ResolveTile(lookup, p.Room, x, y); ok {
				glyph, color = t.Glyph, t.Color
			}

			if obj, ok := lookup.ObjectAt(p.Room, x, y); ok {
				glyph, color = obj.TypeInfo.Glyph, obj.TypeInfo.Color
				if (obj.IsLockedDoor || obj.IsVariableDoor) && obj.Opened {
					glyph = glyphOpenDoor
				}
			}
			if _, ok := lookup.NPCAt(p.Room, x, y); ok {
				glyph, color = glyphNPC, core.ColorCyan
			}
			f.Set(x*cellWidth, y, glyph, color)
		}
	}

	for _, en := range s.EnemiesInRoom(p.Room) {
		glyph, color := 'e', core.ColorRed
		if t, ok := cat.Enemy(en.Type); ok {
			glyph, color = t.Glyph, t.Color
		}
		if en.PlayerInVision {
			color = core.ColorBrightRed
		}
		f.Set(en.X*cellWidth, en.Y, glyph, color)
	}

	f.Set(p.X*cellWidth, p.Y, glyphPlayer, core.ColorBrightYellow)
}
