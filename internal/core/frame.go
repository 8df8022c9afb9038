package core

import "strings"

// Cell is a single glyph of a frame with its color.
type Cell struct {
	Rune  rune
	Color Color
}

// Frame is a 2D glyph buffer holding one rendered gameplay picture.
// Renderers draw rooms into frames; transitions interpolate between two of them.
type Frame struct {
	width  int
	height int
	cells  [][]Cell
}

// NewFrame creates a blank frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	f := &Frame{width: width, height: height}
	f.cells = make([][]Cell, height)
	for y := range f.cells {
		f.cells[y] = make([]Cell, width)
	}
	f.Clear()
	return f
}

// Width returns the frame width in cells.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in cells.
func (f *Frame) Height() int { return f.height }

// Clear fills the frame with blank default-colored cells.
func (f *Frame) Clear() {
	for y := range f.cells {
		for x := range f.cells[y] {
			f.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a glyph at the given position.
// Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (f *Frame) Get(x, y int) Cell {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Cell{Rune: ' '}
	}
	return f.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipping at the edge.
func (f *Frame) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		f.Set(x+i, y, r, c)
		i++
	}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.width, f.height)
	for y := range f.cells {
		copy(out.cells[y], f.cells[y])
	}
	return out
}

// Blend returns f scrolled left by offset columns with next filling the gap,
// which is how horizontal room slides are drawn. Vertical slides use BlendRows.
func (f *Frame) Blend(next *Frame, offset int) *Frame {
	out := NewFrame(f.width, f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			src := x + offset
			switch {
			case src < f.width:
				out.cells[y][x] = f.Get(src, y)
			default:
				out.cells[y][x] = next.Get(src-f.width, y)
			}
		}
	}
	return out
}

// BlendRows is the vertical counterpart of Blend.
func (f *Frame) BlendRows(next *Frame, offset int) *Frame {
	out := NewFrame(f.width, f.height)
	for y := 0; y < f.height; y++ {
		src := y + offset
		for x := 0; x < f.width; x++ {
			if src < f.height {
				out.cells[y][x] = f.Get(x, src)
			} else {
				out.cells[y][x] = next.Get(x, src-f.height)
			}
		}
	}
	return out
}

// String converts the frame to plain text, one row per line.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height)

	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < f.width; x++ {
			sb.WriteRune(f.cells[y][x].Rune)
		}
	}
	return sb.String()
}
