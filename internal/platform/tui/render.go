package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/star-collider/internal/core"
)

// halfBlock shows the top pixel as foreground and the bottom as background.
const halfBlock = '▀'

type cellStyle struct {
	fg, bg core.Color
}

// Painter turns a Screen into styled terminal output. Each SSH session gets
// its own lipgloss renderer so colors match the remote terminal.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[cellStyle]lipgloss.Style
}

// NewPainter creates a painter for the given lipgloss renderer, or the
// default renderer if nil.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r, styles: make(map[cellStyle]lipgloss.Style)}
}

func (p *Painter) style(k cellStyle) lipgloss.Style {
	if s, ok := p.styles[k]; ok {
		return s
	}
	s := p.renderer.NewStyle().
		Foreground(lipgloss.Color(k.fg.Hex())).
		Background(lipgloss.Color(k.bg.Hex()))
	p.styles[k] = s
	return s
}

// cell returns the rune and colors a terminal cell shows.
func cell(s *core.Screen, col, row int) (rune, cellStyle) {
	top, bottom, g := s.Cell(col, row)
	if g.Ch != 0 {
		return g.Ch, cellStyle{fg: g.FG, bg: top.Blend(bottom, 128)}
	}
	return halfBlock, cellStyle{fg: top, bg: bottom}
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Cols()*s.Rows()*8 + s.Rows())

	var run strings.Builder
	for row := range s.Rows() {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < s.Cols() {
			ch, start := cell(s, col, row)

			// Collect consecutive cells with the same colors
			run.Reset()
			run.WriteRune(ch)
			col++
			for col < s.Cols() {
				next, st := cell(s, col, row)
				if st != start {
					break
				}
				run.WriteRune(next)
				col++
			}

			sb.WriteString(p.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// shades runs from dark to bright for plain-text screenshots.
const shades = " .:-=+*#%@"

// Screenshot renders the screen without color: pixels become shade
// characters by brightness, glyphs are kept as is.
func Screenshot(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Cols()*s.Rows() + s.Rows())
	for row := range s.Rows() {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for col := range s.Cols() {
			top, bottom, g := s.Cell(col, row)
			if g.Ch != 0 {
				sb.WriteRune(g.Ch)
				continue
			}
			sb.WriteByte(shades[luma(top.Blend(bottom, 128))*(len(shades)-1)/255])
		}
	}
	return sb.String()
}

func luma(c core.Color) int {
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
}
