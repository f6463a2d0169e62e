package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Half-block glyphs: one terminal character covers two screen rows.
const (
	glyphUpper = "▀"
	glyphLower = "▄"
	glyphFull  = "█"
	glyphEmpty = " "
)

type cellPair struct {
	top, bottom core.Cell
}

// FrameRenderer converts a Screen into styled terminal text. Each output
// line packs two screen rows using half-block characters, so a 150x100
// screen becomes 150 columns by 50 lines.
type FrameRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[cellPair]lipgloss.Style
}

// NewFrameRenderer creates a renderer bound to r, which decides the color
// profile (local terminal or one SSH session).
func NewFrameRenderer(r *lipgloss.Renderer) *FrameRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &FrameRenderer{
		renderer: r,
		styles:   make(map[cellPair]lipgloss.Style),
	}
}

// Lines returns the number of terminal lines needed for a screen height.
func Lines(height int) int {
	return (height + 1) / 2
}

// Render converts the screen to a string. Runs of equal cell pairs share one
// style so the escape sequences stay short.
func (fr *FrameRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*Lines(s.Height())*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			start := fr.pairAt(s, x, y)
			run.Reset()
			for x < s.Width() {
				p := fr.pairAt(s, x, y)
				if p != start {
					break
				}
				run.WriteString(glyph(p))
				x++
			}
			sb.WriteString(fr.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

func (fr *FrameRenderer) pairAt(s *core.Screen, x, y int) cellPair {
	p := cellPair{top: s.Get(x, y), bottom: core.EmptyCell()}
	if y+1 < s.Height() {
		p.bottom = s.Get(x, y+1)
	}
	return p
}

func glyph(p cellPair) string {
	top, topOK := p.top.Color()
	bottom, bottomOK := p.bottom.Color()
	switch {
	case topOK && bottomOK && top == bottom:
		return glyphFull
	case topOK:
		return glyphUpper
	case bottomOK:
		return glyphLower
	default:
		return glyphEmpty
	}
}

func (fr *FrameRenderer) style(p cellPair) lipgloss.Style {
	if st, ok := fr.styles[p]; ok {
		return st
	}

	st := fr.renderer.NewStyle()
	top, topOK := p.top.Color()
	bottom, bottomOK := p.bottom.Color()
	switch {
	case topOK && bottomOK && top == bottom:
		st = st.Foreground(termColor(top))
	case topOK && bottomOK:
		st = st.Foreground(termColor(top)).Background(termColor(bottom))
	case topOK:
		st = st.Foreground(termColor(top))
	case bottomOK:
		st = st.Foreground(termColor(bottom))
	}
	fr.styles[p] = st
	return st
}

// termColor uses the exact palette RGB; lipgloss degrades it to the
// terminal's profile.
func termColor(c core.Color) lipgloss.Color {
	rgba := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B))
}
