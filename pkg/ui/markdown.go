package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown wraps a glamour renderer with lazy re-creation on resize.
// The zero value renders raw markdown until SetWidth succeeds.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a renderer wrapping at the given width.
func NewMarkdown(width int) *Markdown {
	m := &Markdown{}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the glamour renderer when the wrap width changes.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if m.renderer != nil && m.width == width {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	m.renderer = r
	m.width = width
}

// Render returns the styled markdown, falling back to the raw source if
// glamour is unavailable or errors. Runs of 3+ blank lines are
// compressed since glamour sometimes adds excessive whitespace.
func (m *Markdown) Render(source string) string {
	if m == nil || m.renderer == nil {
		return source
	}
	rendered, err := m.renderer.Render(source)
	if err != nil {
		return source
	}
	return compressBlankLines(strings.TrimRight(rendered, "\n"))
}

func compressBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
