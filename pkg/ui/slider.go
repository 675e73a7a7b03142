package ui

import (
	"fmt"
	"strings"
)

// Slider is a keyboard-driven numeric input: h/l (or arrows) step the
// value inside [Min, Max]. It renders as a labeled bar.
type Slider struct {
	Label  string
	Min    float64
	Max    float64
	Step   float64
	Value  float64
	Format string // fmt verb for the value, e.g. "%.0f h" or "€%.2f"
}

// Inc steps the value up, clamped to Max.
func (s *Slider) Inc() {
	s.Value += s.Step
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// Dec steps the value down, clamped to Min.
func (s *Slider) Dec() {
	s.Value -= s.Step
	if s.Value < s.Min {
		s.Value = s.Min
	}
}

// View renders the slider; focused sliders get the highlight style.
func (s Slider) View(t Theme, focused bool) string {
	const barW = 24
	frac := 0.0
	if s.Max > s.Min {
		frac = (s.Value - s.Min) / (s.Max - s.Min)
	}
	filled := int(frac*barW + 0.5)
	if filled > barW {
		filled = barW
	}
	bar := strings.Repeat("━", filled) + "●" + strings.Repeat("─", barW-filled)

	value := fmt.Sprintf(s.Format, s.Value)
	label := padLabel(s.Label, 28)

	if focused {
		return fmt.Sprintf("%s %s %s",
			t.ChartValue.Render("▸ "+label),
			t.Renderer.NewStyle().Foreground(t.Primary).Render(bar),
			t.ChartValue.Render(value))
	}
	return fmt.Sprintf("%s %s %s",
		t.ChartLabel.Render("  "+label),
		t.Renderer.NewStyle().Foreground(t.Muted).Render(bar),
		t.ChartLabel.Render(value))
}

// SliderGroup is a focusable set of sliders; tab cycles focus.
type SliderGroup struct {
	Sliders []*Slider
	Focus   int
}

// Next moves focus to the following slider, wrapping.
func (g *SliderGroup) Next() {
	if len(g.Sliders) == 0 {
		return
	}
	g.Focus = (g.Focus + 1) % len(g.Sliders)
}

// Focused returns the slider under focus, or nil.
func (g *SliderGroup) Focused() *Slider {
	if g.Focus < 0 || g.Focus >= len(g.Sliders) {
		return nil
	}
	return g.Sliders[g.Focus]
}

// View renders all sliders, marking the focused one.
func (g SliderGroup) View(t Theme) string {
	var b strings.Builder
	for i, s := range g.Sliders {
		b.WriteString(s.View(t, i == g.Focus) + "\n")
	}
	return b.String()
}
