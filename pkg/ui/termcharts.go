package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iotsyslab/coursedeck/pkg/charts"
)

// sparkRunes are the eighth-block characters used for sparklines.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline maps values onto eighth-block characters over their own
// min/max range.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// hbar renders a horizontal bar scaled to width for value/max.
func hbar(value, max float64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// padLabel truncates or pads a label to exactly w columns, width-aware
// so CJK or emoji labels don't shear the bar column.
func padLabel(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// RenderArchitectureChart draws the four-layer architecture top-down as
// colored bands.
func RenderArchitectureChart(t Theme, width int) string {
	layers := charts.ArchitectureLayers()
	bandW := width - 4
	if bandW < 30 {
		bandW = 30
	}

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("IoT System Architecture") + "\n\n")
	// Application layer on top, devices at the bottom.
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		band := t.Renderer.NewStyle().
			Background(t.LayerColor(layer.Role)).
			Foreground(lipglossWhite).
			Bold(true).
			Width(bandW).
			Padding(0, 1)
		b.WriteString(band.Render(layer.Name) + "\n")
		items := t.ChartLabel.Render("  " + strings.Join(layer.Items, " | "))
		b.WriteString(items + "\n")
		if i > 0 {
			b.WriteString(t.ChartLabel.Render(strings.Repeat(" ", bandW/2)+"▲") + "\n")
		}
	}
	return b.String()
}

// RenderSensorChart draws the 24h temperature/humidity timeline as two
// labeled sparklines with range annotations.
func RenderSensorChart(t Theme, seed uint64) string {
	points := charts.SensorSeries(24, seed)

	temps := make([]float64, len(points))
	hums := make([]float64, len(points))
	for i, p := range points {
		temps[i] = p.Temperature
		hums[i] = p.Humidity
	}

	minMax := func(vs []float64) (float64, float64) {
		lo, hi := vs[0], vs[0]
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		return lo, hi
	}
	tLo, tHi := minMax(temps)
	hLo, hHi := minMax(hums)

	tempStyle := t.Renderer.NewStyle().Foreground(t.Temperature)
	humStyle := t.Renderer.NewStyle().Foreground(t.Humidity)

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("24-Hour Sensor Timeline") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		padLabel("Temperature", 12),
		tempStyle.Render(sparkline(temps)),
		t.ChartLabel.Render(fmt.Sprintf("%.1f–%.1f °C", tLo, tHi))))
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		padLabel("Humidity", 12),
		humStyle.Render(sparkline(hums)),
		t.ChartLabel.Render(fmt.Sprintf("%.0f–%.0f %%RH", hLo, hHi))))
	b.WriteString("\n" + t.ChartLabel.Render("             0h          6h          12h         18h   24h") + "\n")
	return b.String()
}

// RenderEnergyChart draws the daily load profile sparkline plus peak and
// total figures.
func RenderEnergyChart(t Theme, seed uint64) string {
	profile := charts.BuildEnergyProfile(seed)

	peak := 0.0
	peakHour := 0
	for i, w := range profile.PowerW {
		if w > peak {
			peak = w
			peakHour = i
		}
	}
	total := profile.CumulativeKWh[len(profile.CumulativeKWh)-1]

	powerStyle := t.Renderer.NewStyle().Foreground(t.Humidity)

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("Smart Plug Energy Monitoring") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		padLabel("Power (W)", 12), powerStyle.Render(sparkline(profile.PowerW))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		padLabel("Cumulative", 12), t.ChartLabel.Render(sparkline(profile.CumulativeKWh))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Peak: %s at %02d:00    Total: %s\n",
		t.ChartValue.Render(fmt.Sprintf("%.0f W", peak)),
		peakHour,
		t.ChartValue.Render(fmt.Sprintf("%.2f kWh/day", total))))
	return b.String()
}

// RenderPlatformChart draws the hardware platform scores as grouped
// horizontal bars.
func RenderPlatformChart(t Theme) string {
	p := charts.PlatformComparison()

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("Hardware Platform Comparison (1-10)") + "\n")
	for ai, axis := range p.Axes {
		b.WriteString("\n" + t.ChartLabel.Render(axis) + "\n")
		for pi, platform := range p.Platforms {
			score := p.Scores[ai][pi]
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				padLabel(platform, 14),
				hbar(score, 10, 20),
				t.ChartValue.Render(fmt.Sprintf("%2.0f", score))))
		}
	}

	b.WriteString("\n" + t.ChartLabel.Render("Memory / Power") + "\n")
	for i, spec := range p.MemorySpecs {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			padLabel(spec.Platform, 16),
			padLabel(strings.Join(spec.Values, ", "), 24),
			strings.Join(p.PowerSpecs[i].Values, ", ")))
	}
	return b.String()
}

// RenderComparisonChart draws the edge vs cloud category scores as
// paired bars, the terminal stand-in for the radar chart.
func RenderComparisonChart(t Theme) string {
	comp := charts.EdgeCloudComparison()

	edgeStyle := t.Renderer.NewStyle().Foreground(t.Device)
	cloudStyle := t.Renderer.NewStyle().Foreground(t.App)

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("Edge vs Cloud Computing") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s / %s\n\n",
		padLabel("", 22), edgeStyle.Render("edge"), cloudStyle.Render("cloud")))
	for i, cat := range comp.Categories {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			padLabel(cat, 22),
			edgeStyle.Render(hbar(comp.Edge[i], 100, 20)),
			t.ChartValue.Render(fmt.Sprintf("%3.0f", comp.Edge[i]))))
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			padLabel("", 22),
			cloudStyle.Render(hbar(comp.Cloud[i], 100, 20)),
			t.ChartValue.Render(fmt.Sprintf("%3.0f", comp.Cloud[i]))))
	}
	return b.String()
}

// RenderLatencyChart draws the per-operation latency comparison.
func RenderLatencyChart(t Theme) string {
	figures := charts.LatencyComparison()

	maxMs := 1.0
	for _, f := range figures {
		maxMs = math.Max(maxMs, f.CloudMs)
	}

	edgeStyle := t.Renderer.NewStyle().Foreground(t.Device)
	cloudStyle := t.Renderer.NewStyle().Foreground(t.App)

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("Response Time Comparison") + "\n\n")
	for _, f := range figures {
		delta := f.CloudMs / math.Max(f.EdgeMs, 1)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			padLabel(f.Operation, 16),
			edgeStyle.Render(hbar(f.EdgeMs, maxMs, 24)),
			t.ChartLabel.Render(fmt.Sprintf("edge %4.0f ms", f.EdgeMs))))
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			padLabel("", 16),
			cloudStyle.Render(hbar(f.CloudMs, maxMs, 24)),
			t.ChartLabel.Render(fmt.Sprintf("cloud %4.0f ms (%.0fx)", f.CloudMs, delta))))
	}
	return b.String()
}

// RenderHysteresisChart draws the simulated temperature signal and the
// resulting plug state strip.
func RenderHysteresisChart(t Theme, seed uint64) string {
	trace, err := charts.HysteresisSimulation(26, 22, seed)
	if err != nil {
		return t.ChartLabel.Render("hysteresis simulation unavailable: " + err.Error())
	}

	// Downsample to 60 columns so the strip fits a standard pane.
	const cols = 60
	temps := make([]float64, cols)
	states := make([]rune, cols)
	for c := 0; c < cols; c++ {
		i := c * (len(trace.Temperature) - 1) / (cols - 1)
		temps[c] = trace.Temperature[i]
		if trace.On[i] {
			states[c] = '█'
		} else {
			states[c] = '░'
		}
	}

	onStyle := t.Renderer.NewStyle().Foreground(t.Device)

	var b strings.Builder
	b.WriteString(t.ChartValue.Render("Temperature Control with Hysteresis") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		padLabel("Temp (°C)", 11),
		t.Renderer.NewStyle().Foreground(t.Temperature).Render(sparkline(temps))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		padLabel("Plug state", 11), onStyle.Render(string(states))))
	b.WriteString("\n" + t.ChartLabel.Render(
		fmt.Sprintf("ON above %.0f °C, OFF below %.0f °C — the %.0f° dead band prevents rapid cycling",
			trace.OnAt, trace.OffAt, trace.OnAt-trace.OffAt)) + "\n")
	return b.String()
}
