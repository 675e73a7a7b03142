// Package export renders course charts to static SVG/PNG files and
// writes course outlines in markdown and machine-readable form.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/iotsyslab/coursedeck/pkg/charts"
)

// --- shared palette --------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorGrid     = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}

	colorTemp   = color.RGBA{0xe7, 0x4c, 0x3c, 0xff} // temperature / energy line
	colorHum    = color.RGBA{0x34, 0x98, 0xdb, 0xff} // humidity / power bars
	colorEdge   = color.RGBA{0x27, 0xae, 0x60, 0xff}
	colorCloud  = color.RGBA{0x34, 0x98, 0xdb, 0xff}
	layerColors = map[string]color.RGBA{
		"device": {0x27, 0xae, 0x60, 0xff},
		"edge":   {0xe6, 0x7e, 0x22, 0xff},
		"cloud":  {0x9b, 0x59, 0xb6, 0xff},
		"app":    {0x34, 0x98, 0xdb, 0xff},
	}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// resolveFormat picks "svg" or "png" from an explicit format or the
// path's extension, defaulting to SVG.
func resolveFormat(path, format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			f = "png"
		default:
			f = "svg"
		}
	}
	if f != "svg" && f != "png" {
		return "", fmt.Errorf("unsupported format %q (want svg or png)", f)
	}
	return f, nil
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// save renders with the svg or png callback depending on the resolved
// format.
func save(path string, renderSVG func(*svg.SVG, int, int), renderPNG func(*gg.Context, int, int), w, h int) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	format, err := resolveFormat(path, "")
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}

	switch format {
	case "png":
		dc := gg.NewContext(w, h)
		dc.SetColor(colorBackdrop)
		dc.Clear()
		dc.SetFontFace(basicfont.Face7x13)
		renderPNG(dc, w, h)
		return dc.SavePNG(path)
	default:
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		return writeSVG(file, renderSVG, w, h)
	}
}

func writeSVG(out io.Writer, render func(*svg.SVG, int, int), w, h int) error {
	canvas := svg.New(out)
	canvas.Start(w, h)
	canvas.Rect(0, 0, w, h, "fill:"+css(colorBackdrop))
	render(canvas, w, h)
	canvas.End()
	return nil
}

func monoText(canvas *svg.SVG, x, y int, s string, c color.RGBA, size int, bold bool) {
	style := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:monospace", css(c), size)
	if bold {
		style += ";font-weight:bold"
	}
	canvas.Text(x, y, s, style)
}

// --- architecture diagram --------------------------------------------------

// SaveArchitectureDiagram renders the four-layer IoT architecture as
// stacked bands, devices at the bottom. Format is inferred from the
// extension.
func SaveArchitectureDiagram(path string) error {
	layers := charts.ArchitectureLayers()

	const (
		width   = 720
		bandH   = 86
		gap     = 14
		margin  = 40
		headerH = 56
	)
	height := headerH + margin + len(layers)*(bandH+gap) + margin

	renderPNG := func(dc *gg.Context, w, h int) {
		dc.SetColor(colorText)
		dc.DrawStringAnchored("IoT System Architecture - Layered View", margin, 34, 0, 0.5)
		for i, layer := range layers {
			// Top band is the last layer: draw top-down from the end.
			y := float64(headerH+margin) + float64(len(layers)-1-i)*(bandH+gap)
			c := layerColors[layer.Role]
			dc.SetColor(c)
			dc.DrawRoundedRectangle(margin, y, width-2*margin, bandH, 10)
			dc.Fill()
			dc.SetColor(color.RGBA{0xff, 0xff, 0xff, 0xff})
			dc.DrawStringAnchored(layer.Name, margin+18, y+24, 0, 0.5)
			dc.DrawStringAnchored(strings.Join(layer.Items, "  |  "), margin+18, y+52, 0, 0.5)
			if i > 0 {
				// connector arrow up from the previous band
				cx := float64(width) / 2
				dc.SetColor(colorSubtle)
				dc.SetLineWidth(2)
				dc.DrawLine(cx, y+bandH+gap, cx, y+bandH)
				dc.Stroke()
			}
		}
	}

	renderSVG := func(canvas *svg.SVG, w, h int) {
		monoText(canvas, margin, 34, "IoT System Architecture - Layered View", colorText, 16, true)
		for i, layer := range layers {
			y := headerH + margin + (len(layers)-1-i)*(bandH+gap)
			c := layerColors[layer.Role]
			canvas.Roundrect(margin, y, width-2*margin, bandH, 10, 10, "fill:"+css(c))
			monoText(canvas, margin+18, y+28, layer.Name, color.RGBA{0xff, 0xff, 0xff, 0xff}, 15, true)
			monoText(canvas, margin+18, y+54, strings.Join(layer.Items, "  |  "), color.RGBA{0xff, 0xff, 0xff, 0xff}, 12, false)
			if i > 0 {
				cx := width / 2
				canvas.Line(cx, y+bandH+gap, cx, y+bandH, fmt.Sprintf("stroke:%s;stroke-width:2", css(colorSubtle)))
			}
		}
	}

	return save(path, renderSVG, renderPNG, width, height)
}

// --- sensor chart ----------------------------------------------------------

// SaveSensorChart renders the 24h synthetic temperature/humidity
// timeline as two line series.
func SaveSensorChart(path string, seed uint64) error {
	points := charts.SensorSeries(24, seed)

	const (
		width   = 760
		height  = 420
		margin  = 56
		headerH = 40
	)
	plotW := float64(width - 2*margin)
	plotH := float64(height - headerH - 2*margin)

	// Scale temperature on 10-32 C, humidity on 0-100 %.
	tx := func(i int) float64 {
		return float64(margin) + plotW*float64(i)/float64(len(points)-1)
	}
	ty := func(v float64) float64 {
		return float64(headerH+margin) + plotH*(1-(v-10)/22)
	}
	hy := func(v float64) float64 {
		return float64(headerH+margin) + plotH*(1-v/100)
	}

	renderPNG := func(dc *gg.Context, w, h int) {
		dc.SetColor(colorText)
		dc.DrawStringAnchored("24-Hour Sensor Data Timeline", margin, 26, 0, 0.5)

		dc.SetColor(colorGrid)
		dc.SetLineWidth(1)
		for g := 0; g <= 4; g++ {
			y := float64(headerH+margin) + plotH*float64(g)/4
			dc.DrawLine(margin, y, float64(width-margin), y)
			dc.Stroke()
		}

		drawSeriesPNG(dc, points, tx, func(p charts.SensorPoint) float64 { return ty(p.Temperature) }, colorTemp)
		drawSeriesPNG(dc, points, tx, func(p charts.SensorPoint) float64 { return hy(p.Humidity) }, colorHum)

		dc.SetColor(colorTemp)
		dc.DrawStringAnchored("Temperature (C)", margin, float64(height)-18, 0, 0.5)
		dc.SetColor(colorHum)
		dc.DrawStringAnchored("Humidity (%)", margin+160, float64(height)-18, 0, 0.5)
	}

	renderSVG := func(canvas *svg.SVG, w, h int) {
		monoText(canvas, margin, 26, "24-Hour Sensor Data Timeline", colorText, 16, true)
		for g := 0; g <= 4; g++ {
			y := int(float64(headerH+margin) + plotH*float64(g)/4)
			canvas.Line(margin, y, width-margin, y, fmt.Sprintf("stroke:%s;stroke-width:1", css(colorGrid)))
		}
		drawSeriesSVG(canvas, points, tx, func(p charts.SensorPoint) float64 { return ty(p.Temperature) }, colorTemp)
		drawSeriesSVG(canvas, points, tx, func(p charts.SensorPoint) float64 { return hy(p.Humidity) }, colorHum)
		monoText(canvas, margin, height-18, "Temperature (C)", colorTemp, 13, false)
		monoText(canvas, margin+160, height-18, "Humidity (%)", colorHum, 13, false)
	}

	return save(path, renderSVG, renderPNG, width, height)
}

func drawSeriesPNG(dc *gg.Context, points []charts.SensorPoint, x func(int) float64, y func(charts.SensorPoint) float64, c color.RGBA) {
	dc.SetColor(c)
	dc.SetLineWidth(2.5)
	for i := 1; i < len(points); i++ {
		dc.DrawLine(x(i-1), y(points[i-1]), x(i), y(points[i]))
		dc.Stroke()
	}
	for i, p := range points {
		dc.DrawCircle(x(i), y(p), 3)
		dc.Fill()
	}
}

func drawSeriesSVG(canvas *svg.SVG, points []charts.SensorPoint, x func(int) float64, y func(charts.SensorPoint) float64, c color.RGBA) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = int(x(i))
		ys[i] = int(y(p))
	}
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2.5", css(c)))
	for i := range points {
		canvas.Circle(xs[i], ys[i], 3, "fill:"+css(c))
	}
}

// --- energy chart ----------------------------------------------------------

// SaveEnergyChart renders hourly power bars with the cumulative energy
// line overlaid.
func SaveEnergyChart(path string, seed uint64) error {
	profile := charts.BuildEnergyProfile(seed)

	const (
		width   = 760
		height  = 420
		margin  = 56
		headerH = 40
	)
	plotW := float64(width - 2*margin)
	plotH := float64(height - headerH - 2*margin)

	maxPower := 1.0
	for _, p := range profile.PowerW {
		maxPower = math.Max(maxPower, p)
	}
	maxEnergy := math.Max(profile.CumulativeKWh[len(profile.CumulativeKWh)-1], 0.001)

	n := len(profile.PowerW)
	barW := plotW / float64(n) * 0.7
	bx := func(i int) float64 {
		return float64(margin) + plotW*(float64(i)+0.15)/float64(n)
	}
	py := func(v float64) float64 {
		return float64(headerH+margin) + plotH*(1-v/maxPower)
	}
	ey := func(v float64) float64 {
		return float64(headerH+margin) + plotH*(1-v/maxEnergy)
	}
	baseline := float64(headerH+margin) + plotH

	renderPNG := func(dc *gg.Context, w, h int) {
		dc.SetColor(colorText)
		dc.DrawStringAnchored("Smart Plug Energy Monitoring", margin, 26, 0, 0.5)

		dc.SetColor(colorHum)
		for i, p := range profile.PowerW {
			y := py(p)
			dc.DrawRectangle(bx(i), y, barW, baseline-y)
			dc.Fill()
		}

		dc.SetColor(colorTemp)
		dc.SetLineWidth(2.5)
		for i := 1; i < n; i++ {
			dc.DrawLine(bx(i-1)+barW/2, ey(profile.CumulativeKWh[i-1]), bx(i)+barW/2, ey(profile.CumulativeKWh[i]))
			dc.Stroke()
		}

		dc.SetColor(colorHum)
		dc.DrawStringAnchored("Power (W)", margin, float64(height)-18, 0, 0.5)
		dc.SetColor(colorTemp)
		dc.DrawStringAnchored("Cumulative Energy (kWh)", margin+120, float64(height)-18, 0, 0.5)
	}

	renderSVG := func(canvas *svg.SVG, w, h int) {
		monoText(canvas, margin, 26, "Smart Plug Energy Monitoring", colorText, 16, true)
		for i, p := range profile.PowerW {
			y := py(p)
			canvas.Rect(int(bx(i)), int(y), int(barW), int(baseline-y), "fill:"+css(colorHum))
		}
		xs := make([]int, n)
		ys := make([]int, n)
		for i := range profile.CumulativeKWh {
			xs[i] = int(bx(i) + barW/2)
			ys[i] = int(ey(profile.CumulativeKWh[i]))
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2.5", css(colorTemp)))
		monoText(canvas, margin, height-18, "Power (W)", colorHum, 13, false)
		monoText(canvas, margin+120, height-18, "Cumulative Energy (kWh)", colorTemp, 13, false)
	}

	return save(path, renderSVG, renderPNG, width, height)
}

// --- edge vs cloud radar ---------------------------------------------------

// SaveComparisonRadar renders the six-axis edge vs cloud comparison as
// two filled polygons on a radial grid.
func SaveComparisonRadar(path string) error {
	comp := charts.EdgeCloudComparison()

	const (
		width  = 640
		height = 560
		radius = 180.0
	)
	cx := float64(width) / 2
	cy := float64(height)/2 + 20

	point := func(axis int, score float64) (float64, float64) {
		angle := 2*math.Pi*float64(axis)/float64(len(comp.Categories)) - math.Pi/2
		r := radius * score / 100
		return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
	}

	renderPNG := func(dc *gg.Context, w, h int) {
		dc.SetColor(colorText)
		dc.DrawStringAnchored("Edge vs Cloud Computing Comparison", 40, 30, 0, 0.5)

		// radial grid rings at 25/50/75/100
		dc.SetColor(colorGrid)
		dc.SetLineWidth(1)
		for _, ring := range []float64{25, 50, 75, 100} {
			for i := range comp.Categories {
				x1, y1 := point(i, ring)
				x2, y2 := point((i+1)%len(comp.Categories), ring)
				dc.DrawLine(x1, y1, x2, y2)
				dc.Stroke()
			}
		}
		// spokes and labels
		for i, cat := range comp.Categories {
			x, y := point(i, 100)
			dc.DrawLine(cx, cy, x, y)
			dc.Stroke()
			lx, ly := point(i, 118)
			dc.SetColor(colorSubtle)
			dc.DrawStringAnchored(cat, lx, ly, 0.5, 0.5)
			dc.SetColor(colorGrid)
		}

		drawRadarPolygonPNG(dc, comp.Edge, point, colorEdge)
		drawRadarPolygonPNG(dc, comp.Cloud, point, colorCloud)

		dc.SetColor(colorEdge)
		dc.DrawStringAnchored("Edge Computing", 40, float64(height)-34, 0, 0.5)
		dc.SetColor(colorCloud)
		dc.DrawStringAnchored("Cloud Computing", 40, float64(height)-16, 0, 0.5)
	}

	renderSVG := func(canvas *svg.SVG, w, h int) {
		monoText(canvas, 40, 30, "Edge vs Cloud Computing Comparison", colorText, 16, true)
		for _, ring := range []float64{25, 50, 75, 100} {
			xs := make([]int, len(comp.Categories))
			ys := make([]int, len(comp.Categories))
			for i := range comp.Categories {
				x, y := point(i, ring)
				xs[i], ys[i] = int(x), int(y)
			}
			canvas.Polygon(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", css(colorGrid)))
		}
		for i, cat := range comp.Categories {
			x, y := point(i, 100)
			canvas.Line(int(cx), int(cy), int(x), int(y), fmt.Sprintf("stroke:%s;stroke-width:1", css(colorGrid)))
			lx, ly := point(i, 118)
			canvas.Text(int(lx), int(ly), cat,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
		}
		drawRadarPolygonSVG(canvas, comp.Edge, point, colorEdge)
		drawRadarPolygonSVG(canvas, comp.Cloud, point, colorCloud)
		monoText(canvas, 40, height-34, "Edge Computing", colorEdge, 13, true)
		monoText(canvas, 40, height-16, "Cloud Computing", colorCloud, 13, true)
	}

	return save(path, renderSVG, renderPNG, width, height)
}

func drawRadarPolygonPNG(dc *gg.Context, scores []float64, point func(int, float64) (float64, float64), c color.RGBA) {
	dc.NewSubPath()
	for i, s := range scores {
		x, y := point(i, s)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetColor(withAlpha(c, 0x40))
	dc.FillPreserve()
	dc.SetColor(c)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawRadarPolygonSVG(canvas *svg.SVG, scores []float64, point func(int, float64) (float64, float64), c color.RGBA) {
	xs := make([]int, len(scores))
	ys := make([]int, len(scores))
	for i, s := range scores {
		x, y := point(i, s)
		xs[i], ys[i] = int(x), int(y)
	}
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:0.25;stroke:%s;stroke-width:2", css(c), css(c)))
}
