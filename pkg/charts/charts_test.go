package charts

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestArchitectureLayersBottomUp(t *testing.T) {
	layers := ArchitectureLayers()
	if len(layers) != 4 {
		t.Fatalf("got %d layers, want 4", len(layers))
	}
	if layers[0].Name != "Device Layer" || layers[3].Name != "Application Layer" {
		t.Errorf("layers not bottom-up: first=%q last=%q", layers[0].Name, layers[3].Name)
	}
	for _, l := range layers {
		if len(l.Items) == 0 {
			t.Errorf("layer %q has no items", l.Name)
		}
		if l.Role == "" {
			t.Errorf("layer %q has no color role", l.Name)
		}
	}
}

func TestSensorSeriesDeterministic(t *testing.T) {
	a := SensorSeries(24, 42)
	b := SensorSeries(24, 42)
	if len(a) != 24 {
		t.Fatalf("got %d points, want 24", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs across runs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
	c := SensorSeries(24, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical series")
	}
}

func TestSensorSeriesNonEmptyAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hours := rapid.IntRange(-5, 72).Draw(t, "hours")
		seed := rapid.Uint64().Draw(t, "seed")

		points := SensorSeries(hours, seed)
		if len(points) == 0 {
			t.Fatalf("empty series for hours=%d", hours)
		}
		for _, p := range points {
			if p.Humidity < 0 || p.Humidity > 100 {
				t.Fatalf("humidity %.2f out of range", p.Humidity)
			}
			if math.IsNaN(p.Temperature) {
				t.Fatal("NaN temperature")
			}
		}
	})
}

func TestEnergyProfileShape(t *testing.T) {
	p := BuildEnergyProfile(7)
	if len(p.PowerW) != 24 || len(p.CumulativeKWh) != 24 {
		t.Fatalf("want 24 hourly values, got %d/%d", len(p.PowerW), len(p.CumulativeKWh))
	}
	for i, w := range p.PowerW {
		if w < 0 {
			t.Errorf("hour %d: negative power %.2f", i, w)
		}
	}
	for i := 1; i < len(p.CumulativeKWh); i++ {
		if p.CumulativeKWh[i] < p.CumulativeKWh[i-1] {
			t.Errorf("cumulative energy decreased at hour %d", i)
		}
	}
	// Cumulative total matches the sum of hourly power.
	var sum float64
	for _, w := range p.PowerW {
		sum += w
	}
	if got, want := p.CumulativeKWh[23], sum/1000; math.Abs(got-want) > 1e-9 {
		t.Errorf("cumulative total %.6f, want %.6f", got, want)
	}
}

func TestEdgeCloudComparisonAligned(t *testing.T) {
	c := EdgeCloudComparison()
	if len(c.Categories) != 6 {
		t.Fatalf("got %d categories, want 6", len(c.Categories))
	}
	if len(c.Edge) != len(c.Categories) || len(c.Cloud) != len(c.Categories) {
		t.Fatal("score slices not aligned with categories")
	}
	for i := range c.Categories {
		if c.Edge[i] < 0 || c.Edge[i] > 100 || c.Cloud[i] < 0 || c.Cloud[i] > 100 {
			t.Errorf("category %q has out-of-range score", c.Categories[i])
		}
	}
}

func TestPlatformComparisonAligned(t *testing.T) {
	p := PlatformComparison()
	if len(p.Scores) != len(p.Axes) {
		t.Fatalf("got %d score rows for %d axes", len(p.Scores), len(p.Axes))
	}
	for i, row := range p.Scores {
		if len(row) != len(p.Platforms) {
			t.Errorf("axis %q: %d scores for %d platforms", p.Axes[i], len(row), len(p.Platforms))
		}
	}
	if len(p.MemorySpecs) != len(p.Platforms) || len(p.PowerSpecs) != len(p.Platforms) {
		t.Error("spec tables not aligned with platforms")
	}
}

func TestHysteresisThresholdOrder(t *testing.T) {
	if _, err := HysteresisSimulation(22, 26, 1); err == nil {
		t.Fatal("expected error when on threshold is below off threshold")
	}
	if _, err := HysteresisSimulation(24, 24, 1); err == nil {
		t.Fatal("expected error when thresholds are equal")
	}
}

func TestHysteresisHoldsInsideDeadBand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offAt := rapid.Float64Range(18, 23).Draw(t, "offAt")
		onAt := offAt + rapid.Float64Range(0.5, 6).Draw(t, "band")
		seed := rapid.Uint64().Draw(t, "seed")

		trace, err := HysteresisSimulation(onAt, offAt, seed)
		if err != nil {
			t.Fatalf("valid thresholds rejected: %v", err)
		}
		if len(trace.Temperature) == 0 {
			t.Fatal("empty trace")
		}
		// The state may only change when a threshold is crossed.
		for i := 1; i < len(trace.On); i++ {
			if trace.On[i] == trace.On[i-1] {
				continue
			}
			temp := trace.Temperature[i]
			if trace.On[i] && temp <= onAt {
				t.Fatalf("sample %d switched on at %.2f C, below on threshold %.2f", i, temp, onAt)
			}
			if !trace.On[i] && temp >= offAt {
				t.Fatalf("sample %d switched off at %.2f C, above off threshold %.2f", i, temp, offAt)
			}
		}
	})
}

func TestLatencyComparisonEdgeWins(t *testing.T) {
	figures := LatencyComparison()
	if len(figures) == 0 {
		t.Fatal("no latency figures")
	}
	for _, f := range figures {
		if f.EdgeMs <= 0 || f.CloudMs <= 0 {
			t.Errorf("%s: non-positive latency", f.Operation)
		}
		if f.EdgeMs > f.CloudMs {
			t.Errorf("%s: edge slower than cloud (%.0f > %.0f ms)", f.Operation, f.EdgeMs, f.CloudMs)
		}
	}
}
