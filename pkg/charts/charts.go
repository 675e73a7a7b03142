// Package charts builds the data behind every course visualization.
// Builders are pure: given the same seed they return the same series, so
// renders are reproducible across the TUI, snapshot export, and tests.
package charts

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Layer is one tier of the layered IoT architecture diagram, bottom-up.
type Layer struct {
	Name  string
	Items []string
	// Role selects the theme color used when rendering.
	Role string
}

// ArchitectureLayers returns the four-tier IoT reference architecture in
// bottom-up order: devices first, applications last.
func ArchitectureLayers() []Layer {
	return []Layer{
		{Name: "Device Layer", Role: "device", Items: []string{"Sensors (Broadlink)", "Actuators (TP-Link)", "Smart Devices"}},
		{Name: "Edge/Gateway", Role: "edge", Items: []string{"Node-RED", "Local Processing", "MQTT Broker"}},
		{Name: "Cloud/Backend", Role: "cloud", Items: []string{"Data Storage", "Analytics", "ML/AI"}},
		{Name: "Application Layer", Role: "app", Items: []string{"Dashboards", "Mobile Apps", "Web Interface"}},
	}
}

// SensorPoint is one synthetic reading on the sensor timeline.
type SensorPoint struct {
	Hour        int
	Temperature float64 // degrees C
	Humidity    float64 // percent RH
}

// SensorSeries produces a synthetic sensor timeline: a daily temperature
// sinusoid around 20 C with seeded Gaussian noise, and humidity moving
// inversely to the temperature variation around 65 %. hours below 1 is
// clamped to 1.
func SensorSeries(hours int, seed uint64) []SensorPoint {
	if hours < 1 {
		hours = 1
	}
	tempNoise := distuv.Normal{Mu: 0, Sigma: 0.5, Src: rand.NewPCG(seed, 1)}
	humNoise := distuv.Normal{Mu: 0, Sigma: 2, Src: rand.NewPCG(seed, 2)}

	points := make([]SensorPoint, hours)
	for h := 0; h < hours; h++ {
		frac := 0.0
		if hours > 1 {
			frac = float64(h) / float64(hours-1)
		}
		variation := 5*math.Sin(2*math.Pi*frac) + tempNoise.Rand()
		points[h] = SensorPoint{
			Hour:        h,
			Temperature: 20 + variation,
			Humidity:    clamp(65-variation+humNoise.Rand(), 0, 100),
		}
	}
	return points
}

// baseConsumption is the reference household load profile in watts, one
// value per hour starting at midnight.
var baseConsumption = []float64{
	50, 45, 40, 40, 45, 60, 150, 200, 180, 160, 140, 120,
	130, 140, 150, 180, 200, 250, 220, 180, 150, 120, 80, 60,
}

// EnergyProfile holds 24 hourly power readings and the cumulative energy
// running sum derived from them.
type EnergyProfile struct {
	PowerW        []float64
	CumulativeKWh []float64
}

// BuildEnergyProfile perturbs the base load profile with seeded noise
// (clamped at zero) and accumulates it into kWh.
func BuildEnergyProfile(seed uint64) EnergyProfile {
	noise := distuv.Normal{Mu: 0, Sigma: 10, Src: rand.NewPCG(seed, 3)}

	power := make([]float64, len(baseConsumption))
	for i, base := range baseConsumption {
		power[i] = math.Max(0, base+noise.Rand())
	}

	cum := make([]float64, len(power))
	floats.CumSum(cum, power)
	floats.Scale(1.0/1000, cum)

	return EnergyProfile{PowerW: power, CumulativeKWh: cum}
}

// Comparison is a set of categories scored 0-100 for two alternatives.
type Comparison struct {
	Categories []string
	Edge       []float64
	Cloud      []float64
}

// EdgeCloudComparison returns the six-axis edge vs cloud scoring used by
// the radar chart.
func EdgeCloudComparison() Comparison {
	return Comparison{
		Categories: []string{"Latency", "Privacy", "Reliability (offline)", "Scalability", "Computing Power", "Cost (long-term)"},
		Edge:       []float64{95, 90, 95, 40, 50, 70},
		Cloud:      []float64{30, 40, 20, 95, 95, 60},
	}
}

// PlatformScores holds grouped-bar data scoring hardware platforms on a
// 1-10 scale, plus the spec tables shown alongside.
type PlatformScores struct {
	Platforms []string
	Axes      []string
	// Scores[axis][platform], same order as Axes and Platforms.
	Scores [][]float64

	MemorySpecs []PlatformSpec
	PowerSpecs  []PlatformSpec
}

// PlatformSpec is one row of a platform spec table.
type PlatformSpec struct {
	Platform string
	Values   []string
}

// PlatformComparison scores the course's four hardware platforms on
// processing, power efficiency, cost efficiency, and ease of use.
func PlatformComparison() PlatformScores {
	return PlatformScores{
		Platforms: []string{"Arduino", "Raspberry Pi", "ESP8266", "ESP32"},
		Axes:      []string{"Processing Power", "Power Efficiency", "Cost Efficiency", "Ease of Use"},
		Scores: [][]float64{
			{3, 10, 6, 8},
			{10, 3, 8, 9},
			{7, 5, 10, 10},
			{9, 8, 7, 7},
		},
		MemorySpecs: []PlatformSpec{
			{Platform: "Arduino Uno", Values: []string{"2 KB RAM", "32 KB flash"}},
			{Platform: "Raspberry Pi 4", Values: []string{"4 GB RAM", "32 GB SD"}},
			{Platform: "ESP8266", Values: []string{"80 KB RAM", "4 MB flash"}},
			{Platform: "ESP32", Values: []string{"520 KB RAM", "4 MB flash"}},
		},
		PowerSpecs: []PlatformSpec{
			{Platform: "Arduino Uno", Values: []string{"50 mA active", "15 mA sleep"}},
			{Platform: "Raspberry Pi 4", Values: []string{"600 mA active", "no sleep"}},
			{Platform: "ESP8266", Values: []string{"80 mA active", "20 uA sleep"}},
			{Platform: "ESP32", Values: []string{"160 mA active", "10 uA sleep"}},
		},
	}
}

// HysteresisTrace is a simulated temperature signal and the two-threshold
// on/off actuation it produces.
type HysteresisTrace struct {
	Hours       []float64
	Temperature []float64
	On          []bool
	OnAt        float64
	OffAt       float64
}

// HysteresisSimulation runs a two-threshold controller over a noisy
// temperature signal: the output switches on above onAt and off below
// offAt, holding its previous state inside the dead band. onAt must
// exceed offAt.
func HysteresisSimulation(onAt, offAt float64, seed uint64) (HysteresisTrace, error) {
	if onAt <= offAt {
		return HysteresisTrace{}, fmt.Errorf("hysteresis: on threshold %.1f must exceed off threshold %.1f", onAt, offAt)
	}

	const samples = 100
	noise := distuv.Normal{Mu: 0, Sigma: 0.3, Src: rand.NewPCG(seed, 4)}

	trace := HysteresisTrace{
		Hours:       make([]float64, samples),
		Temperature: make([]float64, samples),
		On:          make([]bool, samples),
		OnAt:        onAt,
		OffAt:       offAt,
	}

	on := false
	for i := 0; i < samples; i++ {
		h := 24 * float64(i) / float64(samples-1)
		temp := 23 + 4*math.Sin(h/4) + noise.Rand()
		switch {
		case temp > onAt && !on:
			on = true
		case temp < offAt && on:
			on = false
		}
		trace.Hours[i] = h
		trace.Temperature[i] = temp
		trace.On[i] = on
	}
	return trace, nil
}

// LatencyFigure compares one operation's response time at the edge vs
// through the cloud.
type LatencyFigure struct {
	Operation string
	EdgeMs    float64
	CloudMs   float64
}

// LatencyComparison returns the per-operation response times behind the
// edge vs cloud latency bar chart.
func LatencyComparison() []LatencyFigure {
	return []LatencyFigure{
		{Operation: "Sensor Read", EdgeMs: 10, CloudMs: 10},
		{Operation: "Local Decision", EdgeMs: 5, CloudMs: 500},
		{Operation: "Plug Control", EdgeMs: 15, CloudMs: 600},
		{Operation: "Total Response", EdgeMs: 30, CloudMs: 1110},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
