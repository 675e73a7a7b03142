// Package calc implements the course's numeric calculators. All
// functions are pure and clamp their inputs to the ranges exposed by the
// interactive sliders, so out-of-range values degrade to the nearest
// valid answer instead of erroring.
package calc

import "math"

// Per-kWh carbon intensity used for avoided-emissions estimates, in kg
// CO2 per kWh (EU grid average, rounded).
const CO2KgPerKWh = 0.5

// EnergySavings describes a before/after automation scenario for a
// single device.
type EnergySavings struct {
	HoursBefore float64 // hours ON per day before automation, 0-24
	HoursAfter  float64 // hours ON per day after automation, 0-24
	PowerW      float64 // device power draw in watts, 1-3000
	PricePerKWh float64 // electricity price, 0-1
}

// EnergySavingsResult is the computed outcome of an EnergySavings
// scenario. All fields are non-negative for clamped inputs where
// HoursAfter <= HoursBefore.
type EnergySavingsResult struct {
	DailyKWhBefore   float64
	DailyKWhAfter    float64
	DailySavedKWh    float64
	MonthlySavedKWh  float64
	MonthlyCostSaved float64
	CO2SavedKg       float64
	PercentReduction float64
}

// Compute clamps the inputs and derives the savings figures. A negative
// hours delta (automation increased runtime) yields zero savings rather
// than negative ones.
func (e EnergySavings) Compute() EnergySavingsResult {
	before := clamp(e.HoursBefore, 0, 24)
	after := clamp(e.HoursAfter, 0, 24)
	watts := clamp(e.PowerW, 1, 3000)
	price := clamp(e.PricePerKWh, 0, 1)

	kwhBefore := before * watts / 1000
	kwhAfter := after * watts / 1000
	daily := math.Max(0, kwhBefore-kwhAfter)
	monthly := daily * 30

	pct := 0.0
	if kwhBefore > 0 {
		pct = daily / kwhBefore * 100
	}

	return EnergySavingsResult{
		DailyKWhBefore:   kwhBefore,
		DailyKWhAfter:    kwhAfter,
		DailySavedKWh:    daily,
		MonthlySavedKWh:  monthly,
		MonthlyCostSaved: monthly * price,
		CO2SavedKg:       monthly * CO2KgPerKWh,
		PercentReduction: pct,
	}
}

// CloudCost describes a fleet's message volume for cost estimation.
type CloudCost struct {
	Devices        int // 10-10000
	MessagesPerDay int // per device, 10-1000
}

// CloudCostResult is the simplified monthly pricing estimate shown on
// the cloud platforms topic.
type CloudCostResult struct {
	MessagesPerMonthM float64 // millions of messages per month
	AWSMonthlyUSD     float64
	AzureMonthlyUSD   float64
}

// Compute clamps the inputs and applies the simplified published
// pricing: AWS charges per connection-minute plus per message, Azure a
// flat base tier plus per message.
func (c CloudCost) Compute() CloudCostResult {
	devices := clampInt(c.Devices, 10, 10000)
	perDay := clampInt(c.MessagesPerDay, 10, 1000)

	totalM := float64(devices) * float64(perDay) * 30 / 1e6

	return CloudCostResult{
		MessagesPerMonthM: totalM,
		AWSMonthlyUSD:     float64(devices)*30*0.08/1e6 + totalM*1.00,
		AzureMonthlyUSD:   10 + totalM*0.50,
	}
}

// LatencyDelta compares an edge and a cloud response time. Inputs below
// 1 ms are raised to 1 ms so the speedup factor is always defined.
func LatencyDelta(edgeMs, cloudMs float64) (deltaMs, speedup float64) {
	edge := math.Max(1, edgeMs)
	cloud := math.Max(1, cloudMs)
	return math.Abs(cloud - edge), cloud / edge
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

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
