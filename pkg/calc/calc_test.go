package calc

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestEnergySavingsKnownScenario(t *testing.T) {
	// The worked example from the course: 500 W device cut from 16h to
	// 8h per day at 0.25/kWh.
	r := EnergySavings{HoursBefore: 16, HoursAfter: 8, PowerW: 500, PricePerKWh: 0.25}.Compute()

	approx := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %.4f, want %.4f", name, got, want)
		}
	}
	approx("daily saved", r.DailySavedKWh, 4)
	approx("monthly saved", r.MonthlySavedKWh, 120)
	approx("cost saved", r.MonthlyCostSaved, 30)
	approx("co2 saved", r.CO2SavedKg, 60)
	approx("percent", r.PercentReduction, 50)
}

func TestEnergySavingsZeroBaseline(t *testing.T) {
	r := EnergySavings{HoursBefore: 0, HoursAfter: 0, PowerW: 500, PricePerKWh: 0.25}.Compute()
	if r.PercentReduction != 0 {
		t.Errorf("percent = %.2f with zero baseline, want 0", r.PercentReduction)
	}
	if r.DailySavedKWh != 0 {
		t.Errorf("daily saved = %.2f with zero baseline, want 0", r.DailySavedKWh)
	}
}

func TestEnergySavingsIncreasedRuntime(t *testing.T) {
	// Automation that increases runtime reports zero savings, not
	// negative ones.
	r := EnergySavings{HoursBefore: 4, HoursAfter: 12, PowerW: 500, PricePerKWh: 0.25}.Compute()
	if r.DailySavedKWh != 0 || r.MonthlyCostSaved != 0 || r.CO2SavedKg != 0 {
		t.Errorf("expected zero savings, got %+v", r)
	}
}

func TestEnergySavingsNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := EnergySavings{
			HoursBefore: rapid.Float64Range(-10, 40).Draw(t, "before"),
			HoursAfter:  rapid.Float64Range(-10, 40).Draw(t, "after"),
			PowerW:      rapid.Float64Range(-100, 5000).Draw(t, "watts"),
			PricePerKWh: rapid.Float64Range(-1, 2).Draw(t, "price"),
		}
		r := in.Compute()
		for name, v := range map[string]float64{
			"daily":   r.DailySavedKWh,
			"monthly": r.MonthlySavedKWh,
			"cost":    r.MonthlyCostSaved,
			"co2":     r.CO2SavedKg,
			"percent": r.PercentReduction,
		} {
			if v < 0 || math.IsNaN(v) {
				t.Fatalf("%s = %v for %+v", name, v, in)
			}
		}
		if r.PercentReduction > 100 {
			t.Fatalf("percent %.2f exceeds 100 for %+v", r.PercentReduction, in)
		}
	})
}

func TestEnergySavingsMonotoneInHoursDelta(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		after := rapid.Float64Range(0, 24).Draw(t, "after")
		before1 := rapid.Float64Range(after, 24).Draw(t, "before1")
		before2 := rapid.Float64Range(before1, 24).Draw(t, "before2")
		watts := rapid.Float64Range(1, 3000).Draw(t, "watts")

		r1 := EnergySavings{HoursBefore: before1, HoursAfter: after, PowerW: watts, PricePerKWh: 0.25}.Compute()
		r2 := EnergySavings{HoursBefore: before2, HoursAfter: after, PowerW: watts, PricePerKWh: 0.25}.Compute()
		if r2.DailySavedKWh < r1.DailySavedKWh {
			t.Fatalf("larger hours delta saved less: %.4f < %.4f", r2.DailySavedKWh, r1.DailySavedKWh)
		}
	})
}

func TestEnergySavingsMonotoneInWattage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w1 := rapid.Float64Range(1, 3000).Draw(t, "w1")
		w2 := rapid.Float64Range(w1, 3000).Draw(t, "w2")
		before := rapid.Float64Range(0, 24).Draw(t, "before")
		after := rapid.Float64Range(0, before).Draw(t, "after")

		r1 := EnergySavings{HoursBefore: before, HoursAfter: after, PowerW: w1, PricePerKWh: 0.25}.Compute()
		r2 := EnergySavings{HoursBefore: before, HoursAfter: after, PowerW: w2, PricePerKWh: 0.25}.Compute()
		if r2.DailySavedKWh < r1.DailySavedKWh {
			t.Fatalf("higher wattage saved less: %.4f < %.4f", r2.DailySavedKWh, r1.DailySavedKWh)
		}
	})
}

func TestCloudCostKnownScenario(t *testing.T) {
	// 100 devices at 100 messages/day: 0.3M messages per month.
	r := CloudCost{Devices: 100, MessagesPerDay: 100}.Compute()
	if math.Abs(r.MessagesPerMonthM-0.3) > 1e-9 {
		t.Errorf("messages = %.4fM, want 0.3M", r.MessagesPerMonthM)
	}
	wantAWS := 100*30*0.08/1e6 + 0.3
	if math.Abs(r.AWSMonthlyUSD-wantAWS) > 1e-9 {
		t.Errorf("aws = %.4f, want %.4f", r.AWSMonthlyUSD, wantAWS)
	}
	if math.Abs(r.AzureMonthlyUSD-10.15) > 1e-9 {
		t.Errorf("azure = %.4f, want 10.15", r.AzureMonthlyUSD)
	}
}

func TestCloudCostMonotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d1 := rapid.IntRange(10, 10000).Draw(t, "d1")
		d2 := rapid.IntRange(d1, 10000).Draw(t, "d2")
		msgs := rapid.IntRange(10, 1000).Draw(t, "msgs")

		r1 := CloudCost{Devices: d1, MessagesPerDay: msgs}.Compute()
		r2 := CloudCost{Devices: d2, MessagesPerDay: msgs}.Compute()
		if r2.AWSMonthlyUSD < r1.AWSMonthlyUSD || r2.AzureMonthlyUSD < r1.AzureMonthlyUSD {
			t.Fatalf("more devices cost less: %+v vs %+v", r2, r1)
		}
	})
}

func TestCloudCostClampsInputs(t *testing.T) {
	tiny := CloudCost{Devices: -5, MessagesPerDay: 0}.Compute()
	floor := CloudCost{Devices: 10, MessagesPerDay: 10}.Compute()
	if tiny != floor {
		t.Errorf("below-range inputs not clamped to floor: %+v vs %+v", tiny, floor)
	}
}

func TestLatencyDelta(t *testing.T) {
	delta, speedup := LatencyDelta(30, 1110)
	if delta != 1080 {
		t.Errorf("delta = %.0f, want 1080", delta)
	}
	if speedup != 37 {
		t.Errorf("speedup = %.2f, want 37", speedup)
	}

	// Sub-millisecond inputs are raised to 1 ms, keeping the ratio finite.
	_, s := LatencyDelta(0, 500)
	if math.IsInf(s, 1) || math.IsNaN(s) {
		t.Errorf("speedup not finite for zero edge latency: %v", s)
	}
}
