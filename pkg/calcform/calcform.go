// Package calcform runs the standalone calculator forms behind the
// --calc flag: an interactive prompt for the scenario inputs, then the
// computed results printed to stdout.
package calcform

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/iotsyslab/coursedeck/pkg/calc"
)

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func validateRange(name string, lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		if v < lo || v > hi {
			return fmt.Errorf("%s must be between %g and %g", name, lo, hi)
		}
		return nil
	}
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// RunEnergy prompts for an energy savings scenario and writes the
// computed savings to out.
func RunEnergy(out io.Writer) error {
	before := "16"
	after := "8"
	watts := "500"
	price := "0.25"

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hours ON per day (before automation)").
				Validate(validateRange("hours before", 0, 24)).
				Value(&before),
			huh.NewInput().
				Title("Hours ON per day (after automation)").
				Validate(validateRange("hours after", 0, 24)).
				Value(&after),
			huh.NewInput().
				Title("Device power (W)").
				Validate(validateRange("power", 1, 3000)).
				Value(&watts),
			huh.NewInput().
				Title("Electricity price (per kWh)").
				Validate(validateRange("price", 0, 1)).
				Value(&price),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("energy calculator: %w", err)
	}

	result := calc.EnergySavings{
		HoursBefore: parseFloat(before),
		HoursAfter:  parseFloat(after),
		PowerW:      parseFloat(watts),
		PricePerKWh: parseFloat(price),
	}.Compute()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Energy Savings")
	fmt.Fprintln(out, "--------------")
	fmt.Fprintf(out, "Daily savings:        %.2f kWh (%.0f%% reduction)\n", result.DailySavedKWh, result.PercentReduction)
	fmt.Fprintf(out, "Monthly savings:      %.2f kWh\n", result.MonthlySavedKWh)
	fmt.Fprintf(out, "Monthly cost savings: %.2f\n", result.MonthlyCostSaved)
	fmt.Fprintf(out, "CO2 reduced:          %.2f kg/month\n", result.CO2SavedKg)
	return nil
}

// RunCloud prompts for a fleet size and message rate and writes the
// monthly cost estimates to out.
func RunCloud(out io.Writer) error {
	devices := "100"
	messages := "100"

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of devices").
				Validate(validateRange("devices", 10, 10000)).
				Value(&devices),
			huh.NewInput().
				Title("Messages per device per day").
				Validate(validateRange("messages", 10, 1000)).
				Value(&messages),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("cloud calculator: %w", err)
	}

	result := calc.CloudCost{
		Devices:        int(parseFloat(devices)),
		MessagesPerDay: int(parseFloat(messages)),
	}.Compute()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Monthly Cloud Cost Estimate")
	fmt.Fprintln(out, "---------------------------")
	fmt.Fprintf(out, "Message volume: %.2fM messages/month\n", result.MessagesPerMonthM)
	fmt.Fprintf(out, "AWS IoT Core:   $%.2f/month\n", result.AWSMonthlyUSD)
	fmt.Fprintf(out, "Azure IoT Hub:  $%.2f/month\n", result.AzureMonthlyUSD)
	return nil
}

// Run dispatches on the calculator name from the --calc flag.
func Run(name string, out io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "energy":
		return RunEnergy(out)
	case "cloud":
		return RunCloud(out)
	default:
		return fmt.Errorf("unknown calculator %q (want energy or cloud)", name)
	}
}
