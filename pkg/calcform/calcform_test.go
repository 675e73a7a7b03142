package calcform

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunUnknownCalculator(t *testing.T) {
	var buf bytes.Buffer
	err := Run("bogus", &buf)
	if err == nil {
		t.Fatal("expected error for unknown calculator")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the calculator: %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	check := validateRange("power", 1, 3000)

	if err := check("500"); err != nil {
		t.Errorf("valid value rejected: %v", err)
	}
	if err := check(" 42.5 "); err != nil {
		t.Errorf("whitespace-padded value rejected: %v", err)
	}
	if err := check("0"); err == nil {
		t.Error("below-range value accepted")
	}
	if err := check("5000"); err == nil {
		t.Error("above-range value accepted")
	}
	if err := check("watts"); err == nil {
		t.Error("non-numeric value accepted")
	}
}

func TestParseFloat(t *testing.T) {
	if got := parseFloat(" 12.5 "); got != 12.5 {
		t.Errorf("parseFloat = %v, want 12.5", got)
	}
	if got := parseFloat("junk"); got != 0 {
		t.Errorf("parseFloat on junk = %v, want 0", got)
	}
}
