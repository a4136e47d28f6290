package utils

import "testing"

func TestFormatBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		decimals uint8
		want     string
	}{
		{"wei to ether truncated to 8 digits", "1234567890123456789", 18, "1.23456789"},
		{"exact integer", "1000000000000000000", 18, "1"},
		{"zero", "0", 18, "0"},
		{"zero decimals", "123456", 0, "123456"},
		{"sub one", "1", 18, "0"},
		{"smallest representable fraction", "10000000000", 18, "0.00000001"},
		{"trailing zeros stripped", "1500000000000000000", 18, "1.5"},
		{"six decimals", "2500000", 6, "2.5"},
		{"truncate not round", "1999999999999999999", 18, "1.99999999"},
		{"negative", "-1234567890123456789", 18, "-1.23456789"},
		{"magnitude beyond 64-bit range", "123456789012345678901234567890", 18, "123456789012.3456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatBaseUnits(tt.balance, tt.decimals)
			if err != nil {
				t.Fatalf("FormatBaseUnits(%q, %d): %v", tt.balance, tt.decimals, err)
			}
			if got != tt.want {
				t.Errorf("FormatBaseUnits(%q, %d) = %q, want %q", tt.balance, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatBaseUnits_InvalidInput(t *testing.T) {
	if _, err := FormatBaseUnits("not-a-number", 18); err == nil {
		t.Fatal("expected an error for non-numeric input")
	}
}

func TestIsZeroBaseUnits(t *testing.T) {
	if !IsZeroBaseUnits("0") {
		t.Error("\"0\" should be zero")
	}
	if IsZeroBaseUnits("1") {
		t.Error("\"1\" should not be zero")
	}
	// Malformed fetcher output is dropped, not surfaced.
	if !IsZeroBaseUnits("garbage") {
		t.Error("unparseable input should count as zero")
	}
	if !IsZeroBaseUnits("") {
		t.Error("empty input should count as zero")
	}
}

func TestCompareBaseUnits(t *testing.T) {
	// Magnitudes beyond the 64-bit range must compare numerically, not
	// lexicographically.
	big := "99999999999999999999999999999999"
	small := "100000000000000000000"
	if CompareBaseUnits(big, small) <= 0 {
		t.Errorf("expected %s > %s", big, small)
	}
	if CompareBaseUnits("9", "10") >= 0 {
		t.Error("expected 9 < 10")
	}
	if CompareBaseUnits("42", "42") != 0 {
		t.Error("expected equal")
	}
}
