package services

import "testing"

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		expect Money
	}{
		{"exact", 150000, 150000},
		{"round down", 150000.49, 150000},
		{"round half up", 150000.5, 150001},
		{"round up", 150000.51, 150001},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundMoney(tt.in); got != tt.expect {
				t.Errorf("RoundMoney(%v) = %d, want %d", tt.in, got, tt.expect)
			}
		})
	}
}

func TestRoundToThousand(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		expect Money
	}{
		{"already multiple", 2340000, 2340000},
		{"round down", 2340499, 2340000},
		{"round half up", 2340500, 2341000},
		{"round up", 2340501, 2341000},
		{"small", 499, 0},
		{"small up", 500, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToThousand(tt.in)
			if got != tt.expect {
				t.Errorf("RoundToThousand(%v) = %d, want %d", tt.in, got, tt.expect)
			}
			if got%1000 != 0 {
				t.Errorf("RoundToThousand(%v) = %d, not a multiple of 1000", tt.in, got)
			}
		})
	}
}

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		name   string
		in     Money
		expect string
	}{
		{"small", 500, "$500"},
		{"thousands", 12500, "$12.500"},
		{"millions", 2340000, "$2.340.000"},
		{"negative", -171000, "-$171.000"},
		{"zero", 0, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCOP(tt.in); got != tt.expect {
				t.Errorf("FormatCOP(%d) = %q, want %q", tt.in, got, tt.expect)
			}
		})
	}
}
