package episode

import "testing"

func TestDecodeRoman(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"II", 2},
		{"IV", 4},
		{"V", 5},
		{"IX", 9},
		{"XIV", 14},
		{"XL", 40},
		{"XC", 90},
		{"CD", 400},
		{"MCMXCIV", 1994},
		{"iv", 4},
		{" xii ", 12},
		{"", 0},
		{"ABC", 0},
		{"I2", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DecodeRoman(tt.in); got != tt.want {
				t.Errorf("DecodeRoman(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
