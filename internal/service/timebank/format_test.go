package timebank

import "testing"

func TestFormatWorked(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h00min"},
		{480, "8h00min"},
		{65, "1h05min"},
		{-30, "-0h30min"},
		{1505, "25h05min"},
	}

	for _, tt := range tests {
		if got := FormatWorked(tt.minutes); got != tt.want {
			t.Errorf("FormatWorked(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "+0h00min"},
		{30, "+0h30min"},
		{-480, "-8h00min"},
		{-60, "-1h00min"},
		{-61, "-1h01min"},
	}

	for _, tt := range tests {
		if got := FormatBalance(tt.minutes); got != tt.want {
			t.Errorf("FormatBalance(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
