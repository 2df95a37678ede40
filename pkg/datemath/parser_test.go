package datemath

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	parser, err := NewParser("UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wednesday
	base := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"iso date", "2026-09-01", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},
		{"today", "today", time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", "tomorrow", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow pt", "amanhã", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), false},
		{"in days", "in 3 days", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), false},
		{"in weeks", "in 2 weeks", time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), false},
		{"in months", "in 1 month", time.Date(2026, 9, 26, 0, 0, 0, 0, time.UTC), false},
		{"next monday", "next monday", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), false},
		{"next wednesday wraps a week", "next wednesday", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), false},
		{"case and spacing", "  Tomorrow ", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "whenever", time.Time{}, true},
		{"bad weekday", "next someday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input, base)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewParserInvalidTimezone(t *testing.T) {
	if _, err := NewParser("Not/AZone"); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := NewParser("UTC")
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := parser.EndOfDay(start)
	want := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", end, want)
	}
}
