package types

import (
	"testing"
)

func TestStatusLevelRank(t *testing.T) {
	tests := []struct {
		level StatusLevel
		want  int
	}{
		{StatusLevelC, 3},
		{StatusLevelB, 2},
		{StatusLevelA, 1},
		{StatusLevelNone, 0},
		{StatusLevel("X"), 0},
	}

	for _, tt := range tests {
		if got := tt.level.Rank(); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestHighestStatusLevel(t *testing.T) {
	tests := []struct {
		name   string
		levels []StatusLevel
		want   StatusLevel
	}{
		{
			name:   "empty returns none",
			levels: nil,
			want:   StatusLevelNone,
		},
		{
			name:   "single level",
			levels: []StatusLevel{StatusLevelA},
			want:   StatusLevelA,
		},
		{
			name:   "C wins over B and A",
			levels: []StatusLevel{StatusLevelA, StatusLevelC, StatusLevelB},
			want:   StatusLevelC,
		},
		{
			name:   "B wins over A",
			levels: []StatusLevel{StatusLevelB, StatusLevelA},
			want:   StatusLevelB,
		},
		{
			name:   "unknown levels are ignored",
			levels: []StatusLevel{StatusLevel("X"), StatusLevelA},
			want:   StatusLevelA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighestStatusLevel(tt.levels); got != tt.want {
				t.Errorf("HighestStatusLevel(%v) = %q, want %q", tt.levels, got, tt.want)
			}
		})
	}
}

func TestStatusLevelValidate(t *testing.T) {
	for _, level := range []StatusLevel{StatusLevelA, StatusLevelB, StatusLevelC} {
		if err := level.Validate(); err != nil {
			t.Errorf("Validate(%q) returned error: %v", level, err)
		}
	}

	for _, level := range []StatusLevel{StatusLevel(""), StatusLevel("D"), StatusLevelNone} {
		if err := level.Validate(); err == nil {
			t.Errorf("Validate(%q) expected error, got nil", level)
		}
	}
}

func TestSubscriptionStatusValidate(t *testing.T) {
	valid := []SubscriptionStatus{
		SubscriptionStatusTrialing,
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusCancelled,
	}
	for _, status := range valid {
		if err := status.Validate(); err != nil {
			t.Errorf("Validate(%q) returned error: %v", status, err)
		}
	}

	invalid := []SubscriptionStatus{"", "paused", "ACTIVE"}
	for _, status := range invalid {
		if err := status.Validate(); err == nil {
			t.Errorf("Validate(%q) expected error, got nil", status)
		}
	}
}
