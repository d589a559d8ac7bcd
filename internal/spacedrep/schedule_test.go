package spacedrep

import "testing"

func TestIntervals_Values(t *testing.T) {
	expected := []int{1, 3, 7, 14, 30, 60}
	if len(Intervals) != len(expected) {
		t.Fatalf("expected %d intervals, got %d", len(expected), len(Intervals))
	}
	for i, v := range expected {
		if Intervals[i] != v {
			t.Errorf("Intervals[%d] = %d, want %d", i, Intervals[i], v)
		}
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		current  int
		expected int
	}{
		{1, 3},
		{3, 7},
		{7, 14},
		{14, 30},
		{30, 60},
		{60, 60},
		// Off-ladder values move to the next larger rung.
		{0, 1},
		{2, 3},
		{10, 14},
		{45, 60},
		{90, 60},
	}
	for _, tt := range tests {
		if got := Advance(tt.current); got != tt.expected {
			t.Errorf("Advance(%d) = %d, want %d", tt.current, got, tt.expected)
		}
	}
}

func TestAdvance_StaysOnLadder(t *testing.T) {
	for current := -5; current <= 100; current++ {
		if got := Advance(current); !OnLadder(got) {
			t.Errorf("Advance(%d) = %d, not on ladder", current, got)
		}
	}
}

func TestReset(t *testing.T) {
	if Reset() != 1 {
		t.Errorf("Reset() = %d, want 1", Reset())
	}
}

func TestStatusFor(t *testing.T) {
	for _, days := range Intervals {
		want := StatusActive
		if days == 60 {
			want = StatusMastered
		}
		if got := StatusFor(days); got != want {
			t.Errorf("StatusFor(%d) = %q, want %q", days, got, want)
		}
	}
}
