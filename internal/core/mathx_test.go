package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max int
		expected      int
	}{
		{"within range", 1, 0, 2, 1},
		{"below min", -5, 0, 2, 0},
		{"above max", 7, 0, 2, 2},
		{"at min", 0, 0, 2, 0},
		{"at max", 2, 0, 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(0.05, 0.08, 2.4); got != 0.08 {
		t.Errorf("ClampF below min = %v, expected 0.08", got)
	}
	if got := ClampF(5, 0.08, 2.4); got != 2.4 {
		t.Errorf("ClampF above max = %v, expected 2.4", got)
	}
	if got := ClampF(0.8, 0.08, 2.4); got != 0.8 {
		t.Errorf("ClampF in range = %v, expected 0.8", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min should return the smaller value")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max should return the larger value")
	}
}
